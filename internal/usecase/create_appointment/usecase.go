package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/DMS-AppointmentService/internal/availability"
	"github.com/m04kA/DMS-AppointmentService/internal/domain"
	carrierClient "github.com/m04kA/DMS-AppointmentService/internal/integrations/carrierservice"
	facilityClient "github.com/m04kA/DMS-AppointmentService/internal/integrations/facilityservice"
	"github.com/m04kA/DMS-AppointmentService/pkg/ptr"
)

// referenceCodeLength длина короткого кода для водителя на воротах
const referenceCodeLength = 8

// UseCase use case для создания записи на док
type UseCase struct {
	appointmentRepo AppointmentRepository
	ruleRepo        RuleRepository
	facilityClient  FacilityServiceClient
	carrierClient   CarrierServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	ruleRepo RuleRepository,
	facilityClient FacilityServiceClient,
	carrierClient CarrierServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		ruleRepo:        ruleRepo,
		facilityClient:  facilityClient,
		carrierClient:   carrierClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
// Использует сериализуемую транзакцию для предотвращения гонки данных
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: user=%d, facility=%d, appointmentType=%d, date=%s, time=%s",
		req.UserID, req.FacilityID, req.AppointmentTypeID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Валидация даты и времени записи
	if err := validateAppointmentDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateAppointment: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, err
	}
	if err := validateAppointmentTime(req.Date, req.StartTime, now); err != nil {
		uc.logger.Warn("CreateAppointment: time %s already passed today", req.StartTime)
		return nil, err
	}

	// 4. Получаем фасилити
	facility, err := uc.facilityClient.GetFacility(ctx, req.FacilityID)
	if err != nil {
		if errors.Is(err, facilityClient.ErrFacilityNotFound) {
			uc.logger.Warn("CreateAppointment: facility id=%d not found", req.FacilityID)
			return nil, ErrFacilityNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get facility id=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to get facility: %v", ErrInternal, err)
	}
	if !facility.IsActive {
		uc.logger.Warn("CreateAppointment: facility id=%d is inactive", req.FacilityID)
		return nil, ErrFacilityInactive
	}

	// 5. Получаем тип записи
	appointmentType, err := uc.facilityClient.GetAppointmentType(ctx, req.FacilityID, req.AppointmentTypeID)
	if err != nil {
		if errors.Is(err, facilityClient.ErrAppointmentTypeNotFound) {
			uc.logger.Warn("CreateAppointment: appointment type id=%d not found in facility=%d",
				req.AppointmentTypeID, req.FacilityID)
			return nil, ErrAppointmentTypeNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get appointment type id=%d: %v", req.AppointmentTypeID, err)
		return nil, fmt.Errorf("%w: failed to get appointment type: %v", ErrInternal, err)
	}

	durationMinutes := req.DurationMinutes
	if durationMinutes == 0 {
		durationMinutes = appointmentType.DefaultDurationMinutes
	}
	if durationMinutes == 0 {
		durationMinutes = domain.DefaultDurationMinutes
	}

	// 6. Получаем перевозчика
	carrier, err := uc.carrierClient.GetCarrier(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, carrierClient.ErrCarrierNotFound) {
			uc.logger.Warn("CreateAppointment: carrier user=%d not found", req.UserID)
			return nil, ErrCarrierNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get carrier user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get carrier: %v", ErrInternal, err)
	}

	// 7. Получаем активный тягач перевозчика.
	// CarrierService может быть недоступен - запись создаётся без данных тягача.
	truck, err := uc.carrierClient.GetActiveTruckWithGracefulDegradation(ctx, req.UserID)
	if err != nil && !errors.Is(err, carrierClient.ErrTruckNotFound) && !errors.Is(err, carrierClient.ErrServiceDegraded) {
		uc.logger.Error("CreateAppointment: failed to get active truck for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get active truck: %v", ErrInternal, err)
	}

	dateStr := req.Date.Format(domain.DateFormat)
	clockStr := req.StartTime.String()

	// Переменная для хранения результата
	var result *domain.Appointment

	// 8. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Получаем ВСЕ правила пары (фасилити, тип) - фильтрует движок
		rules, err := uc.ruleRepo.GetByFacilityAndType(txCtx, req.FacilityID, req.AppointmentTypeID)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get rules: %v", err)
			return fmt.Errorf("%w: failed to get rules: %v", ErrInternal, err)
		}

		// 8.2. Проверяем время по правилам доступности
		checkResult, err := availability.CheckTime(dateStr, clockStr, rules, durationMinutes)
		if err != nil {
			uc.logger.Error("CreateAppointment: rule evaluation failed: %v", err)
			return fmt.Errorf("%w: rule evaluation failed: %v", ErrInternal, err)
		}
		if !checkResult.Valid {
			uc.logger.Warn("CreateAppointment: time %s %s rejected: %s", dateStr, clockStr, checkResult.Message)
			return fmt.Errorf("%w: %s", ErrTimeNotAvailable, checkResult.Message)
		}

		// 8.3. Определяем вместимость слота по принимающим правилам
		capacity, err := availability.Capacity(dateStr, clockStr, rules, durationMinutes)
		if err != nil {
			uc.logger.Error("CreateAppointment: capacity evaluation failed: %v", err)
			return fmt.Errorf("%w: capacity evaluation failed: %v", ErrInternal, err)
		}

		// 8.4. Получаем все активные записи на эту дату с блокировкой (FOR UPDATE)
		filter := domain.FacilityAppointmentsFilter{
			FacilityID:        req.FacilityID,
			AppointmentTypeID: ptr.Ptr(req.AppointmentTypeID),
			StartDate:         &req.Date,
			EndDate:           &req.Date,
			IncludeInactive:   false, // Только записи, занимающие вместимость
		}

		appointments, err := uc.appointmentRepo.GetByFacilityWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 8.5. Проверяем, что вместимость ещё не выбрана
		overlappingCount, err := countOverlappingAppointments(req.StartTime, durationMinutes, appointments)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to count overlapping appointments: %v", err)
			return fmt.Errorf("%w: failed to count overlapping appointments: %v", ErrInternal, err)
		}

		if overlappingCount >= capacity {
			uc.logger.Warn("CreateAppointment: slot not available, %d/%d spots taken",
				overlappingCount, capacity)
			return ErrSlotNotAvailable
		}

		uc.logger.Info("CreateAppointment: slot available, %d/%d spots taken", overlappingCount, capacity)

		// 8.6. Создаем запись с денормализацией данных
		appointment := &domain.Appointment{
			ReferenceCode:     generateReferenceCode(),
			CarrierUserID:     req.UserID,
			FacilityID:        req.FacilityID,
			AppointmentTypeID: req.AppointmentTypeID,
			AppointmentDate:   req.Date,
			StartTime:         req.StartTime,
			DurationMinutes:   durationMinutes,
			Status:            domain.StatusScheduled,
			// Денормализация данных типа записи и перевозчика
			AppointmentTypeName: appointmentType.Name,
			CarrierName:         carrier.Name,
			BOLNumber:           req.BOLNumber,
			Notes:               req.Notes,
		}

		// Денормализация данных тягача (может отсутствовать при деградации)
		if truck != nil {
			appointment.TruckLicensePlate = &truck.LicensePlate
			appointment.TrailerNumber = truck.TrailerNumber
			appointment.DriverName = truck.DriverName
			appointment.DriverPhone = truck.DriverPhone
		}

		// 8.7. Сохраняем запись
		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d, referenceCode=%s",
		result.ID, result.ReferenceCode)

	// Конвертируем в response
	return &Response{
		ID:                  result.ID,
		ReferenceCode:       result.ReferenceCode,
		CarrierUserID:       result.CarrierUserID,
		FacilityID:          result.FacilityID,
		AppointmentTypeID:   result.AppointmentTypeID,
		AppointmentDate:     result.AppointmentDate,
		StartTime:           result.StartTime,
		DurationMinutes:     result.DurationMinutes,
		Status:              string(result.Status),
		AppointmentTypeName: result.AppointmentTypeName,
		CarrierName:         result.CarrierName,
		TruckLicensePlate:   result.TruckLicensePlate,
		TrailerNumber:       result.TrailerNumber,
		DriverName:          result.DriverName,
		DriverPhone:         result.DriverPhone,
		BOLNumber:           result.BOLNumber,
		Notes:               result.Notes,
		CreatedAt:           result.CreatedAt,
		UpdatedAt:           result.UpdatedAt,
	}, nil
}

// generateReferenceCode генерирует короткий код записи для водителя на воротах
func generateReferenceCode() string {
	code := strings.ToUpper(uuid.NewString())
	return strings.ReplaceAll(code, "-", "")[:referenceCodeLength]
}
