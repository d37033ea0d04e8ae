package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/DMS-AppointmentService/internal/availability"
	"github.com/m04kA/DMS-AppointmentService/internal/domain"
	facilityClient "github.com/m04kA/DMS-AppointmentService/internal/integrations/facilityservice"
	"github.com/m04kA/DMS-AppointmentService/pkg/ptr"
)

// UseCase use case для получения суточной сетки доступности дока
type UseCase struct {
	ruleRepo        RuleRepository
	appointmentRepo AppointmentRepository
	facilityClient  FacilityServiceClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	ruleRepo RuleRepository,
	appointmentRepo AppointmentRepository,
	facilityClient FacilityServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		ruleRepo:        ruleRepo,
		appointmentRepo: appointmentRepo,
		facilityClient:  facilityClient,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: user=%d, facility=%d, appointmentType=%d, date=%s",
		req.UserID, req.FacilityID, req.AppointmentTypeID, req.Date)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем фасилити (источник таймзоны)
	facility, err := uc.facilityClient.GetFacility(ctx, req.FacilityID)
	if err != nil {
		if errors.Is(err, facilityClient.ErrFacilityNotFound) {
			uc.logger.Warn("GetAvailability: facility id=%d not found", req.FacilityID)
			return nil, ErrFacilityNotFound
		}
		uc.logger.Error("GetAvailability: failed to get facility id=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to get facility: %v", ErrInternal, err)
	}

	// 3. Получаем тип записи (источник дефолтной длительности)
	appointmentType, err := uc.facilityClient.GetAppointmentType(ctx, req.FacilityID, req.AppointmentTypeID)
	if err != nil {
		if errors.Is(err, facilityClient.ErrAppointmentTypeNotFound) {
			uc.logger.Warn("GetAvailability: appointment type id=%d not found in facility=%d",
				req.AppointmentTypeID, req.FacilityID)
			return nil, ErrAppointmentTypeNotFound
		}
		uc.logger.Error("GetAvailability: failed to get appointment type id=%d: %v", req.AppointmentTypeID, err)
		return nil, fmt.Errorf("%w: failed to get appointment type: %v", ErrInternal, err)
	}

	// 4. Определяем параметры генерации
	durationMinutes := req.DurationMinutes
	if durationMinutes == 0 {
		durationMinutes = appointmentType.DefaultDurationMinutes
	}
	if durationMinutes == 0 {
		durationMinutes = domain.DefaultDurationMinutes
	}

	intervalMinutes := req.IntervalMinutes
	if intervalMinutes == 0 {
		intervalMinutes = domain.DefaultSlotIntervalMinutes
	}

	timezone := req.Timezone
	if timezone == "" {
		timezone = facility.Timezone
	}

	// 5. Получаем ВСЕ правила пары (фасилити, тип) - фильтрует движок
	rules, err := uc.ruleRepo.GetByFacilityAndType(ctx, req.FacilityID, req.AppointmentTypeID)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get rules for facility=%d, appointmentType=%d: %v",
			req.FacilityID, req.AppointmentTypeID, err)
		return nil, fmt.Errorf("%w: failed to get rules: %v", ErrInternal, err)
	}

	// 6. Генерируем суточную сетку слотов
	slots, err := availability.GenerateDaySlots(req.Date, rules, durationMinutes, timezone, intervalMinutes)
	if err != nil {
		uc.logger.Warn("GetAvailability: invalid date %q: %v", req.Date, err)
		return nil, fmt.Errorf("%w: %s", ErrInvalidDate, req.Date)
	}

	// 7. Вычитаем живую занятость из остатка вместимости
	day, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		// Дата уже прошла валидацию движка, сюда не попадаем
		return nil, fmt.Errorf("%w: %s", ErrInvalidDate, req.Date)
	}

	filter := domain.FacilityAppointmentsFilter{
		FacilityID:        req.FacilityID,
		AppointmentTypeID: ptr.Ptr(req.AppointmentTypeID),
		StartDate:         &day,
		EndDate:           &day,
		IncludeInactive:   false, // Только записи, занимающие вместимость
	}

	appointments, err := uc.appointmentRepo.GetByFacilityWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	slots = applyOccupancy(slots, appointments, durationMinutes)

	uc.logger.Info("GetAvailability: generated %d slots for facility=%d, appointmentType=%d, date=%s",
		len(slots), req.FacilityID, req.AppointmentTypeID, req.Date)

	return &Response{
		Date:              req.Date,
		FacilityID:        req.FacilityID,
		AppointmentTypeID: req.AppointmentTypeID,
		Timezone:          timezone,
		IntervalMinutes:   intervalMinutes,
		DurationMinutes:   durationMinutes,
		Slots:             toSlotDTOs(slots),
	}, nil
}

// toSlotDTOs конвертирует domain слоты в DTO ответа
func toSlotDTOs(slots []domain.TimeSlot) []Slot {
	result := make([]Slot, len(slots))
	for i, slot := range slots {
		result[i] = Slot{
			Time:         slot.Time.String(),
			Available:    slot.Available,
			Remaining:    slot.Remaining,
			Reason:       slot.Reason,
			IsBufferTime: slot.IsBufferTime,
		}
	}
	return result
}
