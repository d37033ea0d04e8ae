package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/DMS-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/DMS-AppointmentService/internal/infra/storage/appointment"
	facilityClient "github.com/m04kA/DMS-AppointmentService/internal/integrations/facilityservice"
	"github.com/m04kA/DMS-AppointmentService/internal/service/appointments/models"
)

// Service сервис для работы с записями на доки
type Service struct {
	appointmentRepo AppointmentRepository
	facilityClient  FacilityServiceClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	facilityClient FacilityServiceClient,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		facilityClient:  facilityClient,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Проверяет права доступа - перевозчик видит только свою запись,
// менеджер фасилити видит любую запись своего фасилити
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, userID)

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkUserAccess(ctx, appointment, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", id)
	return models.FromDomainAppointment(appointment), nil
}

// GetCarrierAppointments получает историю записей перевозчика
// Опционально фильтрует по статусу
func (s *Service) GetCarrierAppointments(ctx context.Context, req *models.GetCarrierAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetCarrierAppointments: fetching appointments for carrier=%d, status=%v", req.UserID, req.Status)

	// Конвертируем статус из строки в domain.AppointmentStatus
	var domainStatus *domain.AppointmentStatus
	if req.Status != nil {
		status, err := models.ToDomainAppointmentStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetCarrierAppointments: invalid status=%s for carrier=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	appointments, err := s.appointmentRepo.GetByCarrierID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetCarrierAppointments: repository error for carrier=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetCarrierAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCarrierAppointments: successfully fetched %d appointments for carrier=%d", len(appointments), req.UserID)
	return models.FromDomainAppointmentList(appointments), nil
}

// GetFacilityAppointments получает записи фасилити с гибкой фильтрацией
// Поддерживает фильтрацию по типу записи, периоду, статусу и включению неактивных записей
// Доступно только менеджерам фасилити
func (s *Service) GetFacilityAppointments(ctx context.Context, req *models.GetFacilityAppointmentsRequest) (*models.AppointmentListResponse, error) {
	// Логируем запрос с деталями фильтрации
	logMsg := fmt.Sprintf("GetFacilityAppointments: fetching appointments for facility=%d, user=%d", req.FacilityID, req.UserID)
	if req.AppointmentTypeID != nil {
		logMsg += fmt.Sprintf(", appointmentType=%d", *req.AppointmentTypeID)
	}
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	// Проверяем права доступа менеджера
	if err := s.checkManagerAccess(ctx, req.FacilityID, req.UserID); err != nil {
		return nil, err
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetFacilityAppointments: invalid filter for facility=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	// Получаем записи с фильтрацией
	appointments, err := s.appointmentRepo.GetByFacilityWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetFacilityAppointments: repository error for facility=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: GetFacilityAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetFacilityAppointments: successfully fetched %d appointments for facility=%d", len(appointments), req.FacilityID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Cancel отменяет запись
// Перевозчик может отменить только свою запись (cancelled_by_carrier)
// Менеджер фасилити может отменить любую запись фасилити (cancelled_by_facility)
func (s *Service) Cancel(ctx context.Context, appointmentID int64, req *models.CancelAppointmentRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%d by user=%d", appointmentID, req.UserID)

	// Получаем запись
	appointment, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Проверяем, можно ли отменить запись
	if !appointment.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", appointmentID, appointment.Status)
		return ErrCannotCancel
	}

	// Определяем статус отмены в зависимости от прав доступа
	var cancelStatus domain.AppointmentStatus

	// Проверяем, является ли пользователь владельцем записи
	if appointment.CarrierUserID == req.UserID {
		cancelStatus = domain.StatusCancelledByCarrier
	} else {
		// Проверяем, является ли пользователь менеджером фасилити
		if err := s.checkManagerAccess(ctx, appointment.FacilityID, req.UserID); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to cancel appointment id=%d", req.UserID, appointmentID)
			return ErrAccessDenied
		}
		cancelStatus = domain.StatusCancelledByFacility
	}

	// Отменяем запись
	if err := s.appointmentRepo.Cancel(ctx, appointmentID, cancelStatus, req.CancellationReason); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found during cancellation", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d with status=%s", appointmentID, cancelStatus)
	return nil
}

// CheckIn отмечает прибытие водителя на ворота
// Доступно перевозчику по своей записи и менеджерам фасилити
func (s *Service) CheckIn(ctx context.Context, appointmentID int64, req *models.CheckInRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("CheckIn: checking in appointment id=%d by user=%d", appointmentID, req.UserID)

	// Получаем запись
	appointment, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("CheckIn: appointment id=%d not found", appointmentID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("CheckIn: repository error for appointment id=%d: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: CheckIn - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkUserAccess(ctx, appointment, req.UserID); err != nil {
		s.logger.Warn("CheckIn: access denied for user=%d to appointment id=%d", req.UserID, appointmentID)
		return nil, err
	}

	// Проверяем, можно ли отметить прибытие
	if !appointment.CanCheckIn() {
		s.logger.Warn("CheckIn: appointment id=%d cannot be checked in, status=%s", appointmentID, appointment.Status)
		return nil, ErrCannotCheckIn
	}

	now := s.timeProvider.Now()
	if err := s.appointmentRepo.CheckIn(ctx, appointmentID, now); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("CheckIn: appointment id=%d not found during check-in", appointmentID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("CheckIn: repository error for appointment id=%d: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: CheckIn - repository error: %v", ErrInternal, err)
	}

	appointment.Status = domain.StatusCheckedIn
	appointment.CheckedInAt = &now

	s.logger.Info("CheckIn: successfully checked in appointment id=%d at %s", appointmentID, now.Format("15:04:05"))
	return models.FromDomainAppointment(appointment), nil
}

// UpdateStatus обновляет статус записи
// Доступно только менеджерам фасилити
func (s *Service) UpdateStatus(ctx context.Context, appointmentID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating appointment id=%d to status=%s by user=%d",
		appointmentID, req.Status, req.UserID)

	// Получаем запись
	appointment, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%d not found", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа (только менеджер фасилити)
	if err := s.checkManagerAccess(ctx, appointment.FacilityID, req.UserID); err != nil {
		return err
	}

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainAppointmentStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%d", req.Status, appointmentID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	// Обновляем статус
	if err := s.appointmentRepo.UpdateStatus(ctx, appointmentID, newStatus); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%d not found during update", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated appointment id=%d to status=%s", appointmentID, newStatus)
	return nil
}

// Вспомогательные методы

// checkUserAccess проверяет, что пользователь имеет доступ к записи
// Перевозчик видит свою запись, менеджер - любую запись своего фасилити
func (s *Service) checkUserAccess(ctx context.Context, appointment *domain.Appointment, userID int64) error {
	// Если пользователь владелец записи - доступ разрешён
	if appointment.CarrierUserID == userID {
		return nil
	}

	// Проверяем, является ли пользователь менеджером фасилити
	if err := s.checkManagerAccess(ctx, appointment.FacilityID, userID); err != nil {
		// Ошибка уже залогирована в checkManagerAccess
		return ErrAccessDenied
	}

	return nil
}

// checkManagerAccess проверяет, что пользователь является менеджером фасилити
func (s *Service) checkManagerAccess(ctx context.Context, facilityID int64, userID int64) error {
	// Получаем фасилити через FacilityService
	facility, err := s.facilityClient.GetFacility(ctx, facilityID)
	if err != nil {
		if errors.Is(err, facilityClient.ErrFacilityNotFound) {
			s.logger.Warn("checkManagerAccess: facility id=%d not found", facilityID)
			return ErrFacilityNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get facility id=%d: %v", facilityID, err)
		return fmt.Errorf("%w: checkManagerAccess - failed to get facility: %v", ErrInternal, err)
	}

	// Проверяем, что userID в списке менеджеров
	for _, managerID := range facility.ManagerUserIDs {
		if managerID == userID {
			s.logger.Info("checkManagerAccess: user=%d is manager of facility=%d", userID, facilityID)
			return nil
		}
	}

	s.logger.Warn("checkManagerAccess: user=%d is not a manager of facility=%d", userID, facilityID)
	return ErrAccessDenied
}
