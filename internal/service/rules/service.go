package rules

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/DMS-AppointmentService/internal/domain"
	ruleRepo "github.com/m04kA/DMS-AppointmentService/internal/infra/storage/rule"
	facilityClient "github.com/m04kA/DMS-AppointmentService/internal/integrations/facilityservice"
	"github.com/m04kA/DMS-AppointmentService/internal/service/rules/models"
)

// Service сервис для работы с правилами доступности
type Service struct {
	ruleRepo       RuleRepository
	facilityClient FacilityServiceClient
	logger         Logger
}

// NewService создает новый экземпляр сервиса правил
func NewService(
	ruleRepo RuleRepository,
	facilityClient FacilityServiceClient,
	logger Logger,
) *Service {
	return &Service{
		ruleRepo:       ruleRepo,
		facilityClient: facilityClient,
		logger:         logger,
	}
}

// Create создает новое правило доступности
// Доступно только менеджерам фасилити
// Проверяет существование фасилити и типа записи
func (s *Service) Create(ctx context.Context, req *models.CreateRuleRequest) (*models.RuleResponse, error) {
	s.logger.Info("Create: creating rule for facility=%d, appointmentType=%d by user=%d",
		req.FacilityID, req.AppointmentTypeID, req.UserID)

	// 1. Конвертируем request в domain модель (валидация форматов даты и времени)
	rule, err := req.ToDomainRule()
	if err != nil {
		s.logger.Warn("Create: invalid rule data: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Валидируем бизнес-ограничения
	if err := s.validateRule(rule); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем фасилити для проверки прав доступа
	facility, err := s.facilityClient.GetFacility(ctx, req.FacilityID)
	if err != nil {
		if errors.Is(err, facilityClient.ErrFacilityNotFound) {
			s.logger.Warn("Create: facility id=%d not found", req.FacilityID)
			return nil, ErrFacilityNotFound
		}
		s.logger.Error("Create: failed to get facility id=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to get facility: %v", ErrInternal, err)
	}

	// 4. Проверяем права доступа (только менеджер фасилити)
	if !s.isManager(facility.ManagerUserIDs, req.UserID) {
		s.logger.Warn("Create: user=%d is not a manager of facility=%d", req.UserID, req.FacilityID)
		return nil, ErrAccessDenied
	}

	// 5. Проверяем существование типа записи
	if _, err := s.facilityClient.GetAppointmentType(ctx, req.FacilityID, req.AppointmentTypeID); err != nil {
		if errors.Is(err, facilityClient.ErrAppointmentTypeNotFound) {
			s.logger.Warn("Create: appointment type id=%d not found in facility=%d",
				req.AppointmentTypeID, req.FacilityID)
			return nil, ErrAppointmentTypeNotFound
		}
		s.logger.Error("Create: failed to get appointment type id=%d: %v", req.AppointmentTypeID, err)
		return nil, fmt.Errorf("%w: failed to get appointment type: %v", ErrInternal, err)
	}

	// 6. Создаем правило
	createdRule, err := s.ruleRepo.Create(ctx, rule)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created rule id=%d", createdRule.ID)
	return models.FromDomainRule(createdRule), nil
}

// GetByFacility получает правила фасилити, опционально фильтруя по типу записи
// Доступно только менеджерам фасилити
func (s *Service) GetByFacility(ctx context.Context, facilityID int64, appointmentTypeID *int64, userID int64) (*models.RuleListResponse, error) {
	s.logger.Info("GetByFacility: fetching rules for facility=%d, appointmentType=%v by user=%d",
		facilityID, appointmentTypeID, userID)

	// Получаем фасилити для проверки прав доступа
	facility, err := s.facilityClient.GetFacility(ctx, facilityID)
	if err != nil {
		if errors.Is(err, facilityClient.ErrFacilityNotFound) {
			s.logger.Warn("GetByFacility: facility id=%d not found", facilityID)
			return nil, ErrFacilityNotFound
		}
		s.logger.Error("GetByFacility: failed to get facility id=%d: %v", facilityID, err)
		return nil, fmt.Errorf("%w: failed to get facility: %v", ErrInternal, err)
	}

	// Проверяем права доступа (только менеджер фасилити)
	if !s.isManager(facility.ManagerUserIDs, userID) {
		s.logger.Warn("GetByFacility: user=%d is not a manager of facility=%d", userID, facilityID)
		return nil, ErrAccessDenied
	}

	domainRules, err := s.ruleRepo.GetByFacility(ctx, facilityID, appointmentTypeID)
	if err != nil {
		s.logger.Error("GetByFacility: repository error for facility=%d: %v", facilityID, err)
		return nil, fmt.Errorf("%w: GetByFacility - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByFacility: successfully fetched %d rules for facility=%d", len(domainRules), facilityID)
	return models.FromDomainRuleList(domainRules), nil
}

// Update обновляет существующее правило
// Доступно только менеджерам фасилити
// Поддерживает частичное обновление - обновляются только указанные поля
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateRuleRequest) (*models.RuleResponse, error) {
	s.logger.Info("Update: updating rule id=%d by user=%d", id, req.UserID)

	// 1. Получаем существующее правило
	rule, err := s.ruleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			s.logger.Warn("Update: rule id=%d not found", id)
			return nil, ErrRuleNotFound
		}
		s.logger.Error("Update: repository error for rule id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	// 2. Получаем фасилити для проверки прав доступа
	facility, err := s.facilityClient.GetFacility(ctx, rule.FacilityID)
	if err != nil {
		if errors.Is(err, facilityClient.ErrFacilityNotFound) {
			s.logger.Warn("Update: facility id=%d not found", rule.FacilityID)
			return nil, ErrFacilityNotFound
		}
		s.logger.Error("Update: failed to get facility id=%d: %v", rule.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to get facility: %v", ErrInternal, err)
	}

	// 3. Проверяем права доступа (только менеджер фасилити)
	if !s.isManager(facility.ManagerUserIDs, req.UserID) {
		s.logger.Warn("Update: user=%d is not a manager of facility=%d", req.UserID, rule.FacilityID)
		return nil, ErrAccessDenied
	}

	// 4. Применяем обновления к копии и валидируем результат
	tempRule := *rule
	if err := req.ApplyToRule(&tempRule); err != nil {
		s.logger.Warn("Update: invalid rule data for rule id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.validateRule(&tempRule); err != nil {
		s.logger.Warn("Update: validation failed for rule id=%d: %v", id, err)
		return nil, err
	}

	// 5. Обновляем правило в БД
	updatedRule, err := s.ruleRepo.Update(ctx, &tempRule)
	if err != nil {
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			s.logger.Warn("Update: rule id=%d not found during update", id)
			return nil, ErrRuleNotFound
		}
		s.logger.Error("Update: repository error for rule id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated rule id=%d", id)
	return models.FromDomainRule(updatedRule), nil
}

// Delete удаляет правило по ID
// Доступно только менеджерам фасилити
func (s *Service) Delete(ctx context.Context, id int64, userID int64) error {
	s.logger.Info("Delete: deleting rule id=%d by user=%d", id, userID)

	// 1. Получаем правило для проверки прав доступа
	rule, err := s.ruleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			s.logger.Warn("Delete: rule id=%d not found", id)
			return ErrRuleNotFound
		}
		s.logger.Error("Delete: repository error for rule id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	// 2. Получаем фасилити для проверки прав доступа
	facility, err := s.facilityClient.GetFacility(ctx, rule.FacilityID)
	if err != nil {
		if errors.Is(err, facilityClient.ErrFacilityNotFound) {
			s.logger.Warn("Delete: facility id=%d not found", rule.FacilityID)
			return ErrFacilityNotFound
		}
		s.logger.Error("Delete: failed to get facility id=%d: %v", rule.FacilityID, err)
		return fmt.Errorf("%w: failed to get facility: %v", ErrInternal, err)
	}

	// 3. Проверяем права доступа (только менеджер фасилити)
	if !s.isManager(facility.ManagerUserIDs, userID) {
		s.logger.Warn("Delete: user=%d is not a manager of facility=%d", userID, rule.FacilityID)
		return ErrAccessDenied
	}

	// 4. Удаляем правило
	if err := s.ruleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			s.logger.Warn("Delete: rule id=%d not found during deletion", id)
			return ErrRuleNotFound
		}
		s.logger.Error("Delete: repository error for rule id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted rule id=%d", id)
	return nil
}

// Вспомогательные методы

// isManager проверяет, что пользователь является менеджером фасилити
func (s *Service) isManager(managerUserIDs []int64, userID int64) bool {
	for _, managerID := range managerUserIDs {
		if managerID == userID {
			return true
		}
	}
	return false
}

// validateRule валидирует бизнес-ограничения правила
func (s *Service) validateRule(rule *domain.AvailabilityRule) error {
	if rule.DayOfWeek < domain.MinDayOfWeek || rule.DayOfWeek > domain.MaxDayOfWeek {
		return fmt.Errorf("%w: dayOfWeek must be between %d and %d",
			ErrInvalidInput, domain.MinDayOfWeek, domain.MaxDayOfWeek)
	}

	if !rule.StartTime.IsBefore(rule.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	if rule.StartDate != nil && rule.EndDate != nil && rule.EndDate.Before(*rule.StartDate) {
		return fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}

	if rule.MaxConcurrent < domain.MinConcurrent || rule.MaxConcurrent > domain.MaxConcurrent {
		return fmt.Errorf("%w: maxConcurrent must be between %d and %d",
			ErrInvalidInput, domain.MinConcurrent, domain.MaxConcurrent)
	}

	if rule.BufferTimeMinutes < domain.MinBufferTimeMinutes || rule.BufferTimeMinutes > domain.MaxBufferTimeMinutes {
		return fmt.Errorf("%w: bufferTimeMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinBufferTimeMinutes, domain.MaxBufferTimeMinutes)
	}

	if rule.GracePeriodMinutes < domain.MinGracePeriodMinutes || rule.GracePeriodMinutes > domain.MaxGracePeriodMinutes {
		return fmt.Errorf("%w: gracePeriodMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinGracePeriodMinutes, domain.MaxGracePeriodMinutes)
	}

	// Буфер не должен съедать всё окно
	startMinutes, err := rule.StartTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	endMinutes, err := rule.EndTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}
	if rule.BufferTimeMinutes >= endMinutes-startMinutes {
		return fmt.Errorf("%w: bufferTimeMinutes must be less than the window length", ErrInvalidInput)
	}

	return nil
}
