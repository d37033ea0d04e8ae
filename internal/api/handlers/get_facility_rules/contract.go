package get_facility_rules

import (
	"context"

	"github.com/m04kA/DMS-AppointmentService/internal/service/rules/models"
)

// RuleService интерфейс сервиса правил доступности
type RuleService interface {
	GetByFacility(ctx context.Context, facilityID int64, appointmentTypeID *int64, userID int64) (*models.RuleListResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}
