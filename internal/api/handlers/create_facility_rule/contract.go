package create_facility_rule

import (
	"context"

	"github.com/m04kA/DMS-AppointmentService/internal/service/rules/models"
)

// RuleService интерфейс сервиса правил доступности
type RuleService interface {
	Create(ctx context.Context, req *models.CreateRuleRequest) (*models.RuleResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}
