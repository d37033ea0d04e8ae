package delete_facility_rule

import (
	"context"
)

// RuleService интерфейс сервиса правил доступности
type RuleService interface {
	Delete(ctx context.Context, id int64, userID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}
