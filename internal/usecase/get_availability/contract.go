package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/DMS-AppointmentService/internal/domain"
	"github.com/m04kA/DMS-AppointmentService/internal/integrations/facilityservice"
)

// RuleRepository интерфейс репозитория правил доступности
type RuleRepository interface {
	// GetByFacilityAndType возвращает ВСЕ правила пары (фасилити, тип записи).
	// Фильтрация по активности и датам - задача движка доступности.
	GetByFacilityAndType(ctx context.Context, facilityID, appointmentTypeID int64) ([]domain.AvailabilityRule, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByFacilityWithFilter(ctx context.Context, filter domain.FacilityAppointmentsFilter) ([]*domain.Appointment, error)
}

// FacilityServiceClient интерфейс клиента для FacilityService
type FacilityServiceClient interface {
	GetFacility(ctx context.Context, facilityID int64) (*facilityservice.Facility, error)
	GetAppointmentType(ctx context.Context, facilityID, appointmentTypeID int64) (*facilityservice.AppointmentType, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
