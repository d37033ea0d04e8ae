package create_appointment

import (
	"context"
	"time"

	"github.com/m04kA/DMS-AppointmentService/internal/domain"
	"github.com/m04kA/DMS-AppointmentService/internal/integrations/carrierservice"
	"github.com/m04kA/DMS-AppointmentService/internal/integrations/facilityservice"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	GetByFacilityWithFilter(ctx context.Context, filter domain.FacilityAppointmentsFilter) ([]*domain.Appointment, error)
}

// RuleRepository интерфейс репозитория правил доступности
type RuleRepository interface {
	// GetByFacilityAndType возвращает ВСЕ правила пары (фасилити, тип записи).
	// Фильтрация по активности и датам - задача движка доступности.
	GetByFacilityAndType(ctx context.Context, facilityID, appointmentTypeID int64) ([]domain.AvailabilityRule, error)
}

// FacilityServiceClient интерфейс клиента для FacilityService
type FacilityServiceClient interface {
	GetFacility(ctx context.Context, facilityID int64) (*facilityservice.Facility, error)
	GetAppointmentType(ctx context.Context, facilityID, appointmentTypeID int64) (*facilityservice.AppointmentType, error)
}

// CarrierServiceClient интерфейс клиента для CarrierService
type CarrierServiceClient interface {
	GetCarrier(ctx context.Context, carrierUserID int64) (*carrierservice.Carrier, error)
	GetActiveTruckWithGracefulDegradation(ctx context.Context, carrierUserID int64) (*carrierservice.Truck, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
