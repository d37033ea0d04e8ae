package appointments

import (
	"context"
	"time"

	"github.com/m04kA/DMS-AppointmentService/internal/domain"
	"github.com/m04kA/DMS-AppointmentService/internal/integrations/carrierservice"
	"github.com/m04kA/DMS-AppointmentService/internal/integrations/facilityservice"
)

// AppointmentRepository интерфейс репозитория записей на доки
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByCarrierID(ctx context.Context, carrierUserID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error)
	GetByFacilityWithFilter(ctx context.Context, filter domain.FacilityAppointmentsFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	Cancel(ctx context.Context, id int64, status domain.AppointmentStatus, reason string) error
	CheckIn(ctx context.Context, id int64, checkedInAt time.Time) error
}

// CarrierServiceClient интерфейс клиента для CarrierService
type CarrierServiceClient interface {
	GetCarrier(ctx context.Context, carrierUserID int64) (*carrierservice.Carrier, error)
}

// FacilityServiceClient интерфейс клиента для FacilityService
type FacilityServiceClient interface {
	GetFacility(ctx context.Context, facilityID int64) (*facilityservice.Facility, error)
}

// TimeProvider интерфейс источника текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
