package domain

import (
	"time"

	"github.com/m04kA/DMS-AppointmentService/pkg/types"
)

// AppointmentStatus represents the status of a dock appointment
type AppointmentStatus string

const (
	StatusScheduled           AppointmentStatus = "scheduled"
	StatusCheckedIn           AppointmentStatus = "checked_in"
	StatusCompleted           AppointmentStatus = "completed"
	StatusCancelledByCarrier  AppointmentStatus = "cancelled_by_carrier"
	StatusCancelledByFacility AppointmentStatus = "cancelled_by_facility"
	StatusNoShow              AppointmentStatus = "no_show"
)

// Appointment represents a carrier's dock appointment at a facility
type Appointment struct {
	ID                int64
	ReferenceCode     string // короткий код для водителя на воротах
	CarrierUserID     int64
	FacilityID        int64
	AppointmentTypeID int64
	AppointmentDate   time.Time
	StartTime         types.TimeString
	DurationMinutes   int
	Status            AppointmentStatus

	// Denormalized data for gate check-in and history
	AppointmentTypeName string
	CarrierName         string
	TruckLicensePlate   *string
	TrailerNumber       *string
	DriverName          *string
	DriverPhone         *string
	BOLNumber           *string
	Notes               *string

	CancellationReason *string
	CancelledAt        *time.Time
	CheckedInAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment still occupies dock capacity
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelledByCarrier &&
		a.Status != StatusCancelledByFacility &&
		a.Status != StatusNoShow
}

// CanBeCancelled returns true if the appointment can be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusScheduled
}

// CanCheckIn returns true if the carrier can check in for the appointment
func (a *Appointment) CanCheckIn() bool {
	return a.Status == StatusScheduled
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelledByCarrier || a.Status == StatusCancelledByFacility
}

// IsClosed returns true if the appointment reached a terminal state
func (a *Appointment) IsClosed() bool {
	return a.Status == StatusCompleted || a.Status == StatusNoShow || a.IsCancelled()
}

// FacilityAppointmentsFilter фильтр для получения записей фасилити
type FacilityAppointmentsFilter struct {
	FacilityID        int64              // Обязательный параметр
	AppointmentTypeID *int64             // Фильтр по типу записи (опционально)
	StartDate         *time.Time         // Начало периода (опционально)
	EndDate           *time.Time         // Конец периода (опционально)
	Status            *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeInactive   bool               // Включать ли неактивные записи (отменённые, no-show)
}
