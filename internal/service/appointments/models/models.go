package models

import (
	"errors"
	"time"

	"github.com/m04kA/DMS-AppointmentService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// CancelAppointmentRequest запрос на отмену записи
type CancelAppointmentRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на обновление статуса записи
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// CheckInRequest запрос на отметку прибытия водителя
type CheckInRequest struct {
	UserID int64 `json:"userId"`
}

// GetCarrierAppointmentsRequest запрос на получение записей перевозчика
type GetCarrierAppointmentsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetFacilityAppointmentsRequest запрос на получение записей фасилити
type GetFacilityAppointmentsRequest struct {
	UserID            int64      `json:"userId"`
	FacilityID        int64      `json:"facilityId"`
	AppointmentTypeID *int64     `json:"appointmentTypeId,omitempty"` // Фильтр по типу записи (опционально)
	StartDate         *time.Time `json:"startDate,omitempty"`         // Начало периода (опционально)
	EndDate           *time.Time `json:"endDate,omitempty"`           // Конец периода (опционально)
	Status            *string    `json:"status,omitempty"`            // Фильтр по статусу (опционально)
	IncludeInactive   bool       `json:"includeInactive,omitempty"`   // Включить отменённые и no-show записи
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetFacilityAppointmentsRequest) ToDomainFilter() (domain.FacilityAppointmentsFilter, error) {
	filter := domain.FacilityAppointmentsFilter{
		FacilityID:        r.FacilityID,
		AppointmentTypeID: r.AppointmentTypeID,
		StartDate:         r.StartDate,
		EndDate:           r.EndDate,
		IncludeInactive:   r.IncludeInactive,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainAppointmentStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID                int64  `json:"id"`
	ReferenceCode     string `json:"referenceCode"`
	CarrierUserID     int64  `json:"carrierUserId"`
	FacilityID        int64  `json:"facilityId"`
	AppointmentTypeID int64  `json:"appointmentTypeId"`
	AppointmentDate   string `json:"appointmentDate"` // "2026-03-02"
	StartTime         string `json:"startTime"`       // "10:00"
	DurationMinutes   int    `json:"durationMinutes"`
	Status            string `json:"status"`

	// Денормализованные данные
	AppointmentTypeName string  `json:"appointmentTypeName"`
	CarrierName         string  `json:"carrierName"`
	TruckLicensePlate   *string `json:"truckLicensePlate,omitempty"`
	TrailerNumber       *string `json:"trailerNumber,omitempty"`
	DriverName          *string `json:"driverName,omitempty"`
	DriverPhone         *string `json:"driverPhone,omitempty"`
	BOLNumber           *string `json:"bolNumber,omitempty"`
	Notes               *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format
	CheckedInAt        *string `json:"checkedInAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:                  a.ID,
		ReferenceCode:       a.ReferenceCode,
		CarrierUserID:       a.CarrierUserID,
		FacilityID:          a.FacilityID,
		AppointmentTypeID:   a.AppointmentTypeID,
		AppointmentDate:     a.AppointmentDate.Format(domain.DateFormat),
		StartTime:           a.StartTime.String(),
		DurationMinutes:     a.DurationMinutes,
		Status:              string(a.Status),
		AppointmentTypeName: a.AppointmentTypeName,
		CarrierName:         a.CarrierName,
		TruckLicensePlate:   a.TruckLicensePlate,
		TrailerNumber:       a.TrailerNumber,
		DriverName:          a.DriverName,
		DriverPhone:         a.DriverPhone,
		BOLNumber:           a.BOLNumber,
		Notes:               a.Notes,
		CancellationReason:  a.CancellationReason,
		CreatedAt:           a.CreatedAt,
		UpdatedAt:           a.UpdatedAt,
	}

	// Конвертируем временные метки в строки ISO 8601
	if a.CancelledAt != nil {
		cancelledStr := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}
	if a.CheckedInAt != nil {
		checkedInStr := a.CheckedInAt.Format(time.RFC3339)
		resp.CheckedInAt = &checkedInStr
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	if appointments == nil {
		return &AppointmentListResponse{
			Appointments: []AppointmentResponse{},
		}
	}

	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, len(appointments)),
	}

	for i, appointment := range appointments {
		if appointmentResp := FromDomainAppointment(appointment); appointmentResp != nil {
			resp.Appointments[i] = *appointmentResp
		}
	}

	return resp
}

// ToDomainAppointmentStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainAppointmentStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)

	// Валидируем статус
	validStatuses := []domain.AppointmentStatus{
		domain.StatusScheduled,
		domain.StatusCheckedIn,
		domain.StatusCompleted,
		domain.StatusCancelledByCarrier,
		domain.StatusCancelledByFacility,
		domain.StatusNoShow,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
