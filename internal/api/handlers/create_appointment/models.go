package create_appointment

import (
	"time"

	"github.com/m04kA/DMS-AppointmentService/internal/domain"
	createAppointment "github.com/m04kA/DMS-AppointmentService/internal/usecase/create_appointment"
	"github.com/m04kA/DMS-AppointmentService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	FacilityID        int64   `json:"facilityId"`
	AppointmentTypeID int64   `json:"appointmentTypeId"`
	AppointmentDate   string  `json:"appointmentDate"` // "2026-03-02"
	StartTime         string  `json:"startTime"`       // "10:00"
	DurationMinutes   int     `json:"durationMinutes,omitempty"`
	BOLNumber         *string `json:"bolNumber,omitempty"`
	Notes             *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID                  int64   `json:"id"`
	ReferenceCode       string  `json:"referenceCode"`
	CarrierUserID       int64   `json:"carrierUserId"`
	FacilityID          int64   `json:"facilityId"`
	AppointmentTypeID   int64   `json:"appointmentTypeId"`
	AppointmentDate     string  `json:"appointmentDate"`
	StartTime           string  `json:"startTime"`
	DurationMinutes     int     `json:"durationMinutes"`
	Status              string  `json:"status"`
	AppointmentTypeName string  `json:"appointmentTypeName"`
	CarrierName         string  `json:"carrierName"`
	TruckLicensePlate   *string `json:"truckLicensePlate,omitempty"`
	TrailerNumber       *string `json:"trailerNumber,omitempty"`
	DriverName          *string `json:"driverName,omitempty"`
	DriverPhone         *string `json:"driverPhone,omitempty"`
	BOLNumber           *string `json:"bolNumber,omitempty"`
	Notes               *string `json:"notes,omitempty"`
	CreatedAt           string  `json:"createdAt"`
	UpdatedAt           string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(userID int64) (*createAppointment.Request, error) {
	// Парсим дату
	appointmentDate, err := time.Parse(domain.DateFormat, r.AppointmentDate)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		UserID:            userID,
		FacilityID:        r.FacilityID,
		AppointmentTypeID: r.AppointmentTypeID,
		Date:              appointmentDate,
		StartTime:         startTime,
		DurationMinutes:   r.DurationMinutes,
		BOLNumber:         r.BOLNumber,
		Notes:             r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:                  resp.ID,
		ReferenceCode:       resp.ReferenceCode,
		CarrierUserID:       resp.CarrierUserID,
		FacilityID:          resp.FacilityID,
		AppointmentTypeID:   resp.AppointmentTypeID,
		AppointmentDate:     resp.AppointmentDate.Format(domain.DateFormat),
		StartTime:           resp.StartTime.String(),
		DurationMinutes:     resp.DurationMinutes,
		Status:              resp.Status,
		AppointmentTypeName: resp.AppointmentTypeName,
		CarrierName:         resp.CarrierName,
		TruckLicensePlate:   resp.TruckLicensePlate,
		TrailerNumber:       resp.TrailerNumber,
		DriverName:          resp.DriverName,
		DriverPhone:         resp.DriverPhone,
		BOLNumber:           resp.BOLNumber,
		Notes:               resp.Notes,
		CreatedAt:           resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           resp.UpdatedAt.Format(time.RFC3339),
	}
}
