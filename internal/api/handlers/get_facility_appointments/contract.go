package get_facility_appointments

import (
	"context"

	"github.com/m04kA/DMS-AppointmentService/internal/service/appointments/models"
)

type AppointmentService interface {
	GetFacilityAppointments(ctx context.Context, req *models.GetFacilityAppointmentsRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
