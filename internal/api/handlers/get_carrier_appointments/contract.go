package get_carrier_appointments

import (
	"context"

	"github.com/m04kA/DMS-AppointmentService/internal/service/appointments/models"
)

type AppointmentService interface {
	GetCarrierAppointments(ctx context.Context, req *models.GetCarrierAppointmentsRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
