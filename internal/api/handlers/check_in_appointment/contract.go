package check_in_appointment

import (
	"context"

	"github.com/m04kA/DMS-AppointmentService/internal/service/appointments/models"
)

type AppointmentService interface {
	CheckIn(ctx context.Context, appointmentID int64, req *models.CheckInRequest) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
