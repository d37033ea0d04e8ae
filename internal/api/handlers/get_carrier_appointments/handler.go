package get_carrier_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/DMS-AppointmentService/internal/api/handlers"
	"github.com/m04kA/DMS-AppointmentService/internal/api/middleware"
	"github.com/m04kA/DMS-AppointmentService/internal/service/appointments"
	"github.com/m04kA/DMS-AppointmentService/internal/service/appointments/models"
)

const (
	msgInvalidCarrierID = "некорректный ID перевозчика"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgForbidden        = "доступ запрещен"
	msgInvalidStatus    = "некорректный статус записи"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/carriers/{carrierId}/appointments
// Query params: status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем carrierId из URL
	vars := mux.Vars(r)
	carrierIDStr := vars["carrierId"]

	carrierID, err := strconv.ParseInt(carrierIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /carriers/{id}/appointments - Invalid carrier ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCarrierID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /carriers/{id}/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Перевозчик видит только свою историю
	if carrierID != userID {
		h.logger.Warn("GET /carriers/{id}/appointments - Access denied: carrier_id=%d, user_id=%d", carrierID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	serviceReq := &models.GetCarrierAppointmentsRequest{UserID: carrierID}
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		serviceReq.Status = &statusStr
	}

	result, err := h.service.GetCarrierAppointments(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /carriers/{id}/appointments - Invalid status: carrier_id=%d", carrierID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /carriers/{id}/appointments - Failed to get appointments: carrier_id=%d, error=%v",
				carrierID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /carriers/{id}/appointments - Appointments retrieved successfully: carrier_id=%d, count=%d",
		carrierID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
