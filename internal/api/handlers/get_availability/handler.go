package get_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/DMS-AppointmentService/internal/api/handlers"
	getAvailability "github.com/m04kA/DMS-AppointmentService/internal/usecase/get_availability"
)

const (
	msgInvalidFacilityID        = "некорректный ID фасилити"
	msgMissingAppointmentTypeID = "ID типа записи обязателен"
	msgInvalidAppointmentTypeID = "некорректный ID типа записи"
	msgMissingDate              = "дата обязательна"
	msgInvalidDate              = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInterval          = "некорректный шаг сетки слотов"
	msgInvalidDuration          = "некорректная длительность записи"
	msgInvalidParams            = "некорректные параметры запроса"
	msgFacilityNotFound         = "фасилити не найдено"
	msgAppointmentTypeNotFound  = "тип записи не найден"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/facilities/{facilityId}/availability
// Query params: appointmentTypeId (required), date (required, YYYY-MM-DD),
// timezone, interval, duration (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем facilityId из URL
	facilityIDStr := vars["facilityId"]
	facilityID, err := strconv.ParseInt(facilityIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /facilities/{id}/availability - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	// Извлекаем appointmentTypeId из query параметров
	appointmentTypeIDStr := r.URL.Query().Get("appointmentTypeId")
	if appointmentTypeIDStr == "" {
		h.logger.Warn("GET /facilities/{id}/availability - Missing appointment type ID")
		handlers.RespondBadRequest(w, msgMissingAppointmentTypeID)
		return
	}

	appointmentTypeID, err := strconv.ParseInt(appointmentTypeIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /facilities/{id}/availability - Invalid appointment type ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentTypeID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /facilities/{id}/availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Опциональные параметры сетки
	intervalMinutes := 0
	if intervalStr := r.URL.Query().Get("interval"); intervalStr != "" {
		intervalMinutes, err = strconv.Atoi(intervalStr)
		if err != nil {
			h.logger.Warn("GET /facilities/{id}/availability - Invalid interval: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInterval)
			return
		}
	}

	durationMinutes := 0
	if durationStr := r.URL.Query().Get("duration"); durationStr != "" {
		durationMinutes, err = strconv.Atoi(durationStr)
		if err != nil {
			h.logger.Warn("GET /facilities/{id}/availability - Invalid duration: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
	}

	useCaseReq := &getAvailability.Request{
		FacilityID:        facilityID,
		AppointmentTypeID: appointmentTypeID,
		Date:              dateStr,
		Timezone:          r.URL.Query().Get("timezone"),
		IntervalMinutes:   intervalMinutes,
		DurationMinutes:   durationMinutes,
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrFacilityNotFound):
			h.logger.Warn("GET /facilities/{id}/availability - Facility not found: facility_id=%d", facilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, getAvailability.ErrAppointmentTypeNotFound):
			h.logger.Warn("GET /facilities/{id}/availability - Appointment type not found: facility_id=%d, appointment_type_id=%d",
				facilityID, appointmentTypeID)
			handlers.RespondNotFound(w, msgAppointmentTypeNotFound)

		case errors.Is(err, getAvailability.ErrInvalidDate):
			h.logger.Warn("GET /facilities/{id}/availability - Invalid date: %s", dateStr)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /facilities/{id}/availability - Invalid parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /facilities/{id}/availability - Failed to get availability: facility_id=%d, appointment_type_id=%d, error=%v",
				facilityID, appointmentTypeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /facilities/{id}/availability - Availability retrieved successfully: facility_id=%d, appointment_type_id=%d, date=%s, slots_count=%d",
		facilityID, appointmentTypeID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
