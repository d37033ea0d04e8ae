package get_facility_rules

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/DMS-AppointmentService/internal/api/handlers"
	"github.com/m04kA/DMS-AppointmentService/internal/api/middleware"
	"github.com/m04kA/DMS-AppointmentService/internal/service/rules"
)

const (
	msgInvalidFacilityID = "некорректный ID фасилити"
	msgInvalidTypeID     = "некорректный ID типа записи"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgFacilityNotFound  = "фасилити не найдено"
	msgForbidden         = "доступ запрещен"
)

type Handler struct {
	service RuleService
	logger  Logger
}

func NewHandler(service RuleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/facilities/{facilityId}/rules
// Query params: appointmentTypeId (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем facilityId из URL
	vars := mux.Vars(r)
	facilityIDStr := vars["facilityId"]

	facilityID, err := strconv.ParseInt(facilityIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /facilities/{id}/rules - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /facilities/{id}/rules - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Опциональный фильтр по типу записи
	var appointmentTypeID *int64
	if typeIDStr := r.URL.Query().Get("appointmentTypeId"); typeIDStr != "" {
		typeID, err := strconv.ParseInt(typeIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /facilities/{id}/rules - Invalid appointment type ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTypeID)
			return
		}
		appointmentTypeID = &typeID
	}

	// Получаем правила фасилити (сервис сам проверит права менеджера)
	result, err := h.service.GetByFacility(r.Context(), facilityID, appointmentTypeID, userID)
	if err != nil {
		switch {
		case errors.Is(err, rules.ErrFacilityNotFound):
			h.logger.Warn("GET /facilities/{id}/rules - Facility not found: facility_id=%d", facilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, rules.ErrAccessDenied):
			h.logger.Warn("GET /facilities/{id}/rules - Access denied: facility_id=%d, user_id=%d",
				facilityID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /facilities/{id}/rules - Failed to get rules: facility_id=%d, error=%v",
				facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /facilities/{id}/rules - Rules retrieved successfully: facility_id=%d, count=%d",
		facilityID, len(result.Rules))
	handlers.RespondJSON(w, http.StatusOK, result)
}
