package create_facility_rule

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
	msgMissingUserID     = "отсутствует ID пользователя"
	msgInvalidBody       = "некорректное тело запроса"
	msgInvalidRule       = "некорректные параметры правила"
	msgFacilityNotFound  = "фасилити не найдено"
	msgTypeNotFound      = "тип записи не найден"
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

// Handle POST /api/v1/facilities/{facilityId}/rules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем facilityId из URL
	vars := mux.Vars(r)
	facilityIDStr := vars["facilityId"]

	facilityID, err := strconv.ParseInt(facilityIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /facilities/{id}/rules - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /facilities/{id}/rules - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем тело запроса
	var req CreateRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /facilities/{id}/rules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	// Создаём правило (сервис сам проверит права менеджера и валидность данных)
	result, err := h.service.Create(r.Context(), req.ToServiceRequest(facilityID, userID))
	if err != nil {
		switch {
		case errors.Is(err, rules.ErrFacilityNotFound):
			h.logger.Warn("POST /facilities/{id}/rules - Facility not found: facility_id=%d", facilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, rules.ErrAppointmentTypeNotFound):
			h.logger.Warn("POST /facilities/{id}/rules - Appointment type not found: facility_id=%d, type_id=%d",
				facilityID, req.AppointmentTypeID)
			handlers.RespondNotFound(w, msgTypeNotFound)

		case errors.Is(err, rules.ErrAccessDenied):
			h.logger.Warn("POST /facilities/{id}/rules - Access denied: facility_id=%d, user_id=%d",
				facilityID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rules.ErrInvalidInput):
			h.logger.Warn("POST /facilities/{id}/rules - Invalid rule data: facility_id=%d, error=%v",
				facilityID, err)
			handlers.RespondBadRequest(w, msgInvalidRule)

		default:
			h.logger.Error("POST /facilities/{id}/rules - Failed to create rule: facility_id=%d, error=%v",
				facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /facilities/{id}/rules - Rule created successfully: facility_id=%d, rule_id=%d",
		facilityID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
