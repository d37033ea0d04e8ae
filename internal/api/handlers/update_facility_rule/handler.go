package update_facility_rule

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
	msgInvalidRuleID    = "некорректный ID правила"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgInvalidBody      = "некорректное тело запроса"
	msgInvalidRule      = "некорректные параметры правила"
	msgRuleNotFound     = "правило не найдено"
	msgFacilityNotFound = "фасилити не найдено"
	msgForbidden        = "доступ запрещен"
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

// Handle PUT /api/v1/facilities/{facilityId}/rules/{ruleId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем ruleId из URL
	vars := mux.Vars(r)
	ruleIDStr := vars["ruleId"]

	ruleID, err := strconv.ParseInt(ruleIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /facilities/{id}/rules/{ruleId} - Invalid rule ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRuleID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /facilities/{id}/rules/{ruleId} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем тело запроса
	var req UpdateRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /facilities/{id}/rules/{ruleId} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	// Обновляем правило (сервис сам проверит права менеджера и валидность данных)
	result, err := h.service.Update(r.Context(), ruleID, req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, rules.ErrRuleNotFound):
			h.logger.Warn("PUT /facilities/{id}/rules/{ruleId} - Rule not found: rule_id=%d", ruleID)
			handlers.RespondNotFound(w, msgRuleNotFound)

		case errors.Is(err, rules.ErrFacilityNotFound):
			h.logger.Warn("PUT /facilities/{id}/rules/{ruleId} - Facility not found: rule_id=%d", ruleID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, rules.ErrAccessDenied):
			h.logger.Warn("PUT /facilities/{id}/rules/{ruleId} - Access denied: rule_id=%d, user_id=%d",
				ruleID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rules.ErrInvalidInput):
			h.logger.Warn("PUT /facilities/{id}/rules/{ruleId} - Invalid rule data: rule_id=%d, error=%v",
				ruleID, err)
			handlers.RespondBadRequest(w, msgInvalidRule)

		default:
			h.logger.Error("PUT /facilities/{id}/rules/{ruleId} - Failed to update rule: rule_id=%d, error=%v",
				ruleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /facilities/{id}/rules/{ruleId} - Rule updated successfully: rule_id=%d", ruleID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
