package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/DMS-AppointmentService/internal/api/handlers"
	"github.com/m04kA/DMS-AppointmentService/internal/api/middleware"
	createAppointment "github.com/m04kA/DMS-AppointmentService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody      = "некорректное тело запроса"
	msgMissingUserID           = "отсутствует ID пользователя"
	msgInvalidDateOrTime       = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgFacilityNotFound        = "фасилити не найдено"
	msgFacilityInactive        = "фасилити деактивировано"
	msgAppointmentTypeNotFound = "тип записи не найден"
	msgCarrierNotFound         = "перевозчик не найден"
	msgInvalidAppointmentDate  = "некорректная дата записи"
	msgTimeNotAvailable        = "выбранное время недоступно по правилам фасилити"
	msgSlotNotAvailable        = "вместимость выбранного слота исчерпана"
	msgTooLateToBook           = "слишком поздно для записи на это время"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments - Slot not available: user_id=%d, facility_id=%d", userID, req.FacilityID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createAppointment.ErrTimeNotAvailable):
			h.logger.Warn("POST /appointments - Time not available: user_id=%d, facility_id=%d, time=%s",
				userID, req.FacilityID, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgTimeNotAvailable)

		case errors.Is(err, createAppointment.ErrFacilityNotFound):
			h.logger.Warn("POST /appointments - Facility not found: facility_id=%d", req.FacilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, createAppointment.ErrFacilityInactive):
			h.logger.Warn("POST /appointments - Facility inactive: facility_id=%d", req.FacilityID)
			handlers.RespondBadRequest(w, msgFacilityInactive)

		case errors.Is(err, createAppointment.ErrAppointmentTypeNotFound):
			h.logger.Warn("POST /appointments - Appointment type not found: facility_id=%d, appointment_type_id=%d",
				req.FacilityID, req.AppointmentTypeID)
			handlers.RespondNotFound(w, msgAppointmentTypeNotFound)

		case errors.Is(err, createAppointment.ErrCarrierNotFound):
			h.logger.Warn("POST /appointments - Carrier not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgCarrierNotFound)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Invalid appointment date: user_id=%d, date=%s", userID, req.AppointmentDate)
			handlers.RespondBadRequest(w, msgInvalidAppointmentDate)

		case errors.Is(err, createAppointment.ErrTooLateToBook):
			h.logger.Warn("POST /appointments - Too late to book: user_id=%d, time=%s", userID, req.StartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: user_id=%d, facility_id=%d, error=%v",
				userID, req.FacilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, reference_code=%s, user_id=%d, facility_id=%d",
		result.ID, result.ReferenceCode, userID, req.FacilityID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
