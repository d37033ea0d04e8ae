package create_facility_rule

import (
	"github.com/m04kA/DMS-AppointmentService/internal/service/rules/models"
)

// CreateRuleRequest тело запроса на создание правила доступности.
// facilityId берётся из URL, userId - из заголовка авторизации.
type CreateRuleRequest struct {
	AppointmentTypeID  int64   `json:"appointmentTypeId"`
	DayOfWeek          int     `json:"dayOfWeek"`
	StartDate          *string `json:"startDate,omitempty"`
	EndDate            *string `json:"endDate,omitempty"`
	StartTime          string  `json:"startTime"`
	EndTime            string  `json:"endTime"`
	MaxConcurrent      int     `json:"maxConcurrent"`
	BufferTimeMinutes  int     `json:"bufferTimeMinutes"`
	GracePeriodMinutes int     `json:"gracePeriodMinutes"`
}

// ToServiceRequest конвертирует HTTP запрос в запрос сервисного слоя
func (r *CreateRuleRequest) ToServiceRequest(facilityID, userID int64) *models.CreateRuleRequest {
	return &models.CreateRuleRequest{
		UserID:             userID,
		FacilityID:         facilityID,
		AppointmentTypeID:  r.AppointmentTypeID,
		DayOfWeek:          r.DayOfWeek,
		StartDate:          r.StartDate,
		EndDate:            r.EndDate,
		StartTime:          r.StartTime,
		EndTime:            r.EndTime,
		MaxConcurrent:      r.MaxConcurrent,
		BufferTimeMinutes:  r.BufferTimeMinutes,
		GracePeriodMinutes: r.GracePeriodMinutes,
	}
}
