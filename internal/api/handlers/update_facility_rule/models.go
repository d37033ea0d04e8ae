package update_facility_rule

import (
	"github.com/m04kA/DMS-AppointmentService/internal/service/rules/models"
)

// UpdateRuleRequest тело запроса на частичное обновление правила.
// Передаются только изменяемые поля, userId берётся из заголовка авторизации.
type UpdateRuleRequest struct {
	DayOfWeek          *int    `json:"dayOfWeek,omitempty"`
	StartDate          *string `json:"startDate,omitempty"`
	EndDate            *string `json:"endDate,omitempty"`
	StartTime          *string `json:"startTime,omitempty"`
	EndTime            *string `json:"endTime,omitempty"`
	IsActive           *bool   `json:"isActive,omitempty"`
	MaxConcurrent      *int    `json:"maxConcurrent,omitempty"`
	BufferTimeMinutes  *int    `json:"bufferTimeMinutes,omitempty"`
	GracePeriodMinutes *int    `json:"gracePeriodMinutes,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в запрос сервисного слоя
func (r *UpdateRuleRequest) ToServiceRequest(userID int64) *models.UpdateRuleRequest {
	return &models.UpdateRuleRequest{
		UserID:             userID,
		DayOfWeek:          r.DayOfWeek,
		StartDate:          r.StartDate,
		EndDate:            r.EndDate,
		StartTime:          r.StartTime,
		EndTime:            r.EndTime,
		IsActive:           r.IsActive,
		MaxConcurrent:      r.MaxConcurrent,
		BufferTimeMinutes:  r.BufferTimeMinutes,
		GracePeriodMinutes: r.GracePeriodMinutes,
	}
}
