package models

import (
	"errors"
	"time"

	"github.com/m04kA/DMS-AppointmentService/internal/domain"
	"github.com/m04kA/DMS-AppointmentService/pkg/types"
)

var (
	// ErrInvalidDate возвращается при некорректной дате
	ErrInvalidDate = errors.New("invalid date format")

	// ErrInvalidTime возвращается при некорректном времени
	ErrInvalidTime = errors.New("invalid time format")
)

// Request модели

// CreateRuleRequest запрос на создание правила доступности
type CreateRuleRequest struct {
	UserID             int64   `json:"userId"`
	FacilityID         int64   `json:"facilityId"`
	AppointmentTypeID  int64   `json:"appointmentTypeId"`
	DayOfWeek          int     `json:"dayOfWeek"` // 0 = воскресенье ... 6 = суббота
	StartDate          *string `json:"startDate,omitempty"` // "2026-03-01", nil = бессрочно
	EndDate            *string `json:"endDate,omitempty"`
	StartTime          string  `json:"startTime"` // "08:00"
	EndTime            string  `json:"endTime"`   // "17:00"
	MaxConcurrent      int     `json:"maxConcurrent"`
	BufferTimeMinutes  int     `json:"bufferTimeMinutes"`
	GracePeriodMinutes int     `json:"gracePeriodMinutes"`
}

// ToDomainRule конвертирует request в domain модель
func (r *CreateRuleRequest) ToDomainRule() (*domain.AvailabilityRule, error) {
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, ErrInvalidTime
	}
	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, ErrInvalidTime
	}

	rule := &domain.AvailabilityRule{
		FacilityID:         r.FacilityID,
		AppointmentTypeID:  r.AppointmentTypeID,
		DayOfWeek:          r.DayOfWeek,
		StartTime:          startTime,
		EndTime:            endTime,
		IsActive:           true,
		MaxConcurrent:      r.MaxConcurrent,
		BufferTimeMinutes:  r.BufferTimeMinutes,
		GracePeriodMinutes: r.GracePeriodMinutes,
	}

	if r.StartDate != nil {
		startDate, err := time.Parse(domain.DateFormat, *r.StartDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		rule.StartDate = &startDate
	}
	if r.EndDate != nil {
		endDate, err := time.Parse(domain.DateFormat, *r.EndDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		rule.EndDate = &endDate
	}

	return rule, nil
}

// UpdateRuleRequest запрос на частичное обновление правила
type UpdateRuleRequest struct {
	UserID             int64   `json:"userId"`
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

// ApplyToRule применяет указанные поля к существующему правилу
func (r *UpdateRuleRequest) ApplyToRule(rule *domain.AvailabilityRule) error {
	if r.DayOfWeek != nil {
		rule.DayOfWeek = *r.DayOfWeek
	}
	if r.StartDate != nil {
		startDate, err := time.Parse(domain.DateFormat, *r.StartDate)
		if err != nil {
			return ErrInvalidDate
		}
		rule.StartDate = &startDate
	}
	if r.EndDate != nil {
		endDate, err := time.Parse(domain.DateFormat, *r.EndDate)
		if err != nil {
			return ErrInvalidDate
		}
		rule.EndDate = &endDate
	}
	if r.StartTime != nil {
		startTime, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return ErrInvalidTime
		}
		rule.StartTime = startTime
	}
	if r.EndTime != nil {
		endTime, err := types.NewTimeStringFromString(*r.EndTime)
		if err != nil {
			return ErrInvalidTime
		}
		rule.EndTime = endTime
	}
	if r.IsActive != nil {
		rule.IsActive = *r.IsActive
	}
	if r.MaxConcurrent != nil {
		rule.MaxConcurrent = *r.MaxConcurrent
	}
	if r.BufferTimeMinutes != nil {
		rule.BufferTimeMinutes = *r.BufferTimeMinutes
	}
	if r.GracePeriodMinutes != nil {
		rule.GracePeriodMinutes = *r.GracePeriodMinutes
	}
	return nil
}

// Response модели

// RuleResponse ответ с данными правила
type RuleResponse struct {
	ID                 int64   `json:"id"`
	FacilityID         int64   `json:"facilityId"`
	AppointmentTypeID  int64   `json:"appointmentTypeId"`
	DayOfWeek          int     `json:"dayOfWeek"`
	StartDate          *string `json:"startDate,omitempty"`
	EndDate            *string `json:"endDate,omitempty"`
	StartTime          string  `json:"startTime"`
	EndTime            string  `json:"endTime"`
	IsActive           bool    `json:"isActive"`
	MaxConcurrent      int     `json:"maxConcurrent"`
	BufferTimeMinutes  int     `json:"bufferTimeMinutes"`
	GracePeriodMinutes int     `json:"gracePeriodMinutes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RuleListResponse ответ со списком правил
type RuleListResponse struct {
	Rules []RuleResponse `json:"rules"`
}

// FromDomainRule конвертирует domain модель в DTO
func FromDomainRule(rule *domain.AvailabilityRule) *RuleResponse {
	if rule == nil {
		return nil
	}

	resp := &RuleResponse{
		ID:                 rule.ID,
		FacilityID:         rule.FacilityID,
		AppointmentTypeID:  rule.AppointmentTypeID,
		DayOfWeek:          rule.DayOfWeek,
		StartTime:          rule.StartTime.String(),
		EndTime:            rule.EndTime.String(),
		IsActive:           rule.IsActive,
		MaxConcurrent:      rule.MaxConcurrent,
		BufferTimeMinutes:  rule.BufferTimeMinutes,
		GracePeriodMinutes: rule.GracePeriodMinutes,
		CreatedAt:          rule.CreatedAt,
		UpdatedAt:          rule.UpdatedAt,
	}

	if rule.StartDate != nil {
		startDate := rule.StartDate.Format(domain.DateFormat)
		resp.StartDate = &startDate
	}
	if rule.EndDate != nil {
		endDate := rule.EndDate.Format(domain.DateFormat)
		resp.EndDate = &endDate
	}

	return resp
}

// FromDomainRuleList конвертирует список domain моделей в DTO
func FromDomainRuleList(domainRules []domain.AvailabilityRule) *RuleListResponse {
	resp := &RuleListResponse{
		Rules: make([]RuleResponse, len(domainRules)),
	}

	for i := range domainRules {
		if ruleResp := FromDomainRule(&domainRules[i]); ruleResp != nil {
			resp.Rules[i] = *ruleResp
		}
	}

	return resp
}
