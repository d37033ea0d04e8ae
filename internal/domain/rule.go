package domain

import (
	"time"

	"github.com/m04kA/DMS-AppointmentService/pkg/types"
)

// AvailabilityRule represents one configured operating window of a facility.
// A rule governs a single day of week; optional StartDate/EndDate narrow it to
// an effective date range (nil = always effective). Times are facility-local
// clock values, timezone conversion is the caller's concern.
type AvailabilityRule struct {
	ID                 int64
	FacilityID         int64
	AppointmentTypeID  int64
	DayOfWeek          int // 0 = Sunday ... 6 = Saturday
	StartDate          *time.Time
	EndDate            *time.Time
	StartTime          types.TimeString
	EndTime            types.TimeString
	IsActive           bool
	MaxConcurrent      int // сколько одновременных записей выдерживает окно
	BufferTimeMinutes  int // минуты перед закрытием, когда новые записи не начинаются (0 = без буфера)
	GracePeriodMinutes int // допуск на опоздание к началу окна; информационное поле, на расчёт не влияет

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AppliesOn returns true if the rule is active, governs the date's day of week
// and the date falls inside the optional effective range (inclusive).
func (r *AvailabilityRule) AppliesOn(date time.Time) bool {
	if !r.IsActive {
		return false
	}
	if int(date.Weekday()) != r.DayOfWeek {
		return false
	}
	day := truncateToDay(date)
	if r.StartDate != nil && day.Before(truncateToDay(*r.StartDate)) {
		return false
	}
	if r.EndDate != nil && day.After(truncateToDay(*r.EndDate)) {
		return false
	}
	return true
}

// HasBuffer returns true if the rule reserves time before closing
func (r *AvailabilityRule) HasBuffer() bool {
	return r.BufferTimeMinutes > 0
}

// truncateToDay обнуляет время, чтобы сравнивать только даты
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
