package domain

import "github.com/m04kA/DMS-AppointmentService/pkg/types"

// TimeSlot represents one renderable time-of-day entry of a facility's day.
// The slot grid always covers the full day at a fixed interval; unavailable
// slots carry a human-readable Reason.
type TimeSlot struct {
	Time         types.TimeString
	Available    bool
	Remaining    int    // остаток вместимости с учётом всех покрывающих правил
	Reason       string // причина недоступности; пустая строка для доступных слотов
	IsBufferTime bool   // слот попадает в буферную зону перед закрытием окна
}

// IsFull returns true if the slot has no remaining capacity
func (s *TimeSlot) IsFull() bool {
	return s.Remaining <= 0
}

// Blocked returns true if the slot is not bookable
func (s *TimeSlot) Blocked() bool {
	return !s.Available
}
