package domain

// Default availability values
const (
	DefaultSlotIntervalMinutes = 60
	DefaultDurationMinutes     = 60
	// DefaultOpenRemaining остаток вместимости в режиме "правила не настроены"
	DefaultOpenRemaining = 1
)

// Business validation constants
const (
	MinSlotIntervalMinutes = 5
	MaxSlotIntervalMinutes = 240
	MinDurationMinutes     = 15
	MaxDurationMinutes     = 480 // 8 часов
	MinConcurrent          = 1
	MaxConcurrent          = 100
	MinBufferTimeMinutes   = 0
	MaxBufferTimeMinutes   = 240
	MinGracePeriodMinutes  = 0
	MaxGracePeriodMinutes  = 120
	MinDayOfWeek           = 0 // воскресенье
	MaxDayOfWeek           = 6
	MaxNotesLength         = 500
	MaxReasonLength        = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов записей, не занимающих вместимость дока.
// Используется при подсчёте занятости слотов.
var InactiveStatuses = []AppointmentStatus{
	StatusCancelledByCarrier,
	StatusCancelledByFacility,
	StatusNoShow,
}

// ActiveStatuses список статусов активных записей
var ActiveStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusCheckedIn,
	StatusCompleted,
}
