package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DMS-AppointmentService/internal/domain"
	"github.com/m04kA/DMS-AppointmentService/pkg/ptr"
	"github.com/m04kA/DMS-AppointmentService/pkg/types"
)

// 2026-03-02 - понедельник (dayOfWeek = 1)
const (
	mondayDate = "2026-03-02"
	sundayDate = "2026-03-01"
)

func weekdayRule(dayOfWeek int, start, end string, maxConcurrent int) domain.AvailabilityRule {
	return domain.AvailabilityRule{
		ID:                1,
		FacilityID:        10,
		AppointmentTypeID: 20,
		DayOfWeek:         dayOfWeek,
		StartTime:         types.TimeString(start),
		EndTime:           types.TimeString(end),
		IsActive:          true,
		MaxConcurrent:     maxConcurrent,
	}
}

func TestCheckTime_AdmitsInsideWindow(t *testing.T) {
	rules := []domain.AvailabilityRule{weekdayRule(1, "09:00", "17:00", 2)}

	tests := []struct {
		name  string
		clock string
		valid bool
	}{
		{name: "at open", clock: "09:00", valid: true},
		{name: "mid day", clock: "12:30", valid: true},
		{name: "last fitting start", clock: "16:00", valid: true},
		{name: "before open", clock: "08:30", valid: false},
		{name: "too close to close", clock: "16:30", valid: false},
		{name: "at close", clock: "17:00", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CheckTime(mondayDate, tt.clock, rules, 60)
			require.NoError(t, err)
			assert.Equal(t, tt.valid, result.Valid)
			if !tt.valid {
				assert.Contains(t, result.Message, "outside of available hours")
			}
		})
	}
}

func TestCheckTime_EmptyRulesFailsClosed(t *testing.T) {
	result, err := CheckTime(mondayDate, "10:00", nil, 60)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Message, "No availability rules found")
}

func TestCheckTime_MalformedInput(t *testing.T) {
	rules := []domain.AvailabilityRule{weekdayRule(1, "09:00", "17:00", 1)}

	tests := []struct {
		name    string
		date    string
		clock   string
		message string
	}{
		{name: "garbage time", date: mondayDate, clock: "invalid-time", message: "Invalid time format"},
		{name: "unpadded time", date: mondayDate, clock: "9:00", message: "Invalid time format"},
		{name: "out of range time", date: mondayDate, clock: "25:00", message: "Invalid time format"},
		{name: "garbage date", date: "not-a-date", clock: "10:00", message: "Invalid date format"},
		{name: "unpadded date", date: "2026-3-2", clock: "10:00", message: "Invalid date format"},
		{name: "swapped date", date: "02-03-2026", clock: "10:00", message: "Invalid date format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CheckTime(tt.date, tt.clock, rules, 60)
			require.NoError(t, err)
			assert.False(t, result.Valid)
			assert.Contains(t, result.Message, tt.message)
		})
	}
}

func TestCheckTime_FiltersRules(t *testing.T) {
	inactive := weekdayRule(1, "09:00", "17:00", 1)
	inactive.IsActive = false

	wrongDay := weekdayRule(3, "09:00", "17:00", 1)

	expired := weekdayRule(1, "09:00", "17:00", 1)
	expired.StartDate = ptr.Ptr(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	expired.EndDate = ptr.Ptr(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		name  string
		rules []domain.AvailabilityRule
	}{
		{name: "inactive rule ignored", rules: []domain.AvailabilityRule{inactive}},
		{name: "wrong day of week", rules: []domain.AvailabilityRule{wrongDay}},
		{name: "outside effective range", rules: []domain.AvailabilityRule{expired}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CheckTime(mondayDate, "10:00", tt.rules, 60)
			require.NoError(t, err)
			assert.False(t, result.Valid)
			assert.Contains(t, result.Message, "No availability rules found")
		})
	}
}

func TestCheckTime_EffectiveRangeIsInclusive(t *testing.T) {
	rule := weekdayRule(1, "09:00", "17:00", 1)
	rule.StartDate = ptr.Ptr(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
	rule.EndDate = ptr.Ptr(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))

	result, err := CheckTime(mondayDate, "10:00", []domain.AvailabilityRule{rule}, 60)
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestCheckTime_BufferShortensWindow(t *testing.T) {
	rule := weekdayRule(1, "09:00", "17:00", 1)
	rule.BufferTimeMinutes = 30

	// 16:00 + 60 минут = 17:00 > 16:30 - буфер отрезает последний час
	result, err := CheckTime(mondayDate, "16:00", []domain.AvailabilityRule{rule}, 60)
	require.NoError(t, err)
	assert.False(t, result.Valid)

	// 15:30 + 60 = 16:30 - ровно на границе эффективного окна
	result, err = CheckTime(mondayDate, "15:30", []domain.AvailabilityRule{rule}, 60)
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestCheckTime_GracePeriodDoesNotWidenStart(t *testing.T) {
	rule := weekdayRule(1, "09:00", "17:00", 1)
	rule.GracePeriodMinutes = 15

	result, err := CheckTime(mondayDate, "08:45", []domain.AvailabilityRule{rule}, 60)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Message, "outside of available hours")
}

func TestCheckTime_AnyRuleAdmits(t *testing.T) {
	morning := weekdayRule(1, "06:00", "10:00", 1)
	evening := weekdayRule(1, "17:00", "21:00", 3)

	result, err := CheckTime(mondayDate, "18:00", []domain.AvailabilityRule{morning, evening}, 60)
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestCheckTime_CorruptRulePropagatesError(t *testing.T) {
	rule := weekdayRule(1, "09:00", "17:00", 1)
	rule.StartTime = "9am"

	_, err := CheckTime(mondayDate, "10:00", []domain.AvailabilityRule{rule}, 60)
	require.Error(t, err)
}

func TestCheckTime_InvalidDuration(t *testing.T) {
	rules := []domain.AvailabilityRule{weekdayRule(1, "09:00", "17:00", 1)}

	_, err := CheckTime(mondayDate, "10:00", rules, 0)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestCheckTime_Idempotent(t *testing.T) {
	rules := []domain.AvailabilityRule{weekdayRule(1, "09:00", "17:00", 2)}

	first, err := CheckTime(mondayDate, "10:00", rules, 60)
	require.NoError(t, err)
	second, err := CheckTime(mondayDate, "10:00", rules, 60)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCapacity_MinAcrossAdmittingRules(t *testing.T) {
	wide := weekdayRule(1, "08:00", "20:00", 5)
	narrow := weekdayRule(1, "09:00", "17:00", 2)

	capacity, err := Capacity(mondayDate, "10:00", []domain.AvailabilityRule{wide, narrow}, 60)
	require.NoError(t, err)
	assert.Equal(t, 2, capacity)

	// Вне узкого окна действует только широкое правило
	capacity, err = Capacity(mondayDate, "18:00", []domain.AvailabilityRule{wide, narrow}, 60)
	require.NoError(t, err)
	assert.Equal(t, 5, capacity)

	// Вне обоих окон вместимость нулевая
	capacity, err = Capacity(mondayDate, "21:00", []domain.AvailabilityRule{wide, narrow}, 60)
	require.NoError(t, err)
	assert.Equal(t, 0, capacity)
}
