package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DMS-AppointmentService/internal/domain"
	"github.com/m04kA/DMS-AppointmentService/pkg/types"
)

func slotByTime(t *testing.T, slots []domain.TimeSlot, clock string) domain.TimeSlot {
	t.Helper()
	for _, slot := range slots {
		if slot.Time == types.TimeString(clock) {
			return slot
		}
	}
	t.Fatalf("slot %s not found", clock)
	return domain.TimeSlot{}
}

func TestGenerateDaySlots_OpenDayFallback(t *testing.T) {
	tests := []struct {
		name     string
		interval int
		want     int
	}{
		{name: "hourly", interval: 60, want: 24},
		{name: "half-hourly", interval: 30, want: 48},
		{name: "quarter-hourly", interval: 15, want: 96},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots, err := GenerateDaySlots(mondayDate, nil, 60, "America/Chicago", tt.interval)
			require.NoError(t, err)
			require.Len(t, slots, tt.want)

			for _, slot := range slots {
				assert.True(t, slot.Available)
				assert.Equal(t, 1, slot.Remaining)
				assert.Empty(t, slot.Reason)
			}

			assert.Equal(t, types.TimeString("00:00"), slots[0].Time)
		})
	}
}

func TestGenerateDaySlots_FixedLengthRegardlessOfRules(t *testing.T) {
	rules := []domain.AvailabilityRule{weekdayRule(1, "09:00", "17:00", 2)}

	slots, err := GenerateDaySlots(mondayDate, rules, 60, "", 60)
	require.NoError(t, err)
	assert.Len(t, slots, 24)

	slots, err = GenerateDaySlots(mondayDate, rules, 60, "", 30)
	require.NoError(t, err)
	assert.Len(t, slots, 48)
}

func TestGenerateDaySlots_SingleWindow(t *testing.T) {
	rules := []domain.AvailabilityRule{weekdayRule(1, "09:00", "17:00", 2)}

	slots, err := GenerateDaySlots(mondayDate, rules, 60, "", 30)
	require.NoError(t, err)
	require.Len(t, slots, 48)

	open := slotByTime(t, slots, "09:00")
	assert.True(t, open.Available)
	assert.Equal(t, 2, open.Remaining)

	beforeOpen := slotByTime(t, slots, "08:30")
	assert.False(t, beforeOpen.Available)
	assert.Contains(t, beforeOpen.Reason, "outside of available hours")

	atClose := slotByTime(t, slots, "17:00")
	assert.False(t, atClose.Available)

	lastFitting := slotByTime(t, slots, "16:00")
	assert.True(t, lastFitting.Available)
}

func TestGenerateDaySlots_OverlappingWindows(t *testing.T) {
	business := weekdayRule(1, "09:00", "17:00", 2)
	extended := weekdayRule(1, "17:00", "20:00", 4)
	rules := []domain.AvailabilityRule{business, extended}

	slots, err := GenerateDaySlots(mondayDate, rules, 60, "", 60)
	require.NoError(t, err)

	assert.True(t, slotByTime(t, slots, "09:00").Available)
	assert.True(t, slotByTime(t, slots, "17:00").Available)
	assert.True(t, slotByTime(t, slots, "19:00").Available)
	assert.False(t, slotByTime(t, slots, "20:00").Available)

	// Остаток берётся из принимающего правила, не суммируется
	assert.Equal(t, 2, slotByTime(t, slots, "09:00").Remaining)
	assert.Equal(t, 4, slotByTime(t, slots, "17:00").Remaining)
}

func TestGenerateDaySlots_BufferZone(t *testing.T) {
	rule := weekdayRule(1, "09:00", "17:00", 2)
	rule.BufferTimeMinutes = 60

	slots, err := GenerateDaySlots(mondayDate, []domain.AvailabilityRule{rule}, 30, "", 30)
	require.NoError(t, err)

	// Эффективное окно заканчивается в 16:00: слоты 16:00 и 16:30 - буферная зона
	inBuffer := slotByTime(t, slots, "16:00")
	assert.False(t, inBuffer.Available)
	assert.True(t, inBuffer.IsBufferTime)

	inBuffer = slotByTime(t, slots, "16:30")
	assert.False(t, inBuffer.Available)
	assert.True(t, inBuffer.IsBufferTime)

	beforeBuffer := slotByTime(t, slots, "15:30")
	assert.True(t, beforeBuffer.Available)
	assert.False(t, beforeBuffer.IsBufferTime)

	outsideWindow := slotByTime(t, slots, "17:30")
	assert.False(t, outsideWindow.Available)
	assert.False(t, outsideWindow.IsBufferTime)
}

func TestGenerateDaySlots_BufferOverriddenByOtherRule(t *testing.T) {
	buffered := weekdayRule(1, "09:00", "17:00", 2)
	buffered.BufferTimeMinutes = 60

	evening := weekdayRule(1, "16:00", "20:00", 3)

	slots, err := GenerateDaySlots(mondayDate, []domain.AvailabilityRule{buffered, evening}, 30, "", 30)
	require.NoError(t, err)

	// Слот лежит в буфере первого правила, но второе правило его принимает
	slot := slotByTime(t, slots, "16:00")
	assert.True(t, slot.Available)
	assert.True(t, slot.IsBufferTime)
	assert.Equal(t, 3, slot.Remaining)
}

func TestGenerateDaySlots_NoRulesForDay(t *testing.T) {
	// Правило на среду, запрошен понедельник
	rules := []domain.AvailabilityRule{weekdayRule(3, "09:00", "17:00", 2)}

	slots, err := GenerateDaySlots(mondayDate, rules, 60, "", 60)
	require.NoError(t, err)
	require.Len(t, slots, 24)

	for _, slot := range slots {
		assert.False(t, slot.Available)
		assert.Contains(t, slot.Reason, "No availability rules found")
	}
}

func TestGenerateDaySlots_InvalidDate(t *testing.T) {
	_, err := GenerateDaySlots("03/02/2026", nil, 60, "", 60)
	assert.ErrorIs(t, err, ErrInvalidDateFormat)

	_, err = GenerateDaySlots("2026-3-2", nil, 60, "", 60)
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}

func TestGenerateDaySlots_CorruptRuleFailsafe(t *testing.T) {
	corrupt := weekdayRule(1, "09:00", "17:00", 2)
	corrupt.StartTime = "9am"

	slots, err := GenerateDaySlots(mondayDate, []domain.AvailabilityRule{corrupt}, 60, "", 60)
	require.NoError(t, err, "corrupt rule data must not surface as an error")
	require.Len(t, slots, 24, "degraded day keeps the full grid")

	for _, slot := range slots {
		assert.False(t, slot.Available)
		assert.Contains(t, slot.Reason, "Error")
	}
}

func TestGenerateDaySlots_DefaultInterval(t *testing.T) {
	slots, err := GenerateDaySlots(mondayDate, nil, 60, "", 0)
	require.NoError(t, err)
	assert.Len(t, slots, 24)
}

func TestGenerateDaySlots_Idempotent(t *testing.T) {
	rules := []domain.AvailabilityRule{weekdayRule(1, "09:00", "17:00", 2)}

	first, err := GenerateDaySlots(mondayDate, rules, 60, "", 30)
	require.NoError(t, err)
	second, err := GenerateDaySlots(mondayDate, rules, 60, "", 30)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
