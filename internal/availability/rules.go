package availability

import (
	"fmt"
	"time"

	"github.com/m04kA/DMS-AppointmentService/internal/domain"
)

// window окно правила в минутах от полуночи.
// effectiveEnd = nominalEnd - buffer: последняя минута, до которой запись должна закончиться.
type window struct {
	start        int
	nominalEnd   int
	effectiveEnd int
	capacity     int
}

// buildWindow переводит правило в минутную арифметику.
// Ошибка означает испорченные данные правила (нечитаемое время).
func buildWindow(rule *domain.AvailabilityRule) (window, error) {
	start, err := rule.StartTime.Minutes()
	if err != nil {
		return window{}, fmt.Errorf("rule id=%d: bad start time: %w", rule.ID, err)
	}
	end, err := rule.EndTime.Minutes()
	if err != nil {
		return window{}, fmt.Errorf("rule id=%d: bad end time: %w", rule.ID, err)
	}

	return window{
		start:        start,
		nominalEnd:   end,
		effectiveEnd: end - rule.BufferTimeMinutes,
		capacity:     rule.MaxConcurrent,
	}, nil
}

// admits единый предикат "правило принимает запись в это время" для Rule Evaluator
// и Slot Generator: начало не раньше открытия, конец не позже закрытия минус буфер.
// Минутная арифметика без перехода через полночь.
func (w window) admits(startMinute, durationMinutes int) bool {
	return startMinute >= w.start && startMinute+durationMinutes <= w.effectiveEnd
}

// inBufferZone проверяет, что время попадает в буферную зону окна:
// внутри номинального окна, но ближе к закрытию, чем разрешает буфер.
func (w window) inBufferZone(startMinute int) bool {
	return w.effectiveEnd < w.nominalEnd &&
		startMinute >= w.effectiveEnd && startMinute < w.nominalEnd
}

// rulesForDate отбирает правила, действующие на указанную дату:
// активные, с совпадающим днём недели и датой внутри эффективного диапазона.
// Grace period правил здесь сознательно не учитывается (информационное поле).
func rulesForDate(rules []domain.AvailabilityRule, date time.Time) []domain.AvailabilityRule {
	matched := make([]domain.AvailabilityRule, 0, len(rules))
	for _, rule := range rules {
		if rule.AppliesOn(date) {
			matched = append(matched, rule)
		}
	}
	return matched
}

// parseDate валидирует и разбирает дату формата YYYY-MM-DD
func parseDate(date string) (time.Time, error) {
	if len(date) != len(domain.DateFormat) {
		return time.Time{}, ErrInvalidDateFormat
	}
	parsed, err := time.Parse(domain.DateFormat, date)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return parsed, nil
}
