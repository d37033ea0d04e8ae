package availability

import (
	"time"

	"github.com/m04kA/DMS-AppointmentService/internal/domain"
	"github.com/m04kA/DMS-AppointmentService/pkg/types"
)

// minutesPerDay количество минут в сутках
const minutesPerDay = 24 * 60

// GenerateDaySlots перечисляет все слоты дня с шагом intervalMinutes и
// помечает каждый доступностью, остатком вместимости и причиной блокировки.
//
// Длина результата фиксирована и зависит только от интервала (60 -> 24 слота,
// 30 -> 48), независимо от содержимого правил. timezone - информационный
// параметр: времена правил считаются локальными для фасилити, конвертация
// не выполняется.
//
// Контракты, сознательно отличающиеся от CheckTime:
//   - некорректная дата - это ошибка (ErrInvalidDateFormat), а не результат;
//   - пустой список правил - полностью открытый день (Remaining = 1), а не отказ.
//
// После успешной валидации даты функция не возвращает ошибок: испорченные
// данные правил превращают день в полную сетку заблокированных слотов с
// причиной ReasonGenerationError, чтобы вызыватель всегда получил
// отрисовываемый день.
func GenerateDaySlots(
	date string,
	rules []domain.AvailabilityRule,
	durationMinutes int,
	timezone string,
	intervalMinutes int,
) ([]domain.TimeSlot, error) {
	if intervalMinutes <= 0 {
		intervalMinutes = domain.DefaultSlotIntervalMinutes
	}
	if durationMinutes <= 0 {
		durationMinutes = domain.DefaultDurationMinutes
	}

	day, err := parseDate(date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	grid := buildGrid(intervalMinutes)

	// Правила не настроены - ограничений нет
	if len(rules) == 0 {
		return openDay(grid), nil
	}

	slots, err := classifySlots(grid, rules, day, durationMinutes)
	if err != nil {
		return failsafeDay(grid), nil
	}
	return slots, nil
}

// gridEntry один узел суточной сетки
type gridEntry struct {
	minute int
	clock  types.TimeString
}

// buildGrid строит суточную сетку 00:00..24:00-interval
func buildGrid(intervalMinutes int) []gridEntry {
	grid := make([]gridEntry, 0, minutesPerDay/intervalMinutes+1)
	for minute := 0; minute < minutesPerDay; minute += intervalMinutes {
		clock, _ := types.NewTimeStringFromMinutes(minute)
		grid = append(grid, gridEntry{minute: minute, clock: clock})
	}
	return grid
}

// openDay помечает все слоты доступными (режим "правила не настроены")
func openDay(grid []gridEntry) []domain.TimeSlot {
	slots := make([]domain.TimeSlot, len(grid))
	for i, entry := range grid {
		slots[i] = domain.TimeSlot{
			Time:      entry.clock,
			Available: true,
			Remaining: domain.DefaultOpenRemaining,
		}
	}
	return slots
}

// failsafeDay возвращает полную сетку заблокированных слотов.
// Используется, когда данные правил испорчены: день остаётся отрисовываемым.
func failsafeDay(grid []gridEntry) []domain.TimeSlot {
	slots := make([]domain.TimeSlot, len(grid))
	for i, entry := range grid {
		slots[i] = domain.TimeSlot{
			Time:      entry.clock,
			Available: false,
			Reason:    ReasonGenerationError,
		}
	}
	return slots
}

// classifySlots размечает сетку по правилам дня
func classifySlots(
	grid []gridEntry,
	rules []domain.AvailabilityRule,
	day time.Time,
	durationMinutes int,
) ([]domain.TimeSlot, error) {
	dayRules := rulesForDate(rules, day)

	slots := make([]domain.TimeSlot, len(grid))

	// Правила есть, но ни одно не действует в этот день
	if len(dayRules) == 0 {
		for i, entry := range grid {
			slots[i] = domain.TimeSlot{
				Time:      entry.clock,
				Available: false,
				Reason:    MsgNoRulesForDay,
			}
		}
		return slots, nil
	}

	// Окна считаются один раз на день, а не на каждый слот
	windows := make([]window, len(dayRules))
	for i := range dayRules {
		w, err := buildWindow(&dayRules[i])
		if err != nil {
			return nil, err
		}
		windows[i] = w
	}

	for i, entry := range grid {
		slots[i] = classifySlot(entry, windows, durationMinutes)
	}
	return slots, nil
}

// classifySlot определяет доступность одного слота.
// Remaining - минимальная вместимость среди принимающих окон: при пересечении
// окон остаток не суммируется. Буферная зона одного окна не блокирует слот,
// если его принимает другое окно без буфера на этом участке.
func classifySlot(entry gridEntry, windows []window, durationMinutes int) domain.TimeSlot {
	slot := domain.TimeSlot{Time: entry.clock}

	capacity := 0
	for _, w := range windows {
		if w.inBufferZone(entry.minute) {
			slot.IsBufferTime = true
		}
		if !w.admits(entry.minute, durationMinutes) {
			continue
		}
		if capacity == 0 || w.capacity < capacity {
			capacity = w.capacity
		}
	}

	if capacity > 0 {
		slot.Available = true
		slot.Remaining = capacity
		return slot
	}

	slot.Available = false
	slot.Reason = MsgOutsideAvailableHours
	return slot
}
