package availability

import (
	"github.com/m04kA/DMS-AppointmentService/internal/domain"
	"github.com/m04kA/DMS-AppointmentService/pkg/types"
)

// CheckResult результат проверки одного кандидата дата+время+длительность.
// Message заполняется только для невалидного результата.
type CheckResult struct {
	Valid   bool
	Message string
}

// CheckTime решает, помещается ли запись длительностью durationMinutes,
// начинающаяся в clock на дату date, в настроенные окна доступности.
//
// Распознаваемые проблемы входа (формат даты/времени, отсутствие правил,
// время вне окон) сообщаются через CheckResult с текстом причины - функция
// при этом не возвращает ошибку. Ошибка возвращается только для неожиданных
// внутренних проблем (например, нечитаемое время внутри правила) и никогда
// не маскируется под валидный результат.
//
// Пустой набор правил на день - отказ ("нет правил - нет записи"). Это
// сознательно расходится с GenerateDaySlots, где отсутствие правил означает
// полностью открытый день: у двух вызывателей разные контракты.
func CheckTime(date, clock string, rules []domain.AvailabilityRule, durationMinutes int) (CheckResult, error) {
	if durationMinutes <= 0 {
		return CheckResult{}, ErrInvalidDuration
	}

	day, err := parseDate(date)
	if err != nil {
		return CheckResult{Valid: false, Message: MsgInvalidDateFormat}, nil
	}

	start := types.TimeString(clock)
	if err := start.Validate(); err != nil {
		return CheckResult{Valid: false, Message: MsgInvalidTimeFormat}, nil
	}

	dayRules := rulesForDate(rules, day)
	if len(dayRules) == 0 {
		return CheckResult{Valid: false, Message: MsgNoRulesForDay}, nil
	}

	startMinute, err := start.Minutes()
	if err != nil {
		// формат уже проверен, сюда попадаем только при внутренней ошибке
		return CheckResult{}, err
	}

	for i := range dayRules {
		w, err := buildWindow(&dayRules[i])
		if err != nil {
			return CheckResult{}, err
		}
		if w.admits(startMinute, durationMinutes) {
			return CheckResult{Valid: true}, nil
		}
	}

	return CheckResult{Valid: false, Message: MsgOutsideAvailableHours}, nil
}

// Capacity возвращает минимальную вместимость среди правил, принимающих запись
// в указанное время, или 0, если ни одно правило её не принимает.
// Используется на пути создания записи для сверки с текущей занятостью.
func Capacity(date, clock string, rules []domain.AvailabilityRule, durationMinutes int) (int, error) {
	if durationMinutes <= 0 {
		return 0, ErrInvalidDuration
	}

	day, err := parseDate(date)
	if err != nil {
		return 0, err
	}

	start := types.TimeString(clock)
	startMinute, err := start.Minutes()
	if err != nil {
		return 0, err
	}

	capacity := 0
	for _, rule := range rulesForDate(rules, day) {
		w, err := buildWindow(&rule)
		if err != nil {
			return 0, err
		}
		if !w.admits(startMinute, durationMinutes) {
			continue
		}
		if capacity == 0 || w.capacity < capacity {
			capacity = w.capacity
		}
	}

	return capacity, nil
}
