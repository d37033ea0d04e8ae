package availability

import "errors"

var (
	// ErrInvalidDateFormat возвращается генератором слотов при некорректной дате запроса
	ErrInvalidDateFormat = errors.New("availability: invalid date format, expected YYYY-MM-DD")

	// ErrInvalidDuration возвращается при неположительной длительности записи
	ErrInvalidDuration = errors.New("availability: duration must be positive")
)

// Сообщения результата проверки доступности.
// Тексты стабильны: внешние вызыватели сопоставляют их по подстроке.
const (
	// MsgInvalidDateFormat некорректный формат даты
	MsgInvalidDateFormat = "Invalid date format"

	// MsgInvalidTimeFormat некорректный формат времени
	MsgInvalidTimeFormat = "Invalid time format"

	// MsgNoRulesForDay на этот день недели не настроено ни одного правила
	MsgNoRulesForDay = "No availability rules found for this day"

	// MsgOutsideAvailableHours время не попадает ни в одно окно доступности
	MsgOutsideAvailableHours = "Requested time is outside of available hours"

	// ReasonGenerationError причина в слотах деградированного дня; подстрока "Error" обязательна
	ReasonGenerationError = "Error generating time slots"
)
