package create_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/DMS-AppointmentService/internal/domain"
	"github.com/m04kA/DMS-AppointmentService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.FacilityID <= 0 {
		return fmt.Errorf("%w: facilityID must be positive", ErrInvalidInput)
	}

	if req.AppointmentTypeID <= 0 {
		return fmt.Errorf("%w: appointmentTypeID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.DurationMinutes != 0 &&
		(req.DurationMinutes < domain.MinDurationMinutes || req.DurationMinutes > domain.MaxDurationMinutes) {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateAppointmentDate проверяет, что дата записи не в прошлом
func validateAppointmentDate(appointmentDate time.Time, now time.Time) error {
	if isDateInPast(appointmentDate, now) {
		return ErrInvalidDate
	}
	return nil
}

// validateAppointmentTime проверяет, что запись на сегодня не указывает на прошедшее время
func validateAppointmentTime(appointmentDate time.Time, startTime types.TimeString, now time.Time) error {
	if !isSameDay(appointmentDate, now) {
		return nil
	}

	currentTime := types.NewTimeString(now)
	if startTime.IsBefore(currentTime) {
		return ErrTooLateToBook
	}

	return nil
}

// countOverlappingAppointments подсчитывает количество активных записей на указанный слот
func countOverlappingAppointments(
	startTime types.TimeString,
	durationMinutes int,
	appointments []*domain.Appointment,
) (int, error) {
	slotEnd, err := startTime.AddMinutes(durationMinutes)
	if err != nil {
		return 0, err
	}

	count := 0

	for _, appointment := range appointments {
		// Пропускаем неактивные записи
		if !appointment.IsActive() {
			continue
		}

		appointmentStart := appointment.StartTime
		appointmentEnd, err := appointment.StartTime.AddMinutes(appointment.DurationMinutes)
		if err != nil {
			// Если не можем вычислить конец записи, пропускаем
			continue
		}

		// Проверяем пересечение (строгие неравенства, граничащие интервалы не считаются)
		if appointmentStart.IsBefore(slotEnd) && appointmentEnd.IsAfter(startTime) {
			count++
		}
	}

	return count, nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
