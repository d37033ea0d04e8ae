package get_availability

import (
	"github.com/m04kA/DMS-AppointmentService/internal/domain"
	"github.com/m04kA/DMS-AppointmentService/pkg/types"
)

// msgSlotFullyBooked причина блокировки слота, чья вместимость уже выбрана записями
const msgSlotFullyBooked = "All capacity at this time is booked"

// applyOccupancy вычитает активные записи из остатка вместимости каждого слота.
// Движок доступности считает Remaining только по правилам; живая занятость -
// забота вызывателя. Слот с исчерпанным остатком перестаёт быть доступным.
func applyOccupancy(slots []domain.TimeSlot, appointments []*domain.Appointment, durationMinutes int) []domain.TimeSlot {
	for i := range slots {
		if !slots[i].Available {
			continue
		}

		overlapping := countOverlappingAppointments(slots[i].Time, durationMinutes, appointments)
		remaining := slots[i].Remaining - overlapping
		if remaining > 0 {
			slots[i].Remaining = remaining
			continue
		}

		slots[i].Remaining = 0
		slots[i].Available = false
		slots[i].Reason = msgSlotFullyBooked
	}

	return slots
}

// countOverlappingAppointments подсчитывает количество записей, пересекающихся с указанным слотом
// Пересечение есть только если интервалы действительно накладываются друг на друга
// Если одна запись заканчивается ровно там, где начинается слот (или наоборот) - это НЕ пересечение
func countOverlappingAppointments(slotStart types.TimeString, durationMinutes int, appointments []*domain.Appointment) int {
	slotEnd, err := slotStart.AddMinutes(durationMinutes)
	if err != nil {
		// Если не можем вычислить конец слота, считаем что пересечений нет
		return 0
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

		// Интервалы пересекаются, только если начало записи СТРОГО раньше конца
		// слота И конец записи СТРОГО позже начала слота. Строгие неравенства,
		// чтобы граничащие интервалы не считались пересечением.
		if appointmentStart.IsBefore(slotEnd) && appointmentEnd.IsAfter(slotStart) {
			count++
		}
	}

	return count
}
