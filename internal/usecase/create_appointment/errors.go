package create_appointment

import "errors"

var (
	// ErrFacilityNotFound возвращается, когда фасилити не найдено
	ErrFacilityNotFound = errors.New("create_appointment: facility not found")

	// ErrFacilityInactive возвращается, когда фасилити деактивировано
	ErrFacilityInactive = errors.New("create_appointment: facility is inactive")

	// ErrAppointmentTypeNotFound возвращается, когда тип записи не найден
	ErrAppointmentTypeNotFound = errors.New("create_appointment: appointment type not found")

	// ErrCarrierNotFound возвращается, когда перевозчик не найден
	ErrCarrierNotFound = errors.New("create_appointment: carrier not found")

	// ErrInvalidDate возвращается при некорректной дате записи
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrTimeNotAvailable возвращается, когда время не проходит проверку правил доступности
	ErrTimeNotAvailable = errors.New("create_appointment: time is not available")

	// ErrSlotNotAvailable возвращается, когда вместимость слота уже выбрана записями
	ErrSlotNotAvailable = errors.New("create_appointment: slot is not available")

	// ErrTooLateToBook возвращается при попытке записаться на уже прошедшее время
	ErrTooLateToBook = errors.New("create_appointment: too late to book this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
