package carrierservice

import "errors"

var (
	// ErrCarrierNotFound перевозчик не найден
	ErrCarrierNotFound = errors.New("carrierservice: carrier not found")
	// ErrTruckNotFound активный тягач не найден
	ErrTruckNotFound = errors.New("carrierservice: active truck not found")
	// ErrInternal внутренняя ошибка CarrierService
	ErrInternal = errors.New("carrierservice: internal error")
	// ErrInvalidResponse некорректный ответ от CarrierService
	ErrInvalidResponse = errors.New("carrierservice: invalid response")
	// ErrServiceDegraded сервис недоступен, работаем в режиме деградации
	ErrServiceDegraded = errors.New("carrierservice: service degraded")
)
