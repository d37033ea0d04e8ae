package create_appointment

import (
	"time"

	"github.com/m04kA/DMS-AppointmentService/pkg/types"
)

// Request модель запроса на создание записи на док
type Request struct {
	UserID            int64            // ID пользователя-перевозчика
	FacilityID        int64            // ID фасилити
	AppointmentTypeID int64            // ID типа записи
	Date              time.Time        // Дата записи (без времени)
	StartTime         types.TimeString // Время начала (например, "10:00")
	DurationMinutes   int              // Длительность в минутах (0 = дефолт типа записи)
	BOLNumber         *string          // Номер BOL (опционально)
	Notes             *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID                int64            // ID созданной записи
	ReferenceCode     string           // Короткий код для водителя на воротах
	CarrierUserID     int64            // ID пользователя-перевозчика
	FacilityID        int64            // ID фасилити
	AppointmentTypeID int64            // ID типа записи
	AppointmentDate   time.Time        // Дата записи
	StartTime         types.TimeString // Время начала
	DurationMinutes   int              // Длительность в минутах
	Status            string           // Статус записи

	// Денормализованные данные
	AppointmentTypeName string  // Название типа записи
	CarrierName         string  // Название перевозчика
	TruckLicensePlate   *string // Госномер тягача
	TrailerNumber       *string // Номер прицепа
	DriverName          *string // Имя водителя
	DriverPhone         *string // Телефон водителя
	BOLNumber           *string // Номер BOL
	Notes               *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
