package get_availability

// Request модель запроса доступности дока на день
type Request struct {
	UserID            int64  // ID пользователя (для логирования, не влияет на результат)
	FacilityID        int64  // ID фасилити
	AppointmentTypeID int64  // ID типа записи
	Date              string // Дата в формате "2026-03-02"
	Timezone          string // Таймзона клиента (опционально, по умолчанию таймзона фасилити)
	IntervalMinutes   int    // Шаг сетки слотов (0 = дефолт)
	DurationMinutes   int    // Длительность записи (0 = дефолт типа записи)
}

// Response модель ответа с суточной сеткой слотов
type Response struct {
	Date              string `json:"date"`
	FacilityID        int64  `json:"facilityId"`
	AppointmentTypeID int64  `json:"appointmentTypeId"`
	Timezone          string `json:"timezone"`
	IntervalMinutes   int    `json:"intervalMinutes"`
	DurationMinutes   int    `json:"durationMinutes"`
	Slots             []Slot `json:"slots"`
}

// Slot модель одного слота суточной сетки
type Slot struct {
	Time         string `json:"time"` // "10:00"
	Available    bool   `json:"available"`
	Remaining    int    `json:"remaining"`
	Reason       string `json:"reason,omitempty"`
	IsBufferTime bool   `json:"isBufferTime,omitempty"`
}
