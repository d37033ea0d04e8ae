package facilityservice

// Facility модель фасилити из FacilityService.
// Timezone - IANA-имя часового пояса фасилити; времена правил доступности
// считаются локальными для него, сервис пояс не конвертирует.
type Facility struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Address        string  `json:"address"`
	Timezone       string  `json:"timezone"`
	DockCount      int     `json:"dock_count"`
	ManagerUserIDs []int64 `json:"manager_user_ids"`
	IsActive       bool    `json:"is_active"`
}

// AppointmentType модель типа записи (live load, drop, pickup и т.п.)
type AppointmentType struct {
	ID                     int64  `json:"id"`
	FacilityID             int64  `json:"facility_id"`
	Name                   string `json:"name"`
	DefaultDurationMinutes int    `json:"default_duration_minutes"`
	IsActive               bool   `json:"is_active"`
}

// ErrorResponse модель ошибки от FacilityService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
