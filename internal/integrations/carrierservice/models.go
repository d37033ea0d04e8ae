package carrierservice

// Carrier модель перевозчика из CarrierService
type Carrier struct {
	ID       int64  `json:"id"`
	UserID   int64  `json:"user_id"`
	Name     string `json:"name"`
	MCNumber string `json:"mc_number"`
	Phone    string `json:"phone"`
	IsActive bool   `json:"is_active"`
}

// Truck активный тягач перевозчика с назначенным водителем
type Truck struct {
	ID            int64   `json:"id"`
	CarrierUserID int64   `json:"carrier_user_id"`
	LicensePlate  string  `json:"license_plate"`
	TrailerNumber *string `json:"trailer_number"`
	DriverName    *string `json:"driver_name"`
	DriverPhone   *string `json:"driver_phone"`
	IsActive      bool    `json:"is_active"`
}

// ErrorResponse модель ошибки от CarrierService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
