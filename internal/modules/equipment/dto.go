package equipment

type CreateEquipmentRequest struct {
	Name         string  `json:"name" validate:"required"`
	Category     string  `json:"category"`
	Description  string  `json:"description"`
	PricePerHour float64 `json:"price_per_hour" validate:"gte=0"`
	PricePerDay  float64 `json:"price_per_day" validate:"gte=0"`
	Location     string  `json:"location"`
	Image        string  `json:"image"`
}

type UpdateStatusRequest struct {
	Available         *bool  `json:"available"`
	MaintenanceStatus string `json:"maintenance_status"`
}
