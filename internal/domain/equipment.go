package domain

import "time"

// QR status strings embedded in rich equipment tokens.
const (
	EquipmentAvailable = "AVAILABLE"
	EquipmentBorrowed  = "BORROWED"
)

type Equipment struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name" validate:"required"`
	Category          string    `json:"category,omitempty"`
	Description       string    `json:"description,omitempty"`
	PricePerHour      float64   `json:"price_per_hour" validate:"gte=0"`
	PricePerDay       float64   `json:"price_per_day" validate:"gte=0"`
	Available         bool      `json:"available"`
	OperatorID        int64     `json:"operator_id"`
	OperatorName      string    `json:"operator_name,omitempty"`
	Location          string    `json:"location,omitempty"`
	Image             string    `json:"image,omitempty"`
	Rating            float64   `json:"rating"`
	TotalBookings     int       `json:"total_bookings"`
	MaintenanceStatus string    `json:"maintenance_status,omitempty"`
	QRCode            string    `json:"qr_code,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// QRStatus maps the availability flag onto the status string carried in
// rich tokens.
func (e *Equipment) QRStatus() string {
	if e.Available {
		return EquipmentAvailable
	}
	return EquipmentBorrowed
}

// UnitPrice selects the price matching the duration type. Missing prices
// yield zero, which zeroes the booking amount downstream.
func (e *Equipment) UnitPrice(dt DurationType) float64 {
	if dt == DurationHours {
		return e.PricePerHour
	}
	return e.PricePerDay
}
