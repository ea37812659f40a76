package qr

// EquipmentValidation is the structured result of validating a scanned
// equipment token. Failures are data, never errors.
type EquipmentValidation struct {
	Valid       bool   `json:"valid"`
	EquipmentID int64  `json:"equipment_id,omitempty"`
	Name        string `json:"name,omitempty"`
	Nonce       string `json:"nonce,omitempty"`
	Error       string `json:"error,omitempty"`
}

// BookingValidation is the structured result of validating a scanned
// booking action token.
type BookingValidation struct {
	Valid       bool   `json:"valid"`
	BookingID   int64  `json:"booking_id,omitempty"`
	EquipmentID int64  `json:"equipment_id,omitempty"`
	Action      string `json:"action,omitempty"`
	Timestamp   string `json:"timestamp,omitempty"`
	Error       string `json:"error,omitempty"`
}

type GeneratedQR struct {
	QRCodeImage   string `json:"qr_code_image"`
	QRData        string `json:"qr_data,omitempty"`
	EquipmentID   int64  `json:"equipment_id"`
	EquipmentName string `json:"equipment_name,omitempty"`
	BookingID     int64  `json:"booking_id,omitempty"`
	Action        string `json:"action,omitempty"`
}

type ValidateRequest struct {
	QRData string `json:"qr_data" binding:"required"`
}

type CheckRequest struct {
	BookingID int64  `json:"booking_id" binding:"required"`
	QRData    string `json:"qr_data" binding:"required"`
}
