package qrscan

import "equiprent/internal/domain"

type ScanValidateRequest struct {
	QRData string `json:"qr_data" binding:"required"`
}

type BorrowRequest struct {
	EquipmentID  int64  `json:"equipment_id" binding:"required"`
	DurationType string `json:"duration_type"`
	Duration     int    `json:"duration"`
}

type ReturnRequest struct {
	BookingID   int64 `json:"booking_id" binding:"required"`
	EquipmentID int64 `json:"equipment_id" binding:"required"`
}

// ScanResult is the read-only pre-borrow decision for a scanned code.
type ScanResult struct {
	Equipment        *domain.Equipment `json:"equipment"`
	HasActiveBooking bool              `json:"has_active_booking"`
	ActiveBooking    *domain.Booking   `json:"active_booking,omitempty"`
	HasOverdueItems  bool              `json:"has_overdue_items"`
	CanBorrow        bool              `json:"can_borrow"`
	CanReturn        bool              `json:"can_return"`
	UserName         string            `json:"user_name"`
}

type BorrowResult struct {
	Booking   *domain.Booking   `json:"booking"`
	Equipment *domain.Equipment `json:"equipment"`
}

type ReturnResult struct {
	Booking     *domain.Booking   `json:"booking"`
	Equipment   *domain.Equipment `json:"equipment"`
	LateFee     float64           `json:"late_fee"`
	FinalAmount float64           `json:"final_amount"`
}
