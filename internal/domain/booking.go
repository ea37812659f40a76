package domain

import "time"

type BookingStatus string

const (
	BookingPending         BookingStatus = "pending"
	BookingConfirmed       BookingStatus = "confirmed"
	BookingActive          BookingStatus = "active"
	BookingCompleted       BookingStatus = "completed"
	BookingOverdue         BookingStatus = "overdue"
	BookingOverdueReturned BookingStatus = "overdue-returned"
	BookingCancelled       BookingStatus = "cancelled"
)

// IsTerminal reports whether the booking can never change status again.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingCompleted || s == BookingOverdueReturned || s == BookingCancelled
}

// IsActive reports whether the booking holds exclusive use of its equipment.
func (s BookingStatus) IsActive() bool {
	return s == BookingConfirmed || s == BookingActive
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

type DurationType string

const (
	DurationHours DurationType = "hours"
	DurationDays  DurationType = "days"
)

type Booking struct {
	ID            int64         `json:"id"`
	EquipmentID   int64         `json:"equipment_id" validate:"required"`
	EquipmentName string        `json:"equipment_name,omitempty"`
	UserID        int64         `json:"user_id" validate:"required"`
	UserName      string        `json:"user_name,omitempty"`
	OperatorID    int64         `json:"operator_id"`
	OperatorName  string        `json:"operator_name,omitempty"`
	StartDate     string        `json:"start_date,omitempty"`
	StartTime     string        `json:"start_time,omitempty"`
	EndDate       string        `json:"end_date,omitempty"`
	EndTime       string        `json:"end_time,omitempty"`
	Duration      int           `json:"duration" validate:"required,gt=0"`
	DurationType  DurationType  `json:"duration_type"`
	TotalAmount   float64       `json:"total_amount" validate:"gte=0"`
	Status        BookingStatus `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	CheckInTime   *time.Time    `json:"check_in_time,omitempty"`
	CheckOutTime  *time.Time    `json:"check_out_time,omitempty"`
	QRCodeScanned bool          `json:"qr_code_scanned"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

const (
	bookingDateLayout = "2006-01-02"
	bookingTimeLayout = "15:04:05"
)

// SetPeriod fills the start/end date and time fields from the checkout
// moment and the booked duration.
func (b *Booking) SetPeriod(start time.Time, durationType DurationType, duration int) {
	var end time.Time
	if durationType == DurationHours {
		end = start.Add(time.Duration(duration) * time.Hour)
	} else {
		end = start.AddDate(0, 0, duration)
	}
	b.StartDate = start.Format(bookingDateLayout)
	b.StartTime = start.Format(bookingTimeLayout)
	b.EndDate = end.Format(bookingDateLayout)
	b.EndTime = end.Format(bookingTimeLayout)
}

// ExpectedReturn combines EndDate and EndTime into a single timestamp.
// Returns false when either field is empty or malformed.
func (b *Booking) ExpectedReturn() (time.Time, bool) {
	if b.EndDate == "" || b.EndTime == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(bookingDateLayout+"T"+bookingTimeLayout, b.EndDate+"T"+b.EndTime, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
