package domain

import "time"

type NotificationType string

const (
	NotificationBorrowed NotificationType = "equipment_borrowed"
	NotificationReturned NotificationType = "equipment_returned"
	NotificationOverdue  NotificationType = "booking_overdue"
)

type Notification struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"user_id"`
	BookingID int64            `json:"booking_id,omitempty"`
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}
