package notification

import (
	"context"
	"fmt"

	"equiprent/internal/domain"
)

// Service persists booking lifecycle notifications for operators and lets
// users read and acknowledge their feed.
type Service struct {
	notifications Repository
}

func NewService(notifications Repository) *Service {
	return &Service{notifications: notifications}
}

func (s *Service) NotifyBorrowed(ctx context.Context, operatorID int64, b *domain.Booking) error {
	return s.notifications.Create(ctx, &domain.Notification{
		UserID:    operatorID,
		BookingID: b.ID,
		Type:      domain.NotificationBorrowed,
		Message:   fmt.Sprintf("%s borrowed %s (booking #%d)", displayName(b.UserName), displayEquipment(b.EquipmentName), b.ID),
	})
}

func (s *Service) NotifyReturned(ctx context.Context, operatorID int64, b *domain.Booking, lateFee float64) error {
	msg := fmt.Sprintf("%s returned %s (booking #%d)", displayName(b.UserName), displayEquipment(b.EquipmentName), b.ID)
	typ := domain.NotificationReturned
	if lateFee > 0 {
		msg = fmt.Sprintf("%s, late fee %.2f", msg, lateFee)
		typ = domain.NotificationOverdue
	}
	return s.notifications.Create(ctx, &domain.Notification{
		UserID:    operatorID,
		BookingID: b.ID,
		Type:      typ,
		Message:   msg,
	})
}

func (s *Service) List(ctx context.Context, userID int64) ([]domain.Notification, error) {
	return s.notifications.ListByUser(ctx, userID)
}

func (s *Service) MarkRead(ctx context.Context, id, userID int64) error {
	return s.notifications.MarkRead(ctx, id, userID)
}

func displayName(name string) string {
	if name == "" {
		return "A user"
	}
	return name
}

func displayEquipment(name string) string {
	if name == "" {
		return "equipment"
	}
	return name
}
