package qrscan

import (
	"context"

	"equiprent/internal/domain"
)

type EquipmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Equipment, error)
	Save(ctx context.Context, e *domain.Equipment) error
}

type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Create(ctx context.Context, b *domain.Booking) error
	Save(ctx context.Context, b *domain.Booking) error
	FindByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	FindByEquipmentAndUser(ctx context.Context, equipmentID, userID int64) ([]domain.Booking, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Notifier receives booking lifecycle events. Delivery failures are not
// allowed to fail the workflow.
type Notifier interface {
	NotifyBorrowed(ctx context.Context, operatorID int64, b *domain.Booking) error
	NotifyReturned(ctx context.Context, operatorID int64, b *domain.Booking, lateFee float64) error
}
