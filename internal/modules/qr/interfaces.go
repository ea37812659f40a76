package qr

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
	Save(ctx context.Context, b *domain.Booking) error
}
