package booking

import (
	"context"

	"equiprent/internal/domain"
)

type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Save(ctx context.Context, b *domain.Booking) error
	FindByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	FindByOperator(ctx context.Context, operatorID int64) ([]domain.Booking, error)
}

type EquipmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Equipment, error)
	Save(ctx context.Context, e *domain.Equipment) error
}
