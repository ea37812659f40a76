package equipment

import (
	"context"

	"equiprent/internal/domain"
	"equiprent/internal/repository"
)

type Repository interface {
	Create(ctx context.Context, e *domain.Equipment) error
	GetByID(ctx context.Context, id int64) (*domain.Equipment, error)
	Save(ctx context.Context, e *domain.Equipment) error
	List(ctx context.Context, f repository.EquipmentFilter) ([]domain.Equipment, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
