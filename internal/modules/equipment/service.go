package equipment

import (
	"context"

	"equiprent/internal/domain"
	"equiprent/internal/pkg/qrtoken"
	"equiprent/internal/repository"
)

type Service struct {
	equipment Repository
	users     UserRepository
	nonce     qrtoken.NonceFunc
}

func NewService(equipment Repository, users UserRepository) *Service {
	return &Service{
		equipment: equipment,
		users:     users,
		nonce:     qrtoken.RandomNonce,
	}
}

// WithNonce overrides the nonce source, used in tests.
func (s *Service) WithNonce(n qrtoken.NonceFunc) *Service {
	s.nonce = n
	return s
}

func (s *Service) List(ctx context.Context, f repository.EquipmentFilter) ([]domain.Equipment, error) {
	return s.equipment.List(ctx, f)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Equipment, error) {
	eq, err := s.equipment.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if eq == nil {
		return nil, ErrNotFound
	}
	return eq, nil
}

// Create registers new equipment under the acting operator and stamps it
// with a rich identity token so it is scannable from day one.
func (s *Service) Create(ctx context.Context, operatorID int64, req CreateEquipmentRequest) (*domain.Equipment, error) {
	operatorName := ""
	if op, err := s.users.GetByID(ctx, operatorID); err == nil && op != nil {
		operatorName = op.Name
	}

	eq := &domain.Equipment{
		Name:         req.Name,
		Category:     req.Category,
		Description:  req.Description,
		PricePerHour: req.PricePerHour,
		PricePerDay:  req.PricePerDay,
		Available:    true,
		OperatorID:   operatorID,
		OperatorName: operatorName,
		Location:     req.Location,
		Image:        req.Image,
	}

	if err := s.equipment.Create(ctx, eq); err != nil {
		return nil, err
	}

	eq.QRCode = qrtoken.EncodeRich(eq.ID, eq.Name, eq.Location, eq.QRStatus(), s.nonce())
	if err := s.equipment.Save(ctx, eq); err != nil {
		return nil, err
	}

	return eq, nil
}

// UpdateStatus lets the owning operator toggle availability or record a
// maintenance state.
func (s *Service) UpdateStatus(ctx context.Context, id, operatorID int64, req UpdateStatusRequest) (*domain.Equipment, error) {
	eq, err := s.equipment.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if eq == nil {
		return nil, ErrNotFound
	}
	if eq.OperatorID != operatorID {
		return nil, ErrForbidden
	}

	if req.Available != nil {
		eq.Available = *req.Available
	}
	if req.MaintenanceStatus != "" {
		eq.MaintenanceStatus = req.MaintenanceStatus
	}

	if err := s.equipment.Save(ctx, eq); err != nil {
		return nil, err
	}
	return eq, nil
}
