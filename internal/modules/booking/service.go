package booking

import (
	"context"
	"time"

	"equiprent/internal/domain"
)

// allowedTransitions lists the operator-driven status moves. Check-in and
// check-out move bookings through active/completed on their own paths.
var allowedTransitions = map[domain.BookingStatus][]domain.BookingStatus{
	domain.BookingPending:   {domain.BookingConfirmed, domain.BookingCancelled},
	domain.BookingConfirmed: {domain.BookingActive, domain.BookingOverdue, domain.BookingCancelled},
	domain.BookingActive:    {domain.BookingCompleted, domain.BookingOverdue},
	domain.BookingOverdue:   {domain.BookingOverdueReturned, domain.BookingCancelled},
}

type Service struct {
	bookings  BookingRepository
	equipment EquipmentRepository
	now       func() time.Time
}

func NewService(bookings BookingRepository, equipment EquipmentRepository) *Service {
	return &Service{
		bookings:  bookings,
		equipment: equipment,
		now:       time.Now,
	}
}

// WithClock overrides the time source, used in tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) GetMyBookings(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return s.bookings.FindByUser(ctx, userID)
}

func (s *Service) GetOperatorBookings(ctx context.Context, operatorID int64) ([]domain.Booking, error) {
	return s.bookings.FindByOperator(ctx, operatorID)
}

// GetByID returns the booking when the caller is its renter or its operator.
func (s *Service) GetByID(ctx context.Context, id, callerID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}
	if b.UserID != callerID && b.OperatorID != callerID {
		return nil, ErrForbidden
	}
	return b, nil
}

// UpdateStatus applies an operator-side status change, enforcing the
// transition table. Transitions that release the equipment flip it back to
// available.
func (s *Service) UpdateStatus(ctx context.Context, id, operatorID int64, status domain.BookingStatus) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}
	if b.OperatorID != operatorID {
		return nil, ErrForbidden
	}
	if !transitionAllowed(b.Status, status) {
		return nil, ErrInvalidTransition
	}

	wasHolding := b.Status.IsActive() || b.Status == domain.BookingOverdue
	b.Status = status
	if status == domain.BookingCancelled && b.PaymentStatus == domain.PaymentPaid {
		b.PaymentStatus = domain.PaymentRefunded
	}

	if err := s.bookings.Save(ctx, b); err != nil {
		return nil, err
	}

	if wasHolding && status.IsTerminal() {
		if err := s.releaseEquipment(ctx, b.EquipmentID); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Cancel is the renter-side path. Only bookings that have not been picked up
// can be cancelled by the renter.
func (s *Service) Cancel(ctx context.Context, id, userID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}
	if b.UserID != userID {
		return nil, ErrForbidden
	}
	if b.CheckOutTime != nil {
		return nil, ErrInvalidTransition
	}
	if !transitionAllowed(b.Status, domain.BookingCancelled) {
		return nil, ErrInvalidTransition
	}

	wasHolding := b.Status.IsActive()
	b.Status = domain.BookingCancelled
	if b.PaymentStatus == domain.PaymentPaid {
		b.PaymentStatus = domain.PaymentRefunded
	}

	if err := s.bookings.Save(ctx, b); err != nil {
		return nil, err
	}
	if wasHolding {
		if err := s.releaseEquipment(ctx, b.EquipmentID); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// MarkOverdue sweeps the operator's open bookings and flags the ones past
// their expected return.
func (s *Service) MarkOverdue(ctx context.Context, operatorID int64) ([]domain.Booking, error) {
	all, err := s.bookings.FindByOperator(ctx, operatorID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var flagged []domain.Booking
	for i := range all {
		b := &all[i]
		if !b.Status.IsActive() {
			continue
		}
		expected, ok := b.ExpectedReturn()
		if !ok || !now.After(expected) {
			continue
		}
		b.Status = domain.BookingOverdue
		if err := s.bookings.Save(ctx, b); err != nil {
			return nil, err
		}
		flagged = append(flagged, *b)
	}
	return flagged, nil
}

func transitionAllowed(from, to domain.BookingStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s *Service) releaseEquipment(ctx context.Context, equipmentID int64) error {
	eq, err := s.equipment.GetByID(ctx, equipmentID)
	if err != nil || eq == nil {
		return err
	}
	eq.Available = true
	return s.equipment.Save(ctx, eq)
}
