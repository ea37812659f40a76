package qrscan

import (
	"context"
	"errors"
	"time"

	"equiprent/internal/domain"
	"equiprent/internal/pkg/qrtoken"

	"github.com/jackc/pgx/v5/pgconn"
)

// Flat penalty per whole hour late, in the platform's currency unit.
const lateFeePerHour = 100.0

type Service struct {
	equipment EquipmentRepository
	bookings  BookingRepository
	users     UserRepository
	notifs    Notifier
	now       func() time.Time
}

func NewService(
	equipment EquipmentRepository,
	bookings BookingRepository,
	users UserRepository,
	notifs Notifier,
) *Service {
	return &Service{
		equipment: equipment,
		bookings:  bookings,
		users:     users,
		notifs:    notifs,
		now:       time.Now,
	}
}

// WithClock overrides the clock, used in tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// ScanValidate resolves a scanned code and decides which actions the
// user may take. Read-only: no state changes.
func (s *Service) ScanValidate(ctx context.Context, qrData string, userID int64) (*ScanResult, error) {
	equipmentID, err := qrtoken.DecodeEquipmentID(qrData)
	if err != nil {
		return nil, ErrInvalidToken
	}

	eq, err := s.equipment.GetByID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	if eq == nil {
		return nil, ErrEquipmentNotFound
	}

	active, err := s.activeBooking(ctx, equipmentID, userID)
	if err != nil {
		return nil, err
	}

	overdueCount, err := s.overdueCount(ctx, userID)
	if err != nil {
		return nil, err
	}

	userName := "Unknown"
	if user, err := s.users.GetByID(ctx, userID); err == nil && user != nil {
		userName = user.Name
	}

	return &ScanResult{
		Equipment:        eq,
		HasActiveBooking: active != nil,
		ActiveBooking:    active,
		HasOverdueItems:  overdueCount > 0,
		CanBorrow:        eq.Available && overdueCount == 0 && active == nil,
		CanReturn:        active != nil,
		UserName:         userName,
	}, nil
}

// Borrow creates a confirmed booking for the equipment and takes it off
// the shelf. Preconditions are checked in a fixed order and the first
// failure wins: overdue block, equipment exists, equipment available.
func (s *Service) Borrow(ctx context.Context, equipmentID, userID int64, durationType domain.DurationType, duration int) (*BorrowResult, error) {
	if durationType != domain.DurationHours && durationType != domain.DurationDays {
		return nil, ErrValidation
	}
	if duration <= 0 {
		return nil, ErrValidation
	}

	overdueCount, err := s.overdueCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	if overdueCount > 0 {
		return nil, &OverdueBlockError{Count: overdueCount}
	}

	eq, err := s.equipment.GetByID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	if eq == nil {
		return nil, ErrEquipmentNotFound
	}
	if !eq.Available {
		return nil, ErrNotAvailable
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	now := s.now()
	b := &domain.Booking{
		EquipmentID:   eq.ID,
		EquipmentName: eq.Name,
		UserID:        userID,
		UserName:      user.Name,
		OperatorID:    eq.OperatorID,
		OperatorName:  eq.OperatorName,
		Duration:      duration,
		DurationType:  durationType,
		TotalAmount:   eq.UnitPrice(durationType) * float64(duration),
		Status:        domain.BookingConfirmed,
		PaymentStatus: domain.PaymentPending,
		CheckOutTime:  &now,
		QRCodeScanned: true,
	}
	b.SetPeriod(now, durationType, duration)

	if err := s.bookings.Create(ctx, b); err != nil {
		// The partial unique index on active bookings is the store-level
		// guard against two concurrent borrows passing the availability
		// check; surface the collision as unavailability.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrNotAvailable
		}
		return nil, err
	}

	eq.Available = false
	eq.TotalBookings++
	if err := s.equipment.Save(ctx, eq); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyBorrowed(ctx, eq.OperatorID, b)
	}

	return &BorrowResult{Booking: b, Equipment: eq}, nil
}

// Return completes a booking and releases its equipment. Returns past
// the expected time carry a flat per-hour fee, truncated to whole hours,
// and flip the final status to overdue-returned.
func (s *Service) Return(ctx context.Context, bookingID, equipmentID, userID int64) (*ReturnResult, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}

	if userID != b.UserID && userID != b.OperatorID {
		return nil, ErrForbidden
	}

	if b.Status.IsTerminal() {
		return nil, ErrAlreadyReturned
	}

	eq, err := s.equipment.GetByID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	if eq == nil {
		return nil, ErrEquipmentNotFound
	}

	now := s.now()
	b.Status = domain.BookingCompleted
	b.CheckInTime = &now

	var lateFee float64
	if expected, ok := b.ExpectedReturn(); ok && now.After(expected) {
		hoursLate := int(now.Sub(expected).Hours())
		lateFee = float64(hoursLate) * lateFeePerHour
		b.TotalAmount += lateFee
		b.Status = domain.BookingOverdueReturned
	}

	if err := s.bookings.Save(ctx, b); err != nil {
		return nil, err
	}

	eq.Available = true
	if err := s.equipment.Save(ctx, eq); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyReturned(ctx, eq.OperatorID, b, lateFee)
	}

	return &ReturnResult{
		Booking:     b,
		Equipment:   eq,
		LateFee:     lateFee,
		FinalAmount: b.TotalAmount,
	}, nil
}

// ResolveEquipment loads the equipment a scanned code points at.
func (s *Service) ResolveEquipment(ctx context.Context, qrData string) (*domain.Equipment, error) {
	equipmentID, err := qrtoken.DecodeEquipmentID(qrData)
	if err != nil {
		return nil, ErrInvalidToken
	}

	eq, err := s.equipment.GetByID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	if eq == nil {
		return nil, ErrEquipmentNotFound
	}
	return eq, nil
}

func (s *Service) activeBooking(ctx context.Context, equipmentID, userID int64) (*domain.Booking, error) {
	list, err := s.bookings.FindByEquipmentAndUser(ctx, equipmentID, userID)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].Status.IsActive() {
			return &list[i], nil
		}
	}
	return nil, nil
}

func (s *Service) overdueCount(ctx context.Context, userID int64) (int, error) {
	list, err := s.bookings.FindByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	count := 0
	for i := range list {
		if list[i].Status == domain.BookingOverdue {
			count++
		}
	}
	return count, nil
}
