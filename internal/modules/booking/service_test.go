package booking

import (
	"context"
	"testing"
	"time"

	"equiprent/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var testNow = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) Save(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepo) FindByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) FindByOperator(ctx context.Context, operatorID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, operatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockEquipmentRepo struct {
	mock.Mock
}

func (m *MockEquipmentRepo) GetByID(ctx context.Context, id int64) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}

func (m *MockEquipmentRepo) Save(ctx context.Context, e *domain.Equipment) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func newTestService() (*Service, *MockBookingRepo, *MockEquipmentRepo) {
	bookings := new(MockBookingRepo)
	equipment := new(MockEquipmentRepo)
	service := NewService(bookings, equipment).WithClock(func() time.Time { return testNow })
	return service, bookings, equipment
}

func TestUpdateStatus_ConfirmPending(t *testing.T) {
	service, bookings, _ := newTestService()

	bookings.On("GetByID", mock.Anything, int64(1)).Return(&domain.Booking{
		ID: 1, OperatorID: 9, Status: domain.BookingPending,
	}, nil)
	bookings.On("Save", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)

	b, err := service.UpdateStatus(context.Background(), 1, 9, domain.BookingConfirmed)

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, b.Status)
}

func TestUpdateStatus_RejectsInvalidTransition(t *testing.T) {
	service, bookings, _ := newTestService()

	bookings.On("GetByID", mock.Anything, int64(1)).Return(&domain.Booking{
		ID: 1, OperatorID: 9, Status: domain.BookingCompleted,
	}, nil)

	_, err := service.UpdateStatus(context.Background(), 1, 9, domain.BookingActive)

	assert.ErrorIs(t, err, ErrInvalidTransition)
	bookings.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUpdateStatus_ForbiddenForOtherOperator(t *testing.T) {
	service, bookings, _ := newTestService()

	bookings.On("GetByID", mock.Anything, int64(1)).Return(&domain.Booking{
		ID: 1, OperatorID: 9, Status: domain.BookingPending,
	}, nil)

	_, err := service.UpdateStatus(context.Background(), 1, 13, domain.BookingConfirmed)

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateStatus_OverdueToReturnedReleasesEquipment(t *testing.T) {
	service, bookings, equipment := newTestService()

	bookings.On("GetByID", mock.Anything, int64(1)).Return(&domain.Booking{
		ID: 1, OperatorID: 9, EquipmentID: 7, Status: domain.BookingOverdue,
	}, nil)
	bookings.On("Save", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)
	equipment.On("GetByID", mock.Anything, int64(7)).Return(&domain.Equipment{ID: 7, Available: false}, nil)
	equipment.On("Save", mock.Anything, mock.MatchedBy(func(e *domain.Equipment) bool {
		return e.Available
	})).Return(nil)

	b, err := service.UpdateStatus(context.Background(), 1, 9, domain.BookingOverdueReturned)

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingOverdueReturned, b.Status)
	equipment.AssertExpectations(t)
}

func TestCancel_RefundsPaidBooking(t *testing.T) {
	service, bookings, equipment := newTestService()

	bookings.On("GetByID", mock.Anything, int64(1)).Return(&domain.Booking{
		ID: 1, UserID: 5, EquipmentID: 7, Status: domain.BookingConfirmed,
		PaymentStatus: domain.PaymentPaid,
	}, nil)
	bookings.On("Save", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)
	equipment.On("GetByID", mock.Anything, int64(7)).Return(&domain.Equipment{ID: 7, Available: false}, nil)
	equipment.On("Save", mock.Anything, mock.AnythingOfType("*domain.Equipment")).Return(nil)

	b, err := service.Cancel(context.Background(), 1, 5)

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, b.Status)
	assert.Equal(t, domain.PaymentRefunded, b.PaymentStatus)
}

func TestCancel_RejectedAfterPickup(t *testing.T) {
	service, bookings, _ := newTestService()

	pickedUp := testNow.Add(-time.Hour)
	bookings.On("GetByID", mock.Anything, int64(1)).Return(&domain.Booking{
		ID: 1, UserID: 5, Status: domain.BookingActive, CheckOutTime: &pickedUp,
	}, nil)

	_, err := service.Cancel(context.Background(), 1, 5)

	assert.ErrorIs(t, err, ErrInvalidTransition)
	bookings.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCancel_ForbiddenForOtherUser(t *testing.T) {
	service, bookings, _ := newTestService()

	bookings.On("GetByID", mock.Anything, int64(1)).Return(&domain.Booking{
		ID: 1, UserID: 5, Status: domain.BookingPending,
	}, nil)

	_, err := service.Cancel(context.Background(), 1, 42)

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestMarkOverdue_FlagsOnlyLateActiveBookings(t *testing.T) {
	service, bookings, _ := newTestService()

	late := domain.Booking{ID: 1, OperatorID: 9, Status: domain.BookingActive}
	late.SetPeriod(testNow.Add(-5*time.Hour), domain.DurationHours, 2)
	onTime := domain.Booking{ID: 2, OperatorID: 9, Status: domain.BookingActive}
	onTime.SetPeriod(testNow, domain.DurationHours, 2)
	done := domain.Booking{ID: 3, OperatorID: 9, Status: domain.BookingCompleted}
	done.SetPeriod(testNow.Add(-10*time.Hour), domain.DurationHours, 1)

	bookings.On("FindByOperator", mock.Anything, int64(9)).Return([]domain.Booking{late, onTime, done}, nil)
	bookings.On("Save", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.ID == 1 && b.Status == domain.BookingOverdue
	})).Return(nil)

	flagged, err := service.MarkOverdue(context.Background(), 9)

	assert.NoError(t, err)
	assert.Len(t, flagged, 1)
	assert.Equal(t, int64(1), flagged[0].ID)
	bookings.AssertExpectations(t)
}

func TestGetByID_OwnerAndOperatorAccess(t *testing.T) {
	service, bookings, _ := newTestService()

	bookings.On("GetByID", mock.Anything, int64(1)).Return(&domain.Booking{
		ID: 1, UserID: 5, OperatorID: 9,
	}, nil)

	_, err := service.GetByID(context.Background(), 1, 5)
	assert.NoError(t, err)

	_, err = service.GetByID(context.Background(), 1, 9)
	assert.NoError(t, err)

	_, err = service.GetByID(context.Background(), 1, 42)
	assert.ErrorIs(t, err, ErrForbidden)
}
