package qr

import (
	"context"
	"strings"
	"testing"
	"time"

	"equiprent/internal/domain"
	"equiprent/internal/pkg/qrtoken"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockEquipmentRepository struct {
	mock.Mock
}

func (m *MockEquipmentRepository) GetByID(ctx context.Context, id int64) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}

func (m *MockEquipmentRepository) Save(ctx context.Context, e *domain.Equipment) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Save(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func fixedNonce() string { return "AAAA1111" }

func TestValidateEquipmentToken(t *testing.T) {
	s := NewService(nil, nil)

	v := s.ValidateEquipmentToken("EQUIPMENT:15:Excavator:DEADBEEF")
	assert.True(t, v.Valid)
	assert.Equal(t, int64(15), v.EquipmentID)
	assert.Equal(t, "Excavator", v.Name)
	assert.Equal(t, "DEADBEEF", v.Nonce)
	assert.Empty(t, v.Error)

	v = s.ValidateEquipmentToken("EQUIPMENT:15:Excavator")
	assert.True(t, v.Valid)
	assert.Empty(t, v.Nonce)

	for _, raw := range []string{"", "garbage", "EQ-15-ABCD", "EQUIPMENT:15", "EQUIPMENT:x:Name:n"} {
		v := s.ValidateEquipmentToken(raw)
		assert.False(t, v.Valid, raw)
		assert.NotEmpty(t, v.Error, raw)
	}
}

func TestValidateEquipmentToken_RoundTrip(t *testing.T) {
	s := NewService(nil, nil)

	raw := qrtoken.EncodeNamed(15, "Mini Excavator", "AAAA1111")
	v := s.ValidateEquipmentToken(raw)
	require.True(t, v.Valid)
	assert.Equal(t, int64(15), v.EquipmentID)
	assert.Equal(t, "AAAA1111", v.Nonce)
}

func TestValidateBookingToken(t *testing.T) {
	s := NewService(nil, nil)

	at := time.Date(2026, 8, 31, 9, 30, 0, 0, time.UTC)
	v := s.ValidateBookingToken(qrtoken.EncodeBooking(9, 4, "CHECK_IN", at))
	require.True(t, v.Valid)
	assert.Equal(t, int64(9), v.BookingID)
	assert.Equal(t, int64(4), v.EquipmentID)
	assert.Equal(t, "CHECK_IN", v.Action)
	assert.Equal(t, "2026-08-31T09:30:00Z", v.Timestamp)

	for _, raw := range []string{
		"",
		"BOOKING:9",
		"BOOKING:9:ITEM:4:ACTION:CHECK_IN:TIME:t",
		"BOOKING:x:EQUIPMENT:4:ACTION:CHECK_IN:TIME:t",
		"BOOKING:9:EQUIPMENT:x:ACTION:CHECK_IN:TIME:t",
	} {
		v := s.ValidateBookingToken(raw)
		assert.False(t, v.Valid, raw)
	}
}

func TestGenerateEquipmentQR(t *testing.T) {
	equipment := new(MockEquipmentRepository)
	eq := &domain.Equipment{ID: 7, Name: "Excavator", Available: true}
	equipment.On("GetByID", mock.Anything, int64(7)).Return(eq, nil)
	equipment.On("Save", mock.Anything, eq).Return(nil)

	s := NewService(equipment, nil).WithNonce(fixedNonce)

	res, err := s.GenerateEquipmentQR(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "EQ-7-AAAA1111", res.QRData)
	assert.Equal(t, "EQ-7-AAAA1111", eq.QRCode)
	assert.True(t, strings.HasPrefix(res.QRCodeImage, "data:image/png;base64,"))
	equipment.AssertExpectations(t)
}

func TestGenerateEquipmentQR_NotFound(t *testing.T) {
	equipment := new(MockEquipmentRepository)
	equipment.On("GetByID", mock.Anything, int64(7)).Return(nil, nil)

	s := NewService(equipment, nil)

	_, err := s.GenerateEquipmentQR(context.Background(), 7)
	assert.ErrorIs(t, err, ErrEquipmentNotFound)
}

func TestCheckIn(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	bookings := new(MockBookingRepository)
	equipment := new(MockEquipmentRepository)

	b := &domain.Booking{ID: 9, EquipmentID: 7, Status: domain.BookingConfirmed}
	eq := &domain.Equipment{ID: 7, QRCode: "EQ-7-AAAA1111", Available: true}

	bookings.On("GetByID", mock.Anything, int64(9)).Return(b, nil)
	equipment.On("GetByID", mock.Anything, int64(7)).Return(eq, nil)
	bookings.On("Save", mock.Anything, b).Return(nil)
	equipment.On("Save", mock.Anything, eq).Return(nil)

	s := NewService(equipment, bookings).WithClock(func() time.Time { return now })

	got, err := s.CheckIn(context.Background(), 9, "EQ-7-AAAA1111")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingActive, got.Status)
	assert.True(t, got.QRCodeScanned)
	require.NotNil(t, got.CheckInTime)
	assert.Equal(t, now, *got.CheckInTime)
	assert.False(t, eq.Available)
}

func TestCheckIn_TokenMismatch(t *testing.T) {
	bookings := new(MockBookingRepository)
	equipment := new(MockEquipmentRepository)

	b := &domain.Booking{ID: 9, EquipmentID: 7}
	eq := &domain.Equipment{ID: 7, QRCode: "EQ-7-AAAA1111", Available: true}

	bookings.On("GetByID", mock.Anything, int64(9)).Return(b, nil)
	equipment.On("GetByID", mock.Anything, int64(7)).Return(eq, nil)

	s := NewService(equipment, bookings)

	// scanned token decodes to a different equipment
	_, err := s.CheckIn(context.Background(), 9, "EQUIPMENT:8:Other:BBBB2222")
	assert.ErrorIs(t, err, ErrTokenMismatch)
	assert.True(t, eq.Available)
}

func TestCheckIn_DifferentTokenSameEquipment(t *testing.T) {
	now := time.Now()
	bookings := new(MockBookingRepository)
	equipment := new(MockEquipmentRepository)

	b := &domain.Booking{ID: 9, EquipmentID: 7}
	eq := &domain.Equipment{ID: 7, QRCode: "EQ-7-AAAA1111", Available: true}

	bookings.On("GetByID", mock.Anything, int64(9)).Return(b, nil)
	equipment.On("GetByID", mock.Anything, int64(7)).Return(eq, nil)
	bookings.On("Save", mock.Anything, b).Return(nil)
	equipment.On("Save", mock.Anything, eq).Return(nil)

	s := NewService(equipment, bookings).WithClock(func() time.Time { return now })

	_, err := s.CheckIn(context.Background(), 9, "EQUIPMENT:7:Excavator:CCCC3333")
	assert.NoError(t, err)
}

func TestCheckOut_RequiresCheckIn(t *testing.T) {
	bookings := new(MockBookingRepository)

	b := &domain.Booking{ID: 9, EquipmentID: 7}
	bookings.On("GetByID", mock.Anything, int64(9)).Return(b, nil)

	s := NewService(nil, bookings)

	_, err := s.CheckOut(context.Background(), 9, "EQ-7-AAAA1111")
	assert.ErrorIs(t, err, ErrNotCheckedIn)
}

func TestCheckOut(t *testing.T) {
	now := time.Date(2026, 8, 31, 18, 0, 0, 0, time.UTC)
	checkedIn := now.Add(-4 * time.Hour)

	bookings := new(MockBookingRepository)
	equipment := new(MockEquipmentRepository)

	b := &domain.Booking{ID: 9, EquipmentID: 7, Status: domain.BookingActive, CheckInTime: &checkedIn}
	eq := &domain.Equipment{ID: 7, QRCode: "EQ-7-AAAA1111", Available: false}

	bookings.On("GetByID", mock.Anything, int64(9)).Return(b, nil)
	equipment.On("GetByID", mock.Anything, int64(7)).Return(eq, nil)
	bookings.On("Save", mock.Anything, b).Return(nil)
	equipment.On("Save", mock.Anything, eq).Return(nil)

	s := NewService(equipment, bookings).WithClock(func() time.Time { return now })

	got, err := s.CheckOut(context.Background(), 9, "EQ-7-AAAA1111")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCompleted, got.Status)
	require.NotNil(t, got.CheckOutTime)
	assert.Equal(t, now, *got.CheckOutTime)
	assert.True(t, eq.Available)
}
