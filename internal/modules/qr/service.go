package qr

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"equiprent/internal/domain"
	"equiprent/internal/pkg/qrtoken"

	qrcode "github.com/skip2/go-qrcode"
)

const qrImageSize = 300

type Service struct {
	equipment EquipmentRepository
	bookings  BookingRepository
	nonce     qrtoken.NonceFunc
	now       func() time.Time
}

func NewService(equipment EquipmentRepository, bookings BookingRepository) *Service {
	return &Service{
		equipment: equipment,
		bookings:  bookings,
		nonce:     qrtoken.RandomNonce,
		now:       time.Now,
	}
}

// WithNonce overrides the nonce source, used in tests.
func (s *Service) WithNonce(n qrtoken.NonceFunc) *Service {
	s.nonce = n
	return s
}

// WithClock overrides the clock, used in tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// ValidateEquipmentToken parses a scanned equipment token of the
// EQUIPMENT:<id>:<name>:<nonce> shape. Malformed input yields an invalid
// result, never an error.
func (s *Service) ValidateEquipmentToken(raw string) EquipmentValidation {
	parts := strings.Split(raw, ":")
	if len(parts) < 3 || parts[0] != "EQUIPMENT" {
		return EquipmentValidation{Valid: false, Error: "invalid QR code format"}
	}

	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return EquipmentValidation{Valid: false, Error: fmt.Sprintf("failed to parse QR code: %v", err)}
	}

	v := EquipmentValidation{
		Valid:       true,
		EquipmentID: id,
		Name:        parts[2],
	}
	if len(parts) >= 4 {
		v.Nonce = parts[3]
	}
	return v
}

// ValidateBookingToken parses a scanned booking action token of the
// BOOKING:<id>:EQUIPMENT:<id>:ACTION:<a>:TIME:<ts> shape.
func (s *Service) ValidateBookingToken(raw string) BookingValidation {
	parts := strings.SplitN(raw, ":", 8)
	if len(parts) != 8 || parts[0] != "BOOKING" || parts[2] != "EQUIPMENT" || parts[4] != "ACTION" || parts[6] != "TIME" {
		return BookingValidation{Valid: false, Error: "invalid booking QR code format"}
	}

	bookingID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return BookingValidation{Valid: false, Error: fmt.Sprintf("failed to parse booking QR code: %v", err)}
	}
	equipmentID, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		return BookingValidation{Valid: false, Error: fmt.Sprintf("failed to parse booking QR code: %v", err)}
	}

	return BookingValidation{
		Valid:       true,
		BookingID:   bookingID,
		EquipmentID: equipmentID,
		Action:      parts[5],
		Timestamp:   parts[7],
	}
}

// GenerateEquipmentQR renders a named token as a PNG data URL and stores
// a fresh simple token as the equipment's scannable code.
func (s *Service) GenerateEquipmentQR(ctx context.Context, equipmentID int64) (*GeneratedQR, error) {
	eq, err := s.equipment.GetByID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	if eq == nil {
		return nil, ErrEquipmentNotFound
	}

	image, err := renderDataURL(qrtoken.EncodeNamed(equipmentID, eq.Name, s.nonce()))
	if err != nil {
		return nil, err
	}

	eq.QRCode = qrtoken.EncodeSimple(equipmentID, s.nonce())
	if err := s.equipment.Save(ctx, eq); err != nil {
		return nil, err
	}

	return &GeneratedQR{
		QRCodeImage:   image,
		QRData:        eq.QRCode,
		EquipmentID:   equipmentID,
		EquipmentName: eq.Name,
	}, nil
}

// GenerateBookingQR renders a check-in/check-out action token for an
// existing booking.
func (s *Service) GenerateBookingQR(ctx context.Context, bookingID int64, action string) (*GeneratedQR, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}

	image, err := renderDataURL(qrtoken.EncodeBooking(bookingID, b.EquipmentID, action, s.now()))
	if err != nil {
		return nil, err
	}

	return &GeneratedQR{
		QRCodeImage: image,
		BookingID:   bookingID,
		EquipmentID: b.EquipmentID,
		Action:      action,
	}, nil
}

// CheckIn activates a pre-booked rental after a matching scan. The
// equipment becomes unavailable in lockstep.
func (s *Service) CheckIn(ctx context.Context, bookingID int64, qrData string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}

	eq, err := s.equipment.GetByID(ctx, b.EquipmentID)
	if err != nil {
		return nil, err
	}
	if eq == nil {
		return nil, ErrEquipmentNotFound
	}

	if err := s.matchToken(eq, b.EquipmentID, qrData); err != nil {
		return nil, err
	}

	now := s.now()
	b.CheckInTime = &now
	b.QRCodeScanned = true
	b.Status = domain.BookingActive
	if err := s.bookings.Save(ctx, b); err != nil {
		return nil, err
	}

	eq.Available = false
	if err := s.equipment.Save(ctx, eq); err != nil {
		return nil, err
	}

	return b, nil
}

// CheckOut completes a checked-in booking and releases the equipment.
func (s *Service) CheckOut(ctx context.Context, bookingID int64, qrData string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}
	if b.CheckInTime == nil {
		return nil, ErrNotCheckedIn
	}

	eq, err := s.equipment.GetByID(ctx, b.EquipmentID)
	if err != nil {
		return nil, err
	}
	if eq == nil {
		return nil, ErrEquipmentNotFound
	}

	if err := s.matchToken(eq, b.EquipmentID, qrData); err != nil {
		return nil, err
	}

	now := s.now()
	b.CheckOutTime = &now
	b.Status = domain.BookingCompleted
	if err := s.bookings.Save(ctx, b); err != nil {
		return nil, err
	}

	eq.Available = true
	if err := s.equipment.Save(ctx, eq); err != nil {
		return nil, err
	}

	return b, nil
}

// ScanEquipment resolves a raw scan to the equipment record.
func (s *Service) ScanEquipment(ctx context.Context, qrData string) (*domain.Equipment, error) {
	v := s.ValidateEquipmentToken(qrData)
	if !v.Valid {
		return nil, ErrInvalidToken
	}

	eq, err := s.equipment.GetByID(ctx, v.EquipmentID)
	if err != nil {
		return nil, err
	}
	if eq == nil {
		return nil, ErrEquipmentNotFound
	}
	return eq, nil
}

// matchToken enforces the token-match guard: when the equipment carries a
// stored token, the scanned one must equal it exactly or independently
// decode to the same equipment id.
func (s *Service) matchToken(eq *domain.Equipment, equipmentID int64, qrData string) error {
	if eq.QRCode == "" || eq.QRCode == qrData {
		return nil
	}
	id, err := qrtoken.DecodeEquipmentID(qrData)
	if err != nil || id != equipmentID {
		return ErrTokenMismatch
	}
	return nil
}

func renderDataURL(data string) (string, error) {
	png, err := qrcode.Encode(data, qrcode.High, qrImageSize)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
