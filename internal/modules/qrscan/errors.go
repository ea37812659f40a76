package qrscan

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("validation error")
	ErrInvalidToken      = errors.New("invalid qr code format")
	ErrEquipmentNotFound = errors.New("equipment not found")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrNotAvailable      = errors.New("equipment is not available")
	ErrForbidden         = errors.New("not allowed to return this equipment")
	ErrAlreadyReturned   = errors.New("booking already returned")
)

// OverdueBlockError blocks borrowing while the user holds overdue
// equipment; Count is surfaced to the client.
type OverdueBlockError struct {
	Count int
}

func (e *OverdueBlockError) Error() string {
	return fmt.Sprintf("user has %d overdue booking(s)", e.Count)
}
