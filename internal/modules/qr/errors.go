package qr

import "errors"

var (
	ErrEquipmentNotFound = errors.New("equipment not found")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrTokenMismatch     = errors.New("qr code does not match equipment")
	ErrNotCheckedIn      = errors.New("equipment must be checked in before check-out")
	ErrInvalidToken      = errors.New("invalid qr code")
)
