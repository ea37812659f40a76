package qrtoken

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUnrecognizedFormat = errors.New("unrecognized token format")
	ErrInvalidID          = errors.New("token carries an invalid id")
)

// Kind identifies which historical token format a scanned string matched.
type Kind int

const (
	KindEquipmentSimple Kind = iota // EQ-<id>-<nonce>
	KindEquipmentLegacy             // QR_<id>
	KindEquipmentNamed              // EQUIPMENT:<id>:<name>:<nonce>
	KindEquipmentRich               // EQ-<id>-<nonce>|<name>|<location>|<status>
	KindBookingAction               // BOOKING:<id>:EQUIPMENT:<id>:ACTION:<a>:TIME:<ts>
	KindBare                        // <id>
)

// Token is the parsed form of a scanned QR payload. Only the fields
// relevant to the matched Kind are populated.
type Token struct {
	Kind        Kind
	EquipmentID int64
	BookingID   int64
	Nonce       string
	Name        string
	Location    string
	Status      string
	Action      string
	Timestamp   string
}

const (
	prefixSimple = "EQ-"
	prefixLegacy = "QR_"
	prefixNamed  = "EQUIPMENT:"
	prefixAction = "BOOKING:"
)

var delimiters = strings.NewReplacer(":", "_", "|", "_")

// Parse attempts each recognized format in fixed priority order. It is
// pure and tolerant of malformed trailing segments as long as the id
// portion itself parses.
func Parse(raw string) (Token, error) {
	switch {
	case strings.HasPrefix(raw, prefixSimple):
		return parseSimpleOrRich(raw)
	case strings.HasPrefix(raw, prefixLegacy):
		id, err := strconv.ParseInt(raw[len(prefixLegacy):], 10, 64)
		if err != nil {
			return Token{}, ErrInvalidID
		}
		return Token{Kind: KindEquipmentLegacy, EquipmentID: id}, nil
	case strings.HasPrefix(raw, prefixNamed):
		return parseNamed(raw)
	case strings.HasPrefix(raw, prefixAction):
		return parseBookingAction(raw)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return Token{}, ErrUnrecognizedFormat
	}
	return Token{Kind: KindBare, EquipmentID: id}, nil
}

func parseSimpleOrRich(raw string) (Token, error) {
	fields := strings.Split(raw, "|")
	parts := strings.Split(fields[0], "-")
	if len(parts) < 2 {
		return Token{}, ErrInvalidID
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return Token{}, ErrInvalidID
	}

	t := Token{Kind: KindEquipmentSimple, EquipmentID: id}
	if len(parts) >= 3 {
		t.Nonce = parts[2]
	}
	if len(fields) == 4 {
		t.Kind = KindEquipmentRich
		t.Name = fields[1]
		t.Location = fields[2]
		t.Status = fields[3]
	}
	return t, nil
}

func parseNamed(raw string) (Token, error) {
	parts := strings.Split(raw, ":")
	if len(parts) < 2 {
		return Token{}, ErrInvalidID
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return Token{}, ErrInvalidID
	}

	t := Token{Kind: KindEquipmentNamed, EquipmentID: id}
	if len(parts) >= 3 {
		t.Name = parts[2]
	}
	if len(parts) >= 4 {
		t.Nonce = parts[3]
	}
	return t, nil
}

func parseBookingAction(raw string) (Token, error) {
	// SplitN keeps the RFC3339 timestamp (which contains colons) whole
	// in the final segment.
	parts := strings.SplitN(raw, ":", 8)
	if len(parts) != 8 || parts[2] != "EQUIPMENT" || parts[4] != "ACTION" || parts[6] != "TIME" {
		return Token{}, ErrUnrecognizedFormat
	}
	bookingID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return Token{}, ErrInvalidID
	}
	equipmentID, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		return Token{}, ErrInvalidID
	}
	return Token{
		Kind:        KindBookingAction,
		BookingID:   bookingID,
		EquipmentID: equipmentID,
		Action:      parts[5],
		Timestamp:   parts[7],
	}, nil
}

// DecodeEquipmentID resolves a scanned payload to the equipment it
// identifies. Booking action tokens do not identify equipment on their
// own and are rejected here.
func DecodeEquipmentID(raw string) (int64, error) {
	t, err := Parse(raw)
	if err != nil {
		return 0, err
	}
	if t.Kind == KindBookingAction {
		return 0, ErrUnrecognizedFormat
	}
	return t.EquipmentID, nil
}

// NonceFunc produces the 8-character uppercase hex nonce embedded in
// generated tokens. Injectable for deterministic tests.
type NonceFunc func() string

// RandomNonce is the production nonce source.
func RandomNonce() string {
	return strings.ToUpper(uuid.NewString()[:8])
}

// EncodeSimple produces the EQ-<id>-<nonce> form.
func EncodeSimple(equipmentID int64, nonce string) string {
	return fmt.Sprintf("EQ-%d-%s", equipmentID, nonce)
}

// EncodeNamed produces the EQUIPMENT:<id>:<name>:<nonce> form.
func EncodeNamed(equipmentID int64, name, nonce string) string {
	if name == "" {
		name = "Equipment"
	}
	return fmt.Sprintf("EQUIPMENT:%d:%s:%s", equipmentID, delimiters.Replace(name), nonce)
}

// EncodeRich produces the pipe-delimited form used for freshly generated
// equipment tokens. Empty name and location fall back to placeholders,
// empty status to AVAILABLE.
func EncodeRich(equipmentID int64, name, location, status, nonce string) string {
	if name == "" {
		name = "Equipment"
	}
	if location == "" {
		location = "Unknown"
	}
	if status == "" {
		status = "AVAILABLE"
	}
	return fmt.Sprintf("EQ-%d-%s|%s|%s|%s",
		equipmentID, nonce, delimiters.Replace(name), delimiters.Replace(location), status)
}

// EncodeBooking produces the booking action form with an RFC3339 timestamp.
func EncodeBooking(bookingID, equipmentID int64, action string, at time.Time) string {
	return fmt.Sprintf("BOOKING:%d:EQUIPMENT:%d:ACTION:%s:TIME:%s",
		bookingID, equipmentID, action, at.Format(time.RFC3339))
}
