package entity

import (
	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// Booking records one confirmed spot in a class session. PassID is set when
// the booking was funded by a tourist pass, in which case CreditsUsed is 0.
// Status only moves confirmed -> cancelled or confirmed -> completed.
type Booking struct {
	Base
	AccountID   uuid.UUID     `db:"account_id"`
	ClassID     uuid.UUID     `db:"class_id"`
	PassID      *uuid.UUID    `db:"pass_id"`
	CreditsUsed int           `db:"credits_used"`
	Status      BookingStatus `db:"status"`
}
