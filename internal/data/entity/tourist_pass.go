package entity

import (
	"time"

	"github.com/google/uuid"
)

// TouristPass is a bounded-count, time-windowed booking allowance that is
// independent of the credit balance. ClassesUsed never exceeds ClassesTotal
// and never drops below zero.
type TouristPass struct {
	Base
	AccountID    uuid.UUID `db:"account_id"`
	StartsAt     time.Time `db:"starts_at"`
	EndsAt       time.Time `db:"ends_at"`
	ClassesTotal int       `db:"classes_total"`
	ClassesUsed  int       `db:"classes_used"`
	Active       bool      `db:"active"`
}

func (p *TouristPass) ClassesRemaining() int {
	return p.ClassesTotal - p.ClassesUsed
}
