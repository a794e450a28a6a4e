package entity

import (
	"github.com/google/uuid"
)

type AuditAction string

const (
	AuditActionPurchase         AuditAction = "purchase"
	AuditActionBookingDebit     AuditAction = "booking_debit"
	AuditActionBookingRefund    AuditAction = "booking_refund"
	AuditActionAccountFrozen    AuditAction = "account_frozen"
	AuditActionAccountUnfrozen  AuditAction = "account_unfrozen"
	AuditActionManualAdjustment AuditAction = "manual_adjustment"
)

// CreditAuditEntry is an append-only record of a single credit-affecting event.
// Invariant: CreditsAfter = CreditsBefore + CreditsChanged, and replaying all
// entries for an account from zero reproduces the account's current balance.
type CreditAuditEntry struct {
	BaseSimple
	AccountID      uuid.UUID         `db:"account_id"`
	Action         AuditAction       `db:"action"`
	CreditsBefore  int               `db:"credits_before"`
	CreditsAfter   int               `db:"credits_after"`
	CreditsChanged int               `db:"credits_changed"`
	Metadata       map[string]string `db:"metadata"`
}
