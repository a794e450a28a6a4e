package response

import (
	"time"

	"fitbook/internal/data/entity"
)

type BalanceResponse struct {
	AccountID string `json:"account_id"`
	Credits   int    `json:"credits"`
}

// CreditBreakdownResponse categorizes the account's credit additions.
// Credits never expire; ExpiringSoon is informational and always zero.
type CreditBreakdownResponse struct {
	Purchased    int `json:"purchased"`
	Bonus        int `json:"bonus"`
	Promotional  int `json:"promotional"`
	ExpiringSoon int `json:"expiring_soon"`
}

type AuditEntryResponse struct {
	ID             string             `json:"id"`
	AccountID      string             `json:"account_id"`
	Action         entity.AuditAction `json:"action"`
	CreditsBefore  int                `json:"credits_before"`
	CreditsAfter   int                `json:"credits_after"`
	CreditsChanged int                `json:"credits_changed"`
	Metadata       map[string]string  `json:"metadata,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
}

type ReconciliationResponse struct {
	AccountID   string `json:"account_id"`
	Credits     int    `json:"credits"`
	LedgerTotal int    `json:"ledger_total"`
	Consistent  bool   `json:"consistent"`
}

func AuditEntryToResponse(entry *entity.CreditAuditEntry) AuditEntryResponse {
	return AuditEntryResponse{
		ID:             entry.ID.String(),
		AccountID:      entry.AccountID.String(),
		Action:         entry.Action,
		CreditsBefore:  entry.CreditsBefore,
		CreditsAfter:   entry.CreditsAfter,
		CreditsChanged: entry.CreditsChanged,
		Metadata:       entry.Metadata,
		CreatedAt:      entry.CreatedAt,
	}
}
