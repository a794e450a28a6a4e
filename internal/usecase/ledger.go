package usecase

import (
	"context"
	"fmt"
	"time"

	"fitbook/internal/data/entity"
	"fitbook/internal/data/repository"

	"github.com/google/uuid"
)

// applyCreditChange is the single write path for the credit balance. It
// applies the signed delta with the repository's non-negative guard and
// appends the matching audit entry, so that the ledger invariant
// (sum of credits_changed == accounts.credits) holds after every call.
// Callers run it inside a transaction whenever it is combined with other
// writes.
func applyCreditChange(ctx context.Context, r *repository.Repository, accountID uuid.UUID, delta int, action entity.AuditAction, metadata map[string]string) (int, error) {
	newBalance, ok, err := r.Account.AdjustCredits(ctx, accountID, delta)
	if err != nil {
		return 0, err
	}
	if !ok {
		account, findErr := r.Account.FindByID(ctx, accountID)
		if findErr != nil {
			return 0, findErr
		}
		if account == nil {
			return 0, fmt.Errorf("account %s: %w", accountID.String(), ErrNotFound)
		}
		return 0, fmt.Errorf("account %s has %d credits, needs %d: %w",
			accountID.String(), account.Credits, -delta, ErrInsufficientCredits)
	}

	entry := &entity.CreditAuditEntry{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		AccountID:      accountID,
		Action:         action,
		CreditsBefore:  newBalance - delta,
		CreditsAfter:   newBalance,
		CreditsChanged: delta,
		Metadata:       metadata,
	}

	if err := r.Audit.Append(ctx, entry); err != nil {
		return 0, err
	}

	return newBalance, nil
}

// appendNeutralAudit records a balance-neutral event (freeze/unfreeze).
func appendNeutralAudit(ctx context.Context, r *repository.Repository, account *entity.Account, action entity.AuditAction, metadata map[string]string) error {
	entry := &entity.CreditAuditEntry{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		AccountID:      account.ID,
		Action:         action,
		CreditsBefore:  account.Credits,
		CreditsAfter:   account.Credits,
		CreditsChanged: 0,
		Metadata:       metadata,
	}

	return r.Audit.Append(ctx, entry)
}
