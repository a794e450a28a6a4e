package repository

import (
	"context"
	"fmt"

	"fitbook/internal/data/entity"
	"fitbook/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuditLogRepository is the append-only ledger store. Entries are never
// updated or deleted.
type AuditLogRepository interface {
	Append(ctx context.Context, entry *entity.CreditAuditEntry) error
	FindByAccountID(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*entity.CreditAuditEntry, error)
	CountByAccountID(ctx context.Context, accountID uuid.UUID) (int64, error)
	SumChangesByAccountID(ctx context.Context, accountID uuid.UUID) (int, error)
	BreakdownByAccountID(ctx context.Context, accountID uuid.UUID) (*CreditBreakdown, error)
}

// CreditBreakdown groups credit additions by their recorded source.
type CreditBreakdown struct {
	Purchased   int
	Bonus       int
	Promotional int
}

type auditLogRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewAuditLogRepository(db database.Querier, log *zap.Logger) AuditLogRepository {
	return &auditLogRepository{
		db:  db,
		log: log.With(zap.String("repository", "audit_log")),
	}
}

func (r *auditLogRepository) Append(ctx context.Context, entry *entity.CreditAuditEntry) error {
	query := `
		INSERT INTO credit_audit_log (id, account_id, action, credits_before, credits_after, credits_changed, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		entry.ID,
		entry.AccountID,
		entry.Action,
		entry.CreditsBefore,
		entry.CreditsAfter,
		entry.CreditsChanged,
		entry.Metadata,
		entry.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to append audit entry",
			zap.Error(err),
			zap.String("account_id", entry.AccountID.String()),
			zap.String("action", string(entry.Action)),
		)
		return fmt.Errorf("append audit entry for account %s: %w", entry.AccountID.String(), err)
	}

	return nil
}

func (r *auditLogRepository) FindByAccountID(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*entity.CreditAuditEntry, error) {
	query := `
		SELECT id, account_id, action, credits_before, credits_after, credits_changed, metadata, created_at
		FROM credit_audit_log
		WHERE account_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find audit entries by account ID",
			zap.Error(err),
			zap.String("account_id", accountID.String()),
		)
		return nil, fmt.Errorf("find audit entries for account %s: %w", accountID.String(), err)
	}
	defer rows.Close()

	var entries []*entity.CreditAuditEntry
	for rows.Next() {
		var entry entity.CreditAuditEntry
		err := rows.Scan(
			&entry.ID,
			&entry.AccountID,
			&entry.Action,
			&entry.CreditsBefore,
			&entry.CreditsAfter,
			&entry.CreditsChanged,
			&entry.Metadata,
			&entry.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan audit entry row", zap.Error(err))
			return nil, fmt.Errorf("scan audit entry row: %w", err)
		}
		entries = append(entries, &entry)
	}

	return entries, nil
}

func (r *auditLogRepository) CountByAccountID(ctx context.Context, accountID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM credit_audit_log WHERE account_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, accountID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count audit entries",
			zap.Error(err),
			zap.String("account_id", accountID.String()),
		)
		return 0, fmt.Errorf("count audit entries for account %s: %w", accountID.String(), err)
	}

	return count, nil
}

// BreakdownByAccountID categorizes credit acquisitions by metadata source.
// Only acquisition actions count; refunds return credits already counted by
// their original purchase entry. Entries without a source count as purchased.
func (r *auditLogRepository) BreakdownByAccountID(ctx context.Context, accountID uuid.UUID) (*CreditBreakdown, error) {
	query := `
		SELECT
			COALESCE(SUM(credits_changed) FILTER (WHERE COALESCE(metadata->>'source', 'purchased') = 'purchased'), 0),
			COALESCE(SUM(credits_changed) FILTER (WHERE metadata->>'source' = 'bonus'), 0),
			COALESCE(SUM(credits_changed) FILTER (WHERE metadata->>'source' = 'promotional'), 0)
		FROM credit_audit_log
		WHERE account_id = $1
		  AND action IN ('purchase', 'manual_adjustment')
		  AND credits_changed > 0
	`

	var breakdown CreditBreakdown
	err := r.db.QueryRow(ctx, query, accountID).Scan(
		&breakdown.Purchased,
		&breakdown.Bonus,
		&breakdown.Promotional,
	)
	if err != nil {
		r.log.Error("Failed to compute credit breakdown",
			zap.Error(err),
			zap.String("account_id", accountID.String()),
		)
		return nil, fmt.Errorf("compute credit breakdown for account %s: %w", accountID.String(), err)
	}

	return &breakdown, nil
}

// SumChangesByAccountID replays the ledger for one account. The result must
// always equal accounts.credits (reconciliation invariant).
func (r *auditLogRepository) SumChangesByAccountID(ctx context.Context, accountID uuid.UUID) (int, error) {
	query := `SELECT COALESCE(SUM(credits_changed), 0) FROM credit_audit_log WHERE account_id = $1`

	var sum int
	err := r.db.QueryRow(ctx, query, accountID).Scan(&sum)
	if err != nil {
		r.log.Error("Failed to sum audit changes",
			zap.Error(err),
			zap.String("account_id", accountID.String()),
		)
		return 0, fmt.Errorf("sum audit changes for account %s: %w", accountID.String(), err)
	}

	return sum, nil
}
