package repository

import (
	"context"
	"fmt"
	"time"

	"fitbook/internal/data/entity"
	"fitbook/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AccountRepository interface {
	Ensure(ctx context.Context, account *entity.Account) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// AdjustCredits applies a signed delta to the balance with a guard that
	// keeps it non-negative. ok is false when the guard rejects the update
	// or the account does not exist; no row is touched in that case.
	AdjustCredits(ctx context.Context, id uuid.UUID, delta int) (newBalance int, ok bool, err error)

	SetFrozen(ctx context.Context, id uuid.UUID, frozen bool, frozenAt *time.Time, previousTier *entity.SubscriptionTier) error
}

type accountRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewAccountRepository(db database.Querier, log *zap.Logger) AccountRepository {
	return &accountRepository{
		db:  db,
		log: log.With(zap.String("repository", "account")),
	}
}

const accountColumns = `id, email, credits, frozen, frozen_at, tier, previous_tier, billing_ref, created_at, updated_at`

func scanAccount(row pgx.Row) (*entity.Account, error) {
	var account entity.Account
	err := row.Scan(
		&account.ID,
		&account.Email,
		&account.Credits,
		&account.Frozen,
		&account.FrozenAt,
		&account.Tier,
		&account.PreviousTier,
		&account.BillingRef,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) Ensure(ctx context.Context, account *entity.Account) error {
	query := `
		INSERT INTO accounts (id, email, credits, frozen, tier, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query,
		account.ID,
		account.Email,
		account.Credits,
		account.Frozen,
		account.Tier,
		account.CreatedAt,
		account.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to ensure account",
			zap.Error(err),
			zap.String("account_id", account.ID.String()),
		)
		return fmt.Errorf("ensure account %s: %w", account.ID.String(), err)
	}

	return nil
}

func (r *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	account, err := scanAccount(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find account by ID",
			zap.Error(err),
			zap.String("account_id", id.String()),
		)
		return nil, fmt.Errorf("find account by ID %s: %w", id.String(), err)
	}

	return account, nil
}

func (r *accountRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1 FOR UPDATE`

	account, err := scanAccount(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to lock account row",
			zap.Error(err),
			zap.String("account_id", id.String()),
		)
		return nil, fmt.Errorf("lock account %s: %w", id.String(), err)
	}

	return account, nil
}

func (r *accountRepository) AdjustCredits(ctx context.Context, id uuid.UUID, delta int) (int, bool, error) {
	query := `
		UPDATE accounts
		SET credits = credits + $2, updated_at = NOW()
		WHERE id = $1 AND credits + $2 >= 0
		RETURNING credits
	`

	var newBalance int
	err := r.db.QueryRow(ctx, query, id, delta).Scan(&newBalance)
	if err == pgx.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		r.log.Error("Failed to adjust credits",
			zap.Error(err),
			zap.String("account_id", id.String()),
			zap.Int("delta", delta),
		)
		return 0, false, fmt.Errorf("adjust credits for account %s: %w", id.String(), err)
	}

	return newBalance, true, nil
}

func (r *accountRepository) SetFrozen(ctx context.Context, id uuid.UUID, frozen bool, frozenAt *time.Time, previousTier *entity.SubscriptionTier) error {
	query := `
		UPDATE accounts
		SET frozen = $2, frozen_at = $3, previous_tier = $4, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, frozen, frozenAt, previousTier)
	if err != nil {
		r.log.Error("Failed to update frozen state",
			zap.Error(err),
			zap.String("account_id", id.String()),
			zap.Bool("frozen", frozen),
		)
		return fmt.Errorf("set frozen=%t for account %s: %w", frozen, id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("account %s not found", id.String())
	}

	return nil
}
