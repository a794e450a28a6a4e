package repository

import (
	"context"
	"errors"
	"fmt"

	"fitbook/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type Repository struct {
	Account AccountRepository
	Audit   AuditLogRepository
	Class   ClassSessionRepository
	Booking BookingRepository
	Pass    TouristPassRepository

	// Tx runs a function against a repository view bound to a single
	// database transaction. The ledger's atomicity guarantees (capacity
	// check + insert, debit + insert) all go through here.
	Tx TxRunner
}

type TxRunner interface {
	WithTx(ctx context.Context, fn func(*Repository) error) error
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	r := newRepository(db, log)
	r.Tx = &pgxTxRunner{db: db, log: log}
	return r
}

func newRepository(q database.Querier, log *zap.Logger) *Repository {
	return &Repository{
		Account: NewAccountRepository(q, log),
		Audit:   NewAuditLogRepository(q, log),
		Class:   NewClassSessionRepository(q, log),
		Booking: NewBookingRepository(q, log),
		Pass:    NewTouristPassRepository(q, log),
	}
}

type pgxTxRunner struct {
	db  database.PgxIface
	log *zap.Logger
}

func (t *pgxTxRunner) WithTx(ctx context.Context, fn func(*Repository) error) error {
	tx, err := t.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	txRepo := newRepository(tx, t.log)
	// Already inside a transaction; nested WithTx calls reuse it.
	txRepo.Tx = inTxRunner{repo: txRepo}

	if err := fn(txRepo); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			t.log.Error("Failed to rollback transaction", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

type inTxRunner struct {
	repo *Repository
}

func (t inTxRunner) WithTx(ctx context.Context, fn func(*Repository) error) error {
	return fn(t.repo)
}
