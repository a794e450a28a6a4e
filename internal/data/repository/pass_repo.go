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

type TouristPassRepository interface {
	Create(ctx context.Context, pass *entity.TouristPass) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.TouristPass, error)

	// FindActiveByAccountID returns the most recently created pass that is
	// active and not past its window, or nil when the account has none.
	FindActiveByAccountID(ctx context.Context, accountID uuid.UUID, now time.Time) (*entity.TouristPass, error)
	FindActiveByAccountIDForUpdate(ctx context.Context, accountID uuid.UUID, now time.Time) (*entity.TouristPass, error)

	// AdjustUsed applies a signed delta to classes_used, guarded so the
	// result stays within [0, classes_total]. ok is false when the guard
	// rejects the update or the pass does not exist.
	AdjustUsed(ctx context.Context, id uuid.UUID, delta int) (classesUsed int, ok bool, err error)
}

type touristPassRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewTouristPassRepository(db database.Querier, log *zap.Logger) TouristPassRepository {
	return &touristPassRepository{
		db:  db,
		log: log.With(zap.String("repository", "tourist_pass")),
	}
}

const passColumns = `id, account_id, starts_at, ends_at, classes_total, classes_used, active, created_at, updated_at`

func scanPass(row pgx.Row) (*entity.TouristPass, error) {
	var pass entity.TouristPass
	err := row.Scan(
		&pass.ID,
		&pass.AccountID,
		&pass.StartsAt,
		&pass.EndsAt,
		&pass.ClassesTotal,
		&pass.ClassesUsed,
		&pass.Active,
		&pass.CreatedAt,
		&pass.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &pass, nil
}

func (r *touristPassRepository) Create(ctx context.Context, pass *entity.TouristPass) error {
	query := `
		INSERT INTO tourist_passes (id, account_id, starts_at, ends_at, classes_total, classes_used, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		pass.ID,
		pass.AccountID,
		pass.StartsAt,
		pass.EndsAt,
		pass.ClassesTotal,
		pass.ClassesUsed,
		pass.Active,
		pass.CreatedAt,
		pass.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create tourist pass",
			zap.Error(err),
			zap.String("pass_id", pass.ID.String()),
			zap.String("account_id", pass.AccountID.String()),
		)
		return fmt.Errorf("create tourist pass %s: %w", pass.ID.String(), err)
	}

	return nil
}

func (r *touristPassRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.TouristPass, error) {
	query := `SELECT ` + passColumns + ` FROM tourist_passes WHERE id = $1`

	pass, err := scanPass(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find tourist pass by ID",
			zap.Error(err),
			zap.String("pass_id", id.String()),
		)
		return nil, fmt.Errorf("find tourist pass by ID %s: %w", id.String(), err)
	}

	return pass, nil
}

func (r *touristPassRepository) FindActiveByAccountID(ctx context.Context, accountID uuid.UUID, now time.Time) (*entity.TouristPass, error) {
	return r.findActive(ctx, accountID, now, false)
}

func (r *touristPassRepository) FindActiveByAccountIDForUpdate(ctx context.Context, accountID uuid.UUID, now time.Time) (*entity.TouristPass, error) {
	return r.findActive(ctx, accountID, now, true)
}

func (r *touristPassRepository) findActive(ctx context.Context, accountID uuid.UUID, now time.Time, forUpdate bool) (*entity.TouristPass, error) {
	query := `
		SELECT ` + passColumns + `
		FROM tourist_passes
		WHERE account_id = $1 AND active = TRUE AND ends_at >= $2
		ORDER BY created_at DESC
		LIMIT 1
	`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	pass, err := scanPass(r.db.QueryRow(ctx, query, accountID, now))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find active tourist pass",
			zap.Error(err),
			zap.String("account_id", accountID.String()),
		)
		return nil, fmt.Errorf("find active tourist pass for account %s: %w", accountID.String(), err)
	}

	return pass, nil
}

func (r *touristPassRepository) AdjustUsed(ctx context.Context, id uuid.UUID, delta int) (int, bool, error) {
	query := `
		UPDATE tourist_passes
		SET classes_used = classes_used + $2, updated_at = NOW()
		WHERE id = $1
		  AND classes_used + $2 >= 0
		  AND classes_used + $2 <= classes_total
		RETURNING classes_used
	`

	var classesUsed int
	err := r.db.QueryRow(ctx, query, id, delta).Scan(&classesUsed)
	if err == pgx.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		r.log.Error("Failed to adjust tourist pass usage",
			zap.Error(err),
			zap.String("pass_id", id.String()),
			zap.Int("delta", delta),
		)
		return 0, false, fmt.Errorf("adjust usage for tourist pass %s: %w", id.String(), err)
	}

	return classesUsed, true, nil
}
