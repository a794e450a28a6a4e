package repository

import (
	"context"
	"fmt"

	"fitbook/internal/data/entity"
	"fitbook/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ClassSessionRepository interface {
	Create(ctx context.Context, class *entity.ClassSession) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ClassSession, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.ClassSession, error)
	List(ctx context.Context, limit, offset int) ([]*entity.ClassSession, error)
	Count(ctx context.Context) (int64, error)
}

type classSessionRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewClassSessionRepository(db database.Querier, log *zap.Logger) ClassSessionRepository {
	return &classSessionRepository{
		db:  db,
		log: log.With(zap.String("repository", "class_session")),
	}
}

const classColumns = `id, studio_id, title, starts_at, duration_min, max_capacity, credit_cost, difficulty, created_at, updated_at`

func scanClassSession(row pgx.Row) (*entity.ClassSession, error) {
	var class entity.ClassSession
	err := row.Scan(
		&class.ID,
		&class.StudioID,
		&class.Title,
		&class.StartsAt,
		&class.DurationMin,
		&class.MaxCapacity,
		&class.CreditCost,
		&class.Difficulty,
		&class.CreatedAt,
		&class.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *classSessionRepository) Create(ctx context.Context, class *entity.ClassSession) error {
	query := `
		INSERT INTO class_sessions (id, studio_id, title, starts_at, duration_min, max_capacity, credit_cost, difficulty, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		class.ID,
		class.StudioID,
		class.Title,
		class.StartsAt,
		class.DurationMin,
		class.MaxCapacity,
		class.CreditCost,
		class.Difficulty,
		class.CreatedAt,
		class.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create class session",
			zap.Error(err),
			zap.String("class_id", class.ID.String()),
			zap.String("title", class.Title),
		)
		return fmt.Errorf("create class session %s: %w", class.ID.String(), err)
	}

	return nil
}

func (r *classSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ClassSession, error) {
	query := `SELECT ` + classColumns + ` FROM class_sessions WHERE id = $1`

	class, err := scanClassSession(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find class session by ID",
			zap.Error(err),
			zap.String("class_id", id.String()),
		)
		return nil, fmt.Errorf("find class session by ID %s: %w", id.String(), err)
	}

	return class, nil
}

// FindByIDForUpdate locks the class row for the rest of the transaction.
// Concurrent booking attempts for the same class serialize here, which is
// what keeps the capacity check and the booking insert atomic.
func (r *classSessionRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.ClassSession, error) {
	query := `SELECT ` + classColumns + ` FROM class_sessions WHERE id = $1 FOR UPDATE`

	class, err := scanClassSession(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to lock class session row",
			zap.Error(err),
			zap.String("class_id", id.String()),
		)
		return nil, fmt.Errorf("lock class session %s: %w", id.String(), err)
	}

	return class, nil
}

func (r *classSessionRepository) List(ctx context.Context, limit, offset int) ([]*entity.ClassSession, error) {
	query := `
		SELECT ` + classColumns + `
		FROM class_sessions
		ORDER BY starts_at
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to list class sessions", zap.Error(err))
		return nil, fmt.Errorf("list class sessions: %w", err)
	}
	defer rows.Close()

	var classes []*entity.ClassSession
	for rows.Next() {
		var class entity.ClassSession
		err := rows.Scan(
			&class.ID,
			&class.StudioID,
			&class.Title,
			&class.StartsAt,
			&class.DurationMin,
			&class.MaxCapacity,
			&class.CreditCost,
			&class.Difficulty,
			&class.CreatedAt,
			&class.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan class session row", zap.Error(err))
			return nil, fmt.Errorf("scan class session row: %w", err)
		}
		classes = append(classes, &class)
	}

	return classes, nil
}

func (r *classSessionRepository) Count(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM class_sessions`

	var count int64
	err := r.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count class sessions", zap.Error(err))
		return 0, fmt.Errorf("count class sessions: %w", err)
	}

	return count, nil
}
