package usecase

import (
	"context"
	"fmt"
	"time"

	"fitbook/internal/data/entity"
	"fitbook/internal/data/repository"
	"fitbook/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PassService interface {
	// GetActivePass returns the account's current pass, or nil when none
	// is active. At most one pass is considered current.
	GetActivePass(ctx context.Context, accountID uuid.UUID) (*response.TouristPassResponse, error)

	// GrantPass creates a pass after a tourist-package purchase.
	GrantPass(ctx context.Context, accountID uuid.UUID, classesTotal int, startsAt, endsAt time.Time) (*response.TouristPassResponse, error)

	// ConsumeUnit uses one class from the pass; PassExhausted when none
	// remain.
	ConsumeUnit(ctx context.Context, passID uuid.UUID) (int, error)

	// RefundUnit returns one class to the pass, floored at zero used.
	RefundUnit(ctx context.Context, passID uuid.UUID) (int, error)
}

type passService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewPassService(repo *repository.Repository, log *zap.Logger) PassService {
	return &passService{
		repo: repo,
		log:  log.With(zap.String("service", "pass")),
	}
}

func (s *passService) GetActivePass(ctx context.Context, accountID uuid.UUID) (*response.TouristPassResponse, error) {
	pass, err := s.repo.Pass.FindActiveByAccountID(ctx, accountID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("get active pass: %w", err)
	}
	if pass == nil {
		return nil, nil
	}

	resp := response.TouristPassToResponse(pass)
	return &resp, nil
}

func (s *passService) GrantPass(ctx context.Context, accountID uuid.UUID, classesTotal int, startsAt, endsAt time.Time) (*response.TouristPassResponse, error) {
	if classesTotal <= 0 {
		return nil, fmt.Errorf("classes_total must be positive, got %d", classesTotal)
	}
	if !endsAt.After(startsAt) {
		return nil, fmt.Errorf("pass window ends %s before it starts %s", endsAt, startsAt)
	}

	account, err := s.repo.Account.FindByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("grant pass: %w", err)
	}
	if account == nil {
		return nil, fmt.Errorf("account %s: %w", accountID.String(), ErrNotFound)
	}

	now := time.Now()
	pass := &entity.TouristPass{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		AccountID:    accountID,
		StartsAt:     startsAt,
		EndsAt:       endsAt,
		ClassesTotal: classesTotal,
		ClassesUsed:  0,
		Active:       true,
	}

	if err := s.repo.Pass.Create(ctx, pass); err != nil {
		return nil, fmt.Errorf("grant pass: %w", err)
	}

	s.log.Info("Tourist pass granted",
		zap.String("pass_id", pass.ID.String()),
		zap.String("account_id", accountID.String()),
		zap.Int("classes_total", classesTotal),
		zap.Time("ends_at", endsAt),
	)

	resp := response.TouristPassToResponse(pass)
	return &resp, nil
}

func (s *passService) ConsumeUnit(ctx context.Context, passID uuid.UUID) (int, error) {
	classesUsed, ok, err := s.repo.Pass.AdjustUsed(ctx, passID, 1)
	if err != nil {
		return 0, fmt.Errorf("consume pass unit: %w", err)
	}
	if !ok {
		pass, findErr := s.repo.Pass.FindByID(ctx, passID)
		if findErr != nil {
			return 0, findErr
		}
		if pass == nil {
			return 0, fmt.Errorf("tourist pass %s: %w", passID.String(), ErrNotFound)
		}
		return 0, fmt.Errorf("tourist pass %s: %w", passID.String(), ErrPassExhausted)
	}

	return classesUsed, nil
}

func (s *passService) RefundUnit(ctx context.Context, passID uuid.UUID) (int, error) {
	classesUsed, ok, err := s.repo.Pass.AdjustUsed(ctx, passID, -1)
	if err != nil {
		return 0, fmt.Errorf("refund pass unit: %w", err)
	}
	if !ok {
		// Already at zero used; refunds are floored, not an error.
		pass, findErr := s.repo.Pass.FindByID(ctx, passID)
		if findErr != nil {
			return 0, findErr
		}
		if pass == nil {
			return 0, fmt.Errorf("tourist pass %s: %w", passID.String(), ErrNotFound)
		}
		return pass.ClassesUsed, nil
	}

	return classesUsed, nil
}
