package usecase

import (
	"context"
	"fmt"
	"time"

	"fitbook/internal/billing"
	"fitbook/internal/data/entity"
	"fitbook/internal/data/repository"
	"fitbook/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AccountService interface {
	// EnsureAccount creates the account on first authenticated access.
	// Existing accounts are left untouched.
	EnsureAccount(ctx context.Context, accountID uuid.UUID, email string) error

	GetAccount(ctx context.Context, accountID uuid.UUID) (*response.AccountResponse, error)

	// Freeze moves active -> frozen. The credit balance is untouched, an
	// account_frozen audit entry is recorded, and the billing plan swap
	// happens after commit as a best-effort call.
	Freeze(ctx context.Context, accountID uuid.UUID) error

	// Unfreeze moves frozen -> active and restores the plan recorded
	// before the freeze, falling back to the account's tier.
	Unfreeze(ctx context.Context, accountID uuid.UUID) error
}

type accountService struct {
	repo    *repository.Repository
	billing *billing.Client
	log     *zap.Logger
}

func NewAccountService(repo *repository.Repository, billingClient *billing.Client, log *zap.Logger) AccountService {
	return &accountService{
		repo:    repo,
		billing: billingClient,
		log:     log.With(zap.String("service", "account")),
	}
}

func (s *accountService) EnsureAccount(ctx context.Context, accountID uuid.UUID, email string) error {
	now := time.Now()
	account := &entity.Account{
		Base: entity.Base{
			ID:        accountID,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:   email,
		Credits: 0,
		Frozen:  false,
		Tier:    entity.TierFree,
	}

	if err := s.repo.Account.Ensure(ctx, account); err != nil {
		return fmt.Errorf("ensure account %s: %w", accountID.String(), err)
	}

	return nil
}

func (s *accountService) GetAccount(ctx context.Context, accountID uuid.UUID) (*response.AccountResponse, error) {
	account, err := s.repo.Account.FindByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	if account == nil {
		return nil, fmt.Errorf("account %s: %w", accountID.String(), ErrNotFound)
	}

	resp := response.AccountToResponse(account)
	return &resp, nil
}

func (s *accountService) Freeze(ctx context.Context, accountID uuid.UUID) error {
	var billingRef *string

	err := s.repo.Tx.WithTx(ctx, func(r *repository.Repository) error {
		account, err := r.Account.FindByIDForUpdate(ctx, accountID)
		if err != nil {
			return err
		}
		if account == nil {
			return fmt.Errorf("account %s: %w", accountID.String(), ErrNotFound)
		}
		if account.Frozen {
			return fmt.Errorf("account %s already frozen: %w", accountID.String(), ErrAlreadyInState)
		}

		now := time.Now()
		previousTier := account.Tier
		if err := r.Account.SetFrozen(ctx, accountID, true, &now, &previousTier); err != nil {
			return err
		}

		billingRef = account.BillingRef

		return appendNeutralAudit(ctx, r, account, entity.AuditActionAccountFrozen, map[string]string{
			"previous_tier": string(previousTier),
		})
	})
	if err != nil {
		return err
	}

	s.log.Info("Account frozen", zap.String("account_id", accountID.String()))

	// Best-effort: the freeze has committed; a failed plan swap is logged
	// and reconciled out of band.
	s.swapPlan(ctx, accountID, billingRef, s.billing.FreezePlan())

	return nil
}

func (s *accountService) Unfreeze(ctx context.Context, accountID uuid.UUID) error {
	var billingRef *string
	var restorePlan string

	err := s.repo.Tx.WithTx(ctx, func(r *repository.Repository) error {
		account, err := r.Account.FindByIDForUpdate(ctx, accountID)
		if err != nil {
			return err
		}
		if account == nil {
			return fmt.Errorf("account %s: %w", accountID.String(), ErrNotFound)
		}
		if !account.Frozen {
			return fmt.Errorf("account %s not frozen: %w", accountID.String(), ErrAlreadyInState)
		}

		restorePlan = string(account.Tier)
		if account.PreviousTier != nil {
			restorePlan = string(*account.PreviousTier)
		}

		if err := r.Account.SetFrozen(ctx, accountID, false, nil, nil); err != nil {
			return err
		}

		billingRef = account.BillingRef

		return appendNeutralAudit(ctx, r, account, entity.AuditActionAccountUnfrozen, map[string]string{
			"restored_plan": restorePlan,
		})
	})
	if err != nil {
		return err
	}

	s.log.Info("Account unfrozen",
		zap.String("account_id", accountID.String()),
		zap.String("restored_plan", restorePlan),
	)

	s.swapPlan(ctx, accountID, billingRef, restorePlan)

	return nil
}

func (s *accountService) swapPlan(ctx context.Context, accountID uuid.UUID, billingRef *string, plan string) {
	if billingRef == nil {
		s.log.Debug("No billing reference, skipping plan swap",
			zap.String("account_id", accountID.String()),
		)
		return
	}

	// Skip the swap when billing already carries the target plan, e.g.
	// after a retried freeze whose first swap did land.
	if sub, err := s.billing.GetSubscription(ctx, *billingRef); err == nil && sub.Plan == plan {
		s.log.Debug("Billing plan already current",
			zap.String("account_id", accountID.String()),
			zap.String("plan", plan),
		)
		return
	}

	if err := s.billing.ChangePlan(ctx, *billingRef, plan); err != nil {
		s.log.Warn("Billing plan swap failed, reconcile out of band",
			zap.Error(err),
			zap.String("account_id", accountID.String()),
			zap.String("plan", plan),
		)
	}
}
