package usecase

import (
	"context"
	"fmt"

	"fitbook/internal/cache"
	"fitbook/internal/data/entity"
	"fitbook/internal/data/repository"
	"fitbook/internal/dto/request"
	"fitbook/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CreditService interface {
	// GetActiveCredits returns the current non-expired balance.
	GetActiveCredits(ctx context.Context, accountID uuid.UUID) (int, error)

	// GetBreakdown is a derived view over audit history; no mutation.
	GetBreakdown(ctx context.Context, accountID uuid.UUID) (*response.CreditBreakdownResponse, error)

	// AddCredits grants amount > 0 credits and appends a purchase audit
	// entry (manual_adjustment when source is "manual").
	AddCredits(ctx context.Context, accountID uuid.UUID, amount int, source, paymentRef string) (int, error)

	// GetHistory pages through the account's audit log, newest first.
	GetHistory(ctx context.Context, accountID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.AuditEntryResponse], error)

	// Reconcile replays the ledger and compares it against the
	// materialized balance.
	Reconcile(ctx context.Context, accountID uuid.UUID) (*response.ReconciliationResponse, error)
}

type creditService struct {
	repo  *repository.Repository
	cache *cache.CreditCache
	log   *zap.Logger
}

func NewCreditService(repo *repository.Repository, creditCache *cache.CreditCache, log *zap.Logger) CreditService {
	return &creditService{
		repo:  repo,
		cache: creditCache,
		log:   log.With(zap.String("service", "credit")),
	}
}

func (s *creditService) GetActiveCredits(ctx context.Context, accountID uuid.UUID) (int, error) {
	if balance, ok := s.cache.Get(ctx, accountID); ok {
		return balance, nil
	}

	account, err := s.repo.Account.FindByID(ctx, accountID)
	if err != nil {
		return 0, fmt.Errorf("get active credits: %w", err)
	}
	if account == nil {
		return 0, fmt.Errorf("account %s: %w", accountID.String(), ErrNotFound)
	}

	s.cache.Set(ctx, accountID, account.Credits)

	return account.Credits, nil
}

func (s *creditService) GetBreakdown(ctx context.Context, accountID uuid.UUID) (*response.CreditBreakdownResponse, error) {
	account, err := s.repo.Account.FindByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("get breakdown: %w", err)
	}
	if account == nil {
		return nil, fmt.Errorf("account %s: %w", accountID.String(), ErrNotFound)
	}

	breakdown, err := s.repo.Audit.BreakdownByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("get breakdown: %w", err)
	}

	// Credits never expire; expiring_soon is informational only.
	return &response.CreditBreakdownResponse{
		Purchased:    breakdown.Purchased,
		Bonus:        breakdown.Bonus,
		Promotional:  breakdown.Promotional,
		ExpiringSoon: 0,
	}, nil
}

func (s *creditService) AddCredits(ctx context.Context, accountID uuid.UUID, amount int, source, paymentRef string) (int, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("credit amount must be positive, got %d", amount)
	}

	action := entity.AuditActionPurchase
	if source == "manual" {
		action = entity.AuditActionManualAdjustment
	}

	metadata := map[string]string{"source": source}
	if paymentRef != "" {
		metadata["payment_reference"] = paymentRef
	}

	var newBalance int
	err := s.repo.Tx.WithTx(ctx, func(r *repository.Repository) error {
		var txErr error
		newBalance, txErr = applyCreditChange(ctx, r, accountID, amount, action, metadata)
		return txErr
	})
	if err != nil {
		return 0, fmt.Errorf("add %d credits to account %s: %w", amount, accountID.String(), err)
	}

	s.cache.Invalidate(ctx, accountID)

	s.log.Info("Credits added",
		zap.String("account_id", accountID.String()),
		zap.Int("amount", amount),
		zap.String("source", source),
		zap.String("payment_reference", paymentRef),
		zap.Int("new_balance", newBalance),
	)

	return newBalance, nil
}

func (s *creditService) GetHistory(ctx context.Context, accountID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.AuditEntryResponse], error) {
	entries, err := s.repo.Audit.FindByAccountID(ctx, accountID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get credit history: %w", err)
	}

	total, err := s.repo.Audit.CountByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("count credit history: %w", err)
	}

	entryResponses := make([]response.AuditEntryResponse, len(entries))
	for i, entry := range entries {
		entryResponses[i] = response.AuditEntryToResponse(entry)
	}

	return response.NewPaginatedResponse(entryResponses, req.Page, req.PerPage, total), nil
}

func (s *creditService) Reconcile(ctx context.Context, accountID uuid.UUID) (*response.ReconciliationResponse, error) {
	account, err := s.repo.Account.FindByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("reconcile: %w", err)
	}
	if account == nil {
		return nil, fmt.Errorf("account %s: %w", accountID.String(), ErrNotFound)
	}

	ledgerTotal, err := s.repo.Audit.SumChangesByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("reconcile: %w", err)
	}

	consistent := ledgerTotal == account.Credits
	if !consistent {
		s.log.Error("Ledger reconciliation mismatch",
			zap.String("account_id", accountID.String()),
			zap.Int("credits", account.Credits),
			zap.Int("ledger_total", ledgerTotal),
		)
	}

	return &response.ReconciliationResponse{
		AccountID:   accountID.String(),
		Credits:     account.Credits,
		LedgerTotal: ledgerTotal,
		Consistent:  consistent,
	}, nil
}
