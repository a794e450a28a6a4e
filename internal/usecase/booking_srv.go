package usecase

import (
	"context"
	"fmt"
	"time"

	"fitbook/internal/cache"
	"fitbook/internal/data/entity"
	"fitbook/internal/data/repository"
	"fitbook/internal/dto/request"
	"fitbook/internal/dto/response"
	"fitbook/internal/queue"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// AttemptBooking books one spot in a class. Preconditions are checked
	// in order (frozen, class exists, capacity, funding) and the first
	// failure aborts with no side effect. Funding comes from an active
	// tourist pass when one has classes remaining, otherwise from credits.
	AttemptBooking(ctx context.Context, accountID, classID uuid.UUID) (*response.BookingResultResponse, error)

	// CancelBooking transitions confirmed -> cancelled and reverses
	// exactly the funding source the booking used.
	CancelBooking(ctx context.Context, bookingID uuid.UUID) error

	// CompleteBooking transitions confirmed -> completed. No ledger effect.
	CompleteBooking(ctx context.Context, bookingID uuid.UUID) error

	GetAccountBookings(ctx context.Context, accountID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
}

type bookingService struct {
	repo      *repository.Repository
	cache     *cache.CreditCache
	publisher *queue.Publisher
	log       *zap.Logger
}

func NewBookingService(repo *repository.Repository, creditCache *cache.CreditCache, publisher *queue.Publisher, log *zap.Logger) BookingService {
	return &bookingService{
		repo:      repo,
		cache:     creditCache,
		publisher: publisher,
		log:       log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) AttemptBooking(ctx context.Context, accountID, classID uuid.UUID) (*response.BookingResultResponse, error) {
	var (
		booking          *entity.Booking
		class            *entity.ClassSession
		remainingCredits int
	)

	err := s.repo.Tx.WithTx(ctx, func(r *repository.Repository) error {
		// Lock the account row first: serializes balance changes and
		// pins the frozen flag for the rest of the transaction.
		account, err := r.Account.FindByIDForUpdate(ctx, accountID)
		if err != nil {
			return err
		}
		if account == nil {
			return fmt.Errorf("account %s: %w", accountID.String(), ErrNotFound)
		}
		if account.Frozen {
			return fmt.Errorf("account %s: %w", accountID.String(), ErrAccountFrozen)
		}

		// Lock the class row: concurrent attempts for the same class
		// serialize here, making the capacity check-and-insert atomic.
		class, err = r.Class.FindByIDForUpdate(ctx, classID)
		if err != nil {
			return err
		}
		if class == nil {
			return fmt.Errorf("class %s: %w", classID.String(), ErrNotFound)
		}

		confirmed, err := r.Booking.CountConfirmedByClassID(ctx, classID)
		if err != nil {
			return err
		}
		if confirmed >= class.MaxCapacity {
			return fmt.Errorf("class %s at capacity %d: %w", classID.String(), class.MaxCapacity, ErrClassFull)
		}

		now := time.Now()
		bookingID := uuid.New()
		creditsUsed := 0
		remainingCredits = account.Credits
		var passID *uuid.UUID

		// Funding: an active pass with classes remaining wins;
		// an exhausted pass falls through to credits.
		pass, err := r.Pass.FindActiveByAccountIDForUpdate(ctx, accountID, now)
		if err != nil {
			return err
		}

		if pass != nil && pass.ClassesRemaining() > 0 {
			if _, ok, err := r.Pass.AdjustUsed(ctx, pass.ID, 1); err != nil {
				return err
			} else if !ok {
				return fmt.Errorf("tourist pass %s: %w", pass.ID.String(), ErrPassExhausted)
			}
			passID = &pass.ID
		} else if class.CreditCost > 0 {
			metadata := map[string]string{
				"booking_id": bookingID.String(),
				"class_id":   classID.String(),
			}
			newBalance, err := applyCreditChange(ctx, r, accountID, -class.CreditCost, entity.AuditActionBookingDebit, metadata)
			if err != nil {
				return err
			}
			creditsUsed = class.CreditCost
			remainingCredits = newBalance
		}

		booking = &entity.Booking{
			Base: entity.Base{
				ID:        bookingID,
				CreatedAt: now,
				UpdatedAt: now,
			},
			AccountID:   accountID,
			ClassID:     classID,
			PassID:      passID,
			CreditsUsed: creditsUsed,
			Status:      entity.BookingStatusConfirmed,
		}

		return r.Booking.Create(ctx, booking)
	})
	if err != nil {
		return nil, err
	}

	if booking.CreditsUsed > 0 {
		s.cache.Invalidate(ctx, accountID)
	}

	s.log.Info("Booking confirmed",
		zap.String("booking_id", booking.ID.String()),
		zap.String("account_id", accountID.String()),
		zap.String("class_id", classID.String()),
		zap.Int("credits_used", booking.CreditsUsed),
		zap.Bool("pass_funded", booking.PassID != nil),
		zap.Int("remaining_credits", remainingCredits),
	)

	// Best-effort event for downstream consumers.
	if err := s.publisher.PublishBookingConfirmed(ctx, queue.BookingConfirmedEvent{
		BookingID:        booking.ID.String(),
		AccountID:        accountID.String(),
		ClassID:          classID.String(),
		ClassTitle:       class.Title,
		CreditsUsed:      booking.CreditsUsed,
		PassFunded:       booking.PassID != nil,
		RemainingCredits: remainingCredits,
		ConfirmedAt:      booking.CreatedAt.UTC().Format(time.RFC3339),
	}); err != nil {
		s.log.Warn("Failed to publish booking event",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
	}

	result := &response.BookingResultResponse{
		Booking:          response.BookingToResponse(booking),
		RemainingCredits: remainingCredits,
	}
	return result, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID uuid.UUID) error {
	var accountID uuid.UUID
	var refunded int

	err := s.repo.Tx.WithTx(ctx, func(r *repository.Repository) error {
		booking, err := r.Booking.FindByIDForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		if booking == nil {
			return fmt.Errorf("booking %s: %w", bookingID.String(), ErrNotFound)
		}
		if booking.Status != entity.BookingStatusConfirmed {
			return fmt.Errorf("booking %s is %s: %w", bookingID.String(), booking.Status, ErrAlreadyInState)
		}

		if err := r.Booking.UpdateStatus(ctx, bookingID, entity.BookingStatusCancelled); err != nil {
			return err
		}

		accountID = booking.AccountID

		// Reverse exactly the funding source that was used, never both.
		if booking.PassID != nil {
			// Floored at zero by the repository guard.
			if _, _, err := r.Pass.AdjustUsed(ctx, *booking.PassID, -1); err != nil {
				return err
			}
			return nil
		}

		if booking.CreditsUsed > 0 {
			metadata := map[string]string{"booking_id": bookingID.String()}
			if _, err := applyCreditChange(ctx, r, booking.AccountID, booking.CreditsUsed, entity.AuditActionBookingRefund, metadata); err != nil {
				return err
			}
			refunded = booking.CreditsUsed
		}

		return nil
	})
	if err != nil {
		return err
	}

	if refunded > 0 {
		s.cache.Invalidate(ctx, accountID)
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID.String()),
		zap.String("account_id", accountID.String()),
		zap.Int("credits_refunded", refunded),
	)

	return nil
}

func (s *bookingService) CompleteBooking(ctx context.Context, bookingID uuid.UUID) error {
	err := s.repo.Tx.WithTx(ctx, func(r *repository.Repository) error {
		booking, err := r.Booking.FindByIDForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		if booking == nil {
			return fmt.Errorf("booking %s: %w", bookingID.String(), ErrNotFound)
		}
		if booking.Status != entity.BookingStatusConfirmed {
			return fmt.Errorf("booking %s is %s: %w", bookingID.String(), booking.Status, ErrAlreadyInState)
		}

		return r.Booking.UpdateStatus(ctx, bookingID, entity.BookingStatusCompleted)
	})
	if err != nil {
		return err
	}

	s.log.Info("Booking completed", zap.String("booking_id", bookingID.String()))
	return nil
}

func (s *bookingService) GetAccountBookings(ctx context.Context, accountID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.repo.Booking.FindByAccountID(ctx, accountID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get account bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("count account bookings: %w", err)
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		bookingResponses[i] = response.BookingToResponse(booking)
	}

	return response.NewPaginatedResponse(bookingResponses, req.Page, req.PerPage, total), nil
}
