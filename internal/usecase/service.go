package usecase

import (
	"fitbook/internal/billing"
	"fitbook/internal/cache"
	"fitbook/internal/data/repository"
	"fitbook/internal/queue"

	"go.uber.org/zap"
)

type Service struct {
	Credit  CreditService
	Booking BookingService
	Account AccountService
	Pass    PassService
	Class   ClassService
}

func NewService(repo *repository.Repository, billingClient *billing.Client, creditCache *cache.CreditCache, publisher *queue.Publisher, log *zap.Logger) *Service {
	return &Service{
		Credit:  NewCreditService(repo, creditCache, log),
		Booking: NewBookingService(repo, creditCache, publisher, log),
		Account: NewAccountService(repo, billingClient, log),
		Pass:    NewPassService(repo, log),
		Class:   NewClassService(repo, log),
	}
}
