package response

import (
	"time"

	"fitbook/internal/data/entity"
)

type AccountResponse struct {
	ID       string                  `json:"id"`
	Email    string                  `json:"email"`
	Credits  int                     `json:"credits"`
	Frozen   bool                    `json:"frozen"`
	FrozenAt *time.Time              `json:"frozen_at,omitempty"`
	Tier     entity.SubscriptionTier `json:"tier"`
}

func AccountToResponse(account *entity.Account) AccountResponse {
	return AccountResponse{
		ID:       account.ID.String(),
		Email:    account.Email,
		Credits:  account.Credits,
		Frozen:   account.Frozen,
		FrozenAt: account.FrozenAt,
		Tier:     account.Tier,
	}
}
