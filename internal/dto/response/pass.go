package response

import (
	"time"

	"fitbook/internal/data/entity"
)

type TouristPassResponse struct {
	ID               string    `json:"id"`
	AccountID        string    `json:"account_id"`
	StartsAt         time.Time `json:"starts_at"`
	EndsAt           time.Time `json:"ends_at"`
	ClassesTotal     int       `json:"classes_total"`
	ClassesUsed      int       `json:"classes_used"`
	ClassesRemaining int       `json:"classes_remaining"`
	Active           bool      `json:"active"`
}

func TouristPassToResponse(pass *entity.TouristPass) TouristPassResponse {
	return TouristPassResponse{
		ID:               pass.ID.String(),
		AccountID:        pass.AccountID.String(),
		StartsAt:         pass.StartsAt,
		EndsAt:           pass.EndsAt,
		ClassesTotal:     pass.ClassesTotal,
		ClassesUsed:      pass.ClassesUsed,
		ClassesRemaining: pass.ClassesRemaining(),
		Active:           pass.Active,
	}
}
