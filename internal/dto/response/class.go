package response

import (
	"time"

	"fitbook/internal/data/entity"
)

type ClassSessionResponse struct {
	ID          string            `json:"id"`
	StudioID    string            `json:"studio_id"`
	Title       string            `json:"title"`
	StartsAt    time.Time         `json:"starts_at"`
	DurationMin int               `json:"duration_min"`
	MaxCapacity int               `json:"max_capacity"`
	CreditCost  int               `json:"credit_cost"`
	Difficulty  entity.Difficulty `json:"difficulty"`
}

func ClassSessionToResponse(class *entity.ClassSession) ClassSessionResponse {
	return ClassSessionResponse{
		ID:          class.ID.String(),
		StudioID:    class.StudioID.String(),
		Title:       class.Title,
		StartsAt:    class.StartsAt,
		DurationMin: class.DurationMin,
		MaxCapacity: class.MaxCapacity,
		CreditCost:  class.CreditCost,
		Difficulty:  class.Difficulty,
	}
}
