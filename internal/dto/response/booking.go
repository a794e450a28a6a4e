package response

import (
	"time"

	"fitbook/internal/data/entity"
)

type BookingResponse struct {
	ID          string               `json:"id"`
	AccountID   string               `json:"account_id"`
	ClassID     string               `json:"class_id"`
	PassID      *string              `json:"pass_id,omitempty"`
	CreditsUsed int                  `json:"credits_used"`
	Status      entity.BookingStatus `json:"status"`
	CreatedAt   time.Time            `json:"created_at"`
}

// BookingResultResponse is the payload for a successful booking attempt.
type BookingResultResponse struct {
	Booking          BookingResponse `json:"booking"`
	RemainingCredits int             `json:"remaining_credits"`
}

func BookingToResponse(booking *entity.Booking) BookingResponse {
	resp := BookingResponse{
		ID:          booking.ID.String(),
		AccountID:   booking.AccountID.String(),
		ClassID:     booking.ClassID.String(),
		CreditsUsed: booking.CreditsUsed,
		Status:      booking.Status,
		CreatedAt:   booking.CreatedAt,
	}
	if booking.PassID != nil {
		passID := booking.PassID.String()
		resp.PassID = &passID
	}
	return resp
}
