// Package queue defines message payloads exchanged over the message broker,
// the payment-confirmation consumer, and the booking event publisher.
package queue

// PaymentConfirmedEvent arrives from the payment processor after out-of-band
// verification. Source defaults to "purchased" when omitted.
type PaymentConfirmedEvent struct {
	AccountID        string `json:"account_id"`
	Credits          int    `json:"credits"`
	Source           string `json:"source,omitempty"`
	PaymentReference string `json:"payment_reference"`
	ConfirmedAt      string `json:"confirmed_at,omitempty"`
}

// BookingConfirmedEvent is published after a booking commits. It carries
// enough information for downstream consumers (notifications, analytics)
// without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID        string `json:"booking_id"`
	AccountID        string `json:"account_id"`
	ClassID          string `json:"class_id"`
	ClassTitle       string `json:"class_title"`
	CreditsUsed      int    `json:"credits_used"`
	PassFunded       bool   `json:"pass_funded"`
	RemainingCredits int    `json:"remaining_credits"`
	ConfirmedAt      string `json:"confirmed_at"`
}
