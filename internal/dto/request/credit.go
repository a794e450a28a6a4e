package request

type AddCreditsRequest struct {
	AccountID        string `json:"account_id" validate:"required,uuid4"`
	Amount           int    `json:"amount" validate:"required,min=1"`
	Source           string `json:"source" validate:"omitempty,oneof=purchased bonus promotional manual"`
	PaymentReference string `json:"payment_reference,omitempty"`
}
