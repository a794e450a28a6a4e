package request

type GrantPassRequest struct {
	AccountID    string `json:"account_id" validate:"required,uuid4"`
	ClassesTotal int    `json:"classes_total" validate:"required,min=1"`
	StartsAt     string `json:"starts_at" validate:"required"`
	EndsAt       string `json:"ends_at" validate:"required"`
}
