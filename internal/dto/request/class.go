package request

type CreateClassRequest struct {
	StudioID    string `json:"studio_id" validate:"required,uuid4"`
	Title       string `json:"title" validate:"required,min=1,max=200"`
	StartsAt    string `json:"starts_at" validate:"required"`
	DurationMin int    `json:"duration_min" validate:"required,min=1"`
	MaxCapacity int    `json:"max_capacity" validate:"required,min=1"`
	CreditCost  int    `json:"credit_cost" validate:"min=0"`
	Difficulty  string `json:"difficulty" validate:"required,oneof=beginner intermediate advanced all_levels"`
}
