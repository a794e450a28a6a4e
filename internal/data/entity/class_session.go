package entity

import (
	"time"

	"github.com/google/uuid"
)

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
	DifficultyAllLevels    Difficulty = "all_levels"
)

type ClassSession struct {
	Base
	StudioID    uuid.UUID  `db:"studio_id"`
	Title       string     `db:"title"`
	StartsAt    time.Time  `db:"starts_at"`
	DurationMin int        `db:"duration_min"`
	MaxCapacity int        `db:"max_capacity"`
	CreditCost  int        `db:"credit_cost"`
	Difficulty  Difficulty `db:"difficulty"`
}
