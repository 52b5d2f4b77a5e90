package models

import "time"

// LearningStatus is the externally visible mastery status of a learning record.
type LearningStatus string

const (
	// StatusToLearn marks an enrolled algorithm that has never been reviewed
	StatusToLearn LearningStatus = "to_learn"
	// StatusLearning marks an algorithm in the active review cycle
	StatusLearning LearningStatus = "learning"
	// StatusMastered marks an algorithm that reached the top mastery level
	StatusMastered LearningStatus = "mastered"
)

// MaxLevel is the mastery level at which an algorithm is considered mastered
const MaxLevel = 5

// LearningRecord tracks a user's progress with a single algorithm.
// One record exists per (user, algorithm) pair; it is created on enrollment
// and mutated only by grading.
type LearningRecord struct {
	ID             int64          `json:"id" db:"id"`
	UserID         int64          `json:"user_id" db:"user_id"`
	AlgorithmID    int64          `json:"algorithm_id" db:"algorithm_id"`
	Status         LearningStatus `json:"status" db:"status"`
	CurrentLevel   int            `json:"current_level" db:"current_level"`     // 0-5 mastery level
	NextReviewDate time.Time      `json:"next_review_date" db:"next_review_date"`
	LastReviewed   time.Time      `json:"last_reviewed" db:"last_reviewed"`
	ReviewCount    int            `json:"review_count" db:"review_count"`
	SuccessCount   int            `json:"success_count" db:"success_count"`
	FailureCount   int            `json:"failure_count" db:"failure_count"`
	StreakDays     int            `json:"streak_days" db:"streak_days"` // Consecutive successful review days
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at" db:"updated_at"`
}
