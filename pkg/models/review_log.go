package models

import "time"

// ReviewLog records a single grading event for a learning record.
// Logs are append-only; they keep the algorithm state snapshot at review time.
type ReviewLog struct {
	ID          int64     `json:"id" db:"id"`
	UserID      int64     `json:"user_id" db:"user_id"`
	AlgorithmID int64     `json:"algorithm_id" db:"algorithm_id"`
	Success     bool      `json:"success" db:"success"`
	LevelBefore int       `json:"level_before" db:"level_before"`
	LevelAfter  int       `json:"level_after" db:"level_after"`
	ReviewedAt  time.Time `json:"reviewed_at" db:"reviewed_at"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
