package models

import "time"

// Built-in badge names, seeded at startup
const (
	BadgeFirstReview  = "First Review"
	BadgeFirstMastery = "Algorithm Master"
	BadgeWeekStreak   = "Week Streak"
)

// Badge represents a milestone award definition
type Badge struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// UserBadge links a badge to the user who earned it
type UserBadge struct {
	ID       int64     `json:"id" db:"id"`
	UserID   int64     `json:"user_id" db:"user_id"`
	BadgeID  int64     `json:"badge_id" db:"badge_id"`
	EarnedAt time.Time `json:"earned_at" db:"earned_at"`
}
