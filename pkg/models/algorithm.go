package models

import "time"

// ModerationStatus is the review state of a community-submitted algorithm
type ModerationStatus string

const (
	ModerationDraft    ModerationStatus = "draft"
	ModerationPending  ModerationStatus = "pending"
	ModerationApproved ModerationStatus = "approved"
	ModerationRejected ModerationStatus = "rejected"
)

// Algorithm represents a solving algorithm from the catalog
type Algorithm struct {
	ID          int64            `json:"id" db:"id"`
	Name        string           `json:"name" db:"name"`         // e.g. "T Perm"
	Notation    string           `json:"notation" db:"notation"` // Move sequence, e.g. "R U R' U' R' F R2 U' R' U' R U R' F'"
	Description string           `json:"description" db:"description"`
	MethodID    int64            `json:"method_id" db:"method_id"`
	Difficulty  int              `json:"difficulty" db:"difficulty"` // 1-5 scale
	Status      ModerationStatus `json:"status" db:"status"`
	CreatedBy   int64            `json:"created_by" db:"created_by"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at" db:"updated_at"`
}
