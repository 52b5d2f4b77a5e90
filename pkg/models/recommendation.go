package models

// RecommendationReason explains why an algorithm was recommended.
// New heuristics add constants here without touching the due-list logic.
type RecommendationReason string

const (
	// ReasonDueForReview means the spaced-repetition schedule marks the algorithm due
	ReasonDueForReview RecommendationReason = "due_for_review"
)

// Recommendation is a prioritized suggestion for what to practice next
type Recommendation struct {
	AlgorithmID   int64                `json:"algorithm_id"`
	AlgorithmName string               `json:"algorithm_name,omitempty"`
	Notation      string               `json:"notation,omitempty"`
	Difficulty    int                  `json:"difficulty,omitempty"`
	Reason        RecommendationReason `json:"reason"`
	Priority      int                  `json:"priority"`       // Higher is more urgent
	EstimatedTime int                  `json:"estimated_time"` // Minutes
}
