package learning

import (
	"time"

	"github.com/thomaslekieffre/speedcube-master-sub000/pkg/models"
)

// CatalogLookup resolves algorithm display metadata by ID. It should return
// ErrNotFound (or any error) for unknown or unapproved entries; lookups are
// only used to enrich recommendations, never to decide scheduling.
type CatalogLookup interface {
	GetAlgorithm(algorithmID int64) (*models.Algorithm, error)
}

const (
	// DueReviewPriority is the fixed weight of due_for_review recommendations
	DueReviewPriority = 10
	// EstimatedMinutesPerReview is the assumed practice time per algorithm
	EstimatedMinutesPerReview = 5
)

// Recommend builds the practice suggestions for a user's records. Today the
// only implemented reason is due_for_review, generated straight from the due
// list; further heuristics add new RecommendationReason values and append
// here. Catalog lookups that fail leave the recommendation unenriched rather
// than dropping it.
func Recommend(records []models.LearningRecord, catalog CatalogLookup, today time.Time) []models.Recommendation {
	due := DueToday(records, today)

	recs := make([]models.Recommendation, 0, len(due))
	for _, r := range due {
		rec := models.Recommendation{
			AlgorithmID:   r.AlgorithmID,
			Reason:        models.ReasonDueForReview,
			Priority:      DueReviewPriority,
			EstimatedTime: EstimatedMinutesPerReview,
		}
		if catalog != nil {
			if alg, err := catalog.GetAlgorithm(r.AlgorithmID); err == nil {
				rec.AlgorithmName = alg.Name
				rec.Notation = alg.Notation
				rec.Difficulty = alg.Difficulty
			}
		}
		recs = append(recs, rec)
	}

	return recs
}
