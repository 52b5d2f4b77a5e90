package learning

import (
	"math"

	"github.com/thomaslekieffre/speedcube-master-sub000/pkg/models"
)

// Stats summarizes a user's learning records by status
type Stats struct {
	Total             int `json:"total"`
	Mastered          int `json:"mastered"`
	Learning          int `json:"learning"`
	ToLearn           int `json:"to_learn"`
	MasteryPercentage int `json:"mastery_percentage"`
}

// ComputeStats counts records per status. MasteryPercentage is 0 when there
// are no records at all.
func ComputeStats(records []models.LearningRecord) Stats {
	var s Stats
	s.Total = len(records)

	for _, r := range records {
		switch r.Status {
		case models.StatusMastered:
			s.Mastered++
		case models.StatusLearning:
			s.Learning++
		case models.StatusToLearn:
			s.ToLearn++
		}
	}

	if s.Total > 0 {
		s.MasteryPercentage = int(math.Round(float64(s.Mastered) / float64(s.Total) * 100))
	}

	return s
}
