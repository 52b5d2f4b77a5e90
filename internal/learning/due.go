package learning

import (
	"sort"
	"time"

	"github.com/thomaslekieffre/speedcube-master-sub000/pkg/models"
)

// DateOnly truncates an instant to its UTC calendar date. All due-date
// comparisons go through here so the whole system agrees on what "today"
// means regardless of the time-of-day stored on a record.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DueToday returns the records due for review on the given day: everything
// not yet mastered whose next review date falls on or before today. A record
// due at any time today counts, whatever its stored time of day. An empty
// result is the normal end of a session, not an error.
//
// The result is ordered by next review date, then algorithm ID, so callers
// and tests see a deterministic queue.
func DueToday(records []models.LearningRecord, today time.Time) []models.LearningRecord {
	cutoff := DateOnly(today)

	due := make([]models.LearningRecord, 0)
	for _, r := range records {
		if r.Status == models.StatusMastered {
			continue
		}
		if !DateOnly(r.NextReviewDate).After(cutoff) {
			due = append(due, r)
		}
	}

	sort.SliceStable(due, func(i, j int) bool {
		if !due[i].NextReviewDate.Equal(due[j].NextReviewDate) {
			return due[i].NextReviewDate.Before(due[j].NextReviewDate)
		}
		return due[i].AlgorithmID < due[j].AlgorithmID
	})

	return due
}
