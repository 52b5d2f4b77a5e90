package learning

import (
	"time"

	"github.com/thomaslekieffre/speedcube-master-sub000/pkg/models"
)

// Scheduler implements the fixed-interval spaced repetition used for algorithms.
// Unlike SM-2 there is no easiness factor: progress is a mastery level from 0
// to 5 and each level maps to a fixed number of days until the next review.
type Scheduler struct {
	// Review intervals in days. Index i is the interval after a successful
	// review that leaves the record at level i+1.
	Intervals []int
	// Days until retry after a failed review, regardless of level
	FailureInterval int
}

// NewScheduler creates a scheduler with the default interval table
func NewScheduler() *Scheduler {
	return &Scheduler{
		Intervals:       []int{1, 3, 7, 14, 30},
		FailureInterval: 1,
	}
}

// Schedule computes the next review instant for a record that just reached
// the given mastery level. Failures always come back after FailureInterval
// days. Successes follow the interval table, clamped to its last entry.
// Offsets are whole days added to the review instant, not calendar dates.
func (s *Scheduler) Schedule(level int, success bool, now time.Time) time.Time {
	if !success {
		return now.AddDate(0, 0, s.FailureInterval)
	}
	idx := level - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(s.Intervals) {
		idx = len(s.Intervals) - 1
	}
	return now.AddDate(0, 0, s.Intervals[idx])
}

// Grade applies a pass/fail review outcome to a learning record and returns
// the updated record. The input is not mutated; the transform is pure so two
// devices grading the same snapshot produce the same result.
//
// Success raises the level by one, capped at MaxLevel; reaching MaxLevel
// promotes the record to mastered. Failure drops the level back to 0 but
// keeps the record in learning: to_learn is reserved for never-attempted
// algorithms. Status is recomputed here and nowhere else.
func (s *Scheduler) Grade(record models.LearningRecord, success bool, now time.Time) models.LearningRecord {
	prevReview := record.LastReviewed

	if success {
		record.CurrentLevel++
		if record.CurrentLevel >= models.MaxLevel {
			record.CurrentLevel = models.MaxLevel
			record.Status = models.StatusMastered
		} else {
			record.Status = models.StatusLearning
		}
		record.SuccessCount++
		record.StreakDays = nextStreak(record.StreakDays, prevReview, now)
	} else {
		record.CurrentLevel = 0
		record.Status = models.StatusLearning
		record.FailureCount++
		record.StreakDays = 0
	}

	record.ReviewCount++
	record.NextReviewDate = s.Schedule(record.CurrentLevel, success, now)
	record.LastReviewed = now
	return record
}

// NewRecord creates the learning record for a fresh enrollment: level 0,
// due immediately, all counters at zero.
func NewRecord(userID, algorithmID int64, now time.Time) models.LearningRecord {
	return models.LearningRecord{
		UserID:         userID,
		AlgorithmID:    algorithmID,
		Status:         models.StatusToLearn,
		CurrentLevel:   0,
		NextReviewDate: now,
		LastReviewed:   now,
	}
}

// nextStreak maintains the consecutive-successful-days counter. A success
// exactly one calendar day after the previous review extends the streak,
// another success on the same day keeps it, a longer gap restarts at 1.
func nextStreak(current int, prevReview, now time.Time) int {
	prevDay := DateOnly(prevReview)
	nowDay := DateOnly(now)

	switch {
	case nowDay.Equal(prevDay.AddDate(0, 0, 1)):
		return current + 1
	case nowDay.Equal(prevDay):
		if current < 1 {
			return 1
		}
		return current
	default:
		return 1
	}
}
