package learning

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thomaslekieffre/speedcube-master-sub000/pkg/models"
)

var t0 = time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)

func TestNewRecord(t *testing.T) {
	rec := NewRecord(7, 42, t0)

	assert.Equal(t, int64(7), rec.UserID)
	assert.Equal(t, int64(42), rec.AlgorithmID)
	assert.Equal(t, models.StatusToLearn, rec.Status)
	assert.Equal(t, 0, rec.CurrentLevel)
	assert.True(t, rec.NextReviewDate.Equal(t0), "new record must be due immediately")
	assert.True(t, rec.LastReviewed.Equal(t0))
	assert.Zero(t, rec.ReviewCount)
	assert.Zero(t, rec.SuccessCount)
	assert.Zero(t, rec.FailureCount)
}

func TestScheduleFailureAlwaysOneDay(t *testing.T) {
	s := NewScheduler()
	for level := 0; level <= models.MaxLevel; level++ {
		got := s.Schedule(level, false, t0)
		assert.True(t, got.Equal(t0.AddDate(0, 0, 1)), "level %d failure should retry next day", level)
	}
}

func TestScheduleSuccessIntervalTable(t *testing.T) {
	s := NewScheduler()
	tests := []struct {
		level    int // level after the successful review
		wantDays int
	}{
		{1, 1},
		{2, 3},
		{3, 7},
		{4, 14},
		{5, 30},
		{9, 30}, // beyond the table, clamp to last entry
	}
	for _, tt := range tests {
		got := s.Schedule(tt.level, true, t0)
		assert.True(t, got.Equal(t0.AddDate(0, 0, tt.wantDays)),
			"level %d: got %v, want +%dd", tt.level, got, tt.wantDays)
	}
}

func TestGradeSuccessAdvances(t *testing.T) {
	s := NewScheduler()
	rec := NewRecord(1, 1, t0)

	graded := s.Grade(rec, true, t0)

	assert.Equal(t, 1, graded.CurrentLevel)
	assert.Equal(t, models.StatusLearning, graded.Status)
	assert.True(t, graded.NextReviewDate.Equal(t0.AddDate(0, 0, 1)))
	assert.True(t, graded.LastReviewed.Equal(t0))
	assert.Equal(t, 1, graded.ReviewCount)
	assert.Equal(t, 1, graded.SuccessCount)
	assert.Equal(t, 0, graded.FailureCount)
}

func TestGradeFailureResetsAnyLevel(t *testing.T) {
	s := NewScheduler()
	for level := 0; level <= models.MaxLevel; level++ {
		rec := NewRecord(1, 1, t0)
		rec.CurrentLevel = level
		rec.Status = models.StatusLearning
		if level == models.MaxLevel {
			rec.Status = models.StatusMastered
		}

		graded := s.Grade(rec, false, t0)

		assert.Equal(t, 0, graded.CurrentLevel, "level %d failure", level)
		assert.Equal(t, models.StatusLearning, graded.Status,
			"failed record stays in learning, to_learn is only for never-attempted")
		assert.True(t, graded.NextReviewDate.Equal(t0.AddDate(0, 0, 1)))
		assert.Equal(t, 1, graded.FailureCount)
		assert.Equal(t, 0, graded.SuccessCount)
	}
}

func TestGradeMasteryAtLevelFive(t *testing.T) {
	s := NewScheduler()
	rec := NewRecord(1, 1, t0)
	rec.CurrentLevel = 4
	rec.Status = models.StatusLearning

	graded := s.Grade(rec, true, t0)

	assert.Equal(t, models.MaxLevel, graded.CurrentLevel)
	assert.Equal(t, models.StatusMastered, graded.Status)
	assert.True(t, graded.NextReviewDate.Equal(t0.AddDate(0, 0, 30)))
}

func TestGradeMasteredRecordDoesNotOverflow(t *testing.T) {
	s := NewScheduler()
	rec := NewRecord(1, 1, t0)
	rec.CurrentLevel = models.MaxLevel
	rec.Status = models.StatusMastered

	// Success on an already mastered record clamps at the top level
	graded := s.Grade(rec, true, t0)
	assert.Equal(t, models.MaxLevel, graded.CurrentLevel)
	assert.Equal(t, models.StatusMastered, graded.Status)
	assert.True(t, graded.NextReviewDate.Equal(t0.AddDate(0, 0, 30)))

	// Failure applies the uniform reset
	graded = s.Grade(rec, false, t0)
	assert.Equal(t, 0, graded.CurrentLevel)
	assert.Equal(t, models.StatusLearning, graded.Status)
}

func TestGradeLevelBoundsOverLongSequences(t *testing.T) {
	s := NewScheduler()
	rec := NewRecord(1, 1, t0)
	now := t0

	outcomes := []bool{true, true, false, true, true, true, true, true, true, false, true}
	for i, success := range outcomes {
		rec = s.Grade(rec, success, now)
		require.GreaterOrEqual(t, rec.CurrentLevel, 0, "step %d", i)
		require.LessOrEqual(t, rec.CurrentLevel, models.MaxLevel, "step %d", i)
		require.Equal(t, rec.ReviewCount, rec.SuccessCount+rec.FailureCount,
			"counter conservation must hold after step %d", i)
		now = rec.NextReviewDate
	}
}

func TestGradeDoesNotMutateInput(t *testing.T) {
	s := NewScheduler()
	rec := NewRecord(1, 1, t0)

	_ = s.Grade(rec, true, t0)

	assert.Equal(t, 0, rec.CurrentLevel)
	assert.Equal(t, models.StatusToLearn, rec.Status)
	assert.Zero(t, rec.ReviewCount)
}

func TestRepeatedSuccessReachesMastery(t *testing.T) {
	s := NewScheduler()
	rec := NewRecord(1, 1, t0)

	// Five successful reviews, each at the moment the record comes due.
	// Offsets accumulate from each review's actual timestamp: 1, 3, 7, 14, 30.
	now := t0
	wantOffsets := []int{1, 3, 7, 14, 30}
	for i, days := range wantOffsets {
		rec = s.Grade(rec, true, now)
		assert.Equal(t, i+1, rec.CurrentLevel)
		assert.True(t, rec.NextReviewDate.Equal(now.AddDate(0, 0, days)),
			"review %d: next due should be +%dd from the review instant", i+1, days)
		now = rec.NextReviewDate
	}

	assert.Equal(t, models.StatusMastered, rec.Status)
	assert.Equal(t, 5, rec.ReviewCount)
	assert.Equal(t, 5, rec.SuccessCount)
}

func TestStreakDays(t *testing.T) {
	s := NewScheduler()
	rec := NewRecord(1, 1, t0)

	// First success on enrollment day starts the streak at 1
	rec = s.Grade(rec, true, t0)
	assert.Equal(t, 1, rec.StreakDays)

	// Success exactly one calendar day later extends it
	rec = s.Grade(rec, true, t0.AddDate(0, 0, 1))
	assert.Equal(t, 2, rec.StreakDays)

	// A second success the same day keeps it
	rec = s.Grade(rec, true, t0.AddDate(0, 0, 1).Add(2*time.Hour))
	assert.Equal(t, 2, rec.StreakDays)

	// A gap restarts the streak
	rec = s.Grade(rec, true, t0.AddDate(0, 0, 5))
	assert.Equal(t, 1, rec.StreakDays)

	// Failure resets it to zero
	rec = s.Grade(rec, false, t0.AddDate(0, 0, 6))
	assert.Equal(t, 0, rec.StreakDays)
}

func TestGradeSameDayReviewsAdvanceIndependently(t *testing.T) {
	s := NewScheduler()
	rec := NewRecord(1, 1, t0)

	// Two reviews on the same calendar day: the second schedules from its
	// own instant, not from midnight or the first review.
	rec = s.Grade(rec, true, t0)
	later := t0.Add(3 * time.Hour)
	rec = s.Grade(rec, true, later)

	assert.Equal(t, 2, rec.CurrentLevel)
	assert.True(t, rec.NextReviewDate.Equal(later.AddDate(0, 0, 3)))
}
