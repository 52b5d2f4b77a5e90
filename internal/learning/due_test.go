package learning

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/thomaslekieffre/speedcube-master-sub000/pkg/models"
)

func record(algorithmID int64, status models.LearningStatus, due time.Time) models.LearningRecord {
	return models.LearningRecord{
		UserID:         1,
		AlgorithmID:    algorithmID,
		Status:         status,
		NextReviewDate: due,
	}
}

func TestDateOnly(t *testing.T) {
	ts := time.Date(2026, 3, 1, 23, 59, 59, 0, time.UTC)
	assert.True(t, DateOnly(ts).Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))
}

func TestDueTodayEmptyInput(t *testing.T) {
	due := DueToday(nil, t0)
	assert.NotNil(t, due, "no due items is a normal result, not an error")
	assert.Empty(t, due)
}

func TestDueTodayBoundary(t *testing.T) {
	startOfToday := DateOnly(t0)
	startOfTomorrow := startOfToday.AddDate(0, 0, 1)

	records := []models.LearningRecord{
		record(1, models.StatusLearning, startOfToday),
		record(2, models.StatusLearning, startOfTomorrow),
	}

	due := DueToday(records, t0)
	assert.Len(t, due, 1)
	assert.Equal(t, int64(1), due[0].AlgorithmID)
}

func TestDueTodayIncludesLaterToday(t *testing.T) {
	// Due at 23:00 today, asked at 10:30: still today's work
	laterToday := DateOnly(t0).Add(23 * time.Hour)
	records := []models.LearningRecord{record(1, models.StatusLearning, laterToday)}

	due := DueToday(records, t0)
	assert.Len(t, due, 1)
}

func TestDueTodayIncludesOverdue(t *testing.T) {
	records := []models.LearningRecord{
		record(1, models.StatusLearning, t0.AddDate(0, 0, -10)),
		record(2, models.StatusToLearn, t0),
	}

	due := DueToday(records, t0)
	assert.Len(t, due, 2)
}

func TestDueTodayExcludesMastered(t *testing.T) {
	// Mastered records never resurface, even with a past due date
	records := []models.LearningRecord{
		record(1, models.StatusMastered, t0.AddDate(0, 0, -30)),
		record(2, models.StatusLearning, t0),
	}

	due := DueToday(records, t0)
	assert.Len(t, due, 1)
	assert.Equal(t, int64(2), due[0].AlgorithmID)
}

func TestDueTodayDeterministicOrder(t *testing.T) {
	records := []models.LearningRecord{
		record(9, models.StatusLearning, t0.AddDate(0, 0, -1)),
		record(3, models.StatusLearning, t0.AddDate(0, 0, -2)),
		record(5, models.StatusLearning, t0.AddDate(0, 0, -2)),
	}

	due := DueToday(records, t0)
	var ids []int64
	for _, r := range due {
		ids = append(ids, r.AlgorithmID)
	}
	assert.Equal(t, []int64{3, 5, 9}, ids, "oldest due date first, then algorithm ID")
}
