package learning

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thomaslekieffre/speedcube-master-sub000/pkg/models"
)

type recordKey struct {
	userID      int64
	algorithmID int64
}

// fakeStore is an in-memory RecordStore for service tests
type fakeStore struct {
	records map[recordKey]models.LearningRecord
	nextID  int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: make(map[recordKey]models.LearningRecord), nextID: 1}
}

func (s *fakeStore) Create(record *models.LearningRecord) error {
	key := recordKey{record.UserID, record.AlgorithmID}
	if _, exists := s.records[key]; exists {
		return ErrAlreadyEnrolled
	}
	record.ID = s.nextID
	s.nextID++
	s.records[key] = *record
	return nil
}

func (s *fakeStore) GetByUserAndAlgorithm(userID, algorithmID int64) (*models.LearningRecord, error) {
	rec, ok := s.records[recordKey{userID, algorithmID}]
	if !ok {
		return nil, ErrNotFound
	}
	out := rec
	return &out, nil
}

func (s *fakeStore) GetAllForUser(userID int64) ([]models.LearningRecord, error) {
	var out []models.LearningRecord
	for key, rec := range s.records {
		if key.userID == userID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *fakeStore) Update(record *models.LearningRecord) error {
	key := recordKey{record.UserID, record.AlgorithmID}
	if _, ok := s.records[key]; !ok {
		return ErrNotFound
	}
	s.records[key] = *record
	return nil
}

type fakeLogs struct {
	entries []models.ReviewLog
}

func (l *fakeLogs) Append(log *models.ReviewLog) error {
	l.entries = append(l.entries, *log)
	return nil
}

// testClock lets each test step through time explicitly
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func newTestService() (*Service, *fakeStore, *fakeLogs, *testClock) {
	store := newFakeStore()
	logs := &fakeLogs{}
	clock := &testClock{now: t0}
	svc := NewServiceWithClock(store, nil, logs, clock.Now)
	return svc, store, logs, clock
}

func TestServiceEnroll(t *testing.T) {
	svc, _, _, _ := newTestService()

	rec, err := svc.Enroll(1, 42)
	require.NoError(t, err)
	assert.Equal(t, models.StatusToLearn, rec.Status)
	assert.True(t, rec.NextReviewDate.Equal(t0))
	assert.NotZero(t, rec.ID)
}

func TestServiceEnrollTwiceRejected(t *testing.T) {
	svc, store, _, clock := newTestService()

	first, err := svc.Enroll(1, 42)
	require.NoError(t, err)

	clock.now = t0.Add(time.Hour)
	_, err = svc.Enroll(1, 42)
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)

	// The first record is untouched
	stored, err := store.GetByUserAndAlgorithm(1, 42)
	require.NoError(t, err)
	assert.True(t, stored.NextReviewDate.Equal(first.NextReviewDate))
	assert.Zero(t, stored.ReviewCount)
}

func TestServiceGradeUnknownRecord(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.GradeReview(1, 999, true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServiceReviewCycle(t *testing.T) {
	svc, _, _, clock := newTestService()

	_, err := svc.Enroll(1, 42)
	require.NoError(t, err)

	// Freshly enrolled: due today
	due, err := svc.DueToday(1)
	require.NoError(t, err)
	require.Len(t, due, 1)

	// Pass: level 1, due tomorrow, no longer in today's queue
	rec, err := svc.GradeReview(1, 42, true)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.CurrentLevel)
	assert.True(t, rec.NextReviewDate.Equal(t0.AddDate(0, 0, 1)))

	due, err = svc.DueToday(1)
	require.NoError(t, err)
	assert.Empty(t, due)

	// Next day it is due again
	clock.now = t0.AddDate(0, 0, 1)
	due, err = svc.DueToday(1)
	require.NoError(t, err)
	require.Len(t, due, 1)

	// Fail: back to level 0, due the day after
	rec, err = svc.GradeReview(1, 42, false)
	require.NoError(t, err)
	assert.Equal(t, 0, rec.CurrentLevel)
	assert.Equal(t, models.StatusLearning, rec.Status)
	assert.True(t, rec.NextReviewDate.Equal(t0.AddDate(0, 0, 2)))
}

func TestServiceGradePersistsAndLogs(t *testing.T) {
	svc, store, logs, _ := newTestService()

	_, err := svc.Enroll(1, 42)
	require.NoError(t, err)

	_, err = svc.GradeReview(1, 42, true)
	require.NoError(t, err)

	stored, err := store.GetByUserAndAlgorithm(1, 42)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.CurrentLevel)
	assert.Equal(t, 1, stored.ReviewCount)

	require.Len(t, logs.entries, 1)
	assert.Equal(t, 0, logs.entries[0].LevelBefore)
	assert.Equal(t, 1, logs.entries[0].LevelAfter)
	assert.True(t, logs.entries[0].Success)
}

func TestServiceStatsAndRecommendations(t *testing.T) {
	svc, store, _, _ := newTestService()

	_, err := svc.Enroll(1, 1)
	require.NoError(t, err)
	_, err = svc.Enroll(1, 2)
	require.NoError(t, err)

	// Drive algorithm 1 to mastery directly through the store
	rec, err := store.GetByUserAndAlgorithm(1, 1)
	require.NoError(t, err)
	rec.Status = models.StatusMastered
	rec.CurrentLevel = models.MaxLevel
	require.NoError(t, store.Update(rec))

	stats, err := svc.Stats(1)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Mastered)
	assert.Equal(t, 50, stats.MasteryPercentage)

	recs, err := svc.Recommendations(1)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, int64(2), recs[0].AlgorithmID)
	assert.Equal(t, models.ReasonDueForReview, recs[0].Reason)
}
