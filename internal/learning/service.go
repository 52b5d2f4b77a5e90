package learning

import (
	"errors"
	"fmt"
	"time"

	"github.com/thomaslekieffre/speedcube-master-sub000/pkg/models"
)

// RecordStore is the persistence interface the service needs: a keyed store
// of learning records with atomic update-by-id as the unit of persistence.
// Create must fail with ErrAlreadyEnrolled on a duplicate (user, algorithm)
// pair; lookups must fail with ErrNotFound for missing records.
type RecordStore interface {
	Create(record *models.LearningRecord) error
	GetByUserAndAlgorithm(userID, algorithmID int64) (*models.LearningRecord, error)
	GetAllForUser(userID int64) ([]models.LearningRecord, error)
	Update(record *models.LearningRecord) error
}

// ReviewLogger appends grading events to the review history. Optional: a nil
// logger disables history without affecting scheduling.
type ReviewLogger interface {
	Append(log *models.ReviewLog) error
}

// Service ties the pure scheduling core to a record store and catalog.
// The caller's identity is always passed in explicitly; there is no default
// or fallback user.
type Service struct {
	store   RecordStore
	catalog CatalogLookup
	logs    ReviewLogger
	srs     *Scheduler
	now     func() time.Time
}

// NewService creates a learning service using the wall clock
func NewService(store RecordStore, catalog CatalogLookup, logs ReviewLogger) *Service {
	return NewServiceWithClock(store, catalog, logs, time.Now)
}

// NewServiceWithClock creates a learning service with an injected time
// source, used by tests to pin "today"
func NewServiceWithClock(store RecordStore, catalog CatalogLookup, logs ReviewLogger, now func() time.Time) *Service {
	return &Service{
		store:   store,
		catalog: catalog,
		logs:    logs,
		srs:     NewScheduler(),
		now:     now,
	}
}

// Enroll adds an algorithm to the user's learning set. The new record starts
// at level 0 and is due immediately. Enrolling twice fails with
// ErrAlreadyEnrolled and leaves the first record untouched.
func (s *Service) Enroll(userID, algorithmID int64) (*models.LearningRecord, error) {
	if _, err := s.store.GetByUserAndAlgorithm(userID, algorithmID); err == nil {
		return nil, ErrAlreadyEnrolled
	} else if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to check enrollment: %w", err)
	}

	record := NewRecord(userID, algorithmID, s.now())
	if err := s.store.Create(&record); err != nil {
		return nil, err
	}
	return &record, nil
}

// GradeReview records a pass/fail outcome for the user's algorithm and
// persists the advanced record. Grading a missing record surfaces
// ErrNotFound; the caller re-fetches and retries its workflow.
func (s *Service) GradeReview(userID, algorithmID int64, success bool) (*models.LearningRecord, error) {
	record, err := s.store.GetByUserAndAlgorithm(userID, algorithmID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	levelBefore := record.CurrentLevel

	graded := s.srs.Grade(*record, success, now)
	if err := s.store.Update(&graded); err != nil {
		return nil, err
	}

	if s.logs != nil {
		entry := &models.ReviewLog{
			UserID:      userID,
			AlgorithmID: algorithmID,
			Success:     success,
			LevelBefore: levelBefore,
			LevelAfter:  graded.CurrentLevel,
			ReviewedAt:  now,
		}
		if err := s.logs.Append(entry); err != nil {
			// History is best-effort; the graded record is already persisted
			return &graded, fmt.Errorf("failed to append review log: %w", err)
		}
	}

	return &graded, nil
}

// DueToday returns the user's review queue for the current date
func (s *Service) DueToday(userID int64) ([]models.LearningRecord, error) {
	records, err := s.store.GetAllForUser(userID)
	if err != nil {
		return nil, err
	}
	return DueToday(records, s.now()), nil
}

// Stats returns the user's mastery summary
func (s *Service) Stats(userID int64) (Stats, error) {
	records, err := s.store.GetAllForUser(userID)
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(records), nil
}

// Recommendations returns prioritized practice suggestions for the user,
// enriched with catalog metadata where available
func (s *Service) Recommendations(userID int64) ([]models.Recommendation, error) {
	records, err := s.store.GetAllForUser(userID)
	if err != nil {
		return nil, err
	}
	return Recommend(records, s.catalog, s.now()), nil
}
