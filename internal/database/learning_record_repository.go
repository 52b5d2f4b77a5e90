package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/thomaslekieffre/speedcube-master-sub000/internal/learning"
	"github.com/thomaslekieffre/speedcube-master-sub000/pkg/models"
)

// LearningRecordRepository handles database operations for learning records.
// It satisfies learning.RecordStore: duplicate enrollments map to
// learning.ErrAlreadyEnrolled and missing rows to learning.ErrNotFound.
type LearningRecordRepository struct{}

// NewLearningRecordRepository creates a new repository instance
func NewLearningRecordRepository() *LearningRecordRepository {
	return &LearningRecordRepository{}
}

// isUniqueViolation reports whether err is a unique-constraint failure from
// either driver, which on learning_records means the (user, algorithm) pair
// is already enrolled
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

// Create inserts a new learning record
func (r *LearningRecordRepository) Create(record *models.LearningRecord) error {
	query := `
		INSERT INTO learning_records (
			user_id, algorithm_id, status, current_level,
			next_review_date, last_reviewed,
			review_count, success_count, failure_count, streak_days
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	if DB.DriverName() == "postgres" {
		query = DB.Rebind(query)
	}

	result, err := DB.Exec(query,
		record.UserID,
		record.AlgorithmID,
		record.Status,
		record.CurrentLevel,
		record.NextReviewDate,
		record.LastReviewed,
		record.ReviewCount,
		record.SuccessCount,
		record.FailureCount,
		record.StreakDays,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return learning.ErrAlreadyEnrolled
		}
		return fmt.Errorf("failed to create learning record: %v", err)
	}

	if DB.DriverName() == "postgres" {
		// Postgres drivers don't support LastInsertId, fetch the row back
		return DB.Get(record,
			"SELECT * FROM learning_records WHERE user_id = $1 AND algorithm_id = $2",
			record.UserID, record.AlgorithmID)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	record.ID = id

	return nil
}

// GetByUserAndAlgorithm returns the record for a specific (user, algorithm) pair
func (r *LearningRecordRepository) GetByUserAndAlgorithm(userID, algorithmID int64) (*models.LearningRecord, error) {
	query := "SELECT * FROM learning_records WHERE user_id = ? AND algorithm_id = ?"
	if DB.DriverName() == "postgres" {
		query = DB.Rebind(query)
	}

	var record models.LearningRecord
	err := DB.Get(&record, query, userID, algorithmID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, learning.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get learning record: %v", err)
	}
	return &record, nil
}

// GetAllForUser returns every learning record owned by the user
func (r *LearningRecordRepository) GetAllForUser(userID int64) ([]models.LearningRecord, error) {
	query := "SELECT * FROM learning_records WHERE user_id = ? ORDER BY next_review_date ASC"
	if DB.DriverName() == "postgres" {
		query = DB.Rebind(query)
	}

	var records []models.LearningRecord
	if err := DB.Select(&records, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get learning records: %v", err)
	}
	return records, nil
}

// GetDueForUser returns records due on or before the given instant, mastered
// excluded. The reminder sweep uses this to count pending reviews without
// loading the whole set.
func (r *LearningRecordRepository) GetDueForUser(userID int64, now time.Time) ([]models.LearningRecord, error) {
	query := `
		SELECT * FROM learning_records
		WHERE user_id = ? AND status != ? AND next_review_date <= ?
		ORDER BY next_review_date ASC
	`
	if DB.DriverName() == "postgres" {
		query = DB.Rebind(query)
	}

	var records []models.LearningRecord
	err := DB.Select(&records, query, userID, models.StatusMastered, now)
	if err != nil {
		return nil, fmt.Errorf("failed to get due records: %v", err)
	}
	return records, nil
}

// Update persists the full scheduling state of an existing record by primary key
func (r *LearningRecordRepository) Update(record *models.LearningRecord) error {
	query := `
		UPDATE learning_records SET
			status = ?,
			current_level = ?,
			next_review_date = ?,
			last_reviewed = ?,
			review_count = ?,
			success_count = ?,
			failure_count = ?,
			streak_days = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	if DB.DriverName() == "postgres" {
		query = DB.Rebind(query)
	}

	result, err := DB.Exec(query,
		record.Status,
		record.CurrentLevel,
		record.NextReviewDate,
		record.LastReviewed,
		record.ReviewCount,
		record.SuccessCount,
		record.FailureCount,
		record.StreakDays,
		record.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update learning record: %v", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rows == 0 {
		return learning.ErrNotFound
	}

	return nil
}
