package database

import (
	"fmt"

	"github.com/thomaslekieffre/speedcube-master-sub000/pkg/models"
)

// ReviewLogRepository handles the append-only grading history.
// It satisfies learning.ReviewLogger.
type ReviewLogRepository struct{}

// NewReviewLogRepository creates a new repository instance
func NewReviewLogRepository() *ReviewLogRepository {
	return &ReviewLogRepository{}
}

// Append inserts a grading event
func (r *ReviewLogRepository) Append(log *models.ReviewLog) error {
	query := `
		INSERT INTO review_logs (user_id, algorithm_id, success, level_before, level_after, reviewed_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	if DB.DriverName() == "postgres" {
		query = DB.Rebind(query)
	}

	result, err := DB.Exec(query,
		log.UserID,
		log.AlgorithmID,
		log.Success,
		log.LevelBefore,
		log.LevelAfter,
		log.ReviewedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append review log: %v", err)
	}

	if DB.DriverName() != "postgres" {
		if id, err := result.LastInsertId(); err == nil {
			log.ID = id
		}
	}

	return nil
}

// GetByUser returns the user's grading history, newest first
func (r *ReviewLogRepository) GetByUser(userID int64, limit int) ([]models.ReviewLog, error) {
	query := `
		SELECT * FROM review_logs
		WHERE user_id = ?
		ORDER BY reviewed_at DESC
		LIMIT ?
	`
	if DB.DriverName() == "postgres" {
		query = DB.Rebind(query)
	}

	var logs []models.ReviewLog
	if err := DB.Select(&logs, query, userID, limit); err != nil {
		return nil, fmt.Errorf("failed to get review logs: %v", err)
	}
	return logs, nil
}
