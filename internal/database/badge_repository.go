package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/thomaslekieffre/speedcube-master-sub000/internal/learning"
	"github.com/thomaslekieffre/speedcube-master-sub000/pkg/models"
)

// BadgeRepository handles milestone badge storage. Badges are passthrough
// records: awarding logic stays with the caller.
type BadgeRepository struct{}

// NewBadgeRepository creates a new repository instance
func NewBadgeRepository() *BadgeRepository {
	return &BadgeRepository{}
}

// GetAll returns all badge definitions
func (r *BadgeRepository) GetAll() ([]models.Badge, error) {
	var badges []models.Badge
	if err := DB.Select(&badges, "SELECT * FROM badges ORDER BY name"); err != nil {
		return nil, fmt.Errorf("failed to get badges: %v", err)
	}
	return badges, nil
}

// GetByName returns a badge definition by its unique name
func (r *BadgeRepository) GetByName(name string) (*models.Badge, error) {
	query := "SELECT * FROM badges WHERE name = ?"
	if DB.DriverName() == "postgres" {
		query = DB.Rebind(query)
	}

	var badge models.Badge
	err := DB.Get(&badge, query, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, learning.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get badge by name: %v", err)
	}
	return &badge, nil
}

// Award grants a badge to a user. Awarding the same badge twice is a no-op.
func (r *BadgeRepository) Award(userID, badgeID int64) error {
	query := "INSERT INTO user_badges (user_id, badge_id) VALUES (?, ?)"
	if DB.DriverName() == "postgres" {
		query = DB.Rebind(query)
	}

	_, err := DB.Exec(query, userID, badgeID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil
		}
		return fmt.Errorf("failed to award badge: %v", err)
	}
	return nil
}

// GetEarnedBadges returns the badge definitions a user has earned, most
// recent first
func (r *BadgeRepository) GetEarnedBadges(userID int64) ([]models.Badge, error) {
	query := `
		SELECT b.id, b.name, b.description, b.created_at
		FROM badges b
		JOIN user_badges ub ON ub.badge_id = b.id
		WHERE ub.user_id = ?
		ORDER BY ub.earned_at DESC
	`
	if DB.DriverName() == "postgres" {
		query = DB.Rebind(query)
	}

	var badges []models.Badge
	if err := DB.Select(&badges, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get earned badges: %v", err)
	}
	return badges, nil
}

// GetUserBadges returns the badges a user has earned
func (r *BadgeRepository) GetUserBadges(userID int64) ([]models.UserBadge, error) {
	query := `
		SELECT * FROM user_badges
		WHERE user_id = ?
		ORDER BY earned_at DESC
	`
	if DB.DriverName() == "postgres" {
		query = DB.Rebind(query)
	}

	var badges []models.UserBadge
	if err := DB.Select(&badges, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get user badges: %v", err)
	}
	return badges, nil
}
