package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/thomaslekieffre/speedcube-master-sub000/internal/learning"
	"github.com/thomaslekieffre/speedcube-master-sub000/pkg/models"
)

// UserRepository handles database operations for users
type UserRepository struct{}

// NewUserRepository creates a new repository instance
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// GetByTelegramID returns a user by their Telegram ID
func (r *UserRepository) GetByTelegramID(telegramID int64) (*models.User, error) {
	query := `
		SELECT telegram_id, username, first_name, last_name, is_admin,
		       notification_enabled, notification_hour, algorithms_per_day,
		       created_at, updated_at
		FROM users WHERE telegram_id = ?
	`
	if DB.DriverName() == "postgres" {
		query = DB.Rebind(query)
	}

	var user models.User
	err := DB.Get(&user, query, telegramID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, learning.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %v", err)
	}
	return &user, nil
}

// CreateOrUpdate registers a user on first contact and refreshes their
// profile fields afterwards. Notification settings keep their stored values.
func (r *UserRepository) CreateOrUpdate(user *models.User) error {
	existing, err := r.GetByTelegramID(user.ID)
	if errors.Is(err, learning.ErrNotFound) {
		query := `
			INSERT INTO users (telegram_id, username, first_name, last_name, is_admin)
			VALUES (?, ?, ?, ?, ?)
		`
		if DB.DriverName() == "postgres" {
			query = DB.Rebind(query)
		}
		_, err = DB.Exec(query, user.ID, user.Username, user.FirstName, user.LastName, user.IsAdmin)
		if err != nil {
			return fmt.Errorf("failed to create user: %v", err)
		}
		return nil
	}
	if err != nil {
		return err
	}

	query := `
		UPDATE users SET
			username = ?,
			first_name = ?,
			last_name = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE telegram_id = ?
	`
	if DB.DriverName() == "postgres" {
		query = DB.Rebind(query)
	}
	_, err = DB.Exec(query, user.Username, user.FirstName, user.LastName, user.ID)
	if err != nil {
		return fmt.Errorf("failed to update user: %v", err)
	}

	user.NotificationEnabled = existing.NotificationEnabled
	user.NotificationHour = existing.NotificationHour
	user.AlgorithmsPerDay = existing.AlgorithmsPerDay
	return nil
}

// UpdateNotificationSettings stores the user's reminder preferences
func (r *UserRepository) UpdateNotificationSettings(telegramID int64, enabled bool, hour int) error {
	query := `
		UPDATE users SET
			notification_enabled = ?,
			notification_hour = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE telegram_id = ?
	`
	if DB.DriverName() == "postgres" {
		query = DB.Rebind(query)
	}

	result, err := DB.Exec(query, enabled, hour, telegramID)
	if err != nil {
		return fmt.Errorf("failed to update notification settings: %v", err)
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

// GetUsersForNotification returns users who want a reminder at the given hour
func (r *UserRepository) GetUsersForNotification(hour int) ([]models.User, error) {
	query := `
		SELECT telegram_id, username, first_name, last_name, is_admin,
		       notification_enabled, notification_hour, algorithms_per_day,
		       created_at, updated_at
		FROM users
		WHERE notification_enabled = ? AND notification_hour = ?
	`
	if DB.DriverName() == "postgres" {
		query = DB.Rebind(query)
	}

	var users []models.User
	if err := DB.Select(&users, query, true, hour); err != nil {
		return nil, fmt.Errorf("failed to get users for notification: %v", err)
	}
	return users, nil
}
