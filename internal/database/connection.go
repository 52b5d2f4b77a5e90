package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/thomaslekieffre/speedcube-master-sub000/pkg/models"
)

// DB is the global database connection
var DB *sqlx.DB

// Connect establishes a connection to the database. DB_TYPE selects the
// driver: "sqlite" (default, DATABASE_PATH) or "postgres" (DATABASE_URL).
func Connect() error {
	dbType := os.Getenv("DB_TYPE")
	if dbType == "" {
		dbType = "sqlite"
	}

	var db *sqlx.DB
	var err error

	if dbType == "postgres" {
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			return fmt.Errorf("DATABASE_URL environment variable is not set")
		}
		db, err = sqlx.Connect("postgres", dsn)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %v", err)
		}
	} else {
		dbPath := os.Getenv("DATABASE_PATH")
		if dbPath == "" {
			dataDir := "data"
			if err := os.MkdirAll(dataDir, 0755); err != nil {
				return fmt.Errorf("failed to create data directory: %v", err)
			}
			dbPath = filepath.Join(dataDir, "speedcube.db")
		}
		db, err = sqlx.Connect("sqlite3", dbPath)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %v", err)
		}
		if _, err = db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return fmt.Errorf("failed to enable foreign keys: %v", err)
		}
		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	DB = db

	return initializeSchema()
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema() error {
	// SQLite and PostgreSQL spell auto-increment keys differently
	idColumn := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if DB.DriverName() == "postgres" {
		idColumn = "BIGSERIAL PRIMARY KEY"
	}

	// Create users table
	_, err := DB.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id ` + idColumn + `,
			telegram_id INTEGER UNIQUE NOT NULL,
			username TEXT,
			first_name TEXT,
			last_name TEXT,
			is_admin BOOLEAN DEFAULT false,
			notification_enabled BOOLEAN DEFAULT true,
			notification_hour INTEGER DEFAULT 9,
			algorithms_per_day INTEGER DEFAULT 10,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create users table: %v", err)
	}

	// Create methods table
	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS methods (
			id ` + idColumn + `,
			name TEXT NOT NULL UNIQUE,
			description TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create methods table: %v", err)
	}

	// Create algorithms table
	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS algorithms (
			id ` + idColumn + `,
			name TEXT NOT NULL,
			notation TEXT NOT NULL,
			description TEXT,
			method_id INTEGER NOT NULL,
			difficulty INTEGER DEFAULT 1,
			status TEXT DEFAULT 'approved',
			created_by INTEGER DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (method_id) REFERENCES methods(id),
			UNIQUE(name, method_id)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create algorithms table: %v", err)
	}

	// Create learning_records table
	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS learning_records (
			id ` + idColumn + `,
			user_id INTEGER NOT NULL,
			algorithm_id INTEGER NOT NULL,
			status TEXT DEFAULT 'to_learn',
			current_level INTEGER DEFAULT 0,
			next_review_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			last_reviewed TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			review_count INTEGER DEFAULT 0,
			success_count INTEGER DEFAULT 0,
			failure_count INTEGER DEFAULT 0,
			streak_days INTEGER DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (algorithm_id) REFERENCES algorithms(id),
			UNIQUE(user_id, algorithm_id)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create learning_records table: %v", err)
	}

	// Create review_logs table
	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS review_logs (
			id ` + idColumn + `,
			user_id INTEGER NOT NULL,
			algorithm_id INTEGER NOT NULL,
			success BOOLEAN NOT NULL,
			level_before INTEGER NOT NULL,
			level_after INTEGER NOT NULL,
			reviewed_at TIMESTAMP NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (algorithm_id) REFERENCES algorithms(id)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create review_logs table: %v", err)
	}

	// Create badges table
	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS badges (
			id ` + idColumn + `,
			name TEXT NOT NULL UNIQUE,
			description TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create badges table: %v", err)
	}

	// Create user_badges table
	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS user_badges (
			id ` + idColumn + `,
			user_id INTEGER NOT NULL,
			badge_id INTEGER NOT NULL,
			earned_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (badge_id) REFERENCES badges(id),
			UNIQUE(user_id, badge_id)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create user_badges table: %v", err)
	}

	return seedBadges()
}

// seedBadges inserts the built-in badge definitions. Existing rows are left
// alone so re-running at startup is safe.
func seedBadges() error {
	badges := []struct {
		name, description string
	}{
		{models.BadgeFirstReview, "Completed your first review"},
		{models.BadgeFirstMastery, "Mastered your first algorithm"},
		{models.BadgeWeekStreak, "Reviewed successfully 7 days in a row"},
	}

	query := "INSERT INTO badges (name, description) VALUES (?, ?) ON CONFLICT (name) DO NOTHING"
	if DB.DriverName() == "postgres" {
		query = DB.Rebind(query)
	}

	for _, b := range badges {
		if _, err := DB.Exec(query, b.name, b.description); err != nil {
			return fmt.Errorf("failed to seed badge %q: %v", b.name, err)
		}
	}
	return nil
}
