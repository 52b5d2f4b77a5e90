package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/thomaslekieffre/speedcube-master-sub000/internal/learning"
	"github.com/thomaslekieffre/speedcube-master-sub000/pkg/models"
)

// AlgorithmRepository handles database operations for the algorithm catalog.
// GetAlgorithm satisfies learning.CatalogLookup for recommendation
// enrichment.
type AlgorithmRepository struct{}

// NewAlgorithmRepository creates a new repository instance
func NewAlgorithmRepository() *AlgorithmRepository {
	return &AlgorithmRepository{}
}

// GetAlgorithm returns an approved algorithm by ID. Unapproved entries are
// invisible to learners.
func (r *AlgorithmRepository) GetAlgorithm(algorithmID int64) (*models.Algorithm, error) {
	query := "SELECT * FROM algorithms WHERE id = ? AND status = ?"
	if DB.DriverName() == "postgres" {
		query = DB.Rebind(query)
	}

	var alg models.Algorithm
	err := DB.Get(&alg, query, algorithmID, models.ModerationApproved)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, learning.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get algorithm: %v", err)
	}
	return &alg, nil
}

// GetAll returns all approved algorithms
func (r *AlgorithmRepository) GetAll() ([]models.Algorithm, error) {
	query := "SELECT * FROM algorithms WHERE status = ? ORDER BY name"
	if DB.DriverName() == "postgres" {
		query = DB.Rebind(query)
	}

	var algorithms []models.Algorithm
	if err := DB.Select(&algorithms, query, models.ModerationApproved); err != nil {
		return nil, fmt.Errorf("failed to get algorithms: %v", err)
	}
	return algorithms, nil
}

// GetByMethod returns approved algorithms for a specific method
func (r *AlgorithmRepository) GetByMethod(methodID int64) ([]models.Algorithm, error) {
	query := "SELECT * FROM algorithms WHERE method_id = ? AND status = ? ORDER BY name"
	if DB.DriverName() == "postgres" {
		query = DB.Rebind(query)
	}

	var algorithms []models.Algorithm
	err := DB.Select(&algorithms, query, methodID, models.ModerationApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to get algorithms by method: %v", err)
	}
	return algorithms, nil
}

// Search finds approved algorithms matching the pattern by name or notation
func (r *AlgorithmRepository) Search(pattern string) ([]models.Algorithm, error) {
	query := `
		SELECT * FROM algorithms
		WHERE status = ? AND (LOWER(name) LIKE LOWER(?) OR LOWER(notation) LIKE LOWER(?))
		ORDER BY name
	`
	if DB.DriverName() == "postgres" {
		query = DB.Rebind(query)
	}

	like := "%" + pattern + "%"
	var algorithms []models.Algorithm
	err := DB.Select(&algorithms, query, models.ModerationApproved, like, like)
	if err != nil {
		return nil, fmt.Errorf("failed to search algorithms: %v", err)
	}
	return algorithms, nil
}

// GetByNameAndMethod returns an algorithm by its unique (name, method) pair,
// whatever its moderation status. Used by the importer for upserts.
func (r *AlgorithmRepository) GetByNameAndMethod(name string, methodID int64) (*models.Algorithm, error) {
	query := "SELECT * FROM algorithms WHERE name = ? AND method_id = ?"
	if DB.DriverName() == "postgres" {
		query = DB.Rebind(query)
	}

	var alg models.Algorithm
	err := DB.Get(&alg, query, name, methodID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, learning.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get algorithm by name: %v", err)
	}
	return &alg, nil
}

// Create inserts a new catalog entry
func (r *AlgorithmRepository) Create(alg *models.Algorithm) error {
	query := `
		INSERT INTO algorithms (name, notation, description, method_id, difficulty, status, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	if DB.DriverName() == "postgres" {
		query = DB.Rebind(query)
	}

	result, err := DB.Exec(query,
		alg.Name,
		alg.Notation,
		alg.Description,
		alg.MethodID,
		alg.Difficulty,
		alg.Status,
		alg.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to create algorithm: %v", err)
	}

	if DB.DriverName() == "postgres" {
		return DB.Get(alg,
			"SELECT * FROM algorithms WHERE name = $1 AND method_id = $2",
			alg.Name, alg.MethodID)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	alg.ID = id

	return nil
}

// Update modifies an existing catalog entry
func (r *AlgorithmRepository) Update(alg *models.Algorithm) error {
	query := `
		UPDATE algorithms SET
			name = ?,
			notation = ?,
			description = ?,
			method_id = ?,
			difficulty = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	if DB.DriverName() == "postgres" {
		query = DB.Rebind(query)
	}

	_, err := DB.Exec(query,
		alg.Name,
		alg.Notation,
		alg.Description,
		alg.MethodID,
		alg.Difficulty,
		alg.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update algorithm: %v", err)
	}
	return nil
}

// UpdateStatus writes the moderation status field. The approve/reject
// workflow itself lives outside this service; this is just the status write.
func (r *AlgorithmRepository) UpdateStatus(algorithmID int64, status models.ModerationStatus) error {
	query := "UPDATE algorithms SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	if DB.DriverName() == "postgres" {
		query = DB.Rebind(query)
	}

	result, err := DB.Exec(query, status, algorithmID)
	if err != nil {
		return fmt.Errorf("failed to update algorithm status: %v", err)
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
