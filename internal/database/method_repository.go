package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/thomaslekieffre/speedcube-master-sub000/internal/learning"
	"github.com/thomaslekieffre/speedcube-master-sub000/pkg/models"
)

// MethodRepository handles database operations for solving methods
type MethodRepository struct{}

// NewMethodRepository creates a new repository instance
func NewMethodRepository() *MethodRepository {
	return &MethodRepository{}
}

// GetAll returns all methods
func (r *MethodRepository) GetAll() ([]models.Method, error) {
	var methods []models.Method
	err := DB.Select(&methods, "SELECT * FROM methods ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to get methods: %v", err)
	}
	return methods, nil
}

// GetByID returns a method by ID
func (r *MethodRepository) GetByID(methodID int64) (*models.Method, error) {
	query := "SELECT * FROM methods WHERE id = ?"
	if DB.DriverName() == "postgres" {
		query = DB.Rebind(query)
	}

	var method models.Method
	err := DB.Get(&method, query, methodID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, learning.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get method: %v", err)
	}
	return &method, nil
}

// GetByName returns a method by its unique name
func (r *MethodRepository) GetByName(name string) (*models.Method, error) {
	query := "SELECT * FROM methods WHERE name = ?"
	if DB.DriverName() == "postgres" {
		query = DB.Rebind(query)
	}

	var method models.Method
	err := DB.Get(&method, query, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, learning.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get method by name: %v", err)
	}
	return &method, nil
}

// Create inserts a new method
func (r *MethodRepository) Create(method *models.Method) error {
	query := "INSERT INTO methods (name, description) VALUES (?, ?)"
	if DB.DriverName() == "postgres" {
		query = DB.Rebind(query)
	}

	result, err := DB.Exec(query, method.Name, method.Description)
	if err != nil {
		return fmt.Errorf("failed to create method: %v", err)
	}

	if DB.DriverName() == "postgres" {
		return DB.Get(method, "SELECT * FROM methods WHERE name = $1", method.Name)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	method.ID = id

	return nil
}
