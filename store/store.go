// Package store is the ownership-scoped query layer. Every read or write of
// a user's accounts, categories or entries takes the authenticated user's id
// and filters on it, so one tenant can never see or touch another tenant's
// rows. Missing and foreign ids are reported identically as ErrNotFound.
package store

import (
	"errors"
	"strings"

	"budgetapp/models"

	"gorm.io/gorm"
)

// Sentinel errors translated to HTTP statuses at the request boundary.
var (
	// ErrNotFound covers both "row does not exist" and "row belongs to
	// another user" so ids cannot be probed across tenants.
	ErrNotFound = errors.New("not found")
	// ErrValidation marks missing or malformed user input.
	ErrValidation = errors.New("invalid input")
	// ErrConflict marks uniqueness clashes and deletes blocked by dependents.
	ErrConflict = errors.New("conflict")
	// ErrAuth is returned with one uniform message for every login failure.
	ErrAuth = errors.New("invalid username or password")
)

// Store wraps the database handle. All operations hang off it; there is no
// package-level connection.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// ListAccountTypes returns the seeded account type lookup rows.
func (s *Store) ListAccountTypes() ([]models.AccountType, error) {
	var types []models.AccountType
	if err := s.db.Order("id").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

// ListCategoryTypes returns the seeded category type lookup rows.
func (s *Store) ListCategoryTypes() ([]models.CategoryType, error) {
	var types []models.CategoryType
	if err := s.db.Order("id").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "UNIQUE constraint") || strings.Contains(s, "unique constraint")
}
