package store

import (
	"errors"
	"fmt"
	"strings"

	"budgetapp/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CategoryParams carries the writable fields of a category.
type CategoryParams struct {
	Name           string
	Description    string
	CategoryTypeID uint
	AccountID      uint
	BudgetAmount   decimal.Decimal
}

func (p *CategoryParams) validate(s *Store, userID uint) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return fmt.Errorf("%w: please provide a category name", ErrValidation)
	}
	if p.BudgetAmount.IsNegative() {
		return fmt.Errorf("%w: budget amount cannot be negative", ErrValidation)
	}
	var cnt int64
	if err := s.db.Model(&models.CategoryType{}).Where("id = ?", p.CategoryTypeID).Count(&cnt).Error; err != nil {
		return err
	}
	if cnt == 0 {
		return fmt.Errorf("%w: unknown category type", ErrValidation)
	}
	// The referenced account must belong to the same user. A foreign account
	// id is indistinguishable from a missing one.
	if err := s.db.Model(&models.Account{}).Where("id = ? AND user_id = ?", p.AccountID, userID).Count(&cnt).Error; err != nil {
		return err
	}
	if cnt == 0 {
		return ErrNotFound
	}
	return nil
}

// ListCategories returns all of the user's categories with their types and
// accounts, in insertion order.
func (s *Store) ListCategories(userID uint) ([]models.Category, error) {
	categories := []models.Category{}
	err := s.db.Preload("CategoryType").Preload("Account").
		Where("user_id = ?", userID).
		Order("id").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// GetCategoryForEdit fetches one category with its type and account eagerly
// loaded, so the edit form has everything in one round trip.
func (s *Store) GetCategoryForEdit(userID, id uint) (*models.Category, error) {
	var category models.Category
	err := s.db.Preload("CategoryType").Preload("Account").
		Where("id = ? AND user_id = ?", id, userID).
		First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// CreateCategory adds a budget line for the user under one of their accounts.
func (s *Store) CreateCategory(userID uint, p CategoryParams) (*models.Category, error) {
	if err := p.validate(s, userID); err != nil {
		return nil, err
	}
	category := models.Category{
		UserID:         userID,
		CategoryTypeID: p.CategoryTypeID,
		AccountID:      p.AccountID,
		Name:           p.Name,
		Description:    p.Description,
		BudgetAmount:   p.BudgetAmount,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&category).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetCategoryForEdit(userID, category.ID)
}

// UpdateCategory re-resolves the category under the ownership filter and
// applies the new fields.
func (s *Store) UpdateCategory(userID, id uint, p CategoryParams) (*models.Category, error) {
	if err := p.validate(s, userID); err != nil {
		return nil, err
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		category.Name = p.Name
		category.Description = p.Description
		category.CategoryTypeID = p.CategoryTypeID
		category.AccountID = p.AccountID
		category.BudgetAmount = p.BudgetAmount
		return tx.Save(&category).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetCategoryForEdit(userID, id)
}

// DeleteCategory removes the category if the user owns it. Missing or
// foreign ids are a silent success; a category that still has entries is
// refused.
func (s *Store) DeleteCategory(userID, id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var cnt int64
		if err := tx.Model(&models.Entry{}).
			Where("category_id = ? AND user_id = ?", id, userID).
			Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return fmt.Errorf("%w: category still has entries attached", ErrConflict)
		}
		return tx.Where("id = ? AND user_id = ?", id, userID).
			Delete(&models.Category{}).Error
	})
}
