package store

import (
	"errors"
	"fmt"
	"time"

	"budgetapp/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EntryParams carries the writable fields of an entry. Amounts are positive
// magnitudes; the owning category's type decides income versus expense.
type EntryParams struct {
	Description   string
	CategoryID    uint
	Amount        decimal.Decimal
	EffectiveDate time.Time
}

func (p *EntryParams) validate(s *Store, userID uint) error {
	if !p.Amount.IsPositive() {
		return fmt.Errorf("%w: please provide a positive entry amount", ErrValidation)
	}
	var cnt int64
	if err := s.db.Model(&models.Category{}).Where("id = ? AND user_id = ?", p.CategoryID, userID).Count(&cnt).Error; err != nil {
		return err
	}
	if cnt == 0 {
		return ErrNotFound
	}
	return nil
}

// ListEntries returns all of the user's entries with their categories,
// newest effective date first.
func (s *Store) ListEntries(userID uint) ([]models.Entry, error) {
	entries := []models.Entry{}
	err := s.db.Preload("Category").
		Where("user_id = ?", userID).
		Order("effective_date desc").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// GetEntryForEdit fetches one entry with its category (and the category's
// type) eagerly loaded.
func (s *Store) GetEntryForEdit(userID, id uint) (*models.Entry, error) {
	var entry models.Entry
	err := s.db.Preload("Category").Preload("Category.CategoryType").
		Where("id = ? AND user_id = ?", id, userID).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// CreateEntry records a transaction under one of the user's categories. A
// zero effective date defaults to now.
func (s *Store) CreateEntry(userID uint, p EntryParams) (*models.Entry, error) {
	if err := p.validate(s, userID); err != nil {
		return nil, err
	}
	if p.EffectiveDate.IsZero() {
		p.EffectiveDate = time.Now()
	}
	entry := models.Entry{
		UserID:        userID,
		CategoryID:    p.CategoryID,
		Description:   p.Description,
		Amount:        p.Amount,
		EffectiveDate: p.EffectiveDate,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetEntryForEdit(userID, entry.ID)
}

// UpdateEntry re-resolves the entry under the ownership filter and applies
// the new fields.
func (s *Store) UpdateEntry(userID, id uint, p EntryParams) (*models.Entry, error) {
	if err := p.validate(s, userID); err != nil {
		return nil, err
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var entry models.Entry
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&entry).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		entry.Description = p.Description
		entry.CategoryID = p.CategoryID
		entry.Amount = p.Amount
		if !p.EffectiveDate.IsZero() {
			entry.EffectiveDate = p.EffectiveDate
		}
		return tx.Save(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetEntryForEdit(userID, id)
}

// DeleteEntry removes the entry if the user owns it; deleting a missing or
// foreign id succeeds with zero rows affected.
func (s *Store) DeleteEntry(userID, id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Where("id = ? AND user_id = ?", id, userID).
			Delete(&models.Entry{}).Error
	})
}
