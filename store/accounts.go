package store

import (
	"errors"
	"fmt"
	"strings"

	"budgetapp/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AccountParams carries the writable fields of an account. The owning user
// id is never part of it; ownership is bound from the authenticated caller.
type AccountParams struct {
	Name          string
	Description   string
	AccountTypeID uint
	InitialAmount decimal.Decimal
}

func (p *AccountParams) validate(s *Store) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return fmt.Errorf("%w: please provide an account name", ErrValidation)
	}
	if p.InitialAmount.IsNegative() {
		return fmt.Errorf("%w: initial amount cannot be negative", ErrValidation)
	}
	var cnt int64
	if err := s.db.Model(&models.AccountType{}).Where("id = ?", p.AccountTypeID).Count(&cnt).Error; err != nil {
		return err
	}
	if cnt == 0 {
		return fmt.Errorf("%w: unknown account type", ErrValidation)
	}
	return nil
}

// ListAccounts returns all of the user's accounts with their types, in
// insertion order. An unknown user id yields an empty slice.
func (s *Store) ListAccounts(userID uint) ([]models.Account, error) {
	accounts := []models.Account{}
	err := s.db.Preload("AccountType").
		Where("user_id = ?", userID).
		Order("id").
		Find(&accounts).Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

// GetAccountForEdit fetches one account with its type eagerly loaded.
// Missing and foreign ids both come back as ErrNotFound.
func (s *Store) GetAccountForEdit(userID, id uint) (*models.Account, error) {
	var account models.Account
	err := s.db.Preload("AccountType").
		Where("id = ? AND user_id = ?", id, userID).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// CreateAccount adds an account for the user.
func (s *Store) CreateAccount(userID uint, p AccountParams) (*models.Account, error) {
	if err := p.validate(s); err != nil {
		return nil, err
	}
	account := models.Account{
		UserID:        userID,
		AccountTypeID: p.AccountTypeID,
		Name:          p.Name,
		Description:   p.Description,
		InitialAmount: p.InitialAmount,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&account).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetAccountForEdit(userID, account.ID)
}

// UpdateAccount re-resolves the account under the ownership filter, applies
// the new fields and refreshes the modified timestamp.
func (s *Store) UpdateAccount(userID, id uint, p AccountParams) (*models.Account, error) {
	if err := p.validate(s); err != nil {
		return nil, err
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var account models.Account
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&account).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		account.Name = p.Name
		account.Description = p.Description
		account.AccountTypeID = p.AccountTypeID
		account.InitialAmount = p.InitialAmount
		return tx.Save(&account).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetAccountForEdit(userID, id)
}

// DeleteAccount removes the account if the user owns it. Deleting a missing
// or foreign id is a silent success; an account that still has categories
// attached is refused.
func (s *Store) DeleteAccount(userID, id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var cnt int64
		if err := tx.Model(&models.Category{}).
			Where("account_id = ? AND user_id = ?", id, userID).
			Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return fmt.Errorf("%w: account still has categories attached", ErrConflict)
		}
		return tx.Where("id = ? AND user_id = ?", id, userID).
			Delete(&models.Account{}).Error
	})
}
