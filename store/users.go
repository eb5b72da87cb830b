package store

import (
	"errors"
	"fmt"
	"strings"

	"budgetapp/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterParams carries the registration form fields.
type RegisterParams struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// defaultBudget is the budget assigned to the two categories seeded at
// registration, matching the bootstrap data of the original schema.
var defaultBudget = decimal.NewFromInt(100)

// Register creates a user together with the default Chequing and Savings
// accounts and the Income and Misc categories (both attached to Chequing),
// in one all-or-nothing transaction. The username pre-check runs before the
// password is hashed; a lost race against a concurrent registration is
// mapped to the same ErrConflict by the unique constraint.
func (s *Store) Register(p RegisterParams) (*models.User, error) {
	p.Username = strings.TrimSpace(p.Username)
	p.Email = strings.TrimSpace(p.Email)
	switch {
	case p.Username == "":
		return nil, fmt.Errorf("%w: you must provide a username", ErrValidation)
	case p.Email == "":
		return nil, fmt.Errorf("%w: you must provide an email address", ErrValidation)
	case p.Password == "":
		return nil, fmt.Errorf("%w: you must provide a password", ErrValidation)
	case p.ConfirmPassword == "":
		return nil, fmt.Errorf("%w: you must confirm your password", ErrValidation)
	case p.Password != p.ConfirmPassword:
		return nil, fmt.Errorf("%w: your passwords must match", ErrValidation)
	}

	var existing models.User
	if err := s.db.Where("username = ?", p.Username).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("%w: username already taken", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{Username: p.Username, Email: p.Email, HashedPassword: hashed}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			if isUniqueConstraintError(err) {
				return fmt.Errorf("%w: username already taken", ErrConflict)
			}
			return err
		}

		var chequingType, savingsType models.AccountType
		if err := tx.Where("name = ?", "Chequing").First(&chequingType).Error; err != nil {
			return err
		}
		if err := tx.Where("name = ?", "Savings").First(&savingsType).Error; err != nil {
			return err
		}
		var incomeType, expenseType models.CategoryType
		if err := tx.Where("name = ?", "Income").First(&incomeType).Error; err != nil {
			return err
		}
		if err := tx.Where("name = ?", "Expense").First(&expenseType).Error; err != nil {
			return err
		}

		chequing := models.Account{
			UserID:        user.ID,
			AccountTypeID: chequingType.ID,
			Name:          "Chequing",
			Description:   "Chequing and debit deposit account",
			InitialAmount: decimal.Zero,
		}
		savings := models.Account{
			UserID:        user.ID,
			AccountTypeID: savingsType.ID,
			Name:          "Savings",
			Description:   "Savings account",
			InitialAmount: decimal.Zero,
		}
		if err := tx.Create(&chequing).Error; err != nil {
			return err
		}
		if err := tx.Create(&savings).Error; err != nil {
			return err
		}

		income := models.Category{
			UserID:         user.ID,
			CategoryTypeID: incomeType.ID,
			AccountID:      chequing.ID,
			Name:           "Income",
			Description:    "Salary and wage income",
			BudgetAmount:   defaultBudget,
		}
		misc := models.Category{
			UserID:         user.ID,
			CategoryTypeID: expenseType.ID,
			AccountID:      chequing.ID,
			Name:           "Misc",
			Description:    "Miscellaneous expense items",
			BudgetAmount:   defaultBudget,
		}
		if err := tx.Create(&income).Error; err != nil {
			return err
		}
		return tx.Create(&misc).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate looks up exactly one user by username and verifies the
// password. Every failure cause yields the same ErrAuth so callers cannot
// distinguish unknown usernames from bad passwords.
func (s *Store) Authenticate(username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuth
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword(user.HashedPassword, []byte(password)); err != nil {
		return nil, ErrAuth
	}
	return &user, nil
}

// GetUser fetches a user by id.
func (s *Store) GetUser(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
