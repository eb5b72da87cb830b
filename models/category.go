package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryType is a global lookup row ("Income" or "Expense"), seeded once.
// A category's type decides whether its entries count toward income or
// expense in the monthly summary.
type CategoryType struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Name      string `gorm:"size:32;uniqueIndex;not null"`
}

// Category is a user-defined budget line tied to one account.
type Category struct {
	ID             uint `gorm:"primaryKey"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	UserID         uint         `gorm:"index;not null"`
	User           User         `json:"-" gorm:"foreignKey:UserID"`
	CategoryTypeID uint         `gorm:"not null"`
	CategoryType   CategoryType `gorm:"foreignKey:CategoryTypeID"`
	AccountID      uint         `gorm:"index;not null"`
	Account        Account      `gorm:"foreignKey:AccountID"`
	Name           string       `gorm:"size:255;not null"`
	Description    string       `gorm:"size:255"`
	BudgetAmount   decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Entries        []Entry         `json:"-" gorm:"foreignKey:CategoryID"`
}
