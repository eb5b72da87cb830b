package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType is a global lookup row (e.g. "Chequing", "Savings"), seeded
// once at database initialization and shared across all users.
type AccountType struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Name      string `gorm:"size:32;uniqueIndex;not null"`
}

// Account is a user's financial holding container with a starting balance.
type Account struct {
	ID            uint `gorm:"primaryKey"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	UserID        uint        `gorm:"index;not null"`
	User          User        `json:"-" gorm:"foreignKey:UserID"`
	AccountTypeID uint        `gorm:"not null"`
	AccountType   AccountType `gorm:"foreignKey:AccountTypeID"`
	Name          string      `gorm:"size:255;not null"`
	Description   string      `gorm:"size:255"`
	// InitialAmount is a fixed-point currency value with 2 fractional digits.
	InitialAmount decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Categories    []Category      `json:"-" gorm:"foreignKey:AccountID"`
}
