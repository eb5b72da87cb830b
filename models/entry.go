package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry is a single recorded transaction attributed to a category and a
// date. Amount is always a positive magnitude; whether it counts as income
// or expense follows from the owning category's type.
type Entry struct {
	ID            uint `gorm:"primaryKey"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	UserID        uint     `gorm:"index;not null"`
	User          User     `json:"-" gorm:"foreignKey:UserID"`
	CategoryID    uint     `gorm:"index;not null"`
	Category      Category `gorm:"foreignKey:CategoryID"`
	Description   string   `gorm:"size:255"`
	Amount        decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	EffectiveDate time.Time       `gorm:"index;not null"`
}
