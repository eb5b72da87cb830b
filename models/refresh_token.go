package models

import "time"

// RefreshToken is the server-side half of a login session. The raw token
// stays with the client; only its sha256 hex digest is stored here, with an
// expiry, so sessions can be rotated on refresh and revoked at logout
// without ever persisting a usable credential.
type RefreshToken struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    uint   `gorm:"index;not null"`
	User      User   `json:"-" gorm:"foreignKey:UserID"`
	TokenHash string `gorm:"size:128;not null;uniqueIndex"`
	// ExpiresAt bounds the session even if the client never logs out.
	ExpiresAt time.Time `gorm:"index;not null"`
	Revoked   bool      `gorm:"default:false"`
}
