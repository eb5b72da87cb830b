package store

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"budgetapp/models"

	"gorm.io/gorm"
)

const refreshTokenTTL = 30 * 24 * time.Hour

// IssueRefreshToken generates a random refresh token, stores its hash with
// an expiry and returns the raw token string.
func (s *Store) IssueRefreshToken(userID uint) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	token := hex.EncodeToString(b)
	rt := models.RefreshToken{
		UserID:    userID,
		TokenHash: hashToken(token),
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}
	if err := s.db.Create(&rt).Error; err != nil {
		return "", err
	}
	return token, nil
}

// RotateRefreshToken exchanges a live refresh token for a new one, revoking
// the old one, and returns the owning user id with the new raw token.
func (s *Store) RotateRefreshToken(raw string) (uint, string, error) {
	rt, err := s.findRefreshToken(raw)
	if err != nil {
		return 0, "", err
	}
	if rt.Revoked || time.Now().After(rt.ExpiresAt) {
		return 0, "", ErrAuth
	}
	if err := s.db.Model(&models.RefreshToken{}).Where("id = ?", rt.ID).Update("revoked", true).Error; err != nil {
		return 0, "", err
	}
	token, err := s.IssueRefreshToken(rt.UserID)
	if err != nil {
		return 0, "", err
	}
	return rt.UserID, token, nil
}

// RevokeRefreshToken clears the session binding behind a refresh token.
// Unknown tokens are a silent success so logout never fails.
func (s *Store) RevokeRefreshToken(raw string) error {
	return s.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", hashToken(raw)).
		Update("revoked", true).Error
}

func (s *Store) findRefreshToken(raw string) (*models.RefreshToken, error) {
	var rt models.RefreshToken
	if err := s.db.Where("token_hash = ?", hashToken(raw)).First(&rt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuth
		}
		return nil, err
	}
	return &rt, nil
}

func hashToken(raw string) string {
	h := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(h[:])
}
