package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"supplychainx-api/internal/model"
)

// TokenStore is the persistence contract for refresh tokens. Rotate must be
// atomic: the old row is revoked and the successor created in one
// transaction, and concurrent rotations of the same token serialize so that
// at most one succeeds.
type TokenStore interface {
	Insert(ctx context.Context, t model.RefreshToken) error
	Rotate(ctx context.Context, oldToken string, successor model.RefreshToken) (userID string, err error)
	Revoke(ctx context.Context, token string) error
	CountActive(ctx context.Context) (int, error)
}

// RefreshService issues, rotates and revokes the long-lived refresh tokens.
type RefreshService struct {
	store TokenStore
	ttl   time.Duration
}

func NewRefreshService(store TokenStore, ttl time.Duration) *RefreshService {
	return &RefreshService{store: store, ttl: ttl}
}

func (s *RefreshService) Issue(ctx context.Context, userID string) (string, time.Time, error) {
	value, err := generateTokenValue()
	if err != nil {
		return "", time.Time{}, err
	}

	now := time.Now().UTC()
	token := model.RefreshToken{
		Token:     value,
		UserID:    userID,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	if err := s.store.Insert(ctx, token); err != nil {
		return "", time.Time{}, err
	}
	return value, token.ExpiresAt, nil
}

// Rotate exchanges a live refresh token for a new one belonging to the same
// owner. The presented token becomes permanently unusable. Presenting an
// already-rotated token is a strong replay signal and is logged as such.
func (s *RefreshService) Rotate(ctx context.Context, oldToken string) (model.RefreshToken, error) {
	value, err := generateTokenValue()
	if err != nil {
		return model.RefreshToken{}, err
	}

	now := time.Now().UTC()
	successor := model.RefreshToken{
		Token:     value,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}

	userID, err := s.store.Rotate(ctx, oldToken, successor)
	if err != nil {
		if errors.Is(err, model.ErrTokenRevoked) {
			slog.Warn("refresh token reuse detected", "reason", "token already revoked")
		}
		return model.RefreshToken{}, err
	}

	successor.UserID = userID
	return successor, nil
}

func (s *RefreshService) Revoke(ctx context.Context, token string) error {
	return s.store.Revoke(ctx, token)
}

// generateTokenValue returns 256 bits of entropy, hex encoded. The value is
// opaque; nothing is derivable from it.
func generateTokenValue() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate refresh token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
