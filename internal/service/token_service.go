package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"supplychainx-api/internal/model"
)

// TokenService mints and verifies the short-lived access tokens. It is a pure
// function of the signing key and the clock; nothing here touches storage.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

func (s *TokenService) Mint(userID string, email string, role string) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(s.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"role":  role,
		"iat":   now.Unix(),
		"exp":   expiresAt.Unix(),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify returns ErrTokenExpired for an expired but otherwise valid token and
// ErrTokenMalformed for everything else. Callers treat both as 401; the
// distinction is for logs.
func (s *TokenService) Verify(tokenString string) (model.Identity, error) {
	if strings.TrimSpace(tokenString) == "" {
		return model.Identity{}, model.ErrTokenMalformed
	}

	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, model.ErrTokenMalformed
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return model.Identity{}, model.ErrTokenExpired
		}
		return model.Identity{}, model.ErrTokenMalformed
	}
	if !parsed.Valid {
		return model.Identity{}, model.ErrTokenMalformed
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return model.Identity{}, model.ErrTokenMalformed
	}

	identity := model.Identity{}
	identity.UserID, _ = claims["sub"].(string)
	identity.Email, _ = claims["email"].(string)
	identity.Role, _ = claims["role"].(string)

	if identity.UserID == "" || identity.Role == "" {
		return model.Identity{}, model.ErrTokenMalformed
	}
	return identity, nil
}
