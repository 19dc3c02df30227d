package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"supplychainx-api/internal/model"
)

// UserStore is the read-only lookup capability the auth core consumes. User
// rows are owned by the user-management side; Create exists solely for the
// startup admin bootstrap.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (model.User, error)
	FindByID(ctx context.Context, id string) (model.User, error)
	Create(ctx context.Context, u model.User) error
	Count(ctx context.Context) (int, error)
}

// AuthService orchestrates login, refresh and logout on top of the token
// codec and the refresh token manager.
type AuthService struct {
	users   UserStore
	tokens  *TokenService
	refresh *RefreshService
}

func NewAuthService(users UserStore, tokens *TokenService, refresh *RefreshService) *AuthService {
	return &AuthService{users: users, tokens: tokens, refresh: refresh}
}

// Login validates credentials and issues an access/refresh pair. Unknown
// email and wrong password return the identical error so responses cannot be
// used to enumerate accounts.
func (s *AuthService) Login(ctx context.Context, email string, password string) (model.AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			slog.Debug("login rejected", "reason", "unknown email")
			return model.AuthResponse{}, model.ErrInvalidCredentials
		}
		return model.AuthResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		slog.Debug("login rejected", "reason", "password mismatch", "user_id", user.ID)
		return model.AuthResponse{}, model.ErrInvalidCredentials
	}

	return s.issuePair(ctx, user)
}

// Refresh rotates the presented refresh token and mints a fresh access token
// for its owner. Every manager failure collapses to ErrInvalidCredentials;
// the precise reason (missing, revoked, expired) stays in the logs.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (model.AuthResponse, error) {
	rotated, err := s.refresh.Rotate(ctx, refreshToken)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrTokenNotFound),
			errors.Is(err, model.ErrTokenRevoked),
			errors.Is(err, model.ErrTokenExpired):
			slog.Info("refresh rejected", "reason", err.Error())
			return model.AuthResponse{}, model.ErrInvalidCredentials
		}
		return model.AuthResponse{}, err
	}

	user, err := s.users.FindByID(ctx, rotated.UserID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			slog.Warn("refresh rejected", "reason", "owner no longer exists", "user_id", rotated.UserID)
			return model.AuthResponse{}, model.ErrInvalidCredentials
		}
		return model.AuthResponse{}, err
	}

	accessToken, _, err := s.tokens.Mint(user.ID, user.Email, user.Role)
	if err != nil {
		return model.AuthResponse{}, err
	}

	return model.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: rotated.Token,
		TokenType:    "Bearer",
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
	}, nil
}

// Logout revokes the refresh token. An unknown token maps to
// ErrInvalidCredentials so callers cannot probe which tokens exist; revoking
// an already-revoked token succeeds.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	err := s.refresh.Revoke(ctx, refreshToken)
	if errors.Is(err, model.ErrTokenNotFound) {
		slog.Debug("logout rejected", "reason", "unknown refresh token")
		return model.ErrInvalidCredentials
	}
	return err
}

// EnsureAdminUser seeds the configured admin account when the users table is
// empty, so a fresh deployment is reachable.
func (s *AuthService) EnsureAdminUser(ctx context.Context, email string, password string) error {
	count, err := s.users.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	admin := model.User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return err
	}

	slog.Info("seeded admin user", "email", admin.Email)
	return nil
}

func (s *AuthService) issuePair(ctx context.Context, user model.User) (model.AuthResponse, error) {
	accessToken, _, err := s.tokens.Mint(user.ID, user.Email, user.Role)
	if err != nil {
		return model.AuthResponse{}, err
	}

	refreshToken, _, err := s.refresh.Issue(ctx, user.ID)
	if err != nil {
		return model.AuthResponse{}, err
	}

	return model.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
	}, nil
}
