package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"supplychainx-api/internal/model"
)

// TokenRepository persists refresh tokens. Rows are never deleted on the
// request path; revocation only ever flips the revoked flag, and expired rows
// are left for DeleteExpired (an operator concern).
type TokenRepository struct {
	pool *pgxpool.Pool
}

func NewTokenRepository(pool *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{pool: pool}
}

func (r *TokenRepository) Insert(ctx context.Context, t model.RefreshToken) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO refresh_tokens (token, user_id, expires_at, revoked, created_at)
		 VALUES ($1, $2, $3, FALSE, $4)`,
		t.Token, t.UserID, t.ExpiresAt, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert refresh token: %w", err)
	}
	return nil
}

// Rotate atomically revokes oldToken and inserts its successor for the same
// owner. The compare-and-set UPDATE only matches a live row, so of two
// concurrent rotations of the same token exactly one commits a successor; the
// other sees zero rows and reports why the old token is unusable.
func (r *TokenRepository) Rotate(ctx context.Context, oldToken string, successor model.RefreshToken) (string, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("begin rotate transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var userID string
	err = tx.QueryRow(ctx,
		`UPDATE refresh_tokens SET revoked = TRUE
		 WHERE token = $1 AND NOT revoked AND expires_at > now()
		 RETURNING user_id`, oldToken).Scan(&userID)

	if errors.Is(err, pgx.ErrNoRows) {
		return "", r.diagnose(ctx, tx, oldToken)
	}
	if err != nil {
		return "", fmt.Errorf("revoke rotated token: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO refresh_tokens (token, user_id, expires_at, revoked, created_at)
		 VALUES ($1, $2, $3, FALSE, $4)`,
		successor.Token, userID, successor.ExpiresAt, successor.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("insert successor token: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("commit rotate transaction: %w", err)
	}
	return userID, nil
}

// diagnose explains a failed compare-and-set: the row is missing, already
// revoked, or expired. Runs inside the rotate transaction so a concurrent
// winner's revocation is visible.
func (r *TokenRepository) diagnose(ctx context.Context, tx pgx.Tx, token string) error {
	var revoked bool
	var expiresAt time.Time
	err := tx.QueryRow(ctx,
		`SELECT revoked, expires_at FROM refresh_tokens WHERE token = $1`, token).
		Scan(&revoked, &expiresAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.ErrTokenNotFound
	}
	if err != nil {
		return fmt.Errorf("inspect refresh token: %w", err)
	}
	if revoked {
		return model.ErrTokenRevoked
	}
	return model.ErrTokenExpired
}

// Revoke is idempotent: revoking an already-revoked token succeeds. Only an
// unknown token is an error.
func (r *TokenRepository) Revoke(ctx context.Context, token string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE refresh_tokens SET revoked = TRUE WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrTokenNotFound
	}
	return nil
}

func (r *TokenRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM refresh_tokens WHERE NOT revoked AND expires_at > now()`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count active refresh tokens: %w", err)
	}
	return count, nil
}

// DeleteExpired exists for external housekeeping (cron); the service itself
// never calls it.
func (r *TokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE expires_at <= now()`)
	if err != nil {
		return 0, fmt.Errorf("delete expired tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
