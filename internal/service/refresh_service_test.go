package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"supplychainx-api/internal/model"
)

func TestRefreshServiceIssue(t *testing.T) {
	t.Parallel()

	store := newMemTokenStore()
	svc := NewRefreshService(store, 24*time.Hour)

	token, expiresAt, err := svc.Issue(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, token, 64) // 32 random bytes, hex encoded
	require.WithinDuration(t, time.Now().UTC().Add(24*time.Hour), expiresAt, 5*time.Second)

	row, exists := store.get(token)
	require.True(t, exists)
	require.Equal(t, "user-1", row.UserID)
	require.False(t, row.Revoked)

	second, _, err := svc.Issue(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotEqual(t, token, second)
}

func TestRefreshServiceRotate(t *testing.T) {
	t.Parallel()

	store := newMemTokenStore()
	svc := NewRefreshService(store, 24*time.Hour)

	old, _, err := svc.Issue(context.Background(), "user-1")
	require.NoError(t, err)

	rotated, err := svc.Rotate(context.Background(), old)
	require.NoError(t, err)
	require.Equal(t, "user-1", rotated.UserID)
	require.NotEqual(t, old, rotated.Token)

	oldRow, _ := store.get(old)
	require.True(t, oldRow.Revoked)

	newRow, exists := store.get(rotated.Token)
	require.True(t, exists)
	require.False(t, newRow.Revoked)
}

func TestRefreshServiceRotateReuseRejected(t *testing.T) {
	t.Parallel()

	store := newMemTokenStore()
	svc := NewRefreshService(store, 24*time.Hour)

	old, _, err := svc.Issue(context.Background(), "user-1")
	require.NoError(t, err)

	_, err = svc.Rotate(context.Background(), old)
	require.NoError(t, err)

	_, err = svc.Rotate(context.Background(), old)
	require.ErrorIs(t, err, model.ErrTokenRevoked)
}

func TestRefreshServiceRotateUnknownToken(t *testing.T) {
	t.Parallel()

	svc := NewRefreshService(newMemTokenStore(), 24*time.Hour)

	_, err := svc.Rotate(context.Background(), "no-such-token")
	require.ErrorIs(t, err, model.ErrTokenNotFound)
}

func TestRefreshServiceRotateExpiredToken(t *testing.T) {
	t.Parallel()

	store := newMemTokenStore()
	svc := NewRefreshService(store, 24*time.Hour)

	store.insertRaw(model.RefreshToken{
		Token:     "stale",
		UserID:    "user-1",
		ExpiresAt: time.Now().UTC().Add(-time.Hour),
		CreatedAt: time.Now().UTC().Add(-25 * time.Hour),
	})

	_, err := svc.Rotate(context.Background(), "stale")
	require.ErrorIs(t, err, model.ErrTokenExpired)
}

func TestRefreshServiceConcurrentRotateSingleWinner(t *testing.T) {
	t.Parallel()

	store := newMemTokenStore()
	svc := NewRefreshService(store, 24*time.Hour)

	old, _, err := svc.Issue(context.Background(), "user-1")
	require.NoError(t, err)

	const workers = 16
	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Rotate(context.Background(), old)
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		require.ErrorIs(t, err, model.ErrTokenRevoked)
	}
	require.Equal(t, 1, successes, "exactly one concurrent rotation may succeed")
}

func TestRefreshServiceRevokeIdempotent(t *testing.T) {
	t.Parallel()

	store := newMemTokenStore()
	svc := NewRefreshService(store, 24*time.Hour)

	token, _, err := svc.Issue(context.Background(), "user-1")
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(context.Background(), token))
	require.NoError(t, svc.Revoke(context.Background(), token))

	require.ErrorIs(t, svc.Revoke(context.Background(), "unknown"), model.ErrTokenNotFound)
}
