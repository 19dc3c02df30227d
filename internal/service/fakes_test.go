package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"supplychainx-api/internal/model"
)

// memTokenStore mirrors the Postgres repository's semantics: monotonic
// revocation and a compare-and-set rotate that serializes concurrent callers.
type memTokenStore struct {
	mu     sync.Mutex
	tokens map[string]*model.RefreshToken
}

func newMemTokenStore() *memTokenStore {
	return &memTokenStore{tokens: map[string]*model.RefreshToken{}}
}

func (s *memTokenStore) Insert(_ context.Context, t model.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := t
	s.tokens[t.Token] = &row
	return nil
}

func (s *memTokenStore) Rotate(_ context.Context, oldToken string, successor model.RefreshToken) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, exists := s.tokens[oldToken]
	if !exists {
		return "", model.ErrTokenNotFound
	}
	if row.Revoked {
		return "", model.ErrTokenRevoked
	}
	if time.Now().UTC().After(row.ExpiresAt) {
		return "", model.ErrTokenExpired
	}

	row.Revoked = true
	next := successor
	next.UserID = row.UserID
	s.tokens[next.Token] = &next
	return row.UserID, nil
}

func (s *memTokenStore) Revoke(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, exists := s.tokens[token]
	if !exists {
		return model.ErrTokenNotFound
	}
	row.Revoked = true
	return nil
}

func (s *memTokenStore) CountActive(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	now := time.Now().UTC()
	for _, row := range s.tokens {
		if !row.Revoked && row.ExpiresAt.After(now) {
			count++
		}
	}
	return count, nil
}

func (s *memTokenStore) get(token string) (model.RefreshToken, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, exists := s.tokens[token]
	if !exists {
		return model.RefreshToken{}, false
	}
	return *row, true
}

// insertRaw seeds a row directly, bypassing Issue, for expiry tests.
func (s *memTokenStore) insertRaw(t model.RefreshToken) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := t
	s.tokens[t.Token] = &row
}

type memUserStore struct {
	mu    sync.Mutex
	users map[string]model.User
}

func newMemUserStore(users ...model.User) *memUserStore {
	s := &memUserStore{users: map[string]model.User{}}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *memUserStore) FindByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return model.User{}, model.ErrUserNotFound
}

func (s *memUserStore) FindByID(_ context.Context, id string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, exists := s.users[id]
	if !exists {
		return model.User{}, model.ErrUserNotFound
	}
	return u, nil
}

func (s *memUserStore) Create(_ context.Context, u model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[u.ID] = u
	return nil
}

func (s *memUserStore) Count(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.users), nil
}
