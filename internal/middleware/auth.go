package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"supplychainx-api/internal/model"
)

type tokenVerifier interface {
	Verify(tokenString string) (model.Identity, error)
}

type contextKey string

const identityContextKey contextKey = "auth_identity"

const bearerPrefix = "Bearer "

type AuthMiddleware struct {
	verifier tokenVerifier
}

func NewAuthMiddleware(verifier tokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// Authenticate extracts and verifies the access token once per request. A
// missing header, a header without the exact "Bearer " prefix, or a token
// that fails verification leaves the request anonymous rather than rejecting
// it here; whether anonymous is acceptable is the authorization policy's
// call. Public routes therefore stay reachable even with a bad token.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, bearerPrefix) {
			next.ServeHTTP(w, r)
			return
		}

		identity, err := m.verifier.Verify(strings.TrimSpace(header[len(bearerPrefix):]))
		if err != nil {
			// Expiry and malformed tokens are indistinguishable to the
			// client; keep them apart in the logs.
			if errors.Is(err, model.ErrTokenExpired) {
				slog.Info("access token rejected", "reason", "expired", "path", r.URL.Path)
			} else {
				slog.Warn("access token rejected", "reason", "malformed or bad signature", "path", r.URL.Path)
			}
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), identityContextKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func IdentityFromContext(ctx context.Context) (model.Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(model.Identity)
	return identity, ok
}
