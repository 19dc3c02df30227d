package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"supplychainx-api/internal/authz"
	"supplychainx-api/internal/model"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func requestAs(t *testing.T, path string, identity *model.Identity) *http.Request {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if identity != nil {
		ctx := context.WithValue(req.Context(), identityContextKey, *identity)
		req = req.WithContext(ctx)
	}
	return req
}

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) model.ErrorResponse {
	t.Helper()

	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body model.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestAuthorizePermitsPublicRoute(t *testing.T) {
	t.Parallel()

	handler := NewAuthzMiddleware(authz.Default()).Authorize(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestAs(t, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthorizeAnonymousGets401(t *testing.T) {
	t.Parallel()

	handler := NewAuthzMiddleware(authz.Default()).Authorize(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestAs(t, "/api/suppliers", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	body := decodeErrorBody(t, rec)
	require.Equal(t, http.StatusUnauthorized, body.Status)
	require.Equal(t, "Unauthorized", body.Error)
	require.Equal(t, "Full authentication is required to access this resource", body.Message)
	require.Equal(t, "/api/suppliers", body.Path)

	_, err := time.Parse(time.RFC3339, body.Timestamp)
	require.NoError(t, err)
}

func TestAuthorizeWrongRoleGets403(t *testing.T) {
	t.Parallel()

	handler := NewAuthzMiddleware(authz.Default()).Authorize(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestAs(t, "/api/admin/stats", &model.Identity{
		UserID: "user-1",
		Role:   model.RoleChefProduction,
	}))

	require.Equal(t, http.StatusForbidden, rec.Code)

	body := decodeErrorBody(t, rec)
	require.Equal(t, http.StatusForbidden, body.Status)
	require.Equal(t, "Forbidden", body.Error)
	require.Equal(t, "Access denied", body.Message)
	require.Equal(t, "/api/admin/stats", body.Path)
}

func TestAuthorizeGrantedRolePasses(t *testing.T) {
	t.Parallel()

	handler := NewAuthzMiddleware(authz.Default()).Authorize(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestAs(t, "/api/deliveries/9", &model.Identity{
		UserID: "user-1",
		Role:   model.RoleSuperviseurLivraisons,
	}))

	require.Equal(t, http.StatusOK, rec.Code)
}
