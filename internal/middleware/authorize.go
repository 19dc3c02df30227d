package middleware

import (
	"net/http"

	"supplychainx-api/internal/authz"
)

type AuthzMiddleware struct {
	policy *authz.Policy
}

func NewAuthzMiddleware(policy *authz.Policy) *AuthzMiddleware {
	return &AuthzMiddleware{policy: policy}
}

// Authorize gates every route through the policy table. It runs after
// Authenticate, so an identity is present exactly when the request carried a
// valid access token.
func (m *AuthzMiddleware) Authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, authenticated := IdentityFromContext(r.Context())

		switch m.policy.Evaluate(r.URL.Path, identity.Role, authenticated) {
		case authz.Permit:
			next.ServeHTTP(w, r)
		case authz.DenyUnauthenticated:
			writeDeny(w, r, http.StatusUnauthorized, "Full authentication is required to access this resource")
		case authz.DenyForbidden:
			writeDeny(w, r, http.StatusForbidden, "Access denied")
		}
	})
}
