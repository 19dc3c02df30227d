// Package authz decides, for a request path and an (optional) authenticated
// role, whether the request may proceed. The decision is a pure function of
// an ordered route table fixed at startup; it is deliberately independent of
// the router so it can be evaluated and tested without dispatching.
package authz

import (
	"strings"

	"supplychainx-api/internal/model"
)

type Decision int

const (
	// Permit forwards the request to its handler.
	Permit Decision = iota
	// DenyUnauthenticated rejects with 401: the route needs an identity and
	// the request has none.
	DenyUnauthenticated
	// DenyForbidden rejects with 403: the identity's role is not in the
	// route's role set.
	DenyForbidden
)

// Rule grants a route prefix to a set of roles. Rules are evaluated in
// order; list more specific prefixes first.
type Rule struct {
	Prefix string
	Roles  []string
}

type Policy struct {
	public []string
	rules  []Rule
}

func New(public []string, rules []Rule) *Policy {
	return &Policy{public: public, rules: rules}
}

// Default returns the route table of the application: the fixed public set
// and the role grants for every business module.
func Default() *Policy {
	return New(
		[]string{
			"/",
			"/health",
			"/api/health",
			"/auth",
			"/openapi.yaml",
			"/swagger",
			"/error",
		},
		[]Rule{
			{Prefix: "/api/admin", Roles: []string{model.RoleAdmin}},
			{Prefix: "/api/suppliers", Roles: []string{
				model.RoleGestionnaireApprovisionnement, model.RoleResponsableAchats, model.RoleAdmin}},
			{Prefix: "/api/raw-materials", Roles: []string{
				model.RoleGestionnaireApprovisionnement, model.RoleSuperviseurLogistique, model.RoleAdmin}},
			{Prefix: "/api/supply-orders", Roles: []string{
				model.RoleGestionnaireApprovisionnement, model.RoleResponsableAchats, model.RoleAdmin}},
			{Prefix: "/api/products", Roles: []string{
				model.RoleChefProduction, model.RoleSuperviseurProduction, model.RolePlanificateur, model.RoleAdmin}},
			{Prefix: "/api/bill-of-materials", Roles: []string{
				model.RoleChefProduction, model.RolePlanificateur, model.RoleAdmin}},
			{Prefix: "/api/production-orders", Roles: []string{
				model.RoleChefProduction, model.RoleSuperviseurProduction, model.RolePlanificateur, model.RoleAdmin}},
			{Prefix: "/api/customers", Roles: []string{
				model.RoleGestionnaireCommercial, model.RoleAdmin}},
			{Prefix: "/api/orders", Roles: []string{
				model.RoleGestionnaireCommercial, model.RoleResponsableLogistique, model.RoleAdmin}},
			{Prefix: "/api/deliveries", Roles: []string{
				model.RoleResponsableLogistique, model.RoleSuperviseurLivraisons, model.RoleAdmin}},
		},
	)
}

// Evaluate is deterministic: the same (path, role, authenticated) triple
// always yields the same decision. Routes matching no rule fail closed and
// require an authenticated identity of any role.
func (p *Policy) Evaluate(path string, role string, authenticated bool) Decision {
	if p.isPublic(path) {
		return Permit
	}

	if !authenticated {
		return DenyUnauthenticated
	}

	for _, rule := range p.rules {
		if !matchPrefix(path, rule.Prefix) {
			continue
		}
		for _, allowed := range rule.Roles {
			if role == allowed {
				return Permit
			}
		}
		return DenyForbidden
	}

	// Authenticated, no specific grant needed.
	return Permit
}

func (p *Policy) isPublic(path string) bool {
	for _, prefix := range p.public {
		if prefix == "/" {
			if path == "/" {
				return true
			}
			continue
		}
		if matchPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// matchPrefix matches whole path segments: "/api/orders" covers
// "/api/orders" and "/api/orders/42" but not "/api/orders-archive".
func matchPrefix(path string, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}
