package model

import "time"

// Roles are persisted values shared with the frontend; do not rename.
const (
	RoleAdmin                         = "ADMIN"
	RoleGestionnaireApprovisionnement = "GESTIONNAIRE_APPROVISIONNEMENT"
	RoleResponsableAchats             = "RESPONSABLE_ACHATS"
	RoleSuperviseurLogistique         = "SUPERVISEUR_LOGISTIQUE"
	RoleChefProduction                = "CHEF_PRODUCTION"
	RoleSuperviseurProduction         = "SUPERVISEUR_PRODUCTION"
	RolePlanificateur                 = "PLANIFICATEUR"
	RoleGestionnaireCommercial        = "GESTIONNAIRE_COMMERCIAL"
	RoleResponsableLogistique         = "RESPONSABLE_LOGISTIQUE"
	RoleSuperviseurLivraisons         = "SUPERVISEUR_LIVRAISONS"
)

// User rows are owned by the user-management side of the backend; the auth
// core only ever reads them.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity is the request-scoped result of verifying an access token. It is
// attached to the request context by the authentication middleware and
// discarded when the request ends.
type Identity struct {
	UserID string
	Email  string
	Role   string
}

// RefreshToken is a persisted, single-use credential. Revocation is
// monotonic: a revoked row never becomes live again, and rows are never
// deleted on the request path.
type RefreshToken struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
}
