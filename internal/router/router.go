package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"supplychainx-api/internal/config"
	"supplychainx-api/internal/handler"
	"supplychainx-api/internal/middleware"
	"supplychainx-api/internal/model"
)

type Handlers struct {
	Auth   *handler.AuthHandler
	Health *handler.HealthHandler
	Docs   *handler.DocsHandler
	Stats  *handler.StatsHandler
}

// Route prefixes of the business modules. The role grants live in the
// authorization policy; the router only has to make the paths resolve.
var resourcePrefixes = []string{
	"/api/suppliers",
	"/api/raw-materials",
	"/api/supply-orders",
	"/api/products",
	"/api/bill-of-materials",
	"/api/production-orders",
	"/api/customers",
	"/api/orders",
	"/api/deliveries",
}

func New(
	cfg *config.Config,
	authMiddleware *middleware.AuthMiddleware,
	authzMiddleware *middleware.AuthzMiddleware,
	h Handlers,
) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(rateLimitMiddleware.Handler)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(authMiddleware.Authenticate)
	r.Use(authzMiddleware.Authorize)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(model.NewErrorResponse(http.StatusNotFound, "Resource not found", r.URL.Path))
	})

	r.Get("/", h.Health.Home)
	r.Get("/health", h.Health.Health)
	r.Get("/api/health", h.Health.APIHealth)
	r.Get("/error", h.Health.Error)
	r.Get("/openapi.yaml", h.Docs.OpenAPI)
	r.Get("/swagger", h.Docs.SwaggerUI)

	r.Route("/auth", func(auth chi.Router) {
		auth.Post("/login", h.Auth.Login)
		auth.Post("/refresh", h.Auth.Refresh)
		auth.Post("/logout", h.Auth.Logout)
	})

	r.Get("/api/admin/stats", h.Stats.Stats)

	for _, prefix := range resourcePrefixes {
		r.Get(prefix, handler.ResourceList())
		r.Get(prefix+"/*", handler.ResourceList())
	}

	return r
}
