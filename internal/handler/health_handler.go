package handler

import (
	"context"
	"net/http"

	"supplychainx-api/internal/model"
)

type pinger interface {
	Health(ctx context.Context) error
}

type HealthHandler struct {
	db pinger
}

func NewHealthHandler(db pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Home(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": "supplychainx-api",
		"status":  "up",
	})
}

func (h *HealthHandler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// APIHealth additionally pings the database.
func (h *HealthHandler) APIHealth(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		if err := h.db.Health(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, model.NewErrorResponse(
				http.StatusServiceUnavailable, "database unreachable", r.URL.Path))
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Error is the generic error page; it is public and always renders the
// standard error body.
func (h *HealthHandler) Error(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, model.NewErrorResponse(
		http.StatusNotFound, "No message available", r.URL.Path))
}
