package handler

import (
	"context"
	"net/http"
)

type userCounter interface {
	Count(ctx context.Context) (int, error)
}

type tokenCounter interface {
	CountActive(ctx context.Context) (int, error)
}

// StatsHandler serves the admin dashboard counters.
type StatsHandler struct {
	users  userCounter
	tokens tokenCounter
}

func NewStatsHandler(users userCounter, tokens tokenCounter) *StatsHandler {
	return &StatsHandler{users: users, tokens: tokens}
}

func (h *StatsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userCount, err := h.users.Count(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	sessionCount, err := h.tokens.CountActive(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{
		"users":          userCount,
		"activeSessions": sessionCount,
	})
}
