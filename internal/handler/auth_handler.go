package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/mail"
	"strings"

	"supplychainx-api/internal/model"
	"supplychainx-api/pkg/apierror"
)

type authenticator interface {
	Login(ctx context.Context, email string, password string) (model.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (model.AuthResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}

type AuthHandler struct {
	service authenticator
}

func NewAuthHandler(service authenticator) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, r, apierror.BadRequest("invalid JSON body"))
		return
	}

	if err := validateLogin(payload); err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := h.service.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	token, err := decodeRefreshToken(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := h.service.Refresh(r.Context(), token)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	token, err := decodeRefreshToken(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.service.Logout(r.Context(), token); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// validateLogin rejects malformed requests before the pipeline runs: missing
// fields and syntactically invalid emails are 400s, never 401s.
func validateLogin(payload model.LoginRequest) error {
	email := strings.TrimSpace(payload.Email)
	if email == "" {
		return apierror.BadRequest("email is required")
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return apierror.BadRequest("email is not valid")
	}
	if payload.Password == "" {
		return apierror.BadRequest("password is required")
	}
	return nil
}

func decodeRefreshToken(r *http.Request) (string, error) {
	var payload model.RefreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return "", apierror.BadRequest("invalid JSON body")
	}

	token := strings.TrimSpace(payload.RefreshToken)
	if token == "" {
		return "", apierror.BadRequest("refreshToken is required")
	}
	return token, nil
}
