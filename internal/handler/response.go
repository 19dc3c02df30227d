package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"supplychainx-api/internal/model"
	"supplychainx-api/pkg/apierror"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "Unexpected server error"

	var apiErr *apierror.APIError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.Status
		message = apiErr.Message
	case errors.Is(err, model.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		message = "Invalid credentials"
	default:
		slog.Error("unhandled error", "error", err.Error(), "path", r.URL.Path)
	}

	writeJSON(w, status, model.NewErrorResponse(status, message, r.URL.Path))
}
