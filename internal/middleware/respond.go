package middleware

import (
	"encoding/json"
	"net/http"

	"supplychainx-api/internal/model"
)

func writeDeny(w http.ResponseWriter, r *http.Request, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.NewErrorResponse(status, message, r.URL.Path))
}
