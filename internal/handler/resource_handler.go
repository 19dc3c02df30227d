package handler

import "net/http"

// ResourceList is a placeholder for the CRUD modules that live outside the
// auth core. The authorization policy gates these routes; the handler only
// has to answer once a request is permitted.
func ResourceList() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, []any{})
	}
}
