// Shared response helpers for the API handlers.
package handlers

import (
	"encoding/json"
	"net/http"
)

const headerContentType = "Content-Type"

// internalErrorMessage is the only error detail ever surfaced to callers;
// the real failure goes to the log.
const internalErrorMessage = "Internal server error"

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set(headerContentType, "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload) //nolint:errcheck
}

// writeError writes a JSON error response: {"error": message}.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
