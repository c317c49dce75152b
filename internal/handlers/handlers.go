package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/platewise/platewise-backend/internal/services"
)

// Response is the envelope for simple success/failure replies.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Response{Success: false, Message: message})
}

func extractBearerToken(header string) string {
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}

// requireAuth resolves the request's bearer token to a username.
// Returns ("", false) and writes a 401 when the session is missing or invalid.
func requireAuth(w http.ResponseWriter, r *http.Request, sessions services.SessionStore) (string, bool) {
	token := extractBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return "", false
	}
	username, ok, err := sessions.Validate(r.Context(), token)
	if err != nil || !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return "", false
	}
	return username, true
}
