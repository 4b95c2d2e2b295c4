package handlers

import (
	"encoding/json"
	"net/http"
	"regexp"
)

// ErrorResponse is a simple error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Minimal local@domain.tld shape, nothing more.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func validEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// boolFlag reads a query flag that defaults to true: any value other than
// the literal "false" (including absence) counts as true.
func boolFlag(r *http.Request, name string) bool {
	return r.URL.Query().Get(name) != "false"
}

// maskValue truncates a secret to its first six characters plus an
// ellipsis marker.
func maskValue(value string) string {
	runes := []rune(value)
	if len(runes) > 6 {
		runes = runes[:6]
	}
	return string(runes) + "…"
}

func maskPassword(password *string, mask bool) *string {
	if password == nil || !mask {
		return password
	}
	masked := maskValue(*password)
	return &masked
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
