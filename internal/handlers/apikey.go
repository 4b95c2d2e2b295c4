package handlers

import "net/http"

const (
	apiKeyHeader = "x-api-key"
	apiKeyQuery  = "api_key"
)

// RequireAPIKey enforces the static API-key allow-list. The credential is
// read from the x-api-key header, falling back to the api_key query
// parameter. A shared-secret check only: no identity, no expiry.
func RequireAPIKey(allowed []string) func(http.Handler) http.Handler {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, key := range allowed {
		allowedSet[key] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(apiKeyHeader)
			if key == "" {
				key = r.URL.Query().Get(apiKeyQuery)
			}
			if key == "" {
				writeError(w, http.StatusUnauthorized, "Missing API key")
				return
			}
			if _, ok := allowedSet[key]; !ok {
				writeError(w, http.StatusUnauthorized, "Invalid API key")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
