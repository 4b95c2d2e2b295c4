package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedHandler(allowed []string) http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return RequireAPIKey(allowed)(next)
}

func TestRequireAPIKeyMissing(t *testing.T) {
	handler := newProtectedHandler([]string{"k1"})

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Missing API key"}`, rec.Body.String())
}

func TestRequireAPIKeyInvalid(t *testing.T) {
	handler := newProtectedHandler([]string{"k1", "k2"})

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("x-api-key", "nope")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid API key"}`, rec.Body.String())
}

func TestRequireAPIKeyHeader(t *testing.T) {
	handler := newProtectedHandler([]string{"k1", "k2"})

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("x-api-key", "k2")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAPIKeyQueryFallback(t *testing.T) {
	handler := newProtectedHandler([]string{"k1"})

	req := httptest.NewRequest(http.MethodGet, "/api/users?api_key=k1", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAPIKeyHeaderWinsOverQuery(t *testing.T) {
	handler := newProtectedHandler([]string{"k1"})

	req := httptest.NewRequest(http.MethodGet, "/api/users?api_key=k1", nil)
	req.Header.Set("x-api-key", "wrong")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAPIKeyEmptyAllowList(t *testing.T) {
	handler := newProtectedHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("x-api-key", "anything")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid API key"}`, rec.Body.String())
}
