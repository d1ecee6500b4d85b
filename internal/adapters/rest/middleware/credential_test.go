package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCredentialPassthrough(t *testing.T) {
	var captured string
	handler := Credential(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = CredentialFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer token-123")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "Bearer token-123", captured)
}

func TestCredentialAbsent(t *testing.T) {
	var captured string
	handler := Credential(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = CredentialFromContext(r.Context())
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Empty(t, captured)
}

func TestCredentialFromBareContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, CredentialFromContext(req.Context()))
}
