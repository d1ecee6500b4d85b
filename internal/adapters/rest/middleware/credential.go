package middleware

import (
	"context"
	"net/http"
)

type contextKey string

// credentialKey carries the raw Authorization header value through the
// request context.
const credentialKey contextKey = "credential"

// Credential extracts the Authorization header and stores it in the
// request context. The header is passed through to the user service
// untouched; this service never parses or verifies the token itself.
// An absent header is stored as the empty string and rejected later,
// by the application layer, only for operations that need a caller.
func Credential(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), credentialKey, r.Header.Get("Authorization"))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CredentialFromContext returns the raw Authorization header value, or
// the empty string when the request carried none.
func CredentialFromContext(ctx context.Context) string {
	if credential, ok := ctx.Value(credentialKey).(string); ok {
		return credential
	}
	return ""
}
