package httputil

import (
	"context"
	"net/http"
)

// Context key type to avoid collisions
type contextKey string

const identityKey contextKey = "identity"

// WithIdentity adds the authenticated admin identity to the request context.
func WithIdentity(r *http.Request, identity string) *http.Request {
	ctx := context.WithValue(r.Context(), identityKey, identity)
	return r.WithContext(ctx)
}

// GetIdentity retrieves the authenticated identity from the request context,
// returning empty string on unauthenticated requests.
func GetIdentity(r *http.Request) string {
	identity, _ := r.Context().Value(identityKey).(string)
	return identity
}
