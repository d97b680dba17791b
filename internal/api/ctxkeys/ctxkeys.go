// Package ctxkeys holds the shared context keys for the API layer.
// Extracted to a leaf package to avoid import cycles between api and
// api/handlers.
package ctxkeys

import "context"

// Key is the named type for all API context keys. A named type avoids
// collisions with string keys from other packages at runtime
// (context.Value compares both type and value).
type Key string

// Subject is the context key for the authenticated caller identity.
// Injected by AuthMiddleware from JWT claims; read only for logging.
const Subject Key = "subject"

// WithValue adds a ctxkeys.Key value to the context.
func WithValue(ctx context.Context, key Key, value string) context.Context {
	return context.WithValue(ctx, key, value)
}

// Value retrieves a ctxkeys.Key value from the context, empty if absent.
func Value(ctx context.Context, key Key) string {
	v, _ := ctx.Value(key).(string)
	return v
}
