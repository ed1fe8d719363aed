// Package contextkeys provides centralized context key definitions
//
// All context keys used across the console are defined here so that
// producers and consumers agree on key identity and value type.
//
// USAGE PATTERN:
//
//	ctx = context.WithValue(ctx, contextkeys.RequestIDKey, id)
//	id, _ := ctx.Value(contextkeys.RequestIDKey).(string)
package contextkeys

// Key is the type for context keys to prevent collisions
type Key string

const (
	// RequestIDKey contains the request ID string (UUID)
	// Set by: httputil.RequestIDMiddleware
	// Used by: observability.FromContext, access logs
	// Type: string
	RequestIDKey Key = "request_id"

	// UserIDKey contains the subject of the decoded session credential
	// Set by: middleware.Gateway when a page request is allowed
	// Used by: observability.FromContext
	// Type: string
	UserIDKey Key = "user_id"

	// LoggerKey contains *observability.Logger
	// Set by: httputil.RequestIDMiddleware
	// Used by: handlers that need structured logging with request context
	// Type: *observability.Logger
	LoggerKey Key = "logger"
)
