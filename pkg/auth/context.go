package auth

import (
	"context"
	"log/slog"
)

// Context is the authenticated identity of the current request.
// It is populated once by the middleware before handler dispatch and is
// read-only afterward. Because it travels on the request context, it is
// isolated per request (including goroutines spawned for the same request)
// and vanishes when the request finishes on any path.
type Context struct {
	UserID     string
	UserType   UserType
	PortalID   string // portal slug, empty for system-wide identities
	PortalUUID string // optional portal UUID, when the gateway provides it
}

type contextKey struct{}

// WithContext stores the authenticated identity on the context.
func WithContext(ctx context.Context, identity Context) context.Context {
	return context.WithValue(ctx, contextKey{}, identity)
}

// FromContext returns the authenticated identity of the request, if any.
func FromContext(ctx context.Context) (Context, bool) {
	identity, ok := ctx.Value(contextKey{}).(Context)
	return identity, ok
}

// LoggerExtractor returns a logger context extractor emitting the user ID.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if identity, ok := FromContext(ctx); ok {
			return slog.String("user_id", identity.UserID), true
		}
		return slog.Attr{}, false
	}
}
