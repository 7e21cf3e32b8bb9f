package portaldb

import (
	"context"
	"log/slog"
)

// portalKey is a private context key type to prevent collisions.
type portalKey struct{}

// WithPortal returns a context carrying the active portal identifier.
// The auth middleware calls this per request; background jobs call it
// directly to scope work to a portal:
//
//	ctx := portaldb.WithPortal(ctx, "portal_acme")
//	sess, err := router.Session(ctx)
//
// Because contexts are immutable, nested scopes restore naturally when the
// inner context goes out of scope, and concurrent requests never observe
// each other's portal.
func WithPortal(ctx context.Context, portalID string) context.Context {
	return context.WithValue(ctx, portalKey{}, portalID)
}

// PortalFromContext returns the active portal identifier, if any.
func PortalFromContext(ctx context.Context) (string, bool) {
	portalID, ok := ctx.Value(portalKey{}).(string)
	if !ok || portalID == "" {
		return "", false
	}
	return portalID, true
}

// LoggerExtractor returns a logger context extractor emitting the portal ID.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if portalID, ok := PortalFromContext(ctx); ok {
			return slog.String("portal_id", portalID), true
		}
		return slog.Attr{}, false
	}
}
