package portaldb

import "errors"

var (
	// ErrRouterNotInitialized is returned when router operations run before
	// NewRouter was given a URL resolver. This is a deployment bug, not a
	// per-request condition.
	ErrRouterNotInitialized = errors.New("portaldb: router not initialized, call NewRouter with a URL resolver on startup")

	// ErrPortalNotConfigured is returned when the URL resolver has no
	// database for the requested portal.
	ErrPortalNotConfigured = errors.New("portaldb: no database configured for portal")

	// ErrInvalidPortalURL is returned when a resolved connection string
	// cannot be parsed.
	ErrInvalidPortalURL = errors.New("portaldb: invalid portal database url")

	// ErrNoPortalContext is returned by Session when the request context
	// carries no portal. Ensure the auth middleware ran, or use SessionFor.
	ErrNoPortalContext = errors.New("portaldb: no portal in context")

	// ErrSessionClosed is returned when committing an already finished session.
	ErrSessionClosed = errors.New("portaldb: session already closed")

	// ErrControlPlaneNotInitialized is returned when the control-plane
	// accessor is used before Connect was called on startup.
	ErrControlPlaneNotInitialized = errors.New("portaldb: control plane not initialized, call Connect(DATABASE_URL) on startup")

	// ErrControlPlaneURLMissing is returned by Connect when DATABASE_URL
	// is not configured.
	ErrControlPlaneURLMissing = errors.New("portaldb: empty control plane connection string, set DATABASE_URL")

	// ErrFailedToConnect is returned when the control-plane database stays
	// unreachable after all retry attempts.
	ErrFailedToConnect = errors.New("portaldb: failed to open control plane connection")

	// ErrHealthcheckFailed wraps ping failures from the health check.
	ErrHealthcheckFailed = errors.New("portaldb: healthcheck failed, connection is not available")
)
