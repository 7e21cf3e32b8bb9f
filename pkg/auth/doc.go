// Package auth provides request-scoped authentication context, role-based
// guards, and dual-mode authentication middleware for portal backends.
//
// # Modes
//
// In production the service sits behind a gateway whose authorizer
// verifies credentials and forwards identity headers (X-User-ID,
// X-User-Type, X-Portal-ID, X-Tenant-ID). A shared X-Gateway-Secret proves
// the request was relayed through the gateway; on mismatch the identity
// headers are ignored and the request proceeds unauthenticated, which
// keeps public endpoints reachable while making the headers unspoofable.
//
// In dev mode the middleware verifies an RS256 (configurable) bearer token
// against a PEM public key, so a frontend can talk to the service without
// the gateway. Paths on the public allow-list don't require a token;
// everywhere else a missing token is rejected with 401 and code
// "missing_token", an expired one with "expired_token".
//
// # Guards
//
// Route-level authorization reads the identity back from the context:
//
//	identity, err := auth.RequirePortalAdmin(r.Context())
//	if err != nil {
//		auth.WriteError(w, err)
//		return
//	}
//
// or as middleware via auth.Require(auth.RequirePortalAdmin).
package auth
