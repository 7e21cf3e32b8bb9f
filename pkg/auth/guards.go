package auth

import (
	"context"
	"net/http"
)

// Guard checks the request identity and returns it when access is allowed.
// Guards are pure functions of the context: they never mutate state, so
// routes can stack them freely.
type Guard func(ctx context.Context) (Context, error)

// RequireAuth returns the identity of any authenticated user.
func RequireAuth(ctx context.Context) (Context, error) {
	identity, ok := FromContext(ctx)
	if !ok {
		return Context{}, ErrNotAuthenticated
	}
	return identity, nil
}

// RequireSystemAdmin allows only system administrators. System admins
// operate across portals, so no portal context is required.
func RequireSystemAdmin(ctx context.Context) (Context, error) {
	identity, err := RequireAuth(ctx)
	if err != nil {
		return Context{}, err
	}
	if identity.UserType != UserTypeSystemAdmin {
		return Context{}, ErrSystemAdminRequired
	}
	return identity, nil
}

// RequirePortalAdmin allows only portal administrators acting within a
// portal.
func RequirePortalAdmin(ctx context.Context) (Context, error) {
	identity, err := RequireAuth(ctx)
	if err != nil {
		return Context{}, err
	}
	if identity.UserType != UserTypePortalAdmin {
		return Context{}, ErrPortalAdminRequired
	}
	if identity.PortalID == "" {
		return Context{}, ErrPortalContextRequired
	}
	return identity, nil
}

// RequireClientAdmin allows client administrators or portal administrators
// acting within a portal.
func RequireClientAdmin(ctx context.Context) (Context, error) {
	identity, err := RequireAuth(ctx)
	if err != nil {
		return Context{}, err
	}
	if identity.UserType != UserTypeClientAdmin && identity.UserType != UserTypePortalAdmin {
		return Context{}, ErrClientAdminRequired
	}
	if identity.PortalID == "" {
		return Context{}, ErrPortalContextRequired
	}
	return identity, nil
}

// Require adapts a guard into route middleware: guard failures are
// rendered as JSON error responses and the handler is never invoked.
//
//	r.With(auth.Require(auth.RequirePortalAdmin)).Get("/settings", handler)
func Require(guard Guard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := guard(r.Context()); err != nil {
				WriteError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
