package auth

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Configuration errors, fatal at middleware construction.
var (
	ErrUnknownUserType      = errors.New("auth: unknown user type")
	ErrMissingPublicKey     = errors.New("auth: dev mode requires JWT_PUBLIC_KEY")
	ErrUnsupportedAlgorithm = errors.New("auth: unsupported jwt algorithm")
)

// Error is an HTTP-facing authentication or authorization failure with a
// stable machine-readable code. The JSON shape matches what API clients
// already consume: {"detail": "...", "code": "..."}.
type Error struct {
	Status int    `json:"-"`
	Detail string `json:"detail"`
	Code   string `json:"code"`
}

func (e *Error) Error() string {
	return e.Code
}

// Request-level failures. Guards and the middleware return these as
// sentinels, so handlers can match with errors.Is.
var (
	ErrNotAuthenticated      = &Error{Status: http.StatusUnauthorized, Code: "not_authenticated", Detail: "Not authenticated"}
	ErrMissingToken          = &Error{Status: http.StatusUnauthorized, Code: "missing_token", Detail: "Missing authentication token"}
	ErrExpiredToken          = &Error{Status: http.StatusUnauthorized, Code: "expired_token", Detail: "Token has expired"}
	ErrSystemAdminRequired   = &Error{Status: http.StatusForbidden, Code: "forbidden", Detail: "System Admin access required"}
	ErrPortalAdminRequired   = &Error{Status: http.StatusForbidden, Code: "forbidden", Detail: "Portal Admin access required"}
	ErrClientAdminRequired   = &Error{Status: http.StatusForbidden, Code: "forbidden", Detail: "Client Admin or Portal Admin access required"}
	ErrPortalContextRequired = &Error{Status: http.StatusBadRequest, Code: "portal_context_required", Detail: "Portal context required"}
)

// WriteError renders an error as a JSON response. Errors that are not
// *Error values are treated as internal failures without leaking detail.
func WriteError(w http.ResponseWriter, err error) {
	var authErr *Error
	if !errors.As(err, &authErr) {
		authErr = &Error{Status: http.StatusInternalServerError, Code: "internal_error", Detail: "Internal server error"}
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(authErr.Status)
	_ = json.NewEncoder(w).Encode(authErr)
}
