package auth

import "github.com/golang-jwt/jwt/v5"

// TokenTypeAccess is the token purpose accepted for authentication.
// Refresh tokens and other token kinds must never authenticate a request.
const TokenTypeAccess = "access"

// Claims are the verified JWT claims consumed in token mode. The subject
// is the user ID; portal_slug identifies the portal for database routing.
type Claims struct {
	jwt.RegisteredClaims

	UserType   string `json:"user_type,omitempty"`
	PortalSlug string `json:"portal_slug,omitempty"`
	PortalID   string `json:"portal_id,omitempty"` // portal UUID
	TokenType  string `json:"type,omitempty"`
}
