package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vervevero/portalkit/pkg/portaldb"
)

// Identity headers set by the upstream gateway authorizer.
const (
	HeaderUserID        = "X-User-ID"
	HeaderUserType      = "X-User-Type"
	HeaderPortalID      = "X-Portal-ID"
	HeaderPortalUUID    = "X-Portal-UUID"
	HeaderTenantID      = "X-Tenant-ID"
	HeaderGatewaySecret = "X-Gateway-Secret"
)

// extraction is the outcome of the per-request identity extraction.
// A non-nil reject short-circuits the request before the handler runs.
type extraction struct {
	identity *Context
	portal   string
	reject   *Error
}

type extractFunc func(r *http.Request) extraction

// Option configures the middleware.
type Option func(*middlewareConfig)

type middlewareConfig struct {
	log *slog.Logger
}

// WithLogger sets the logger for security-relevant warnings.
func WithLogger(log *slog.Logger) Option {
	return func(c *middlewareConfig) {
		if log != nil {
			c.log = log
		}
	}
}

// Middleware builds the authentication middleware. The operating mode is
// selected once from cfg.DevMode; per-request work only runs the chosen
// extractor. Construction fails when dev mode is configured without a
// usable public key, since that is a deployment bug.
//
// For every request the middleware determines the effective portal
// (X-Tenant-ID takes precedence over the gateway portal header or the
// token's portal claim) and propagates it via portaldb.WithPortal before
// invoking the handler, so database routing inside the handler resolves to
// the right portal. Identity and portal live only on the request context:
// they are invisible to concurrent requests and gone once the request
// finishes, on success, error, or panic alike.
func Middleware(cfg Config, opts ...Option) (func(http.Handler) http.Handler, error) {
	mcfg := &middlewareConfig{log: slog.Default()}
	for _, opt := range opts {
		opt(mcfg)
	}

	var extract extractFunc
	if cfg.DevMode {
		key, err := parsePublicKey(cfg.JWTAlgorithm, cfg.JWTPublicKey)
		if err != nil {
			return nil, err
		}
		paths := cfg.PublicPaths
		if len(paths) == 0 {
			paths = DefaultPublicPaths
		}
		ex := &tokenExtractor{
			key:         key,
			algorithm:   cfg.JWTAlgorithm,
			publicPaths: paths,
			log:         mcfg.log,
		}
		extract = ex.extract
	} else {
		ex := &headerExtractor{secret: cfg.GatewaySecret, log: mcfg.log}
		extract = ex.extract
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res := extract(r)
			if res.reject != nil {
				WriteError(w, res.reject)
				return
			}

			ctx := r.Context()
			if res.portal != "" {
				ctx = portaldb.WithPortal(ctx, res.portal)
			}
			if res.identity != nil {
				ctx = WithContext(ctx, *res.identity)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}, nil
}

// headerExtractor trusts identity headers relayed by the upstream gateway,
// but only after the shared secret proves the request actually came
// through it.
type headerExtractor struct {
	secret string
	log    *slog.Logger
}

func (e *headerExtractor) extract(r *http.Request) extraction {
	if e.secret != "" {
		got := r.Header.Get(HeaderGatewaySecret)
		if subtle.ConstantTimeCompare([]byte(got), []byte(e.secret)) != 1 {
			// Spoofed or direct request: ignore every identity header and
			// let the request through unauthenticated, so public endpoints
			// stay reachable while privileged headers cannot be forged.
			e.log.WarnContext(r.Context(), "untrusted_request",
				slog.String("path", r.URL.Path),
				slog.String("reason", "missing_or_invalid_gateway_secret"),
			)
			return extraction{}
		}
	}

	portalID := r.Header.Get(HeaderPortalID)

	out := extraction{portal: r.Header.Get(HeaderTenantID)}
	if out.portal == "" {
		out.portal = portalID
	}

	userID := r.Header.Get(HeaderUserID)
	rawType := r.Header.Get(HeaderUserType)
	if userID == "" || rawType == "" {
		return out
	}

	userType, err := ParseUserType(rawType)
	if err != nil {
		e.log.WarnContext(r.Context(), "invalid_user_type_header",
			slog.String("path", r.URL.Path),
			slog.String("user_type", rawType),
		)
		return out
	}

	out.identity = &Context{
		UserID:     userID,
		UserType:   userType,
		PortalID:   portalID,
		PortalUUID: r.Header.Get(HeaderPortalUUID),
	}
	return out
}

// tokenExtractor verifies bearer tokens locally, for deployments where the
// frontend talks to the service without the gateway in between.
type tokenExtractor struct {
	key         any
	algorithm   string
	publicPaths []string
	log         *slog.Logger
}

func (e *tokenExtractor) extract(r *http.Request) extraction {
	path := r.URL.Path
	out := extraction{portal: r.Header.Get(HeaderTenantID)}

	tokenStr, ok := bearerToken(r)
	if !ok {
		if !e.isPublic(path) {
			e.log.WarnContext(r.Context(), "missing_auth_token", slog.String("path", path))
			return extraction{reject: ErrMissingToken}
		}
		return out
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims,
		func(*jwt.Token) (any, error) { return e.key, nil },
		jwt.WithValidMethods([]string{e.algorithm}),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		e.log.WarnContext(r.Context(), "expired_jwt_token", slog.String("path", path))
		return extraction{reject: ErrExpiredToken}
	case err != nil:
		// Tolerate malformed optional tokens on public paths: log and
		// proceed unauthenticated instead of hard-failing the request.
		e.log.WarnContext(r.Context(), "invalid_jwt_token", slog.String("path", path))
		return out
	}

	if claims.TokenType != TokenTypeAccess {
		return out
	}

	userType, err := ParseUserType(claims.UserType)
	if err != nil {
		e.log.WarnContext(r.Context(), "invalid_user_type_claim",
			slog.String("path", path),
			slog.String("user_type", claims.UserType),
		)
		return out
	}

	if out.portal == "" {
		out.portal = claims.PortalSlug
	}
	out.identity = &Context{
		UserID:     claims.Subject,
		UserType:   userType,
		PortalID:   claims.PortalSlug,
		PortalUUID: claims.PortalID,
	}
	return out
}

func (e *tokenExtractor) isPublic(path string) bool {
	for _, prefix := range e.publicPaths {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// parsePublicKey parses the PEM verification key for the configured
// algorithm family.
func parsePublicKey(algorithm, pemKey string) (any, error) {
	if pemKey == "" {
		return nil, ErrMissingPublicKey
	}
	switch {
	case strings.HasPrefix(algorithm, "RS"), strings.HasPrefix(algorithm, "PS"):
		return jwt.ParseRSAPublicKeyFromPEM([]byte(pemKey))
	case strings.HasPrefix(algorithm, "ES"):
		return jwt.ParseECPublicKeyFromPEM([]byte(pemKey))
	case algorithm == "EdDSA":
		return jwt.ParseEdPublicKeyFromPEM([]byte(pemKey))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, algorithm)
	}
}
