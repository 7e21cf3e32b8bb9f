package auth

// Config is the environment configuration for the authentication
// middleware. The operating mode is fixed at startup: production deploys
// behind a trusted gateway that authenticates requests and forwards
// identity headers, while dev mode verifies bearer tokens locally so a
// frontend can talk to the service directly.
type Config struct {
	// GatewaySecret proves a request was relayed through the trusted
	// gateway. Empty disables the check (local development behind no proxy).
	GatewaySecret string `env:"GATEWAY_SECRET"`

	// DevMode switches from trusted-header extraction to local JWT
	// verification.
	DevMode bool `env:"AUTH_DEV_MODE" envDefault:"false"`

	// JWTPublicKey is the PEM-encoded public key verifying tokens in dev
	// mode.
	JWTPublicKey string `env:"JWT_PUBLIC_KEY"`

	// JWTAlgorithm is the expected signing algorithm.
	JWTAlgorithm string `env:"JWT_ALGORITHM" envDefault:"RS256"`

	// PublicPaths lists path prefixes that don't require a token in dev
	// mode. Empty means DefaultPublicPaths.
	PublicPaths []string `env:"AUTH_PUBLIC_PATHS" envSeparator:","`
}

// DefaultPublicPaths are the path prefixes reachable without a token in
// dev mode: login and refresh flows, health, public branding, and
// service-internal endpoints, plus the API docs.
var DefaultPublicPaths = []string{
	"/api/v1/auth/login/portal",
	"/api/v1/auth/login/admin",
	"/api/v1/auth/login/chat",
	"/api/v1/auth/refresh",
	"/api/v1/health",
	"/api/v1/portals/public/branding",
	"/api/v1/portals/internal/",
	"/api/v1/agents/",
	"/api/v1/internal/",
	"/docs",
	"/redoc",
	"/openapi.json",
}
