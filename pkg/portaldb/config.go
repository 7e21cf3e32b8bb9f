package portaldb

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Config is the environment configuration for both the control-plane
// database and per-portal routing.
//
// Portal URLs resolve in order:
//  1. PORTAL_DATABASE_URLS - explicit JSON object mapping portal ID to URL
//  2. PORTAL_DATABASE_URL_TEMPLATE - URL with a {tenant_id} (or legacy
//     {portal_id}) placeholder
//  3. DB_HOST/DB_PORT/DB_USER/DB_PASSWORD - synthesized URL with the portal
//     ID as database name
type Config struct {
	ControlPlaneURL string `env:"DATABASE_URL"` // shared control-plane database

	PortalURLTemplate string `env:"PORTAL_DATABASE_URL_TEMPLATE"`
	PortalURLs        string `env:"PORTAL_DATABASE_URLS"` // JSON string

	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     int    `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD"`

	MaxOpenConns      int32         `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns      int32         `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	HealthCheckPeriod time.Duration `env:"DB_HEALTHCHECK_PERIOD" envDefault:"1m"`
	MaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"10m"`
	MaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"30m"`

	RetryAttempts int           `env:"DB_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval time.Duration `env:"DB_RETRY_INTERVAL" envDefault:"5s"`
}

// PoolConfig carries the pgxpool tuning applied to every created pool.
type PoolConfig struct {
	MaxConns          int32
	MinConns          int32
	HealthCheckPeriod time.Duration
	MaxConnIdleTime   time.Duration
	MaxConnLifetime   time.Duration
}

// DefaultPoolConfig returns the pool tuning used when none is configured.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxConns:          10,
		MinConns:          5,
		HealthCheckPeriod: time.Minute,
		MaxConnIdleTime:   10 * time.Minute,
		MaxConnLifetime:   30 * time.Minute,
	}
}

// Pool returns the pool tuning derived from the environment configuration.
func (c Config) Pool() PoolConfig {
	return PoolConfig{
		MaxConns:          c.MaxOpenConns,
		MinConns:          c.MaxIdleConns,
		HealthCheckPeriod: c.HealthCheckPeriod,
		MaxConnIdleTime:   c.MaxConnIdleTime,
		MaxConnLifetime:   c.MaxConnLifetime,
	}
}

// URLResolver maps a portal identifier to its database connection string.
// The second return value is false when no database is configured for the
// portal.
type URLResolver func(portalID string) (string, bool)

// URLResolver builds a resolver applying the configured strategies in
// order. A malformed PORTAL_DATABASE_URLS value degrades to the next
// strategy instead of failing the request.
func (c Config) URLResolver() URLResolver {
	var mapping map[string]string
	if c.PortalURLs != "" {
		if err := json.Unmarshal([]byte(c.PortalURLs), &mapping); err != nil {
			mapping = nil
		}
	}

	return func(portalID string) (string, bool) {
		if url, ok := mapping[portalID]; ok {
			return url, true
		}

		if c.PortalURLTemplate != "" {
			url := strings.ReplaceAll(c.PortalURLTemplate, "{tenant_id}", portalID)
			url = strings.ReplaceAll(url, "{portal_id}", portalID)
			return url, true
		}

		if c.Host != "" && c.User != "" {
			auth := c.User
			if c.Password != "" {
				auth += ":" + c.Password
			}
			return fmt.Sprintf("postgresql://%s@%s:%d/%s", auth, c.Host, c.Port, portalID), true
		}

		return "", false
	}
}

// HasControlPlane reports whether the shared control-plane database is
// configured.
func (c Config) HasControlPlane() bool {
	return c.ControlPlaneURL != ""
}

// HasPortalConfig reports whether any portal URL strategy is available.
func (c Config) HasPortalConfig() bool {
	return c.PortalURLTemplate != "" || c.PortalURLs != "" || (c.Host != "" && c.User != "")
}
