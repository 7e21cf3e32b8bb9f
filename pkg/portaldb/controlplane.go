package portaldb

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ControlPlane is the accessor for the single shared database holding the
// portal registry and auth infrastructure data. Unlike portal sessions,
// control-plane sessions auto-commit on clean return and roll back on
// error, since control-plane access is simple request/response CRUD.
type ControlPlane struct {
	pool *pgxpool.Pool
}

// Connect establishes the control-plane connection pool. Call once on
// startup. Connection attempts retry with linear backoff and verify the
// connection with a ping, so transient startup races against the database
// don't take the service down.
func Connect(ctx context.Context, cfg Config) (*ControlPlane, error) {
	if cfg.ControlPlaneURL == "" {
		return nil, ErrControlPlaneURLMissing
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.ControlPlaneURL)
	if err != nil {
		return nil, errors.Join(ErrInvalidPortalURL, err)
	}
	applyPoolConfig(poolCfg, cfg.Pool())

	attempts := cfg.RetryAttempts
	if attempts <= 0 {
		attempts = 1
	}

	for i := 0; i < attempts; i++ {
		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				return &ControlPlane{pool: pool}, nil
			}
			pool.Close()
		}
		if i < attempts-1 {
			select {
			case <-time.After(time.Duration(i+1) * cfg.RetryInterval):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	return nil, ErrFailedToConnect
}

// WithSession runs fn inside a control-plane transaction. The transaction
// commits when fn returns nil and rolls back when fn returns an error or
// panics.
func (c *ControlPlane) WithSession(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	if c == nil || c.pool == nil {
		return ErrControlPlaneNotInitialized
	}
	return pgx.BeginFunc(ctx, c.pool, func(tx pgx.Tx) error {
		return fn(ctx, tx)
	})
}

// Pool exposes the underlying pool for non-transactional reads.
func (c *ControlPlane) Pool() (*pgxpool.Pool, error) {
	if c == nil || c.pool == nil {
		return nil, ErrControlPlaneNotInitialized
	}
	return c.pool, nil
}

// Healthcheck returns a probe compatible with standard health endpoints.
func (c *ControlPlane) Healthcheck() func(context.Context) error {
	return func(ctx context.Context) error {
		if c == nil || c.pool == nil {
			return ErrControlPlaneNotInitialized
		}
		if err := c.pool.Ping(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}

// Close releases the control-plane pool.
func (c *ControlPlane) Close() {
	if c != nil && c.pool != nil {
		c.pool.Close()
	}
}
