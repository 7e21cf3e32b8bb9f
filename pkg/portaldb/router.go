package portaldb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vervevero/portalkit/pkg/cache"
)

// DefaultEngineCacheSize bounds the number of resident per-portal pools.
const DefaultEngineCacheSize = 100

// Router resolves portal identifiers to pooled database connections.
// Pools are created lazily on first access, deduplicated under concurrent
// first access, and bounded by an LRU cache: the least recently used
// portal's pool is closed gracefully when the bound is exceeded.
type Router struct {
	resolver URLResolver
	poolCfg  PoolConfig
	log      *slog.Logger

	mu       sync.Mutex
	engines  *cache.LRU[string, *pgxpool.Pool]
	inflight map[string]*flight
	gen      uint64 // bumped by EvictAll; stale creations are not cached
}

// flight tracks one in-progress pool creation so concurrent callers for
// the same portal converge on a single result.
type flight struct {
	done chan struct{}
	gen  uint64
	pool *pgxpool.Pool
	err  error
}

// RouterOption configures a Router.
type RouterOption func(*routerConfig)

type routerConfig struct {
	poolCfg   PoolConfig
	cacheSize int
	log       *slog.Logger
}

// WithPoolConfig overrides the pgxpool tuning applied to portal pools.
func WithPoolConfig(cfg PoolConfig) RouterOption {
	return func(c *routerConfig) { c.poolCfg = cfg }
}

// WithEngineCacheSize bounds the number of cached portal pools.
func WithEngineCacheSize(size int) RouterOption {
	return func(c *routerConfig) {
		if size > 0 {
			c.cacheSize = size
		}
	}
}

// WithRouterLogger sets the logger used for pool lifecycle events.
func WithRouterLogger(log *slog.Logger) RouterOption {
	return func(c *routerConfig) {
		if log != nil {
			c.log = log
		}
	}
}

// NewRouter creates a portal database router. The resolver maps portal
// identifiers to connection strings; a nil resolver is a configuration
// error because every routing operation depends on it.
func NewRouter(resolver URLResolver, opts ...RouterOption) (*Router, error) {
	if resolver == nil {
		return nil, ErrRouterNotInitialized
	}

	cfg := &routerConfig{
		poolCfg:   DefaultPoolConfig(),
		cacheSize: DefaultEngineCacheSize,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	r := &Router{
		resolver: resolver,
		poolCfg:  cfg.poolCfg,
		log:      cfg.log,
		inflight: make(map[string]*flight),
	}
	r.engines = cache.NewLRU(cfg.cacheSize, func(portalID string, pool *pgxpool.Pool) {
		r.log.Info("evicting portal pool", slog.String("portal_id", portalID))
		// Close drains gracefully: it waits for acquired connections to be
		// released, so in-flight sessions are not cut off. Run it off the
		// cache lock.
		go pool.Close()
	})
	return r, nil
}

// Pool returns the connection pool for the given portal, creating and
// caching it on first access. Concurrent first access for the same portal
// creates exactly one pool; every caller receives the same handle (or the
// same creation error).
//
// Under cache pressure a returned handle can be evicted and closed at any
// time, so operations on a handle held across a gap can fail with a
// closed-pool error. Re-fetch the handle in that case; Session and
// SessionFor already retry once against a fresh handle.
func (r *Router) Pool(ctx context.Context, portalID string) (*pgxpool.Pool, error) {
	if r == nil || r.resolver == nil {
		return nil, ErrRouterNotInitialized
	}
	if portalID == "" {
		return nil, ErrNoPortalContext
	}

	r.mu.Lock()
	if pool, ok := r.engines.Get(portalID); ok {
		r.mu.Unlock()
		return pool, nil
	}
	if fl, ok := r.inflight[portalID]; ok {
		r.mu.Unlock()
		select {
		case <-fl.done:
			return fl.pool, fl.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	fl := &flight{done: make(chan struct{}), gen: r.gen}
	r.inflight[portalID] = fl
	r.mu.Unlock()

	pool, err := r.openPool(ctx, portalID)

	r.mu.Lock()
	delete(r.inflight, portalID)
	if err == nil {
		if fl.gen == r.gen {
			r.engines.Put(portalID, pool)
		} else {
			// EvictAll ran while this pool was being created, so it was
			// built under superseded configuration. Hand it to the waiting
			// callers but do not cache it; it closes gracefully like any
			// evicted pool.
			r.log.Info("discarding stale portal pool", slog.String("portal_id", portalID))
			go pool.Close()
		}
	}
	r.mu.Unlock()

	fl.pool, fl.err = pool, err
	close(fl.done)

	return pool, err
}

// Session begins a unit of work against the database of the portal carried
// by the context. The session does not auto-commit: callers must call
// Commit explicitly, and deferring Close guarantees that uncommitted work
// is rolled back on every exit path.
//
//	sess, err := router.Session(ctx)
//	if err != nil { ... }
//	defer sess.Close(ctx)
//	// queries via sess.Tx() ...
//	return sess.Commit(ctx)
func (r *Router) Session(ctx context.Context) (*Session, error) {
	portalID, ok := PortalFromContext(ctx)
	if !ok {
		return nil, ErrNoPortalContext
	}
	return r.SessionFor(ctx, portalID)
}

// SessionFor begins a unit of work against an explicitly named portal's
// database, bypassing the portal context. Intended for background jobs and
// cross-portal admin work.
func (r *Router) SessionFor(ctx context.Context, portalID string) (*Session, error) {
	pool, err := r.Pool(ctx, portalID)
	if err != nil {
		return nil, err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		// The handle may have been evicted and closed between the lookup
		// and Begin. Retry once against a fresh handle; when the cache
		// still holds the same pool the failure is real.
		fresh, ferr := r.Pool(ctx, portalID)
		if ferr != nil || fresh == pool {
			return nil, fmt.Errorf("portaldb: begin session for portal %s: %w", portalID, err)
		}
		if tx, err = fresh.Begin(ctx); err != nil {
			return nil, fmt.Errorf("portaldb: begin session for portal %s: %w", portalID, err)
		}
	}
	return &Session{tx: tx, portalID: portalID}, nil
}

// EvictAll drops every cached pool. Evicted pools close gracefully, so
// sessions already in flight drain rather than being cut off. Call this
// when portal connection configuration changes at runtime.
func (r *Router) EvictAll() {
	if r == nil || r.engines == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gen++
	r.engines.Purge()
}

// Close releases all cached pools. The router stays usable; pools are
// recreated on next access.
func (r *Router) Close() {
	r.EvictAll()
}

// openPool resolves the portal URL and creates its connection pool.
func (r *Router) openPool(ctx context.Context, portalID string) (*pgxpool.Pool, error) {
	url, ok := r.resolver(portalID)
	if !ok || url == "" {
		return nil, fmt.Errorf("%w: %s", ErrPortalNotConfigured, portalID)
	}

	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, errors.Join(ErrInvalidPortalURL, err)
	}
	applyPoolConfig(cfg, r.poolCfg)

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("portaldb: create pool for portal %s: %w", portalID, err)
	}

	r.log.Info("created portal pool", slog.String("portal_id", portalID))
	return pool, nil
}

// applyPoolConfig applies shared tuning and a pre-acquire liveness ping,
// which keeps idle-connection drops from the database (or an intermediate
// proxy) from surfacing as request errors.
func applyPoolConfig(cfg *pgxpool.Config, pc PoolConfig) {
	cfg.MaxConns = pc.MaxConns
	cfg.MinConns = pc.MinConns
	cfg.HealthCheckPeriod = pc.HealthCheckPeriod
	cfg.MaxConnIdleTime = pc.MaxConnIdleTime
	cfg.MaxConnLifetime = pc.MaxConnLifetime
	cfg.BeforeAcquire = func(ctx context.Context, conn *pgx.Conn) bool {
		return conn.Ping(ctx) == nil
	}
}
