// Package portaldb routes database access in a multi-portal architecture
// where every portal (tenant) has its own database and a single shared
// control-plane database holds the cross-portal registry.
//
// # Portal routing
//
// A Router lazily creates one pgx connection pool per portal, resolved
// through a URLResolver (built from Config or supplied directly). Pools are
// cached with an LRU bound, created exactly once under concurrent first
// access, and closed gracefully on eviction. The active portal travels on
// the request context:
//
//	resolver := cfg.URLResolver()
//	router, err := portaldb.NewRouter(resolver)
//
//	// in a request handler (portal set by the auth middleware):
//	sess, err := router.Session(r.Context())
//	if err != nil { ... }
//	defer sess.Close(ctx)
//	// ... queries via sess.Tx()
//	if err := sess.Commit(ctx); err != nil { ... }
//
// Portal sessions never auto-commit. Uncommitted work is rolled back when
// the session closes, so partial writes cannot persist.
//
// # Control plane
//
// The ControlPlane accessor wraps the shared database with the opposite
// discipline: WithSession commits on clean return and rolls back on error,
// which fits the simple CRUD patterns of registry and auth infrastructure
// access.
package portaldb
