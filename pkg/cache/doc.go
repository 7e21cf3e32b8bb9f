// Package cache provides a small generic LRU cache with an eviction
// callback, used to bound collections of expensive handles such as
// per-portal database connection pools.
package cache
