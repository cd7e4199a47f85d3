// Package cache provides the cache-aside store and key serialization used
// by the catalog read path.
//
// # Overview
//
// The package exports three pieces:
//
//   - Store: the cache-aside surface (Get before compute, Put after a
//     successful compute, Evict for operational use)
//   - Backend: the pluggable storage behind a Store, with per-class TTLs
//   - KeySerializer: builds stable cache keys from an operation name and
//     its query parameters
//
// Values are grouped into cache classes (single entity, listing, category
// listing, recommendation, images) and each class carries its own TTL,
// configured through Config.TTL.
//
// # Semantics
//
// Entries expire by TTL only. Writes to the backing entity store do not
// invalidate cache entries; callers trade bounded staleness for read
// performance and must document that at their boundary.
//
// Absent results are never cached: Put drops nil values, so "not found" is
// always recomputed on the next call. Concurrent misses for the same key
// may recompute independently; the Store makes no single-flight promise.
//
// The Store fails soft. When the backend is nil or panics, Get degrades to
// a miss and Put/Evict to no-ops, so a read never fails solely because the
// cache is down.
//
// # Key serialization
//
// The default serializer joins the operation name and each parameter with
// "::", lowercasing strings so queries differing only in case share an
// entry:
//
//	serializer := cache.NewDefaultKeySerializer()
//	key := serializer.SerializeKey("product.get_all", 0, 20, "phone", "eletronicos")
//
// Pointers are dereferenced, nil becomes "nil", slices serialize element by
// element, and anything else falls back to JSON.
//
// # Backends
//
// NewBackend builds the default backend on sturdyc with one client per
// cache class. A clock can be injected so expiry is testable with simulated
// time.
package cache
