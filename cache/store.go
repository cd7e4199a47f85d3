package cache

import (
	"github.com/rs/zerolog"
)

// KeySerializer builds a cache key from an operation name + its parameters.
// It must produce the same key for the same logical query across calls.
type KeySerializer interface {
	SerializeKey(operation string, args ...any) string
}

// Backend is the storage a Store delegates to. Implementations must be safe
// for concurrent use and enforce the per-class TTL on reads.
type Backend interface {
	Get(class Class, key string) (any, bool)
	Set(class Class, key string, value any)
	Delete(class Class, key string)
}

// Store implements the cache-aside side of the read path: callers check it
// before computing and populate it after a successful compute. It fails
// soft: a nil or panicking backend degrades to a permanent miss, never to a
// failed read. Absent results are not cacheable; Put drops nil values so a
// miss is always recomputed on the next call.
type Store struct {
	backend Backend
	logger  zerolog.Logger
}

// NewStore wraps backend in the fail-soft cache-aside contract.
func NewStore(backend Backend, logger zerolog.Logger) *Store {
	return &Store{backend: backend, logger: logger}
}

// Get returns the cached value for key within class, or false on a miss or
// any backend trouble.
func (s *Store) Get(class Class, key string) (v any, ok bool) {
	if s == nil || s.backend == nil {
		return nil, false
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn().Interface("panic", r).Str("key", key).Msg("cache get failed, treating as miss")
			v, ok = nil, false
		}
	}()
	return s.backend.Get(class, key)
}

// Put stores value under key with the TTL of its class. Nil values are
// dropped: "not found" is a reported error, not a cacheable value. Backend
// trouble turns Put into a no-op.
func (s *Store) Put(class Class, key string, value any) {
	if s == nil || s.backend == nil || value == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn().Interface("panic", r).Str("key", key).Msg("cache put failed, skipping populate")
		}
	}()
	s.backend.Set(class, key, value)
}

// Evict removes key from class. Current read paths rely on expiry only;
// eviction exists for operational use and testability.
func (s *Store) Evict(class Class, key string) {
	if s == nil || s.backend == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn().Interface("panic", r).Str("key", key).Msg("cache evict failed")
		}
	}()
	s.backend.Delete(class, key)
}

// Lookup is a typed convenience over Store.Get. A cached value of the wrong
// type counts as a miss.
func Lookup[T any](s *Store, class Class, key string) (T, bool) {
	var zero T
	v, ok := s.Get(class, key)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
