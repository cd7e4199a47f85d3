// Package resilience composes the protections around each named read
// operation as an explicit wrapper chain, in a fixed order that is visible
// in code: cache -> retry -> circuit breaker -> fallback. A cache hit
// returns before any of the other layers run; cached data is assumed
// already validated.
package resilience

import (
	"errors"
	"fmt"
	"time"

	"context"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"

	"github.com/goliatone/go-catalog-query/cache"
	"github.com/goliatone/go-catalog-query/catalog"
)

// Config tunes the retry loop and breaker shared by all pipelines.
type Config struct {
	// MaxRetries bounds re-invocations after the first attempt.
	MaxRetries uint64
	// InitialInterval and MaxInterval shape the exponential backoff.
	InitialInterval time.Duration
	MaxInterval     time.Duration
	// FailureThreshold is the consecutive-failure count that opens the
	// breaker.
	FailureThreshold uint32
	// Cooldown is how long an open breaker waits before allowing trial
	// calls (half-open).
	Cooldown time.Duration
	// HalfOpenMaxCalls bounds the trial calls allowed while half-open.
	HalfOpenMaxCalls uint32
}

// DefaultConfig mirrors the tuning the service ships with.
func DefaultConfig() Config {
	return Config{
		MaxRetries:       2,
		InitialInterval:  100 * time.Millisecond,
		MaxInterval:      2 * time.Second,
		FailureThreshold: 5,
		Cooldown:         30 * time.Second,
		HalfOpenMaxCalls: 1,
	}
}

// Pipeline guards one named read operation. The zero value is not usable;
// build with New.
type Pipeline[T any] struct {
	name    string
	class   cache.Class
	store   *cache.Store
	breaker *gobreaker.CircuitBreaker[T]
	cfg     Config
	logger  zerolog.Logger
}

// New builds a Pipeline for the operation called name, caching results
// under class. Domain absence is configured as a breaker success: a missing
// entity says nothing about the health of the dependency.
func New[T any](name string, class cache.Class, store *cache.Store, cfg Config, logger zerolog.Logger) *Pipeline[T] {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.HalfOpenMaxCalls,
		Timeout:     cfg.Cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || catalog.IsNotFound(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("operation", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	}

	return &Pipeline[T]{
		name:    name,
		class:   class,
		store:   store,
		breaker: gobreaker.NewCircuitBreaker[T](settings),
		cfg:     cfg,
		logger:  logger,
	}
}

// Name returns the operation name the pipeline guards.
func (p *Pipeline[T]) Name() string { return p.name }

// State reports the breaker state for the wrapped operation.
func (p *Pipeline[T]) State() gobreaker.State { return p.breaker.State() }

// Execute runs op behind the cache and the resilience layers.
//
// A cache hit returns immediately: neither the retry loop, the breaker, nor
// op itself is invoked. On a miss, op runs inside the breaker with bounded
// retries around it; a success populates the cache before returning. When
// retries are exhausted or the breaker rejects the call, fallback decides
// the final outcome from the original failure.
func (p *Pipeline[T]) Execute(ctx context.Context, key string, op func(context.Context) (T, error), fallback func(error) (T, error)) (T, error) {
	if v, ok := cache.Lookup[T](p.store, p.class, key); ok {
		p.logger.Debug().Str("operation", p.name).Str("key", key).Msg("cache hit")
		return v, nil
	}

	var result T
	attempt := func() error {
		v, err := p.breaker.Execute(func() (T, error) {
			return op(ctx)
		})
		if err != nil {
			if !isTransient(err) {
				return backoff.Permanent(err)
			}
			p.logger.Warn().Err(err).Str("operation", p.name).Msg("transient failure, will retry")
			return err
		}
		result = v
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(p.newBackOff(), p.cfg.MaxRetries), ctx)
	if err := backoff.Retry(attempt, policy); err != nil {
		p.logger.Error().Err(err).Str("operation", p.name).Str("key", key).Msg("read failed, invoking fallback")
		return fallback(err)
	}

	p.store.Put(p.class, key, result)
	return result, nil
}

func (p *Pipeline[T]) newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.cfg.InitialInterval
	b.MaxInterval = p.cfg.MaxInterval
	return b
}

// isTransient reports whether a failure may clear on re-invocation. Domain
// absence never does, and an open breaker means further attempts are
// pointless until the cooldown elapses.
func isTransient(err error) bool {
	switch {
	case catalog.IsNotFound(err):
		return false
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return false
	}
	return true
}

// EntityFallback is the terminal layer for single-entity reads: absence is
// re-signaled unchanged, anything else becomes ErrUnavailable carrying the
// cause. It never fabricates data.
func EntityFallback[T any]() func(error) (T, error) {
	return func(err error) (T, error) {
		var zero T
		if catalog.IsNotFound(err) {
			return zero, err
		}
		return zero, fmt.Errorf("%w: %v", catalog.ErrUnavailable, err)
	}
}
