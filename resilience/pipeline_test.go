package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"

	"github.com/goliatone/go-catalog-query/cache"
	"github.com/goliatone/go-catalog-query/catalog"
	"github.com/goliatone/go-catalog-query/pagination"
)

var errBoom = errors.New("dependency failed")

// fastConfig keeps retries and cooldowns short so tests run quickly.
func fastConfig() Config {
	return Config{
		MaxRetries:       2,
		InitialInterval:  time.Millisecond,
		MaxInterval:      5 * time.Millisecond,
		FailureThreshold: 3,
		Cooldown:         50 * time.Millisecond,
		HalfOpenMaxCalls: 1,
	}
}

// mapBackend gives the pipeline a real store without TTL machinery.
type mapBackend struct {
	data map[string]any
}

func newMapBackend() *mapBackend { return &mapBackend{data: make(map[string]any)} }

func (b *mapBackend) Get(class cache.Class, key string) (any, bool) {
	v, ok := b.data[string(class)+"|"+key]
	return v, ok
}

func (b *mapBackend) Set(class cache.Class, key string, value any) {
	b.data[string(class)+"|"+key] = value
}

func (b *mapBackend) Delete(class cache.Class, key string) {
	delete(b.data, string(class)+"|"+key)
}

func newTestStore() *cache.Store {
	return cache.NewStore(newMapBackend(), zerolog.Nop())
}

func entityPipeline(t *testing.T, cfg Config, store *cache.Store) *Pipeline[string] {
	t.Helper()
	return New[string]("test.op", cache.ClassEntity, store, cfg, zerolog.Nop())
}

func TestExecuteSuccessPopulatesCache(t *testing.T) {
	store := newTestStore()
	p := entityPipeline(t, fastConfig(), store)

	calls := 0
	op := func(context.Context) (string, error) {
		calls++
		return "value", nil
	}

	got, err := p.Execute(context.Background(), "k1", op, EntityFallback[string]())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got != "value" {
		t.Errorf("got %q", got)
	}
	if calls != 1 {
		t.Errorf("op called %d times, want 1", calls)
	}

	// Second call is served from cache, op stays untouched.
	got, err = p.Execute(context.Background(), "k1", op, EntityFallback[string]())
	if err != nil || got != "value" {
		t.Fatalf("cached read = %q, %v", got, err)
	}
	if calls != 1 {
		t.Errorf("cache hit must not invoke op, calls = %d", calls)
	}
}

func TestExecuteRetriesTransientFailures(t *testing.T) {
	p := entityPipeline(t, fastConfig(), newTestStore())

	calls := 0
	op := func(context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errBoom
		}
		return "recovered", nil
	}

	got, err := p.Execute(context.Background(), "k1", op, EntityFallback[string]())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got != "recovered" {
		t.Errorf("got %q", got)
	}
	if calls != 3 {
		t.Errorf("op called %d times, want 3 (initial + 2 retries)", calls)
	}
}

func TestExecuteExhaustedRetriesInvokeFallback(t *testing.T) {
	p := entityPipeline(t, fastConfig(), newTestStore())

	calls := 0
	op := func(context.Context) (string, error) {
		calls++
		return "", errBoom
	}

	_, err := p.Execute(context.Background(), "k1", op, EntityFallback[string]())
	if !catalog.IsUnavailable(err) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if calls != 3 {
		t.Errorf("op called %d times, want 3", calls)
	}
}

func TestExecuteFailureNeverCaches(t *testing.T) {
	store := newTestStore()
	p := entityPipeline(t, fastConfig(), store)

	op := func(context.Context) (string, error) { return "", errBoom }
	_, _ = p.Execute(context.Background(), "k1", op, EntityFallback[string]())

	if _, ok := cache.Lookup[string](store, cache.ClassEntity, "k1"); ok {
		t.Error("failed reads must not populate the cache")
	}
}

func TestExecuteNotFoundIsNotRetried(t *testing.T) {
	p := entityPipeline(t, fastConfig(), newTestStore())

	calls := 0
	op := func(context.Context) (string, error) {
		calls++
		return "", catalog.NewNotFound("Product", "id", "p1")
	}

	_, err := p.Execute(context.Background(), "k1", op, EntityFallback[string]())
	if !catalog.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
	if calls != 1 {
		t.Errorf("not-found must not be retried, calls = %d", calls)
	}
}

func TestNotFoundCountsAsBreakerSuccess(t *testing.T) {
	cfg := fastConfig()
	p := entityPipeline(t, cfg, newTestStore())

	op := func(context.Context) (string, error) {
		return "", catalog.NewNotFound("Product", "id", "p1")
	}

	// Far more absences than the failure threshold.
	for i := 0; i < int(cfg.FailureThreshold)*3; i++ {
		_, err := p.Execute(context.Background(), "k1", op, EntityFallback[string]())
		if !catalog.IsNotFound(err) {
			t.Fatalf("expected not-found, got %v", err)
		}
	}

	if p.State() != gobreaker.StateClosed {
		t.Errorf("breaker state = %v, want closed", p.State())
	}
}

func TestNotFoundIsNeverMaskedByFallback(t *testing.T) {
	notFound := catalog.NewNotFound("Product", "id", "p1")

	_, err := EntityFallback[string]()(notFound)
	if !catalog.IsNotFound(err) {
		t.Errorf("entity fallback changed not-found into %v", err)
	}
	if catalog.IsUnavailable(err) {
		t.Error("absence must not be reported as unavailability")
	}

	page, err := PageFallback[string](0, 10)(notFound)
	if !catalog.IsNotFound(err) {
		t.Errorf("page fallback changed not-found into %v", err)
	}
	if len(page.Content) != 0 {
		t.Error("page fallback must not fabricate content for not-found")
	}
}

func TestPageFallbackDegradesToEmptyPage(t *testing.T) {
	page, err := PageFallback[string](2, 10)(errBoom)
	if err != nil {
		t.Fatalf("listing fallback should absorb the failure, got %v", err)
	}
	if len(page.Content) != 0 || !page.Empty {
		t.Errorf("expected empty page, got %+v", page)
	}
	if page.PageNumber != 2 || page.PageSize != 10 {
		t.Errorf("page position = (%d,%d), want (2,10)", page.PageNumber, page.PageSize)
	}
	if page.TotalElements != 0 {
		t.Errorf("TotalElements = %d, want 0", page.TotalElements)
	}
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	cfg := fastConfig()
	// One attempt per Execute keeps failure counting legible.
	cfg.MaxRetries = 0
	p := entityPipeline(t, cfg, newTestStore())

	calls := 0
	op := func(context.Context) (string, error) {
		calls++
		return "", errBoom
	}

	for i := 0; i < int(cfg.FailureThreshold); i++ {
		_, _ = p.Execute(context.Background(), "k1", op, EntityFallback[string]())
	}
	if p.State() != gobreaker.StateOpen {
		t.Fatalf("breaker state = %v, want open after %d failures", p.State(), cfg.FailureThreshold)
	}

	// While open the op is never invoked and the degraded answer is
	// immediate.
	before := calls
	_, err := p.Execute(context.Background(), "k1", op, EntityFallback[string]())
	if !catalog.IsUnavailable(err) {
		t.Fatalf("expected ErrUnavailable while open, got %v", err)
	}
	if calls != before {
		t.Errorf("open breaker must short-circuit, op ran %d extra times", calls-before)
	}
}

func TestBreakerHalfOpenTrialSuccessCloses(t *testing.T) {
	cfg := fastConfig()
	cfg.MaxRetries = 0
	p := entityPipeline(t, cfg, newTestStore())

	failing := func(context.Context) (string, error) { return "", errBoom }
	for i := 0; i < int(cfg.FailureThreshold); i++ {
		_, _ = p.Execute(context.Background(), "k1", failing, EntityFallback[string]())
	}
	if p.State() != gobreaker.StateOpen {
		t.Fatalf("breaker should be open, state = %v", p.State())
	}

	time.Sleep(cfg.Cooldown + 10*time.Millisecond)

	got, err := p.Execute(context.Background(), "k2", func(context.Context) (string, error) {
		return "healthy", nil
	}, EntityFallback[string]())
	if err != nil || got != "healthy" {
		t.Fatalf("trial call = %q, %v", got, err)
	}
	if p.State() != gobreaker.StateClosed {
		t.Errorf("breaker state = %v, want closed after successful trial", p.State())
	}
}

func TestBreakerHalfOpenTrialFailureReopens(t *testing.T) {
	cfg := fastConfig()
	cfg.MaxRetries = 0
	p := entityPipeline(t, cfg, newTestStore())

	failing := func(context.Context) (string, error) { return "", errBoom }
	for i := 0; i < int(cfg.FailureThreshold); i++ {
		_, _ = p.Execute(context.Background(), "k1", failing, EntityFallback[string]())
	}

	time.Sleep(cfg.Cooldown + 10*time.Millisecond)

	_, err := p.Execute(context.Background(), "k2", failing, EntityFallback[string]())
	if !catalog.IsUnavailable(err) {
		t.Fatalf("expected degraded answer, got %v", err)
	}
	if p.State() != gobreaker.StateOpen {
		t.Errorf("breaker state = %v, want open after failed trial", p.State())
	}
}

func TestCacheHitBypassesOpenBreaker(t *testing.T) {
	cfg := fastConfig()
	cfg.MaxRetries = 0
	store := newTestStore()
	p := entityPipeline(t, cfg, store)

	// Populate the cache, then break the dependency.
	_, err := p.Execute(context.Background(), "k1", func(context.Context) (string, error) {
		return "cached", nil
	}, EntityFallback[string]())
	if err != nil {
		t.Fatalf("warmup: %v", err)
	}

	failing := func(context.Context) (string, error) { return "", errBoom }
	for i := 0; i < int(cfg.FailureThreshold); i++ {
		_, _ = p.Execute(context.Background(), "other", failing, EntityFallback[string]())
	}
	if p.State() != gobreaker.StateOpen {
		t.Fatalf("breaker should be open, state = %v", p.State())
	}

	got, err := p.Execute(context.Background(), "k1", failing, EntityFallback[string]())
	if err != nil || got != "cached" {
		t.Errorf("cached read while open = %q, %v; want cached, nil", got, err)
	}
}

func TestExecuteContextCancellationStopsRetrying(t *testing.T) {
	cfg := fastConfig()
	cfg.MaxRetries = 100
	cfg.InitialInterval = 10 * time.Millisecond
	p := entityPipeline(t, cfg, newTestStore())

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	op := func(context.Context) (string, error) {
		calls++
		cancel()
		return "", errBoom
	}

	_, err := p.Execute(ctx, "k1", op, EntityFallback[string]())
	if err == nil {
		t.Fatal("expected error after cancellation")
	}
	if calls > 2 {
		t.Errorf("retry loop ignored cancellation, op ran %d times", calls)
	}
}

func TestPipelineWithPageType(t *testing.T) {
	store := newTestStore()
	p := New[pagination.Page[string]]("list.op", cache.ClassListing, store, fastConfig(), zerolog.Nop())

	op := func(context.Context) (pagination.Page[string], error) {
		return pagination.Slice([]string{"a", "b", "c"}, nil, 0, 2), nil
	}

	page, err := p.Execute(context.Background(), "k", op, PageFallback[string](0, 2))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(page.Content) != 2 || page.TotalElements != 3 {
		t.Errorf("page = %+v", page)
	}

	// Round-trips through the cache with its concrete type intact.
	cached, err := p.Execute(context.Background(), "k", op, PageFallback[string](0, 2))
	if err != nil || cached.TotalElements != 3 {
		t.Errorf("cached page = %+v, %v", cached, err)
	}
}
