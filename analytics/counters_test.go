package analytics

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-catalog-query/eventbus"
)

func viewEvent(productID, category string) eventbus.ProductViewed {
	return eventbus.ProductViewed{
		ProductID:   productID,
		ProductName: "Product " + productID,
		Category:    category,
		ViewedAt:    time.Now(),
	}
}

func TestProductViewCounterStartsEmpty(t *testing.T) {
	c := NewProductViewCounter()

	if got := c.Count("p1"); got != 0 {
		t.Errorf("Count = %d, want 0 before any event", got)
	}
	if got := len(c.Snapshot()); got != 0 {
		t.Errorf("Snapshot has %d entries, want 0", got)
	}
}

func TestProductViewCounterIncrements(t *testing.T) {
	c := NewProductViewCounter()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := c.Handle(ctx, viewEvent("p1", "eletronicos")); err != nil {
			t.Fatalf("Handle: %v", err)
		}
	}
	_ = c.Handle(ctx, viewEvent("p2", "moda"))

	if got := c.Count("p1"); got != 3 {
		t.Errorf("Count(p1) = %d, want 3", got)
	}
	if got := c.Count("p2"); got != 1 {
		t.Errorf("Count(p2) = %d, want 1", got)
	}
}

func TestProductViewCounterConcurrentIncrements(t *testing.T) {
	c := NewProductViewCounter()
	ctx := context.Background()

	const goroutines = 8
	const perGoroutine = 200

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				_ = c.Handle(ctx, viewEvent("p1", "eletronicos"))
			}
		}()
	}
	wg.Wait()

	if got := c.Count("p1"); got != goroutines*perGoroutine {
		t.Errorf("Count = %d, want %d (no lost increments)", got, goroutines*perGoroutine)
	}
}

func TestProductViewCounterCancelledContextSkipsUpdate(t *testing.T) {
	c := NewProductViewCounter()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := c.Handle(ctx, viewEvent("p1", "eletronicos")); err == nil {
		t.Error("expected context error")
	}
	if got := c.Count("p1"); got != 0 {
		t.Errorf("Count = %d, interrupted handler must not partially update", got)
	}
}

func TestCategoryViewCounterIsCaseInsensitive(t *testing.T) {
	c := NewCategoryViewCounter()
	ctx := context.Background()

	_ = c.Handle(ctx, viewEvent("p1", "Eletronicos"))
	_ = c.Handle(ctx, viewEvent("p2", "ELETRONICOS"))
	_ = c.Handle(ctx, viewEvent("p3", "eletronicos"))

	if got := c.Count("eletronicos"); got != 3 {
		t.Errorf("Count(eletronicos) = %d, want 3", got)
	}
	if got := c.Count("Eletronicos"); got != 3 {
		t.Errorf("Count(Eletronicos) = %d, want 3 (lookup is case-insensitive too)", got)
	}

	snap := c.Snapshot()
	if len(snap) != 1 {
		t.Errorf("Snapshot has %d keys, want 1 shared key", len(snap))
	}
}

func TestAuditTrailProcessedCount(t *testing.T) {
	a := NewAuditTrail(zerolog.Nop())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := a.Handle(ctx, viewEvent("p1", "moda")); err != nil {
			t.Fatalf("Handle: %v", err)
		}
	}

	if got := a.Processed(); got != 5 {
		t.Errorf("Processed = %d, want 5", got)
	}
}
