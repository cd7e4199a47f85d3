// Package store provides the in-memory concurrent collections backing the
// catalog query layer, plus typed accessors per entity class.
package store

import (
	"context"

	"github.com/puzpuzpuz/xsync/v3"
)

// FaultHook lets tests and demos inject latency or failures into accessor
// calls. It runs before the real operation; a non-nil return aborts the
// call with that error. A nil hook is a no-op.
type FaultHook func(ctx context.Context, op string) error

// Collection is a concurrent key-value collection of entities keyed by id.
// Reads observe a snapshot no older than the start of the call. Iteration
// order is undefined; callers must impose their own order before paginating.
type Collection[T any] struct {
	items *xsync.MapOf[string, T]
	fault FaultHook
}

// NewCollection creates an empty collection.
func NewCollection[T any]() *Collection[T] {
	return &Collection[T]{items: xsync.NewMapOf[string, T]()}
}

// SetFaultHook installs hook on every subsequent accessor call. Pass nil to
// clear it.
func (c *Collection[T]) SetFaultHook(hook FaultHook) {
	c.fault = hook
}

func (c *Collection[T]) guard(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.fault != nil {
		return c.fault(ctx, op)
	}
	return nil
}

// Get returns the entity stored under id.
func (c *Collection[T]) Get(ctx context.Context, id string) (T, bool, error) {
	var zero T
	if err := c.guard(ctx, "get"); err != nil {
		return zero, false, err
	}
	v, ok := c.items.Load(id)
	return v, ok, nil
}

// All returns a snapshot of every entity, in no particular order.
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	if err := c.guard(ctx, "all"); err != nil {
		return nil, err
	}
	out := make([]T, 0, c.items.Size())
	c.items.Range(func(_ string, v T) bool {
		out = append(out, v)
		return true
	})
	return out, nil
}

// FindBy returns every entity matching pred, in no particular order.
func (c *Collection[T]) FindBy(ctx context.Context, pred func(T) bool) ([]T, error) {
	if err := c.guard(ctx, "find_by"); err != nil {
		return nil, err
	}
	var out []T
	c.items.Range(func(_ string, v T) bool {
		if pred(v) {
			out = append(out, v)
		}
		return true
	})
	return out, nil
}

// Put replaces the entity stored under id.
func (c *Collection[T]) Put(ctx context.Context, id string, v T) error {
	if err := c.guard(ctx, "put"); err != nil {
		return err
	}
	c.items.Store(id, v)
	return nil
}

// Delete removes the entity stored under id, if any.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	if err := c.guard(ctx, "delete"); err != nil {
		return err
	}
	c.items.Delete(id)
	return nil
}

// Exists reports whether an entity is stored under id.
func (c *Collection[T]) Exists(ctx context.Context, id string) (bool, error) {
	if err := c.guard(ctx, "exists"); err != nil {
		return false, err
	}
	_, ok := c.items.Load(id)
	return ok, nil
}

// Len returns the number of stored entities.
func (c *Collection[T]) Len() int {
	return c.items.Size()
}
