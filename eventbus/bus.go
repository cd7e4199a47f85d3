package eventbus

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// DefaultLaneBuffer is the per-subscriber lane capacity used by New.
const DefaultLaneBuffer = 256

// Subscriber consumes product view events. Handle runs on the subscriber's
// own lane in publication order; a returned error or panic only affects
// that subscriber. Handle must honor ctx cancellation by skipping its
// mutation entirely, never leaving it half-applied.
type Subscriber interface {
	Name() string
	Handle(ctx context.Context, ev ProductViewed) error
}

// Bus fans published events out to every subscriber independently.
type Bus struct {
	logger     zerolog.Logger
	laneBuffer int

	mu     sync.RWMutex
	lanes  []*lane
	closed bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type lane struct {
	sub     Subscriber
	ch      chan ProductViewed
	dropped atomic.Uint64
}

// New creates a Bus with the default lane buffer.
func New(logger zerolog.Logger) *Bus {
	return NewBuffered(logger, DefaultLaneBuffer)
}

// NewBuffered creates a Bus whose subscriber lanes hold up to buffer
// pending events each.
func NewBuffered(logger zerolog.Logger, buffer int) *Bus {
	if buffer <= 0 {
		buffer = DefaultLaneBuffer
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Bus{logger: logger, laneBuffer: buffer, ctx: ctx, cancel: cancel}
}

// Subscribe registers sub and starts its delivery lane. Subscribing after
// Close is a no-op.
func (b *Bus) Subscribe(sub Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	l := &lane{sub: sub, ch: make(chan ProductViewed, b.laneBuffer)}
	b.lanes = append(b.lanes, l)
	b.wg.Add(1)
	go b.run(l)
}

// Publish hands ev to every lane and returns immediately. A saturated lane
// drops the event for that subscriber with a warning; delivery is
// best-effort by design.
func (b *Bus) Publish(ev ProductViewed) {
	b.mu.RLock()
	lanes := b.lanes
	closed := b.closed
	b.mu.RUnlock()
	if closed {
		return
	}

	for _, l := range lanes {
		select {
		case l.ch <- ev:
		default:
			l.dropped.Add(1)
			b.logger.Warn().
				Str("subscriber", l.sub.Name()).
				Str("product_id", ev.ProductID).
				Msg("subscriber lane full, event dropped")
		}
	}
}

// Close stops delivery and waits for in-flight handlers to return. Events
// still buffered in lanes are discarded.
func (b *Bus) Close() {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
	b.cancel()
	b.wg.Wait()
}

func (b *Bus) run(l *lane) {
	defer b.wg.Done()
	for {
		select {
		case <-b.ctx.Done():
			return
		case ev := <-l.ch:
			b.deliver(l, ev)
		}
	}
}

func (b *Bus) deliver(l *lane, ev ProductViewed) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error().
				Str("subscriber", l.sub.Name()).
				Str("product_id", ev.ProductID).
				Interface("panic", r).
				Msg("subscriber panicked")
		}
	}()

	if err := l.sub.Handle(b.ctx, ev); err != nil {
		b.logger.Error().
			Err(err).
			Str("subscriber", l.sub.Name()).
			Str("product_id", ev.ProductID).
			Msg("subscriber failed")
	}
}
