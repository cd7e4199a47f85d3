package analytics

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-catalog-query/eventbus"
)

// AuditTrail records every product view with its correlation id. The log
// stream is the sink; nothing is retained beyond a processed counter.
type AuditTrail struct {
	logger    zerolog.Logger
	processed atomic.Uint64
}

// NewAuditTrail creates an audit sink writing to logger.
func NewAuditTrail(logger zerolog.Logger) *AuditTrail {
	return &AuditTrail{logger: logger}
}

// Name implements eventbus.Subscriber.
func (a *AuditTrail) Name() string { return "audit-trail" }

// Handle writes one audit line per view.
func (a *AuditTrail) Handle(ctx context.Context, ev eventbus.ProductViewed) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	a.logger.Info().
		Str("product_id", ev.ProductID).
		Str("product_name", ev.ProductName).
		Str("category", ev.Category).
		Str("request_id", ev.RequestID).
		Time("viewed_at", ev.ViewedAt).
		Msg("product view audited")
	a.processed.Add(1)
	return nil
}

// Processed returns how many views have been audited.
func (a *AuditTrail) Processed() uint64 {
	return a.processed.Load()
}
