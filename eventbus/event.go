// Package eventbus implements the in-process publish/subscribe fan-out for
// product view events. Publish is fire-and-forget: each subscriber consumes
// from its own buffered lane on its own goroutine, so a slow or failing
// subscriber never delays the read path or its peers.
package eventbus

import "time"

// ProductViewed is emitted once per successful, non-cached single product
// fetch. It is immutable and discarded after delivery; nothing persists it.
type ProductViewed struct {
	ProductID   string
	ProductName string
	Category    string
	RequestID   string
	ViewedAt    time.Time
}
