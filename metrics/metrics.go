package metrics

import (
	"context"
	"time"
)

// Dispatch describes one handled order checkpoint
type Dispatch struct {
	// Outcome is what the dispatcher did, e.g. "sent" or "status_not_enabled"
	Outcome string

	// OrderStatus is the namespaced order status, empty when the order was not found
	OrderStatus string

	// Duration is the wall time of the whole dispatch, including the webhook call
	Duration time.Duration
}

// Recorder receives dispatch events.
type Recorder interface {
	NotificationDispatched(ctx context.Context, d Dispatch)
}

// Nop discards everything; used by the CLI and in tests.
type Nop struct{}

// NotificationDispatched implements Recorder.
func (Nop) NotificationDispatched(context.Context, Dispatch) {}
