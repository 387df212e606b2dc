package event

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Handler reacts to an order checkpoint
type Handler interface {
	HandleOrderCheckpoint(ctx context.Context, evt OrderCheckpoint)
}

// HandlerFunc adapts a function to Handler
type HandlerFunc func(ctx context.Context, evt OrderCheckpoint)

// HandleOrderCheckpoint calls f(ctx, evt)
func (f HandlerFunc) HandleOrderCheckpoint(ctx context.Context, evt OrderCheckpoint) {
	f(ctx, evt)
}

/* Bus delivers checkpoints to its handlers synchronously, in subscription order
 * A panicking handler is logged and skipped: publishers never see handler failures
 */
type Bus struct {
	mu       sync.RWMutex
	handlers []Handler
	logger   *zap.Logger
}

// NewBus creates an empty bus
func NewBus(logger *zap.Logger) *Bus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bus{logger: logger}
}

// Subscribe registers h for every future Publish
func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

// Publish runs every handler inline and returns when all have finished
func (b *Bus) Publish(ctx context.Context, evt OrderCheckpoint) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.RUnlock()

	for _, h := range handlers {
		b.dispatch(ctx, h, evt)
	}
}

func (b *Bus) dispatch(ctx context.Context, h Handler, evt OrderCheckpoint) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("order checkpoint handler panicked",
				zap.Int64("order_id", evt.OrderID),
				zap.String("source", evt.Source),
				zap.String("panic", fmt.Sprint(r)),
			)
		}
	}()
	h.HandleOrderCheckpoint(ctx, evt)
}
