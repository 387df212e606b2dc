package event

import "time"

/* OrderCheckpoint is fired once an order reaches the post-purchase checkpoint
 * (the store's "thank you" page or an order webhook delivery)
 */
type OrderCheckpoint struct {
	OrderID    int64
	Source     string // who reported it, e.g. "woocommerce-webhook", "api", "cli"
	OccurredAt time.Time
}

// NewOrderCheckpoint creates a checkpoint stamped with the current time
func NewOrderCheckpoint(orderID int64, source string) OrderCheckpoint {
	return OrderCheckpoint{
		OrderID:    orderID,
		Source:     source,
		OccurredAt: time.Now(),
	}
}
