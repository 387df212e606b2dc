package order

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

/* Order is a read-only snapshot of a WooCommerce order at notification time
 * Uses value semantics as it represents data, not behavior
 * The snapshot is owned by the store; nothing in this service mutates it
 */
type Order struct {
	ID                 int64
	Status             Status
	Total              string // decimal as rendered by the store, e.g. "29.99"
	Currency           string // ISO 4217 code
	CreatedAt          time.Time
	BillingEmail       string // optional
	PaymentMethodTitle string // optional
	Items              []string
}

// ErrNotFound is returned by readers when no order has the requested id
var ErrNotFound = errors.New("order not found")

// DateLayout is the layout used when an order date is shown to people
const DateLayout = "2006-01-02 15:04:05"

// Validate checks the snapshot right after it crosses an adapter boundary
func (o Order) Validate() error {
	if o.ID <= 0 {
		return fmt.Errorf("invalid order id: %d", o.ID)
	}
	if o.Status == "" {
		return fmt.Errorf("order %d has no status", o.ID)
	}
	if _, err := strconv.ParseFloat(o.Total, 64); err != nil {
		return fmt.Errorf("order %d has invalid total %q: %w", o.ID, o.Total, err)
	}
	if len(o.Currency) != 3 {
		return fmt.Errorf("order %d has invalid currency %q", o.ID, o.Currency)
	}
	if o.CreatedAt.IsZero() {
		return fmt.Errorf("order %d has no creation date", o.ID)
	}
	return nil
}

// FormattedDate returns the creation date in the order's own timezone
func (o Order) FormattedDate() string {
	return o.CreatedAt.Format(DateLayout)
}
