package order

import "context"

/* Small interface: this service only ever reads orders
 * Implementations return ErrNotFound (possibly wrapped) for unknown ids
 */

// Reader provides read access to orders by id
type Reader interface {
	Get(ctx context.Context, id int64) (Order, error)
}
