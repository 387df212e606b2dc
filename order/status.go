package order

import "strings"

/* Status is the raw WooCommerce order status, e.g. "completed"
 * Settings refer to statuses by their namespaced key ("wc-completed"),
 * which is the form WooCommerce itself uses in its options and tables
 */
type Status string

// KeyPrefix is the namespace WooCommerce puts in front of order statuses
const KeyPrefix = "wc-"

const (
	Pending       Status = "pending"
	Processing    Status = "processing"
	OnHold        Status = "on-hold"
	Completed     Status = "completed"
	Cancelled     Status = "cancelled"
	Refunded      Status = "refunded"
	Failed        Status = "failed"
	CheckoutDraft Status = "checkout-draft"
)

var labels = map[Status]string{
	Pending:       "Pending payment",
	Processing:    "Processing",
	OnHold:        "On hold",
	Completed:     "Completed",
	Cancelled:     "Cancelled",
	Refunded:      "Refunded",
	Failed:        "Failed",
	CheckoutDraft: "Draft",
}

// Statuses returns the built-in statuses in the order WooCommerce lists them
func Statuses() []Status {
	return []Status{Pending, Processing, OnHold, Completed, Cancelled, Refunded, Failed, CheckoutDraft}
}

// ParseStatus accepts either the raw status or its namespaced key
func ParseStatus(s string) Status {
	return Status(strings.TrimPrefix(strings.TrimSpace(s), KeyPrefix))
}

// String returns the raw status
func (s Status) String() string {
	return string(s)
}

// Key returns the namespaced status used as settings key
func (s Status) Key() string {
	return KeyPrefix + string(s)
}

// Label returns a human readable name; custom statuses fall back to the raw value
func (s Status) Label() string {
	if l, ok := labels[s]; ok {
		return l
	}
	return string(s)
}

// IsBuiltin reports whether the status is one WooCommerce ships with
func (s Status) IsBuiltin() bool {
	_, ok := labels[s]
	return ok
}
