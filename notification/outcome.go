package notification

/* Outcome is what happened to one order checkpoint
 * Only Sent means a webhook call completed; every other value is a silent
 * no-op from the store's point of view
 */
type Outcome int

const (
	Sent Outcome = iota + 1
	OrderNotFound
	StatusNotEnabled
	NoWebhookURL
	SettingsUnavailable
	DeliveryFailed
)

// String returns the string representation of the outcome
func (o Outcome) String() string {
	switch o {
	case Sent:
		return "sent"
	case OrderNotFound:
		return "order_not_found"
	case StatusNotEnabled:
		return "status_not_enabled"
	case NoWebhookURL:
		return "no_webhook_url"
	case SettingsUnavailable:
		return "settings_unavailable"
	case DeliveryFailed:
		return "delivery_failed"
	default:
		return "unknown"
	}
}

// Skipped reports whether a precondition stopped the dispatch before any HTTP call
func (o Outcome) Skipped() bool {
	return o == OrderNotFound || o == StatusNotEnabled || o == NoWebhookURL || o == SettingsUnavailable
}
