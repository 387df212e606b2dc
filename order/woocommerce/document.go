package woocommerce

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/marcelsud/discord-sale-notifier/order"
)

/* orderDocument is the order representation of the WooCommerce REST API v3
 * The same document is the body of "order.*" webhook deliveries
 * Only the fields a sale notification needs are mapped
 */
type orderDocument struct {
	ID                 int64          `json:"id"`
	Status             string         `json:"status"`
	Currency           string         `json:"currency"`
	Total              string         `json:"total"`
	DateCreated        string         `json:"date_created"`
	PaymentMethodTitle string         `json:"payment_method_title"`
	Billing            billingAddress `json:"billing"`
	LineItems          []lineItem     `json:"line_items"`
}

type billingAddress struct {
	Email string `json:"email"`
}

type lineItem struct {
	Name string `json:"name"`
}

// dateLayout is how the API renders site-local dates (no offset)
const dateLayout = "2006-01-02T15:04:05"

// ParseOrder converts a REST/webhook order document into a validated snapshot
// Dates carry no offset in the document; loc is the store timezone
func ParseOrder(data []byte, loc *time.Location) (order.Order, error) {
	var doc orderDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return order.Order{}, fmt.Errorf("unmarshaling order: %w", err)
	}
	if loc == nil {
		loc = time.UTC
	}

	createdAt, err := time.ParseInLocation(dateLayout, doc.DateCreated, loc)
	if err != nil {
		return order.Order{}, fmt.Errorf("parsing date_created: %w", err)
	}

	items := make([]string, 0, len(doc.LineItems))
	for _, li := range doc.LineItems {
		items = append(items, li.Name)
	}

	o := order.Order{
		ID:                 doc.ID,
		Status:             order.ParseStatus(doc.Status),
		Total:              doc.Total,
		Currency:           doc.Currency,
		CreatedAt:          createdAt,
		BillingEmail:       doc.Billing.Email,
		PaymentMethodTitle: doc.PaymentMethodTitle,
		Items:              items,
	}
	if err := o.Validate(); err != nil {
		return order.Order{}, fmt.Errorf("validating order: %w", err)
	}

	return o, nil
}

// ParseOrderID extracts only the id; used when the rest of the document is not needed
func ParseOrderID(data []byte) (int64, error) {
	var doc struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return 0, fmt.Errorf("unmarshaling order: %w", err)
	}
	if doc.ID <= 0 {
		return 0, fmt.Errorf("order id is required")
	}
	return doc.ID, nil
}
