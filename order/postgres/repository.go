package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/marcelsud/discord-sale-notifier/order"
)

/*
PostgreSQL order reader

Reads WooCommerce's high-performance order storage (HPOS) tables from a
PostgreSQL replica of the store database:
  - {prefix}wc_orders holds one row per order, status already namespaced
  - {prefix}woocommerce_order_items holds line items (order_item_type = 'line_item')
*/

// DefaultTablePrefix is the WordPress default table prefix
const DefaultTablePrefix = "wp_"

// DefaultPriceDecimals matches WooCommerce's default price precision
const DefaultPriceDecimals = 2

var tablePrefixPattern = regexp.MustCompile(`^[A-Za-z0-9_]*$`)

type Repository struct {
	DB       *sql.DB
	prefix   string
	location *time.Location
	decimals int
}

// NewRepository opens a PostgreSQL connection pool with the same defaults used elsewhere (25, 5, 5 min)
func NewRepository(connectionString, tablePrefix string, location *time.Location) (*Repository, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("opening postgres connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return New(db, tablePrefix, location)
}

// New wraps an existing pool; location is the store timezone used for order dates
func New(db *sql.DB, tablePrefix string, location *time.Location) (*Repository, error) {
	if !tablePrefixPattern.MatchString(tablePrefix) {
		return nil, fmt.Errorf("invalid table prefix: %q", tablePrefix)
	}
	if location == nil {
		location = time.UTC
	}
	return &Repository{
		DB:       db,
		prefix:   tablePrefix,
		location: location,
		decimals: DefaultPriceDecimals,
	}, nil
}

// Get loads an order and its line item names
func (r *Repository) Get(ctx context.Context, id int64) (order.Order, error) {
	// HPOS columns are nullable; a NULL reaches Validate as an empty value
	query := fmt.Sprintf(`SELECT id, COALESCE(status, ''), COALESCE(currency, ''), total_amount, date_created_gmt,
		COALESCE(billing_email, ''), COALESCE(payment_method_title, '')
		FROM %swc_orders WHERE id = $1 AND type = 'shop_order'`, r.prefix)

	var (
		o         order.Order
		status    string
		total     sql.NullString
		createdAt sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&o.ID,
		&status,
		&o.Currency,
		&total,
		&createdAt,
		&o.BillingEmail,
		&o.PaymentMethodTitle,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return order.Order{}, order.ErrNotFound
	}
	if err != nil {
		return order.Order{}, fmt.Errorf("selecting order: %w", err)
	}

	o.Status = order.ParseStatus(status)
	if createdAt.Valid {
		o.CreatedAt = createdAt.Time.In(r.location)
	}
	if total.Valid {
		o.Total, err = r.formatTotal(total.String)
		if err != nil {
			return order.Order{}, fmt.Errorf("parsing total of order %d: %w", id, err)
		}
	}

	o.Items, err = r.itemNames(ctx, id)
	if err != nil {
		return order.Order{}, err
	}

	if err := o.Validate(); err != nil {
		return order.Order{}, fmt.Errorf("validating order: %w", err)
	}

	return o, nil
}

func (r *Repository) itemNames(ctx context.Context, orderID int64) ([]string, error) {
	query := fmt.Sprintf(`SELECT order_item_name FROM %swoocommerce_order_items
		WHERE order_id = $1 AND order_item_type = 'line_item' ORDER BY order_item_id`, r.prefix)

	rows, err := r.DB.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("selecting order items: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning order item: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order items: %w", err)
	}

	return names, nil
}

// total_amount is decimal(26,8); render it with the store's price precision
func (r *Repository) formatTotal(raw string) (string, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "", err
	}
	return strconv.FormatFloat(v, 'f', r.decimals, 64), nil
}

// Close closes the connection pool
func (r *Repository) Close(ctx context.Context) error {
	if r.DB != nil {
		return r.DB.Close()
	}
	return nil
}
