//go:build integration

package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	defaultDatabase = "wordpress"
	defaultUser     = "wp"
	defaultPassword = "wp"
)

// PostgresContainer holds the container and an open pool
type PostgresContainer struct {
	Container testcontainers.Container
	DB        *sql.DB
	ConnStr   string
}

// SetupPostgresContainer starts a PostgreSQL container and connects to it
func SetupPostgresContainer(t *testing.T, ctx context.Context) (*PostgresContainer, func()) {
	t.Helper()

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase(defaultDatabase),
		tcpostgres.WithUsername(defaultUser),
		tcpostgres.WithPassword(defaultPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("postgres", connStr)
	require.NoError(t, err)
	require.NoError(t, db.PingContext(ctx))

	cleanup := func() {
		_ = db.Close()
		_ = pgContainer.Terminate(ctx)
	}

	return &PostgresContainer{Container: pgContainer, DB: db, ConnStr: connStr}, cleanup
}

// CreateOrderSchema creates the subset of the WooCommerce HPOS tables the reader queries
func CreateOrderSchema(t *testing.T, ctx context.Context, db *sql.DB, prefix string) {
	t.Helper()

	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS `+prefix+`wc_orders (
			id BIGINT PRIMARY KEY,
			status VARCHAR(20),
			currency VARCHAR(10),
			type VARCHAR(20),
			total_amount DECIMAL(26,8),
			date_created_gmt TIMESTAMP,
			billing_email VARCHAR(320),
			payment_method_title TEXT
		);
		CREATE TABLE IF NOT EXISTS `+prefix+`woocommerce_order_items (
			order_item_id BIGSERIAL PRIMARY KEY,
			order_item_name TEXT NOT NULL,
			order_item_type VARCHAR(200) NOT NULL DEFAULT '',
			order_id BIGINT NOT NULL
		)`)
	require.NoError(t, err)
}

// InsertOrder stores one order and its line items
func InsertOrder(t *testing.T, ctx context.Context, db *sql.DB, prefix string, id int64, status, total string, createdGMT time.Time, email *string, items ...string) {
	t.Helper()

	_, err := db.ExecContext(ctx,
		`INSERT INTO `+prefix+`wc_orders (id, status, currency, type, total_amount, date_created_gmt, billing_email, payment_method_title)
		VALUES ($1, $2, 'USD', 'shop_order', $3, $4, $5, 'Credit card')`,
		id, status, total, createdGMT, email)
	require.NoError(t, err)

	for _, name := range items {
		_, err := db.ExecContext(ctx,
			`INSERT INTO `+prefix+`woocommerce_order_items (order_item_name, order_item_type, order_id) VALUES ($1, 'line_item', $2)`,
			name, id)
		require.NoError(t, err)
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO `+prefix+`woocommerce_order_items (order_item_name, order_item_type, order_id) VALUES ('Flat rate', 'shipping', $1)`,
		id)
	require.NoError(t, err)
}
