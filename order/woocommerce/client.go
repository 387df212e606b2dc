package woocommerce

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/marcelsud/discord-sale-notifier/order"
)

// DefaultTimeout bounds one order lookup
const DefaultTimeout = 15 * time.Second

/* Client reads orders through the WooCommerce REST API v3
 * Authenticates with a consumer key/secret pair over HTTP basic auth
 */
type Client struct {
	baseURL        string
	consumerKey    string
	consumerSecret string
	location       *time.Location
	httpClient     *http.Client
}

// NewClient creates a REST client for the store at baseURL (e.g. https://shop.example)
func NewClient(baseURL, consumerKey, consumerSecret string, location *time.Location, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		consumerKey:    consumerKey,
		consumerSecret: consumerSecret,
		location:       location,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Get fetches an order by id
func (c *Client) Get(ctx context.Context, id int64) (order.Order, error) {
	url := c.baseURL + "/wp-json/wc/v3/orders/" + strconv.FormatInt(id, 10)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return order.Order{}, fmt.Errorf("creating request: %w", err)
	}
	req.SetBasicAuth(c.consumerKey, c.consumerSecret)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return order.Order{}, fmt.Errorf("requesting order: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return order.Order{}, fmt.Errorf("reading response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return order.Order{}, order.ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return order.Order{}, fmt.Errorf("unexpected status %d from store", resp.StatusCode)
	}

	return ParseOrder(body, c.location)
}
