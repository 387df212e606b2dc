package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds one webhook call
const DefaultTimeout = 60 * time.Second

// Sender posts a message to a webhook URL
type Sender interface {
	Send(ctx context.Context, webhookURL string, msg Message) error
}

/* Client posts messages to Discord webhooks
 * The response is drained and discarded: only transport errors are returned
 */
type Client struct {
	httpClient *http.Client
}

// NewClient creates a client whose calls are bounded by timeout
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Send POSTs msg as JSON to webhookURL
func (c *Client) Send(ctx context.Context, webhookURL string, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshaling message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("posting to webhook: %w", err)
	}
	defer resp.Body.Close()

	// let the transport reuse the connection
	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}
