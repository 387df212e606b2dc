package settings

import (
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strings"

	"github.com/marcelsud/discord-sale-notifier/order"
)

/* Settings is the whole notifier configuration
 * Status keys are namespaced order statuses ("wc-completed")
 * Uses value semantics as it represents data, not behavior
 */
type Settings struct {
	DefaultWebhookURL string
	EnabledStatuses   []string
	StatusWebhooks    map[string]string
	StatusColors      map[string]string
}

// Option keys under which each part of Settings is stored
const (
	OptionWebhookURL     = "discord_webhook_url"
	OptionOrderStatuses  = "discord_order_statuses"
	OptionStatusWebhooks = "discord_status_webhooks"
	OptionStatusColors   = "discord_status_colors"
)

// DefaultColor is used for statuses without a configured color
const DefaultColor = "#ffffff"

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// IsEnabled reports whether notifications fire for the status key
func (s Settings) IsEnabled(statusKey string) bool {
	return slices.Contains(s.EnabledStatuses, statusKey)
}

// WebhookFor resolves the target webhook: the status override when non-empty, else the default
func (s Settings) WebhookFor(statusKey string) string {
	if u := s.StatusWebhooks[statusKey]; u != "" {
		return u
	}
	return s.DefaultWebhookURL
}

// ColorStringFor returns the configured color for the status or DefaultColor
func (s Settings) ColorStringFor(statusKey string) string {
	if c := s.StatusColors[statusKey]; c != "" {
		return c
	}
	return DefaultColor
}

// ColorFor returns the embed color for the status as an integer
func (s Settings) ColorFor(statusKey string) int {
	return ParseColor(s.ColorStringFor(statusKey))
}

// Validate enforces the constraints of the settings form
// The dispatcher never calls it: stored values are used as they are
func (s Settings) Validate() error {
	if err := validateWebhookURL(s.DefaultWebhookURL); err != nil {
		return fmt.Errorf("invalid default webhook: %w", err)
	}
	for _, key := range s.EnabledStatuses {
		if err := validateStatusKey(key); err != nil {
			return err
		}
	}
	for key, u := range s.StatusWebhooks {
		if err := validateStatusKey(key); err != nil {
			return err
		}
		if err := validateWebhookURL(u); err != nil {
			return fmt.Errorf("invalid webhook for %s: %w", key, err)
		}
	}
	for key, c := range s.StatusColors {
		if err := validateStatusKey(key); err != nil {
			return err
		}
		if c != "" && !colorPattern.MatchString(c) {
			return fmt.Errorf("invalid color for %s: %q (expected #rrggbb)", key, c)
		}
	}
	return nil
}

func validateStatusKey(key string) error {
	if !strings.HasPrefix(key, order.KeyPrefix) || len(key) == len(order.KeyPrefix) {
		return fmt.Errorf("invalid status key %q: must look like %scompleted", key, order.KeyPrefix)
	}
	return nil
}

// empty is allowed: it means "not configured"
func validateWebhookURL(raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https: %s", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("host is required: %s", raw)
	}
	return nil
}
