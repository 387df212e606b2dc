package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"
	"github.com/marcelsud/discord-sale-notifier/event"
	"github.com/marcelsud/discord-sale-notifier/notification"
	"github.com/marcelsud/discord-sale-notifier/settings"
)

// Publisher hands order checkpoints to whoever subscribed; *event.Bus implements it
type Publisher interface {
	Publish(ctx context.Context, evt event.OrderCheckpoint)
}

// Services is everything the HTTP layer calls into
type Services struct {
	Notifier  notification.UseCase
	Publisher Publisher
	Settings  settings.UseCase

	// Metrics serves /metrics when set
	Metrics http.Handler

	// WebhookSecret verifies WooCommerce deliveries; empty disables verification
	WebhookSecret string

	// RequestTimeout must outlast the Discord client timeout since checkpoints dispatch synchronously
	RequestTimeout time.Duration
}

// Handlers sets up the API routes
func Handlers(ctx context.Context, s Services) *chi.Mux {
	logger := httplog.NewLogger("discord-sale-notifier", httplog.Options{
		JSON: true,
	})

	timeout := s.RequestTimeout
	if timeout <= 0 {
		timeout = 90 * time.Second
	}

	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics)
	}

	r.Route("/v1", func(r chi.Router) {
		r.Method(http.MethodPost, "/orders/{order_id}/checkpoint", postCheckpoint(s.Notifier))
		r.Method(http.MethodPost, "/woocommerce/webhook", postWooCommerceWebhook(s.Publisher, s.WebhookSecret))

		r.Method(http.MethodGet, "/settings", getSettings(s.Settings))
		r.Method(http.MethodPut, "/settings", putSettings(s.Settings))
		r.Method(http.MethodGet, "/statuses", getStatuses(s.Settings))
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
