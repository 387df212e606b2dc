package chi

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/marcelsud/discord-sale-notifier/event"
	"github.com/marcelsud/discord-sale-notifier/notification"
	"github.com/marcelsud/discord-sale-notifier/order/woocommerce"
	"github.com/marcelsud/discord-sale-notifier/woocommerce/signature"
)

// SourceWooCommerceWebhook marks checkpoints raised by webhook deliveries
const SourceWooCommerceWebhook = "woocommerce-webhook"

// maxWebhookBody caps WooCommerce deliveries; order documents are a few KB
const maxWebhookBody = 1 << 20

// checkpointResponse reports what the dispatcher did with the checkpoint
type checkpointResponse struct {
	OrderID int64  `json:"order_id"`
	Outcome string `json:"outcome"`
}

// webhookResponse acknowledges an accepted WooCommerce delivery
type webhookResponse struct {
	OrderID int64 `json:"order_id"`
}

// postCheckpoint handles POST /v1/orders/{order_id}/checkpoint
// The dispatch runs inline; any outcome is a 202, failures are not the caller's problem
func postCheckpoint(notifier notification.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "order_id"), 10, 64)
		if err != nil || id <= 0 {
			http.Error(w, "order_id must be a positive integer", http.StatusBadRequest)
			return
		}

		outcome := notifier.Notify(r.Context(), id)

		writeJSON(w, http.StatusAccepted, checkpointResponse{
			OrderID: id,
			Outcome: outcome.String(),
		})
	})
}

// postWooCommerceWebhook handles POST /v1/woocommerce/webhook
func postWooCommerceWebhook(publisher Publisher, secret string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
		if err != nil {
			http.Error(w, "failed to read request body", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		// WooCommerce pings a freshly saved webhook with an unsigned form body
		if bytes.HasPrefix(body, []byte("webhook_id=")) {
			w.WriteHeader(http.StatusOK)
			return
		}

		if secret != "" {
			if err := signature.Verify(secret, body, r.Header.Get(signature.Header)); err != nil {
				http.Error(w, "invalid signature: "+err.Error(), http.StatusUnauthorized)
				return
			}
		}

		if topic := r.Header.Get("X-WC-Webhook-Topic"); topic != "" && !strings.HasPrefix(topic, "order.") {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		id, err := woocommerce.ParseOrderID(body)
		if err != nil {
			http.Error(w, "invalid order document: "+err.Error(), http.StatusBadRequest)
			return
		}

		publisher.Publish(r.Context(), event.NewOrderCheckpoint(id, SourceWooCommerceWebhook))

		writeJSON(w, http.StatusAccepted, webhookResponse{OrderID: id})
	})
}
