package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/marcelsud/discord-sale-notifier/event"
	"github.com/marcelsud/discord-sale-notifier/notification"
	"github.com/marcelsud/discord-sale-notifier/notification/mocks"
	"github.com/marcelsud/discord-sale-notifier/woocommerce/signature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// recordingBus collects published checkpoints
type recordingBus struct {
	events []event.OrderCheckpoint
}

func (b *recordingBus) Publish(_ context.Context, evt event.OrderCheckpoint) {
	b.events = append(b.events, evt)
}

const orderDocument = `{"id":1042,"status":"completed","currency":"USD","total":"29.99","date_created":"2024-03-09T14:05:07","line_items":[{"name":"Mug"}]}`

func TestPostCheckpoint(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the dispatch outcome", func(t *testing.T) {
		s := mocks.NewUseCase(t)
		s.On("Notify", mock.Anything, int64(1042)).Return(notification.Sent)
		h := Handlers(ctx, Services{Notifier: s})

		req := httptest.NewRequest(http.MethodPost, "/v1/orders/1042/checkpoint", nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, http.StatusAccepted, w.Code)
		var resp checkpointResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(1042), resp.OrderID)
		assert.Equal(t, "sent", resp.Outcome)
	})

	t.Run("skips are still accepted", func(t *testing.T) {
		s := mocks.NewUseCase(t)
		s.On("Notify", mock.Anything, int64(7)).Return(notification.StatusNotEnabled)
		h := Handlers(ctx, Services{Notifier: s})

		req := httptest.NewRequest(http.MethodPost, "/v1/orders/7/checkpoint", nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.JSONEq(t, `{"order_id":7,"outcome":"status_not_enabled"}`, w.Body.String())
	})

	t.Run("invalid order id", func(t *testing.T) {
		s := mocks.NewUseCase(t)
		h := Handlers(ctx, Services{Notifier: s})

		for _, id := range []string{"abc", "0", "-3"} {
			req := httptest.NewRequest(http.MethodPost, "/v1/orders/"+id+"/checkpoint", nil)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code, id)
		}
		s.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
	})
}

func TestPostWooCommerceWebhook(t *testing.T) {
	ctx := context.Background()
	secret := "wc-secret"

	send := func(h http.Handler, body string, headers map[string]string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/v1/woocommerce/webhook", strings.NewReader(body))
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w
	}

	t.Run("signed order delivery is published", func(t *testing.T) {
		bus := &recordingBus{}
		h := Handlers(ctx, Services{Publisher: bus, WebhookSecret: secret})

		w := send(h, orderDocument, map[string]string{
			signature.Header:     signature.Sign(secret, []byte(orderDocument)),
			"X-WC-Webhook-Topic": "order.updated",
		})

		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.JSONEq(t, `{"order_id":1042}`, w.Body.String())
		require.Len(t, bus.events, 1)
		assert.Equal(t, int64(1042), bus.events[0].OrderID)
		assert.Equal(t, SourceWooCommerceWebhook, bus.events[0].Source)
	})

	t.Run("bad signature is rejected", func(t *testing.T) {
		bus := &recordingBus{}
		h := Handlers(ctx, Services{Publisher: bus, WebhookSecret: secret})

		w := send(h, orderDocument, map[string]string{
			signature.Header: signature.Sign("other", []byte(orderDocument)),
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, bus.events)
	})

	t.Run("missing signature is rejected", func(t *testing.T) {
		bus := &recordingBus{}
		h := Handlers(ctx, Services{Publisher: bus, WebhookSecret: secret})

		w := send(h, orderDocument, nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, bus.events)
	})

	t.Run("no secret means no verification", func(t *testing.T) {
		bus := &recordingBus{}
		h := Handlers(ctx, Services{Publisher: bus})

		w := send(h, orderDocument, nil)

		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.Len(t, bus.events, 1)
	})

	t.Run("ping is acknowledged", func(t *testing.T) {
		bus := &recordingBus{}
		h := Handlers(ctx, Services{Publisher: bus, WebhookSecret: secret})

		w := send(h, "webhook_id=12", map[string]string{
			"Content-Type": "application/x-www-form-urlencoded",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, bus.events)
	})

	t.Run("non-order topic is ignored", func(t *testing.T) {
		bus := &recordingBus{}
		h := Handlers(ctx, Services{Publisher: bus})

		w := send(h, `{"id":5}`, map[string]string{"X-WC-Webhook-Topic": "product.updated"})

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, bus.events)
	})

	t.Run("unparseable body", func(t *testing.T) {
		bus := &recordingBus{}
		h := Handlers(ctx, Services{Publisher: bus})

		for _, body := range []string{"not json", `{"status":"completed"}`} {
			w := send(h, body, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code, body)
		}
		assert.Empty(t, bus.events)
	})

	t.Run("real bus reaches the notifier", func(t *testing.T) {
		s := mocks.NewUseCase(t)
		s.On("Notify", mock.Anything, int64(1042)).Return(notification.Sent).Once()
		bus := event.NewBus(nil)
		bus.Subscribe(event.HandlerFunc(func(ctx context.Context, evt event.OrderCheckpoint) {
			s.Notify(ctx, evt.OrderID)
		}))
		h := Handlers(ctx, Services{Publisher: bus})

		w := send(h, orderDocument, nil)

		assert.Equal(t, http.StatusAccepted, w.Code)
	})
}
