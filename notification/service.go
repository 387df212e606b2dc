package notification

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/marcelsud/discord-sale-notifier/discord"
	"github.com/marcelsud/discord-sale-notifier/event"
	"github.com/marcelsud/discord-sale-notifier/metrics"
	"github.com/marcelsud/discord-sale-notifier/order"
	"github.com/marcelsud/discord-sale-notifier/settings"
	"go.uber.org/zap"
)

// UseCase is the dispatcher as seen by transports
type UseCase interface {
	Notify(ctx context.Context, orderID int64) Outcome
}

/* Service turns an order checkpoint into at most one Discord webhook call
 * Settings are loaded on every call; nothing is cached or deduplicated, so
 * two checkpoints for the same order produce two messages
 */
type Service struct {
	Settings settings.Reader
	Orders   order.Reader
	Sender   discord.Sender
	Metrics  metrics.Recorder
	logger   *zap.Logger
}

// NewService wires the dispatcher; recorder and logger may be nil
func NewService(st settings.Reader, orders order.Reader, sender discord.Sender, recorder metrics.Recorder, logger *zap.Logger) *Service {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		Settings: st,
		Orders:   orders,
		Sender:   sender,
		Metrics:  recorder,
		logger:   logger,
	}
}

// Notify runs the dispatch for one order. Failures never escape: they become an Outcome and a log line
func (s *Service) Notify(ctx context.Context, orderID int64) Outcome {
	start := time.Now()
	log := s.logger.With(
		zap.String("delivery_id", uuid.NewString()),
		zap.Int64("order_id", orderID),
	)

	outcome, statusKey := s.dispatch(ctx, orderID, log)

	s.Metrics.NotificationDispatched(ctx, metrics.Dispatch{
		Outcome:     outcome.String(),
		OrderStatus: statusKey,
		Duration:    time.Since(start),
	})

	fields := []zap.Field{
		zap.String("outcome", outcome.String()),
		zap.String("status", statusKey),
		zap.Duration("took", time.Since(start)),
	}
	switch outcome {
	case Sent:
		log.Info("sale notification sent", fields...)
	case DeliveryFailed, SettingsUnavailable:
		log.Warn("sale notification not delivered", fields...)
	default:
		log.Debug("sale notification skipped", fields...)
	}

	return outcome
}

// HandleOrderCheckpoint lets the service subscribe to an event.Bus
func (s *Service) HandleOrderCheckpoint(ctx context.Context, evt event.OrderCheckpoint) {
	s.Notify(ctx, evt.OrderID)
}

func (s *Service) dispatch(ctx context.Context, orderID int64, log *zap.Logger) (Outcome, string) {
	o, err := s.Orders.Get(ctx, orderID)
	if err != nil {
		if !errors.Is(err, order.ErrNotFound) {
			log.Warn("fetching order", zap.Error(err))
		}
		return OrderNotFound, ""
	}
	statusKey := o.Status.Key()

	st, err := s.Settings.Load(ctx)
	if err != nil {
		log.Error("loading settings", zap.Error(err))
		return SettingsUnavailable, statusKey
	}

	if !st.IsEnabled(statusKey) {
		return StatusNotEnabled, statusKey
	}

	webhookURL := st.WebhookFor(statusKey)
	if webhookURL == "" {
		return NoWebhookURL, statusKey
	}

	msg := discord.Message{
		Embeds: []discord.Embed{BuildEmbed(o, st.ColorFor(statusKey))},
	}

	// the caller going away must not cut the webhook call short; the sender's own timeout bounds it
	if err := s.Sender.Send(context.WithoutCancel(ctx), webhookURL, msg); err != nil {
		log.Warn("posting to discord", zap.Error(err))
		return DeliveryFailed, statusKey
	}

	return Sent, statusKey
}
