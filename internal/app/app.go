package app

import (
	"context"
	"fmt"

	"github.com/marcelsud/discord-sale-notifier/config"
	"github.com/marcelsud/discord-sale-notifier/discord"
	"github.com/marcelsud/discord-sale-notifier/metrics"
	"github.com/marcelsud/discord-sale-notifier/notification"
	"github.com/marcelsud/discord-sale-notifier/order"
	"github.com/marcelsud/discord-sale-notifier/order/postgres"
	"github.com/marcelsud/discord-sale-notifier/order/woocommerce"
	"github.com/marcelsud/discord-sale-notifier/settings"
	"github.com/marcelsud/discord-sale-notifier/settings/file"
	settingsredis "github.com/marcelsud/discord-sale-notifier/settings/redis"
	"go.uber.org/zap"
)

/* App holds the wired collaborators shared by the api and the CLIs
 * Only the selected backends are opened
 */
type App struct {
	Settings *settings.Service
	Notifier *notification.Service

	closers []func(ctx context.Context) error
}

// New opens the configured settings backend and order source and wires the dispatcher
func New(cfg *config.Config, recorder metrics.Recorder, logger *zap.Logger) (*App, error) {
	a := &App{}

	repo, err := NewSettingsRepository(cfg)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, repo.Close)

	orders, err := a.newOrderReader(cfg)
	if err != nil {
		a.Close(context.Background())
		return nil, err
	}

	a.Settings = settings.NewService(repo)
	a.Notifier = notification.NewService(repo, orders, discord.NewClient(cfg.DiscordTimeout()), recorder, logger)

	logger.Info("backends ready",
		zap.String("settings_backend", cfg.SettingsBackend),
		zap.String("order_source", cfg.OrderSource),
	)
	return a, nil
}

// NewSettingsRepository opens the settings backend named by SETTINGS_BACKEND
func NewSettingsRepository(cfg *config.Config) (settings.Repository, error) {
	switch cfg.SettingsBackend {
	case config.SettingsBackendRedis:
		repo, err := settingsredis.NewRepository(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, fmt.Errorf("opening redis settings: %w", err)
		}
		return repo, nil
	case config.SettingsBackendFile:
		return file.NewRepository(cfg.SettingsFile), nil
	default:
		return nil, fmt.Errorf("unknown settings backend %q", cfg.SettingsBackend)
	}
}

func (a *App) newOrderReader(cfg *config.Config) (order.Reader, error) {
	switch cfg.OrderSource {
	case config.OrderSourcePostgres:
		repo, err := postgres.NewRepository(cfg.DatabaseURL, cfg.DBTablePrefix, cfg.Location())
		if err != nil {
			return nil, fmt.Errorf("opening order database: %w", err)
		}
		a.closers = append(a.closers, repo.Close)
		return repo, nil
	case config.OrderSourceWooCommerce:
		return woocommerce.NewClient(
			cfg.WooCommerceURL,
			cfg.WooCommerceConsumerKey,
			cfg.WooCommerceConsumerSecret,
			cfg.Location(),
			woocommerce.DefaultTimeout,
		), nil
	default:
		return nil, fmt.Errorf("unknown order source %q", cfg.OrderSource)
	}
}

// Close releases the opened backends in reverse order
func (a *App) Close(ctx context.Context) error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}
