package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/marcelsud/discord-sale-notifier/config"
	"github.com/marcelsud/discord-sale-notifier/event"
	"github.com/marcelsud/discord-sale-notifier/internal/app"
	"github.com/marcelsud/discord-sale-notifier/internal/http/chi"
	"github.com/marcelsud/discord-sale-notifier/internal/logger"
	"github.com/marcelsud/discord-sale-notifier/metrics"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

/* main wires configuration, backends and the HTTP layer
 * Imports go one way only: cmd -> transport -> services -> storage
 */

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT,
	)
	defer stop()

	exporter, err := metrics.NewOTelExporter()
	if err != nil {
		return fmt.Errorf("initializing metrics: %w", err)
	}

	a, err := app.New(cfg, exporter, log)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	bus := event.NewBus(log)
	bus.Subscribe(a.Notifier)

	r := chi.Handlers(ctx, chi.Services{
		Notifier:       a.Notifier,
		Publisher:      bus,
		Settings:       a.Settings,
		Metrics:        exporter.ServeHTTP(),
		WebhookSecret:  cfg.WooCommerceWebhookSecret,
		RequestTimeout: cfg.RequestTimeout(),
	})
	srv := &http.Server{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.RequestTimeout() + 5*time.Second,
		Addr:         ":" + cfg.Port,
		Handler:      r,
	}

	if cfg.WooCommerceWebhookSecret == "" {
		log.Warn("WOOCOMMERCE_WEBHOOK_SECRET is empty, webhook signatures are not verified")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return shutdown(gctx, srv, gracePeriod(cfg), exporter, log)
	})

	return g.Wait()
}

// gracePeriod lets an in-flight checkpoint finish its order fetch and Discord POST
func gracePeriod(cfg *config.Config) time.Duration {
	return cfg.RequestTimeout() + 5*time.Second
}

func shutdown(ctx context.Context, server *http.Server, grace time.Duration, exporter *metrics.OTelExporter, log *zap.Logger) error {
	<-ctx.Done()

	ctxTimeout, stop := context.WithTimeout(context.Background(), grace)
	defer stop()

	log.Info("shutting down server", zap.Duration("grace", grace))
	if err := server.Shutdown(ctxTimeout); err != nil {
		return fmt.Errorf("forcing closing the server: %w", err)
	}
	if err := exporter.Shutdown(ctxTimeout); err != nil {
		log.Warn("shutting down metrics", zap.Error(err))
	}
	return nil
}
