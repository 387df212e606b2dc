package metrics

import (
	"context"
	"fmt"
	"net/http"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// OTelExporter records dispatch metrics with OpenTelemetry and serves them in Prometheus format
type OTelExporter struct {
	meterProvider *sdkmetric.MeterProvider
	registry      *promclient.Registry

	meter      metric.Meter
	dispatched metric.Int64Counter
	duration   metric.Float64Histogram
}

// NewOTelExporter creates an exporter backed by its own Prometheus registry
func NewOTelExporter() (*OTelExporter, error) {
	registry := promclient.NewRegistry()

	exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(meterProvider)

	meter := meterProvider.Meter(
		"discord-sale-notifier",
		metric.WithInstrumentationVersion("1.0.0"),
	)

	oe := &OTelExporter{
		meterProvider: meterProvider,
		registry:      registry,
		meter:         meter,
	}

	if err := oe.registerInstruments(); err != nil {
		return nil, fmt.Errorf("registering instruments: %w", err)
	}

	return oe, nil
}

func (oe *OTelExporter) registerInstruments() error {
	var err error

	oe.dispatched, err = oe.meter.Int64Counter(
		"notifications.dispatched",
		metric.WithDescription("Order checkpoints handled, by outcome"),
		metric.WithUnit("{notifications}"),
	)
	if err != nil {
		return fmt.Errorf("creating dispatched counter: %w", err)
	}

	oe.duration, err = oe.meter.Float64Histogram(
		"notifications.duration",
		metric.WithDescription("Time spent handling one order checkpoint"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("creating duration histogram: %w", err)
	}

	return nil
}

// NotificationDispatched records one handled checkpoint
func (oe *OTelExporter) NotificationDispatched(ctx context.Context, d Dispatch) {
	attrs := metric.WithAttributes(
		attribute.String("outcome", d.Outcome),
		attribute.String("order.status", d.OrderStatus),
	)
	oe.dispatched.Add(ctx, 1, attrs)
	oe.duration.Record(ctx, d.Duration.Seconds(), attrs)
}

// ServeHTTP returns a handler serving Prometheus-formatted metrics
func (oe *OTelExporter) ServeHTTP() http.Handler {
	return promhttp.HandlerFor(oe.registry, promhttp.HandlerOpts{})
}

// Shutdown gracefully shuts down the meter provider
func (oe *OTelExporter) Shutdown(ctx context.Context) error {
	if oe.meterProvider != nil {
		return oe.meterProvider.Shutdown(ctx)
	}
	return nil
}
