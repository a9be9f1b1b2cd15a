package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records trigger metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordSubscribe records a new subscription for a base event name.
	RecordSubscribe(ctx context.Context, name string)

	// RecordTrigger records a dispatch and how many subscribers matched.
	RecordTrigger(ctx context.Context, fullName string, subscribers int)

	// RecordSuppressed records a trigger dropped by a disabled client.
	RecordSuppressed(ctx context.Context, fullName string)

	// RecordHandler records one subscriber invocation.
	RecordHandler(ctx context.Context, fullName string, duration time.Duration, err error)
}

type otelMetrics struct {
	subscriptions  metric.Int64Counter
	triggered      metric.Int64Counter
	suppressed     metric.Int64Counter
	fanout         metric.Int64Histogram
	invocations    metric.Int64Counter
	handlerErrors  metric.Int64Counter
	handlerLatency metric.Float64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics(otel.GetMeterProvider())
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics(mp metric.MeterProvider) (*otelMetrics, error) {
	meter := mp.Meter(instrumentationName)

	subscriptions, err := meter.Int64Counter("trigger.subscriptions",
		metric.WithDescription("Number of subscribers registered"),
	)
	if err != nil {
		return nil, err
	}

	triggered, err := meter.Int64Counter("trigger.events.triggered",
		metric.WithDescription("Number of events dispatched"),
	)
	if err != nil {
		return nil, err
	}

	suppressed, err := meter.Int64Counter("trigger.events.suppressed",
		metric.WithDescription("Number of events dropped by a disabled client"),
	)
	if err != nil {
		return nil, err
	}

	fanout, err := meter.Int64Histogram("trigger.events.fanout",
		metric.WithDescription("Matching subscribers per dispatched event"),
	)
	if err != nil {
		return nil, err
	}

	invocations, err := meter.Int64Counter("trigger.handler.invocations",
		metric.WithDescription("Number of subscriber invocations"),
	)
	if err != nil {
		return nil, err
	}

	handlerErrors, err := meter.Int64Counter("trigger.handler.errors",
		metric.WithDescription("Number of subscriber invocations that returned an error"),
	)
	if err != nil {
		return nil, err
	}

	handlerLatency, err := meter.Float64Histogram("trigger.handler.latency_ms",
		metric.WithDescription("Subscriber invocation latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		subscriptions:  subscriptions,
		triggered:      triggered,
		suppressed:     suppressed,
		fanout:         fanout,
		invocations:    invocations,
		handlerErrors:  handlerErrors,
		handlerLatency: handlerLatency,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder backed by the global OTel
// meter provider. If instrument creation fails, a no-op recorder is returned.
//
// Configure the provider before calling:
//
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// NewMetricsRecorderWithProvider returns a MetricsRecorder bound to mp
// instead of the global provider.
func NewMetricsRecorderWithProvider(mp metric.MeterProvider) (MetricsRecorder, error) {
	m, err := newOtelMetrics(mp)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (m *otelMetrics) RecordSubscribe(ctx context.Context, name string) {
	m.subscriptions.Add(ctx, 1, metric.WithAttributes(attribute.String("event", name)))
}

func (m *otelMetrics) RecordTrigger(ctx context.Context, fullName string, subscribers int) {
	attrs := metric.WithAttributes(attribute.String("event", fullName))
	m.triggered.Add(ctx, 1, attrs)
	m.fanout.Record(ctx, int64(subscribers), attrs)
}

func (m *otelMetrics) RecordSuppressed(ctx context.Context, fullName string) {
	m.suppressed.Add(ctx, 1, metric.WithAttributes(attribute.String("event", fullName)))
}

func (m *otelMetrics) RecordHandler(ctx context.Context, fullName string, duration time.Duration, err error) {
	attrs := metric.WithAttributes(attribute.String("event", fullName))
	m.invocations.Add(ctx, 1, attrs)
	m.handlerLatency.Record(ctx, float64(duration.Microseconds())/1000, attrs)
	if err != nil {
		m.handlerErrors.Add(ctx, 1, attrs)
	}
}
