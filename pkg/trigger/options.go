package trigger

import (
	"log/slog"

	"github.com/randalmurphal/trigger/pkg/trigger/observability"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// clientConfig holds construction settings for a Client.
type clientConfig struct {
	name           string
	enabled        bool
	logger         *slog.Logger
	metricsEnabled bool
	meterProvider  metric.MeterProvider
	metrics        observability.MetricsRecorder
	tracingEnabled bool
	tracerProvider trace.TracerProvider
	spans          observability.SpanManager
	middleware     []PublishMiddleware
}

func defaultClientConfig() clientConfig {
	return clientConfig{
		enabled: true,
	}
}

// Option configures a Client.
type Option func(*clientConfig)

// WithName labels the client in logs.
func WithName(name string) Option {
	return func(c *clientConfig) {
		c.name = name
	}
}

// WithEnabled sets the initial state of the enable gate.
// Default: true
func WithEnabled(enabled bool) Option {
	return func(c *clientConfig) {
		c.enabled = enabled
	}
}

// WithLogger sets the structured logger. A nil logger disables logging.
// Default: nil
func WithLogger(logger *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithMetrics enables OpenTelemetry metrics on the global meter provider.
// Default: false
func WithMetrics(enabled bool) Option {
	return func(c *clientConfig) {
		c.metricsEnabled = enabled
	}
}

// WithMeterProvider enables metrics on mp instead of the global provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *clientConfig) {
		c.metricsEnabled = true
		c.meterProvider = mp
	}
}

// WithMetricsRecorder installs a custom recorder. It takes precedence over
// WithMetrics and WithMeterProvider.
func WithMetricsRecorder(m observability.MetricsRecorder) Option {
	return func(c *clientConfig) {
		c.metrics = m
	}
}

// WithTracing enables OpenTelemetry spans on the global tracer provider.
// Default: false
func WithTracing(enabled bool) Option {
	return func(c *clientConfig) {
		c.tracingEnabled = enabled
	}
}

// WithTracerProvider enables tracing on tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *clientConfig) {
		c.tracingEnabled = true
		c.tracerProvider = tp
	}
}

// WithSpanManager installs a custom span manager. It takes precedence over
// WithTracing and WithTracerProvider.
func WithSpanManager(sm observability.SpanManager) Option {
	return func(c *clientConfig) {
		c.spans = sm
	}
}

// WithPublishMiddleware wraps Publish. Middleware runs in the order given,
// the first one outermost, and Trigger runs last.
func WithPublishMiddleware(mw ...PublishMiddleware) Option {
	return func(c *clientConfig) {
		c.middleware = append(c.middleware, mw...)
	}
}

func (c *clientConfig) resolveMetrics() observability.MetricsRecorder {
	if c.metrics != nil {
		return c.metrics
	}
	if !c.metricsEnabled {
		return observability.NoopMetrics{}
	}
	if c.meterProvider == nil {
		return observability.NewMetricsRecorder()
	}
	m, err := observability.NewMetricsRecorderWithProvider(c.meterProvider)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("metrics initialization failed, using no-op recorder",
				slog.String("error", err.Error()))
		}
		return observability.NoopMetrics{}
	}
	return m
}

func (c *clientConfig) resolveSpans() observability.SpanManager {
	if c.spans != nil {
		return c.spans
	}
	if !c.tracingEnabled {
		return observability.NoopSpanManager{}
	}
	if c.tracerProvider == nil {
		return observability.NewSpanManager()
	}
	return observability.NewSpanManagerWithProvider(c.tracerProvider)
}
