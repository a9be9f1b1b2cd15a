// Package observability provides logging, metrics and tracing helpers for
// trigger clients.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger tags every record from logger with the client name.
func EnrichLogger(logger *slog.Logger, client string) *slog.Logger {
	if logger == nil {
		return nil
	}
	if client == "" {
		return logger
	}
	return logger.With(slog.String("client", client))
}

// LogSubscribe logs a new subscription.
func LogSubscribe(logger *slog.Logger, name, namespace, handler string) {
	if logger == nil {
		return
	}
	logger.Debug("subscriber registered",
		slog.String("event", name),
		slog.String("namespace", namespace),
		slog.String("handler", handler),
	)
}

// LogTrigger logs the start of a dispatch.
func LogTrigger(logger *slog.Logger, eventID, fullName string, subscribers int) {
	if logger == nil {
		return
	}
	logger.Debug("event triggered",
		slog.String("event_id", eventID),
		slog.String("event", fullName),
		slog.Int("subscribers", subscribers),
	)
}

// LogDelivered logs a completed dispatch.
func LogDelivered(logger *slog.Logger, eventID, fullName string, delivered int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("event delivered",
		slog.String("event_id", eventID),
		slog.String("event", fullName),
		slog.Int("delivered", delivered),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogSuppressed logs a trigger dropped by a disabled client.
func LogSuppressed(logger *slog.Logger, rawName string) {
	if logger == nil {
		return
	}
	logger.Debug("event suppressed, client disabled",
		slog.String("event", rawName),
	)
}

// LogHandlerError logs a handler failure that aborted a dispatch.
// index is the handler's position in the dispatch order.
func LogHandlerError(logger *slog.Logger, eventID, fullName string, index int, handler string, err error) {
	if logger == nil {
		return
	}
	logger.Error("subscriber failed",
		slog.String("event_id", eventID),
		slog.String("event", fullName),
		slog.Int("index", index),
		slog.String("handler", handler),
		slog.String("error", err.Error()),
	)
}

// LogStateChange logs an enable or disable of the client gate.
func LogStateChange(logger *slog.Logger, enabled bool) {
	if logger == nil {
		return
	}
	logger.Debug("client state changed",
		slog.Bool("enabled", enabled),
	)
}

// TimedOperation measures the duration of an operation.
// The returned function reports the elapsed time in milliseconds.
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Microseconds()) / 1000
	}
}
