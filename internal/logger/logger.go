// Package logger provides the structured, environment-aware zap logger
// used across the engine's ambient surfaces (HTTP, job queue, config
// store).
package logger

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type contextKey string

const (
	requestIDKey   contextKey = "request-id"
	roundTripIDKey contextKey = "optimizer-round-trip-id"

	serviceName = "rotacheck"
)

// New builds a SugaredLogger configured for env. If env is empty, it reads
// APP_ENV. Anything other than "development"/"dev" gets the production
// (JSON, info-level) configuration.
func New(env string) (*zap.SugaredLogger, error) {
	if env == "" {
		env = os.Getenv("APP_ENV")
	}

	var config zap.Config
	switch env {
	case "development", "dev":
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.OutputPaths = []string{"stdout"}
		config.ErrorOutputPaths = []string{"stderr"}
	default:
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		config.OutputPaths = []string{"stdout"}
		config.ErrorOutputPaths = []string{"stderr"}
		config.EncoderConfig.CallerKey = "caller"
		config.EncoderConfig.LevelKey = "level"
		config.EncoderConfig.MessageKey = "message"
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		config.InitialFields = map[string]interface{}{"service": serviceName}
	}

	built, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return built.Sugar(), nil
}

// WithRequestID injects a per-request id into ctx for later extraction by
// the Echo middleware and job-queue handlers.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// ExtractRequestID returns the request id stored by WithRequestID, or "".
func ExtractRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// WithRoundTripID injects an id used to track one optimizer round trip
// across the HTTP handler, the asynq task, and the retryablehttp client.
func WithRoundTripID(ctx context.Context, roundTripID string) context.Context {
	return context.WithValue(ctx, roundTripIDKey, roundTripID)
}

// ExtractRoundTripID returns the round-trip id stored by WithRoundTripID,
// or "".
func ExtractRoundTripID(ctx context.Context) string {
	if id, ok := ctx.Value(roundTripIDKey).(string); ok {
		return id
	}
	return ""
}

// LogRequest logs one completed HTTP request, used by the Echo middleware.
func LogRequest(log *zap.SugaredLogger, method, path string, statusCode int, durationMS int64) {
	log.Infow("HTTP request processed",
		"method", method,
		"path", path,
		"status", statusCode,
		"duration_ms", durationMS,
	)
}

// LogOptimizerRoundTrip logs one /generate or /check-feasibility call.
func LogOptimizerRoundTrip(log *zap.SugaredLogger, kind string, durationMS int64, err error) {
	if err != nil {
		log.Errorw("optimizer round trip failed",
			"kind", kind,
			"duration_ms", durationMS,
			"error", err,
		)
		return
	}
	log.Infow("optimizer round trip succeeded",
		"kind", kind,
		"duration_ms", durationMS,
	)
}

// LogStorageDegraded logs a storage-layer failure that the caller is
// falling back from defaults for, rather than treating as fatal.
func LogStorageDegraded(log *zap.SugaredLogger, operation string, err error) {
	log.Errorw("config store degraded, falling back to defaults",
		"operation", operation,
		"error", err,
	)
}
