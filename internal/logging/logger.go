package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// contextKey is the type for context keys
type contextKey string

const (
	// RequestIDKey is the context key for request IDs
	RequestIDKey contextKey = "request_id"
	// UIDKey is the context key for the authenticated subject
	UIDKey contextKey = "uid"
)

// Config holds logging configuration
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json, text
	Output io.Writer
}

// New creates a zerolog logger with the given configuration
func New(cfg Config) zerolog.Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if cfg.Format == "text" {
		// Pretty console output for development
		return zerolog.New(zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}).
			Level(level).
			With().
			Timestamp().
			Logger()
	}

	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// SetGlobalLogger sets the global logger instance
func SetGlobalLogger(logger zerolog.Logger) {
	log.Logger = logger
}

// WithRequestID stores a request ID on the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// WithUID stores the authenticated subject on the context.
func WithUID(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, UIDKey, uid)
}

// RequestID returns the request ID stored on ctx, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// FromContext returns the global logger enriched with context values
func FromContext(ctx context.Context) *zerolog.Logger {
	logger := log.With()

	if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
		logger = logger.Str("request_id", requestID)
	}
	if uid, ok := ctx.Value(UIDKey).(string); ok && uid != "" {
		logger = logger.Str("uid", uid)
	}

	contextLogger := logger.Logger()
	return &contextLogger
}

// Time logs the duration of an operation when the returned func is deferred.
//
//	defer logging.Time(ctx, "maps.route")(&err)
func Time(ctx context.Context, op string) func(errp *error) {
	start := time.Now()

	return func(errp *error) {
		logger := FromContext(ctx)
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			logger.Warn().Str("op", op).Dur("duration_ms", dur).Err(*errp).Msg("operation failed")
			return
		}
		logger.Debug().Str("op", op).Dur("duration_ms", dur).Msg("operation finished")
	}
}
