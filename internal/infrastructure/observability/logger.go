package observability

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"
)

// InitLogger configures the global zerolog logger. Development gets a console
// writer; everything else emits JSON with caller information.
func InitLogger(serviceName, env string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	var logger zerolog.Logger
	if env == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	} else {
		logger = zerolog.New(os.Stdout)
	}

	ctxLogger := logger.With().Timestamp().Str("service", serviceName)
	if env != "development" {
		ctxLogger = ctxLogger.Caller()
	}
	log.Logger = ctxLogger.Logger()
}

// LoggerFromContext returns a request-scoped logger carrying the active trace
// and span ids, so request logs can be joined with traces. Without a valid
// span in the context it falls back to the global logger.
func LoggerFromContext(ctx context.Context) *zerolog.Logger {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return &log.Logger
	}

	logger := log.With().
		Str("trace_id", sc.TraceID().String()).
		Str("span_id", sc.SpanID().String()).
		Logger()
	return &logger
}
