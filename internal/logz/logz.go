package logz

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Init replaces the global zap logger. Unknown levels fall back to info.
func Init(level, service string) {
	lvl := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		logger = zap.NewNop()
	}
	zap.ReplaceGlobals(logger.With(zap.String("service", service)))
}

func NewLogger() *zap.Logger {
	return zap.L()
}

func Drop() {
	_ = zap.L().Sync()
}

// WithTrace attaches the request id and the active span ids to l.
func WithTrace(ctx context.Context, l *zap.Logger, requestID string) *zap.Logger {
	if l == nil {
		l = zap.L()
	}
	fields := []zap.Field{}
	if requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}

	sc := trace.SpanContextFromContext(ctx)
	if sc.IsValid() {
		fields = append(fields,
			zap.String("trace_id", sc.TraceID().String()),
			zap.String("span_id", sc.SpanID().String()),
		)
	}

	return l.With(fields...)
}
