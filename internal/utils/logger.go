package utils

import (
	"context"

	log "github.com/sirupsen/logrus"
)

type loggerKey struct{}

// WithLogger stores a request-scoped logger in ctx
func WithLogger(ctx context.Context, logger log.FieldLogger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLoggerFromContext returns the request logger, or the standard logger
// outside a request.
func GetLoggerFromContext(ctx context.Context) log.FieldLogger {
	if l, ok := ctx.Value(loggerKey{}).(log.FieldLogger); ok {
		return l
	}
	return log.StandardLogger()
}
