package logutil

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type (
	key byte
)

var (
	loggerKey = key(1)
)

func WithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

func GetOrDefault(ctx context.Context) zerolog.Logger {
	v := ctx.Value(loggerKey)
	if v == nil {
		return log.Logger
	}
	return v.(zerolog.Logger)
}

// WithRequest enriches the request context with a logger carrying the
// method and path, so store-level errors can be correlated with the
// route that triggered them.
func WithRequest(r *http.Request) context.Context {
	ctx := r.Context()
	logger := GetOrDefault(ctx).With().
		Str("http.method", r.Method).
		Str("http.path", r.URL.Path).
		Logger()
	return WithLogger(ctx, logger)
}
