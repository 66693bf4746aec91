package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/taskbox/taskbox/internal/logutil"
)

// DefaultShutdownGrace is how long in-flight requests get to finish
// once the context is cancelled. Services doing database work keep
// the full window; cheaper fronts may pass a shorter one.
const DefaultShutdownGrace = time.Minute

func Serve(ctx context.Context, bind string, handler http.Handler) error {
	return ServeWithGrace(ctx, bind, handler, DefaultShutdownGrace)
}

func ServeWithGrace(ctx context.Context, bind string, handler http.Handler, grace time.Duration) error {
	server := http.Server{
		Handler:           handler,
		Addr:              bind,
		ReadTimeout:       time.Minute,
		WriteTimeout:      time.Minute,
		ReadHeaderTimeout: time.Minute,
		IdleTimeout:       time.Minute * 5,
	}
	err := make(chan error, 1)
	done := make(chan struct{})
	go serveInBackground(ctx, &server, grace, err, done)
	<-done
	return <-err
}

func serveInBackground(ctx context.Context, server *http.Server, grace time.Duration, firstErr chan<- error, done chan<- struct{}) {
	log := logutil.GetOrDefault(ctx).With().Str("server.addr", server.Addr).Logger()
	defer close(done)
	serverCtx, cancel := context.WithCancel(ctx)
	go func() {
		defer cancel()
		defer close(firstErr)
		log.Info().Msg("Starting HTTP server")
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			log.Info().Msg("Server closed")
			// shutdown called,
			// ignore the error
			return
		} else if err != nil {
			select {
			case firstErr <- err:
			default:
			}
			return
		}
	}()
	select {
	case <-serverCtx.Done():
	case <-ctx.Done():
		log.Info().Msg("Initiating shutdown process")
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), grace)
		defer cancelShutdown()
		server.Shutdown(shutdownCtx)
		log.Info().Msg("Shutdown completed")
	}
}
