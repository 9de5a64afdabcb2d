// Package httpserver runs an http.Server bound to a context lifetime.
package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/authkeep/authkeep/internal/logging"
)

const shutdownGrace = 10 * time.Second

// Serve listens on bind and serves handler until ctx is cancelled, then shuts
// down gracefully. It returns the listen error, the shutdown error, or nil.
//
// The write timeout also bounds the deliberately slow password hashing a
// single request can trigger.
func Serve(ctx context.Context, bind string, handler http.Handler, log logging.Logger) error {
	server := &http.Server{
		Addr:              bind,
		Handler:           handler,
		ReadTimeout:       time.Minute,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      time.Minute,
		IdleTimeout:       5 * time.Minute,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", "address", bind)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	log.Info(ctx, "stopping HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info(ctx, "shutdown completed")
	return <-serveErr
}
