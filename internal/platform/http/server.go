package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"coindesk/internal/config"

	"github.com/sirupsen/logrus"
)

// Start serves handler on cfg.Port until ctx is canceled, then drains in-flight
// requests for at most the configured shutdown timeout.
func Start(ctx context.Context, cfg config.HTTPServer, handler http.Handler) error {
	listener, err := net.Listen("tcp", ":"+cfg.Port)
	if err != nil {
		return fmt.Errorf("failed to listen on port %s: %w", cfg.Port, err)
	}
	return serve(ctx, cfg, handler, listener)
}

func serve(ctx context.Context, cfg config.HTTPServer, handler http.Handler, listener net.Listener) error {
	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout(),
	}
	logrus.Infof("✅ HTTP server listening on %s", listener.Addr())

	errCh := make(chan error, 1)
	go func() {
		if serveErr := server.Serve(listener); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to serve http: %w", serveErr)
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
		defer cancel()
		if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
			return fmt.Errorf("failed to shut down http server: %w", shutdownErr)
		}
		logrus.Info("HTTP server stopped")
		return nil
	case serveErr := <-errCh:
		return serveErr
	}
}
