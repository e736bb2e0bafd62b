package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	cfg "gitlab.com/phone-carrier/carrier-lookup/internal/config"
)

func newServer(config cfg.Server, handler http.Handler) *http.Server {
	return &http.Server{
		Handler:           handler,
		ReadTimeout:       config.ReadTimeout,
		ReadHeaderTimeout: config.ReadHeaderTimeout,
		WriteTimeout:      config.WriteTimeout,
	}
}

// listenAndServe blocks until the server fails or ctx is done, in which case
// in-flight requests get shutdownTimeout to complete
func listenAndServe(ctx context.Context, server *http.Server, addr string, shutdownTimeout time.Duration) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	log.WithFields(log.Fields{
		"listener": l.Addr().String(),
	}).Debug("Set up listener")

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(l)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		log.WithField("listener", l.Addr().String()).Info("Shutting down listener")

		return server.Shutdown(shutdownCtx)
	}
}
