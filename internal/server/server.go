package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ErrShutdownTimeout means in-flight requests did not drain in time and the
// remaining connections were closed forcibly.
var ErrShutdownTimeout = errors.New("server: graceful shutdown timed out")

type Options struct {
	ShutdownTimeout time.Duration
	Log             *zap.Logger
}

// Serve listens on addr until ctx is cancelled, then drains.
func Serve(ctx context.Context, addr string, handler http.Handler, opts Options) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return ServeListener(ctx, ln, handler, opts)
}

func ServeListener(ctx context.Context, ln net.Listener, handler http.Handler, opts Options) error {
	log := opts.Log.With(zap.String("server.addr", ln.Addr().String()))

	srv := &http.Server{
		Handler:           handler,
		ReadTimeout:       time.Minute,
		WriteTimeout:      time.Minute,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("starting HTTP server")
		err := srv.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		serveErr <- err
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	log.Info("initiating shutdown", zap.Duration("timeout", opts.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), opts.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed, closing connections", zap.Error(err))
		_ = srv.Close()
		<-serveErr
		return fmt.Errorf("%w: %v", ErrShutdownTimeout, err)
	}

	log.Info("shutdown completed")
	return <-serveErr
}
