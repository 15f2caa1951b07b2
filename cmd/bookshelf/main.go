package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dreamware/bookshelf/internal/api"
	"github.com/dreamware/bookshelf/internal/config"
	"github.com/dreamware/bookshelf/internal/storage"
	"github.com/dreamware/bookshelf/internal/tracing"
)

const (
	serviceName    = "bookshelf"
	serviceVersion = "0.1.0"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
	logger, err := cfg.NewLogger(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, nil); err != nil {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}
}

// run serves the API until ctx is cancelled. ready, when non-nil, receives the
// bound address once the listener is open.
func run(ctx context.Context, cfg config.Config, logger *slog.Logger, ready func(addr string)) error {
	if cfg.TraceOutput != "" {
		if err := tracing.Init(serviceName, serviceVersion, cfg.TraceOutput); err != nil {
			return fmt.Errorf("init tracing: %w", err)
		}
		defer func() {
			if err := tracing.Shutdown(context.Background()); err != nil {
				logger.Warn("tracing shutdown", "err", err)
			}
		}()
	}

	store := storage.NewMemoryStore()
	srv := api.New(store, logger)

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Addr, err)
	}

	httpSrv := &http.Server{
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("back-end started", "addr", ln.Addr().String())
		errCh <- httpSrv.Serve(ln)
	}()
	if ready != nil {
		ready(ln.Addr().String())
	}

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
