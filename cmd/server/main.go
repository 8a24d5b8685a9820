package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tbeaudouin05/stripe-checkout/api/bootstrap"
	"github.com/tbeaudouin05/stripe-checkout/api/config"
	"github.com/tbeaudouin05/stripe-checkout/api/router"
	grpcserver "github.com/tbeaudouin05/stripe-checkout/api/services/stripe/grpc"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// A failed bootstrap still serves: API routes answer 503 and health reports NOT_SERVING.
	if err := bootstrap.Ensure(); err != nil {
		slog.Error("bootstrap failed", "err", err)
	}
	cfg := config.AppConfig
	if cfg == nil {
		cfg = &config.Config{HTTPPort: config.DefaultHTTPPort, GRPCPort: config.DefaultGRPCPort}
	}

	srv := grpcserver.New(bootstrap.GetStripeService())
	httpServer := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router.NewRouter(srv),
		ReadHeaderTimeout: 10 * time.Second,
	}
	grpcServer := srv.NewGRPCServer()

	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		slog.Error("failed to listen for gRPC", "port", cfg.GRPCPort, "err", err)
		os.Exit(1)
	}

	errCh := make(chan error, 2)
	go func() {
		slog.Info("gRPC server listening", "port", cfg.GRPCPort)
		errCh <- grpcServer.Serve(lis)
	}()
	go func() {
		slog.Info("HTTP server listening", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
		slog.Info("shutting down")
	case err := <-errCh:
		slog.Error("server stopped unexpectedly", "err", err)
	}

	srv.Shutdown()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP shutdown failed", "err", err)
	}
	grpcServer.GracefulStop()
}
