package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/allisson/fieldvault/internal/app"
	"github.com/allisson/fieldvault/internal/config"
)

// server is the lifecycle shared by the API and metrics servers.
type server interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// namedServer pairs a server with the name used in error messages.
type namedServer struct {
	name string
	server
}

// RunServer starts the API server, and the metrics server when enabled, and
// blocks until SIGINT/SIGTERM or a server failure. The configuration is
// validated and the passphrase verified before anything listens.
func RunServer(ctx context.Context, version string) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	gin.SetMode(cfg.GetGinMode())

	container := app.NewContainer(cfg)
	logger := container.Logger()
	logger.Info("starting server",
		slog.String("version", version),
		slog.String("passphrase_provider", cfg.PassphraseProvider),
		slog.String("kdf_algorithm", cfg.KDFAlgorithm),
	)
	defer closeContainer(container, logger)

	if err := container.VerifyPassphrase(); err != nil {
		return err
	}

	apiServer, err := container.HTTPServer()
	if err != nil {
		return fmt.Errorf("failed to initialize HTTP server: %w", err)
	}
	servers := []namedServer{{name: "api server", server: apiServer}}

	metricsServer, err := container.MetricsServer()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics server: %w", err)
	}
	if metricsServer != nil {
		servers = append(servers, namedServer{name: "metrics server", server: metricsServer})
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return runServers(ctx, logger, cfg.DBConnMaxLifetime, servers)
}

// runServers starts every server and stops them all when ctx is done or one fails.
func runServers(ctx context.Context, logger *slog.Logger, shutdownTimeout time.Duration, servers []namedServer) error {
	serverErr := make(chan error, len(servers))
	for _, s := range servers {
		go func() {
			if err := s.Start(ctx); err != nil {
				serverErr <- fmt.Errorf("%s error: %w", s.name, err)
			}
		}()
	}

	var errs []error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErr:
		logger.Error("server error, initiating shutdown", slog.Any("error", err))
		errs = append(errs, err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	for _, s := range servers {
		if err := s.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("%s shutdown: %w", s.name, err))
		}
	}

	return errors.Join(errs...)
}
