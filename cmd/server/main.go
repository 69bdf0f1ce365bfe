package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amirasaad/onramp/infra/initializer"
	"github.com/amirasaad/onramp/pkg/config"
	"github.com/amirasaad/onramp/webapi"
	log "github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
)

const shutdownTimeout = 10 * time.Second

// @title Onramp API
// @version 1.0.0
// @description Fiat on-ramp provider status, deposit instructions and onboarding
// @BasePath /
//
// @securityDefinitions.apikey UserID
// @in header
// @name X-User-ID
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize all dependencies
	deps, err := initializer.InitializeDependencies(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer func() {
		if err := deps.Close(); err != nil {
			deps.Logger.Warn("Failed to release resources", "error", err)
		}
	}()

	app := newApp(cfg, deps)
	addr := serverAddr(cfg.Server)
	deps.Logger.Info("Starting server",
		"env", cfg.Env,
		"address", addr,
		"scheme", cfg.Server.Scheme,
	)

	errCh := make(chan error, 1)
	go func() { errCh <- app.Listen(addr) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	deps.Logger.Info("Shutting down server")
	return app.ShutdownWithTimeout(shutdownTimeout)
}

func newApp(cfg *config.App, deps *initializer.Deps) *fiber.App {
	return webapi.NewApp(webapi.Options{
		Registry:  deps.Registry,
		Store:     deps.Store,
		Logger:    deps.Logger,
		RateLimit: cfg.Server.RateLimit,
	})
}

func serverAddr(s *config.Server) string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
