package initializer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/amirasaad/onramp/infra"
	"github.com/amirasaad/onramp/infra/observability"
	"github.com/amirasaad/onramp/infra/provider/bridge"
	"github.com/amirasaad/onramp/infra/provider/manteca"
	"github.com/amirasaad/onramp/infra/provider/persona"
	"github.com/amirasaad/onramp/infra/redislock"
	"github.com/amirasaad/onramp/infra/repository/credential"
	"github.com/amirasaad/onramp/pkg/config"
	"github.com/amirasaad/onramp/pkg/lock"
	pkgobs "github.com/amirasaad/onramp/pkg/observability"
	"github.com/amirasaad/onramp/pkg/provider"
	"github.com/amirasaad/onramp/pkg/provider/onramp"
)

// Deps is everything the HTTP layer needs.
type Deps struct {
	Logger   *slog.Logger
	Registry *provider.Registry
	Store    onramp.CustomerStore
	Reporter pkgobs.Reporter
	Locker   lock.Locker

	closers []func() error
}

// Close releases network resources in reverse creation order.
func (d *Deps) Close() error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		errs = append(errs, d.closers[i]())
	}
	return errors.Join(errs...)
}

// InitializeDependencies initializes all the application dependencies
func InitializeDependencies(ctx context.Context, cfg *config.App) (_ *Deps, err error) {
	logger := SetupLogger(cfg.Log)
	deps := &Deps{Logger: logger}
	defer func() {
		if err != nil {
			_ = deps.Close()
		}
	}()

	// Initialize database
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, err
	}
	if err := credential.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate credentials: %w", err)
	}
	deps.Store = credential.New(db)

	deps.Reporter = initReporter(cfg, deps, logger)
	deps.Locker = initLocker(ctx, cfg, deps, logger)

	identity, err := persona.NewClient(cfg.Persona, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize persona client: %w", err)
	}
	retry := persona.RetryPolicy(cfg.Persona)

	bridgeProvider, err := bridge.NewFromConfig(cfg.Bridge, bridge.Deps{
		Identity:  identity,
		Store:     deps.Store,
		Reporter:  deps.Reporter,
		Locker:    deps.Locker,
		Documents: identity,
		Retry:     retry,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize bridge provider: %w", err)
	}

	mantecaProvider, err := manteca.NewFromConfig(cfg.Manteca, manteca.Deps{
		Identity:  identity,
		Store:     deps.Store,
		Reporter:  deps.Reporter,
		Documents: identity,
		Retry:     retry,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize manteca provider: %w", err)
	}

	deps.Registry = provider.NewRegistry(bridgeProvider, mantecaProvider)
	logger.Info("On-ramp providers registered", "providers", deps.Registry.Names())
	return deps, nil
}

// initReporter always logs anomalies and also publishes them to Kafka when brokers
// are configured.
func initReporter(cfg *config.App, deps *Deps, logger *slog.Logger) pkgobs.Reporter {
	reporter := pkgobs.NewLogReporter(logger)
	if cfg.Kafka == nil || cfg.Kafka.Brokers == "" {
		return reporter
	}
	kafkaReporter, err := observability.NewKafkaReporter(cfg.Kafka, logger)
	if err != nil {
		logger.Warn("Kafka reporter unavailable; logging anomalies only", "error", err)
		return reporter
	}
	deps.closers = append(deps.closers, kafkaReporter.Close)
	return pkgobs.Multi(reporter, kafkaReporter)
}

// initLocker prefers Redis so replicas serialize instrument creation; without it
// the lock is per process.
func initLocker(ctx context.Context, cfg *config.App, deps *Deps, logger *slog.Logger) lock.Locker {
	if cfg.Redis == nil || cfg.Redis.URL == "" {
		logger.Info("Redis not configured; using in-memory locks")
		return lock.NewMemoryLocker()
	}
	client, err := redislock.NewRedisClient(ctx, cfg.Redis.URL)
	if err != nil {
		logger.Warn("Redis unavailable; falling back to in-memory locks", "error", err)
		return lock.NewMemoryLocker()
	}
	deps.closers = append(deps.closers, client.Close)
	return redislock.NewRedisLocker(client, cfg.Redis, logger)
}
