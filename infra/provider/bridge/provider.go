package bridge

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/amirasaad/onramp/pkg/config"
	"github.com/amirasaad/onramp/pkg/lock"
	"github.com/amirasaad/onramp/pkg/observability"
	"github.com/amirasaad/onramp/pkg/provider/identity"
	"github.com/amirasaad/onramp/pkg/provider/onramp"
	"github.com/amirasaad/onramp/pkg/ramp"
	"github.com/amirasaad/onramp/pkg/upstream"
	"golang.org/x/sync/singleflight"
)

// Deps are the collaborators of the Bridge on-ramp.
type Deps struct {
	Identity  identity.Identity
	Store     onramp.CustomerStore
	Reporter  observability.Reporter
	Locker    lock.Locker
	Documents identity.DocumentFetcher
	Retry     upstream.RetryPolicy
}

// Provider reconciles Bridge customers, endorsements, virtual accounts and
// liquidation addresses into the canonical on-ramp contract.
type Provider struct {
	api       API
	identity  identity.Identity
	store     onramp.CustomerStore
	reporter  observability.Reporter
	locker    lock.Locker
	documents identity.DocumentFetcher
	retry     upstream.RetryPolicy
	cfg       *config.Bridge
	logger    *slog.Logger
	flights   singleflight.Group
}

// New builds a Bridge provider on top of api. The config is validated here so a
// missing key or URL fails at startup rather than on the first request.
func New(api API, cfg *config.Bridge, deps Deps, logger *slog.Logger) (*Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bridge: missing config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if api == nil || deps.Identity == nil || deps.Store == nil || deps.Documents == nil {
		return nil, fmt.Errorf("bridge: api, identity, store and documents are required")
	}
	if deps.Reporter == nil {
		deps.Reporter = observability.NewLogReporter(logger)
	}
	if deps.Locker == nil {
		deps.Locker = lock.NewMemoryLocker()
	}
	if deps.Retry.MaxAttempts == 0 {
		deps.Retry = upstream.DefaultRetryPolicy
	}
	return &Provider{
		api:       api,
		identity:  deps.Identity,
		store:     deps.Store,
		reporter:  deps.Reporter,
		locker:    deps.Locker,
		documents: deps.Documents,
		retry:     deps.Retry,
		cfg:       cfg,
		logger:    logger.With("provider", onramp.ProviderBridge),
	}, nil
}

// NewFromConfig builds the REST client and the provider from cfg.
func NewFromConfig(cfg *config.Bridge, deps Deps, logger *slog.Logger) (*Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bridge: missing config")
	}
	return New(NewClient(cfg, logger), cfg, deps, logger)
}

func (p *Provider) Name() string { return onramp.ProviderBridge }

// settlementRail resolves chainID and reports an unsupported chain as an error event.
func (p *Provider) settlementRail(ctx context.Context, chainID int64) (ramp.SettlementRail, bool) {
	rail, ok := ramp.RailForChain(chainID)
	if !ok {
		observability.Error(ctx, p.reporter, observability.EventUnsupportedChain,
			"provider", onramp.ProviderBridge,
			"chain_id", chainID,
		)
	}
	return rail, ok
}

var _ onramp.OnRamp = (*Provider)(nil)
