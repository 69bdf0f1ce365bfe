package manteca

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/amirasaad/onramp/pkg/config"
	"github.com/amirasaad/onramp/pkg/observability"
	"github.com/amirasaad/onramp/pkg/provider/identity"
	"github.com/amirasaad/onramp/pkg/provider/onramp"
	"github.com/amirasaad/onramp/pkg/ramp"
	"github.com/amirasaad/onramp/pkg/upstream"
)

// Deps are the collaborators of the Manteca on-ramp.
type Deps struct {
	Identity  identity.Identity
	Store     onramp.CustomerStore
	Reporter  observability.Reporter
	Documents identity.DocumentFetcher
	Retry     upstream.RetryPolicy
}

// Provider maps Manteca users, exchanges and onboarding tasks onto the canonical
// on-ramp contract.
type Provider struct {
	api       API
	identity  identity.Identity
	store     onramp.CustomerStore
	reporter  observability.Reporter
	documents identity.DocumentFetcher
	retry     upstream.RetryPolicy
	cfg       *config.Manteca
	logger    *slog.Logger
}

func New(api API, cfg *config.Manteca, deps Deps, logger *slog.Logger) (*Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("manteca: missing config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if api == nil || deps.Identity == nil || deps.Store == nil || deps.Documents == nil {
		return nil, fmt.Errorf("manteca: api, identity, store and documents are required")
	}
	if deps.Reporter == nil {
		deps.Reporter = observability.NewLogReporter(logger)
	}
	if deps.Retry.MaxAttempts == 0 {
		deps.Retry = upstream.DefaultRetryPolicy
	}
	return &Provider{
		api:       api,
		identity:  deps.Identity,
		store:     deps.Store,
		reporter:  deps.Reporter,
		documents: deps.Documents,
		retry:     deps.Retry,
		cfg:       cfg,
		logger:    logger.With("provider", onramp.ProviderManteca),
	}, nil
}

// NewFromConfig builds the REST client and the provider from cfg.
func NewFromConfig(cfg *config.Manteca, deps Deps, logger *slog.Logger) (*Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("manteca: missing config")
	}
	return New(NewClient(cfg, logger), cfg, deps, logger)
}

func (p *Provider) Name() string { return onramp.ProviderManteca }

func (p *Provider) supportedChain(ctx context.Context, chainID int64) bool {
	if _, ok := ramp.RailForChain(chainID); !ok {
		observability.Error(ctx, p.reporter, observability.EventUnsupportedChain,
			"provider", onramp.ProviderManteca,
			"chain_id", chainID,
		)
		return false
	}
	return true
}

var _ onramp.OnRamp = (*Provider)(nil)
