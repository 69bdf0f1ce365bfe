package bridge

import (
	"context"
	"fmt"
	"net/url"

	"github.com/amirasaad/onramp/pkg/observability"
	"github.com/amirasaad/onramp/pkg/provider/onramp"
	"github.com/amirasaad/onramp/pkg/ramp"
)

// GetProvider reports the canonical status of a user at Bridge.
func (p *Provider) GetProvider(ctx context.Context, input onramp.ProviderInput) (*ramp.ProviderInfo, error) {
	switch in := input.(type) {
	case onramp.ExistingCustomer:
		rail, ok := p.settlementRail(ctx, in.ChainID)
		if !ok {
			return ramp.NotAvailable(), nil
		}
		customer, err := p.api.GetCustomer(ctx, in.CustomerID)
		if err != nil {
			return nil, err
		}
		return p.customerInfo(ctx, customer, rail), nil
	case onramp.NewCustomer:
		rail, ok := p.settlementRail(ctx, in.ChainID)
		if !ok {
			return ramp.NotAvailable(), nil
		}
		return p.newCustomerInfo(ctx, in, rail)
	default:
		return nil, fmt.Errorf("bridge: unsupported provider input %T", input)
	}
}

func (p *Provider) customerInfo(
	ctx context.Context,
	customer *Customer,
	rail ramp.SettlementRail,
) *ramp.ProviderInfo {
	switch customer.Status {
	case CustomerOffboarded, CustomerRejected, CustomerPaused:
		observability.Warn(ctx, p.reporter, observability.EventCustomerUnavailable,
			"customer_id", customer.ID,
			"status", customer.Status,
		)
		return ramp.NotAvailable()
	case CustomerUnderReview, CustomerAwaitingQuestionnaire, CustomerAwaitingUBO,
		CustomerIncomplete, CustomerNotStarted:
		return &ramp.ProviderInfo{
			Status:           ramp.StatusOnboarding,
			Currencies:       DefaultCurrencies(),
			CryptoCurrencies: ramp.CryptoCurrencies(rail),
		}
	case CustomerActive:
		p.reportRequirements(ctx, customer)
		return &ramp.ProviderInfo{
			Status:           ramp.StatusActive,
			Currencies:       AvailableCurrencies(ctx, customer.Endorsements, p.reporter),
			CryptoCurrencies: ramp.CryptoCurrencies(rail),
		}
	default:
		observability.Warn(ctx, p.reporter, observability.EventUnknownCustomerStatus,
			"customer_id", customer.ID,
			"status", customer.Status,
		)
		return ramp.NotAvailable()
	}
}

// reportRequirements surfaces anything Bridge says will be needed later. None of it
// affects the answer.
func (p *Provider) reportRequirements(ctx context.Context, customer *Customer) {
	if len(customer.FutureRequirementsDue) > 0 {
		observability.Warn(ctx, p.reporter, observability.EventFutureRequirementsDue,
			"customer_id", customer.ID,
			"count", len(customer.FutureRequirementsDue),
		)
	}
	if len(customer.RequirementsDue) > 0 {
		observability.Warn(ctx, p.reporter, observability.EventRequirementsDue,
			"customer_id", customer.ID,
			"count", len(customer.RequirementsDue),
		)
	}
	for _, e := range customer.Endorsements {
		if len(e.AdditionalRequirements) > 0 {
			observability.Warn(ctx, p.reporter, observability.EventAdditionalRequirements,
				"customer_id", customer.ID,
				"endorsement", e.Name,
				"requirements", e.AdditionalRequirements,
			)
		}
		if e.Requirements.HasMissing() {
			observability.Warn(ctx, p.reporter, observability.EventMissingRequirements,
				"customer_id", customer.ID,
				"endorsement", e.Name,
				"missing", string(e.Requirements.Missing),
			)
		}
	}
}

func (p *Provider) newCustomerInfo(
	ctx context.Context,
	in onramp.NewCustomer,
	rail ramp.SettlementRail,
) (*ramp.ProviderInfo, error) {
	account, err := p.identity.GetAccount(ctx, in.UserID, in.PersonaScope)
	if err != nil {
		return nil, fmt.Errorf("bridge: failed to get identity account: %w", err)
	}
	r, err := checkReadiness(account)
	if err != nil {
		return nil, err
	}
	if r.status != "" {
		observability.Warn(ctx, p.reporter, observability.EventUnsupportedDocument,
			"user_id", in.UserID,
			"status", r.status,
			"reason", string(r.code),
		)
		return &ramp.ProviderInfo{
			Status:           r.status,
			Currencies:       []string{},
			CryptoCurrencies: []string{},
		}, nil
	}

	tos, err := p.api.CreateTosLink(ctx)
	if err != nil {
		return nil, err
	}
	return &ramp.ProviderInfo{
		Status:           ramp.StatusNotStarted,
		Currencies:       DefaultCurrencies(),
		CryptoCurrencies: ramp.CryptoCurrencies(rail),
		TosLink:          withRedirect(tos.URL, in.RedirectURI),
	}, nil
}

// withRedirect embeds redirect as the redirect_uri query parameter of link.
func withRedirect(link, redirect string) string {
	if redirect == "" || link == "" {
		return link
	}
	u, err := url.Parse(link)
	if err != nil {
		return link
	}
	q := u.Query()
	q.Set("redirect_uri", redirect)
	u.RawQuery = q.Encode()
	return u.String()
}
