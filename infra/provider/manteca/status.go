package manteca

import (
	"context"
	"fmt"
	"strings"

	"github.com/amirasaad/onramp/pkg/observability"
	"github.com/amirasaad/onramp/pkg/provider/onramp"
	"github.com/amirasaad/onramp/pkg/ramp"
	"github.com/shopspring/decimal"
)

// GetProvider reports the canonical status of a user at Manteca. Users are looked up
// by our user id, which is their Manteca external id.
func (p *Provider) GetProvider(ctx context.Context, input onramp.ProviderInput) (*ramp.ProviderInfo, error) {
	var userID, country string
	var chainID int64
	switch in := input.(type) {
	case onramp.ExistingCustomer:
		userID, chainID = in.CustomerID, in.ChainID
		if userID == "" {
			userID = in.UserID
		}
	case onramp.NewCustomer:
		userID, country, chainID = in.UserID, in.Country, in.ChainID
	default:
		return nil, fmt.Errorf("manteca: unsupported provider input %T", input)
	}

	if !p.supportedChain(ctx, chainID) {
		return ramp.NotAvailable(), nil
	}
	user, err := p.api.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return &ramp.ProviderInfo{
			Status:           ramp.StatusNotStarted,
			Currencies:       CountryCurrencies(country),
			CryptoCurrencies: []string{},
		}, nil
	}
	return p.userInfo(ctx, user), nil
}

func (p *Provider) userInfo(ctx context.Context, user *User) *ramp.ProviderInfo {
	switch user.Status {
	case UserActive:
		return &ramp.ProviderInfo{
			Status:           ramp.StatusActive,
			Currencies:       p.userCurrencies(ctx, user),
			CryptoCurrencies: []string{},
			Limits:           p.limits(ctx, user),
		}
	case UserInactive:
		return ramp.NotAvailable()
	}

	status := ramp.StatusOnboarding
	if user.HasPendingRequired() {
		status = ramp.StatusNotStarted
	}
	return &ramp.ProviderInfo{
		Status:           status,
		Currencies:       p.userCurrencies(ctx, user),
		CryptoCurrencies: []string{},
		PendingTasks:     user.PendingTasks(),
	}
}

func (p *Provider) userCurrencies(ctx context.Context, user *User) []string {
	currencies := ExchangeCurrencies(user.Exchange)
	if len(currencies) == 0 {
		observability.Warn(ctx, p.reporter, observability.EventUnsupportedExchange,
			"user_id", user.NumberID,
			"exchange", user.Exchange,
		)
	}
	return currencies
}

// limits is best effort: any failure is reported and the user stays ACTIVE without
// limits.
func (p *Provider) limits(ctx context.Context, user *User) *ramp.Limits {
	currencies := ExchangeCurrencies(user.Exchange)
	if len(currencies) == 0 {
		return nil
	}
	raw, err := p.api.GetLimits(ctx, user.NumberID)
	if err != nil {
		observability.Warn(ctx, p.reporter, observability.EventLimitsUnavailable,
			"user_id", user.NumberID,
			"error", err.Error(),
		)
		return nil
	}

	limits := &ramp.Limits{Currency: currencies[0]}
	found := false
	for _, l := range raw {
		if l.Exchange != "" && !strings.EqualFold(l.Exchange, user.Exchange) {
			continue
		}
		amount, err := decimal.NewFromString(l.Available)
		if err != nil {
			continue
		}
		switch strings.ToUpper(l.Type) {
		case LimitDeposit:
			limits.Deposit, found = amount, true
		case LimitWithdraw:
			limits.Withdraw, found = amount, true
		}
	}
	if !found {
		observability.Warn(ctx, p.reporter, observability.EventLimitsUnavailable,
			"user_id", user.NumberID,
			"error", "no usable limits",
		)
		return nil
	}
	return limits
}
