package onramp

import (
	"context"

	"github.com/amirasaad/onramp/pkg/ramp"
)

// Provider names, also used as the credential column discriminator.
const (
	ProviderBridge  = "bridge"
	ProviderManteca = "manteca"
)

// OnRamp is the canonical contract every money-movement provider is reconciled into.
type OnRamp interface {
	// Name returns the provider name (ProviderBridge, ProviderManteca).
	Name() string

	// GetProvider reports the user's canonical status and available currencies.
	GetProvider(ctx context.Context, input ProviderInput) (*ramp.ProviderInfo, error)

	// GetDepositDetails finds or creates the fiat deposit instrument for a currency.
	GetDepositDetails(ctx context.Context, params *DepositParams) ([]ramp.DepositDetails, error)

	// GetCryptoDepositDetails finds or creates the crypto deposit instrument for a
	// crypto currency on a given network.
	GetCryptoDepositDetails(
		ctx context.Context,
		params *CryptoDepositParams,
	) ([]ramp.DepositDetails, error)

	// Onboarding creates the provider customer. It is a no-op when one already exists.
	Onboarding(ctx context.Context, params *OnboardingParams) error
}

// CustomerStore persists the single nullable provider customer id per user.
type CustomerStore interface {
	// GetCustomerID returns "" when the user has no customer at provider.
	GetCustomerID(ctx context.Context, userID, provider string) (string, error)

	// SaveCustomerID records the customer id returned by a successful onboarding.
	SaveCustomerID(ctx context.Context, userID, provider, customerID string) error
}
