package onramp

import "github.com/amirasaad/onramp/pkg/ramp"

// ProviderInput is either an ExistingCustomer or a NewCustomer.
type ProviderInput interface {
	providerInput()
}

// ExistingCustomer asks about a user that already has a provider customer.
type ExistingCustomer struct {
	UserID     string
	CustomerID string
	ChainID    int64
}

// NewCustomer asks about a user that has not been onboarded yet. Country is an
// optional ISO alpha-2 hint; RedirectURI is embedded into generated terms links.
type NewCustomer struct {
	UserID       string
	PersonaScope string
	Country      string
	RedirectURI  string
	ChainID      int64
}

func (ExistingCustomer) providerInput() {}

func (NewCustomer) providerInput() {}

// DepositParams selects a fiat deposit instrument.
type DepositParams struct {
	ChainID        int64  `validate:"required"`
	Currency       string `validate:"required,len=3"`
	AccountAddress string `validate:"required"`
	CustomerID     string `validate:"required"`
}

// CryptoDepositParams selects a crypto deposit instrument.
type CryptoDepositParams struct {
	ChainID        int64        `validate:"required"`
	CryptoCurrency string       `validate:"required"`
	Network        ramp.Network `validate:"required"`
	AccountAddress string       `validate:"required"`
	CustomerID     string       `validate:"required"`
}

// OnboardingParams drives provider customer creation. CustomerID is the id already
// stored for the user, if any. SignedAgreementID is the terms-of-service acceptance
// returned to the redirect of a generated terms link.
type OnboardingParams struct {
	UserID            string `validate:"required"`
	CustomerID        string
	PersonaScope      string
	SignedAgreementID string
}
