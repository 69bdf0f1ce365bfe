package provider

import (
	"github.com/amirasaad/onramp/pkg/provider/identity"
	"github.com/amirasaad/onramp/pkg/provider/onramp"
)

// OnRamp
type (
	OnRamp              = onramp.OnRamp
	CustomerStore       = onramp.CustomerStore
	ProviderInput       = onramp.ProviderInput
	ExistingCustomer    = onramp.ExistingCustomer
	NewCustomer         = onramp.NewCustomer
	DepositParams       = onramp.DepositParams
	CryptoDepositParams = onramp.CryptoDepositParams
	OnboardingParams    = onramp.OnboardingParams
)

// Identity
type (
	Identity         = identity.Identity
	IdentityAccount  = identity.Account
	IdentityDocument = identity.Document
)
