package onramp

import "github.com/amirasaad/onramp/pkg/ramp"

// DepositRequest asks for fiat deposit instructions.
type DepositRequest struct {
	ChainID        int64  `json:"chain_id" validate:"required"`
	Currency       string `json:"currency" validate:"required,len=3"`
	AccountAddress string `json:"account_address" validate:"required"`
}

// CryptoDepositRequest asks for a crypto deposit address.
type CryptoDepositRequest struct {
	ChainID        int64  `json:"chain_id" validate:"required"`
	CryptoCurrency string `json:"crypto_currency" validate:"required"`
	Network        string `json:"network" validate:"required,oneof=TRON SOLANA STELLAR"`
	AccountAddress string `json:"account_address" validate:"required"`
}

// OnboardingRequest starts onboarding with a provider.
type OnboardingRequest struct {
	PersonaScope      string `json:"persona_scope"`
	SignedAgreementID string `json:"signed_agreement_id"`
}

// ProviderResponse is a ProviderInfo tagged with the provider name.
type ProviderResponse struct {
	Provider string `json:"provider"`
	*ramp.ProviderInfo
}
