package ramp

import "github.com/shopspring/decimal"

// ProviderStatus is the canonical onboarding state every provider is normalized into.
type ProviderStatus string

const (
	StatusNotStarted         ProviderStatus = "NOT_STARTED"
	StatusOnboarding         ProviderStatus = "ONBOARDING"
	StatusActive             ProviderStatus = "ACTIVE"
	StatusNotAvailable       ProviderStatus = "NOT_AVAILABLE"
	StatusMissingInformation ProviderStatus = "MISSING_INFORMATION"
)

// Limits are the deposit/withdraw ceilings reported by a provider for a user.
type Limits struct {
	Currency string          `json:"currency"`
	Deposit  decimal.Decimal `json:"deposit"`
	Withdraw decimal.Decimal `json:"withdraw"`
}

// ProviderInfo is the canonical answer to "what can this user do with this provider".
// It is computed on every call and never cached.
type ProviderInfo struct {
	Status           ProviderStatus `json:"status"`
	Currencies       []string       `json:"currencies"`
	CryptoCurrencies []string       `json:"cryptoCurrencies"`
	Limits           *Limits        `json:"limits,omitempty"`
	PendingTasks     []string       `json:"pendingTasks,omitempty"`
	TosLink          string         `json:"tosLink,omitempty"`
}

// NotAvailable returns the terminal NOT_AVAILABLE answer with empty currency lists.
func NotAvailable() *ProviderInfo {
	return &ProviderInfo{
		Status:           StatusNotAvailable,
		Currencies:       []string{},
		CryptoCurrencies: []string{},
	}
}

// HasCurrency reports whether currency is part of the available fiat list.
func (p *ProviderInfo) HasCurrency(currency string) bool {
	for _, c := range p.Currencies {
		if c == currency {
			return true
		}
	}
	return false
}
