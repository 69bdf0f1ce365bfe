package bridge

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"

	"github.com/amirasaad/onramp/pkg/observability"
	"github.com/amirasaad/onramp/pkg/provider/identity"
	"github.com/amirasaad/onramp/pkg/provider/onramp"
	"github.com/amirasaad/onramp/pkg/ramp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func existing(chainID int64) onramp.ExistingCustomer {
	return onramp.ExistingCustomer{UserID: "user_1", CustomerID: testCustomerID, ChainID: chainID}
}

func TestGetProvider_UnavailableStatusesIgnoreEndorsements(t *testing.T) {
	for _, status := range []string{CustomerOffboarded, CustomerRejected, CustomerPaused} {
		t.Run(status, func(t *testing.T) {
			env := newTestEnv(t)
			env.api.customer = activeCustomer(approved(EndorsementBase), approved(EndorsementSEPA))
			env.api.customer.Status = status

			info, err := env.provider.GetProvider(context.Background(), existing(celoChainID))
			require.NoError(t, err)
			assert.Equal(t, ramp.StatusNotAvailable, info.Status)
			assert.Empty(t, info.Currencies)
			assert.Empty(t, info.CryptoCurrencies)
			assert.Equal(t, 1, env.recorder.Count(observability.EventCustomerUnavailable))
		})
	}
}

func TestGetProvider_OnboardingStatuses(t *testing.T) {
	statuses := []string{
		CustomerUnderReview, CustomerAwaitingQuestionnaire, CustomerAwaitingUBO,
		CustomerIncomplete, CustomerNotStarted,
	}
	for _, status := range statuses {
		t.Run(status, func(t *testing.T) {
			env := newTestEnv(t)
			env.api.customer = &Customer{
				ID:           testCustomerID,
				Status:       status,
				Endorsements: []Endorsement{endorsement(EndorsementBase, EndorsementRevoked)},
			}

			info, err := env.provider.GetProvider(context.Background(), existing(celoChainID))
			require.NoError(t, err)
			assert.Equal(t, ramp.StatusOnboarding, info.Status)
			assert.Equal(t, []string{"USD", "EUR"}, info.Currencies)
			assert.Equal(t, []string{ramp.USDC, ramp.USDT}, info.CryptoCurrencies)
		})
	}
}

func TestGetProvider_ActiveCurrenciesAreOrderedPrefix(t *testing.T) {
	tests := []struct {
		name         string
		endorsements []Endorsement
		want         []string
		warnings     int
	}{
		{
			name:         "all approved",
			endorsements: []Endorsement{approved(EndorsementBase), approved(EndorsementSEPA)},
			want:         []string{"USD", "EUR"},
		},
		{
			name: "incomplete caps the list",
			endorsements: []Endorsement{
				approved(EndorsementBase),
				endorsement(EndorsementSEPA, EndorsementIncomplete),
			},
			want:     []string{"USD"},
			warnings: 1,
		},
		{
			name: "approved after revoked is not reported",
			endorsements: []Endorsement{
				approved(EndorsementBase),
				endorsement(EndorsementSPEI, EndorsementRevoked),
				approved(EndorsementPIX),
			},
			want:     []string{"USD"},
			warnings: 1,
		},
		{
			name: "first endorsement not approved",
			endorsements: []Endorsement{
				endorsement(EndorsementBase, EndorsementIncomplete),
				approved(EndorsementSEPA),
			},
			want:     []string{},
			warnings: 1,
		},
		{
			name: "every rail",
			endorsements: []Endorsement{
				approved(EndorsementBase), approved(EndorsementSEPA), approved(EndorsementSPEI),
				approved(EndorsementPIX), approved(EndorsementFasterPayments),
			},
			want: []string{"USD", "EUR", "MXN", "BRL", "GBP"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.api.customer = activeCustomer(tt.endorsements...)

			info, err := env.provider.GetProvider(context.Background(), existing(baseChainID))
			require.NoError(t, err)
			assert.Equal(t, ramp.StatusActive, info.Status)
			assert.Equal(t, tt.want, info.Currencies)
			assert.Equal(t, []string{ramp.USDC}, info.CryptoCurrencies)
			assert.Equal(t, tt.warnings, env.recorder.Count(observability.EventEndorsementNotApproved))
		})
	}
}

func TestGetProvider_ActiveReportsRequirementsWithoutFailing(t *testing.T) {
	env := newTestEnv(t)
	customer := activeCustomer(
		Endorsement{
			Name:                   EndorsementBase,
			Status:                 EndorsementApproved,
			AdditionalRequirements: []string{"kyc_with_proof_of_address"},
		},
		Endorsement{
			Name:         EndorsementSEPA,
			Status:       EndorsementApproved,
			Requirements: Requirements{Missing: json.RawMessage(`{"all_of":["proof_of_address"]}`)},
		},
	)
	customer.FutureRequirementsDue = []json.RawMessage{json.RawMessage(`"id_verification"`)}
	customer.RequirementsDue = []json.RawMessage{json.RawMessage(`"external_account"`)}
	env.api.customer = customer

	info, err := env.provider.GetProvider(context.Background(), existing(celoChainID))
	require.NoError(t, err)
	assert.Equal(t, ramp.StatusActive, info.Status)
	assert.Equal(t, []string{"USD", "EUR"}, info.Currencies)

	assert.Equal(t, 1, env.recorder.Count(observability.EventFutureRequirementsDue))
	assert.Equal(t, 1, env.recorder.Count(observability.EventRequirementsDue))
	assert.Equal(t, 1, env.recorder.Count(observability.EventAdditionalRequirements))
	assert.Equal(t, 1, env.recorder.Count(observability.EventMissingRequirements))
}

func TestGetProvider_UnknownStatus(t *testing.T) {
	env := newTestEnv(t)
	env.api.customer = &Customer{ID: testCustomerID, Status: "frozen"}

	info, err := env.provider.GetProvider(context.Background(), existing(celoChainID))
	require.NoError(t, err)
	assert.Equal(t, ramp.StatusNotAvailable, info.Status)
	assert.Equal(t, 1, env.recorder.Count(observability.EventUnknownCustomerStatus))
}

func TestGetProvider_UnsupportedChainShortCircuits(t *testing.T) {
	env := newTestEnv(t)
	env.api.customer = activeCustomer(approved(EndorsementBase))

	info, err := env.provider.GetProvider(context.Background(), existing(999))
	require.NoError(t, err)
	assert.Equal(t, ramp.StatusNotAvailable, info.Status)
	assert.Empty(t, info.Currencies)
	assert.Empty(t, info.CryptoCurrencies)
	assert.Zero(t, env.api.customerGets)

	events := env.recorder.Events()
	require.Len(t, events, 1)
	assert.Equal(t, observability.LevelError, events[0].Level)
	assert.Equal(t, observability.EventUnsupportedChain, events[0].Event)
}

func TestGetProvider_UpstreamFailurePropagates(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.provider.GetProvider(context.Background(), existing(celoChainID))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bridge404")
}

func verifiedAccount(country string) *identity.Account {
	return &identity.Account{
		ID:          "act_1",
		CountryCode: country,
		FirstName:   "Jane",
		LastName:    "Doe",
		Email:       "jane@example.com",
		Birthdate:   "1990-01-31",
		Address: identity.Address{
			Street1:    "Main St 1",
			City:       "Berlin",
			PostalCode: "10115",
			Country:    country,
		},
		Documents: []identity.DocumentRef{{
			ID:             "doc_1",
			Type:           identity.DocumentPassport,
			IssuingCountry: country,
			Number:         "X1234567",
		}},
	}
}

func newCustomer(redirect string) onramp.NewCustomer {
	return onramp.NewCustomer{UserID: "user_1", PersonaScope: "scope", RedirectURI: redirect, ChainID: celoChainID}
}

func TestGetProvider_NewCustomer(t *testing.T) {
	noDocs := verifiedAccount("DE")
	noDocs.Documents = nil
	residence := verifiedAccount("DE")
	residence.Documents[0].Type = identity.DocumentResidencePermit
	badCountry := verifiedAccount("XX")
	usNoSSN := verifiedAccount("US")
	usWithSSN := verifiedAccount("US")
	usWithSSN.SSN = "123-45-6789"

	tests := []struct {
		name       string
		account    *identity.Account
		wantErr    error
		wantStatus ramp.ProviderStatus
	}{
		{name: "no identity account", account: nil, wantErr: ramp.ErrNoPersonaAccount},
		{name: "no document", account: noDocs, wantStatus: ramp.StatusMissingInformation},
		{name: "unsupported document", account: residence, wantStatus: ramp.StatusNotAvailable},
		{name: "unknown country", account: badCountry, wantErr: ramp.ErrNoCountryAlpha3},
		{name: "us without ssn", account: usNoSSN, wantErr: ramp.ErrNoSocialSecurityNumber},
		{name: "us with ssn", account: usWithSSN, wantStatus: ramp.StatusNotStarted},
		{name: "eu resident", account: verifiedAccount("DE"), wantStatus: ramp.StatusNotStarted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.identity.On("GetAccount", mock.Anything, "user_1", "scope").Return(tt.account, nil)

			info, err := env.provider.GetProvider(context.Background(), newCustomer(""))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, info.Status)
		})
	}
}

func TestGetProvider_NewCustomerTosLinkCarriesRedirect(t *testing.T) {
	env := newTestEnv(t)
	env.identity.On("GetAccount", mock.Anything, "user_1", "scope").Return(verifiedAccount("DE"), nil)

	info, err := env.provider.GetProvider(context.Background(), newCustomer("https://wallet.example/kyc?step=2"))
	require.NoError(t, err)
	assert.Equal(t, ramp.StatusNotStarted, info.Status)
	assert.Equal(t, []string{"USD", "EUR"}, info.Currencies)

	link, err := url.Parse(info.TosLink)
	require.NoError(t, err)
	assert.Equal(t, "abc", link.Query().Get("session_token"))
	assert.Equal(t, "https://wallet.example/kyc?step=2", link.Query().Get("redirect_uri"))
}

func TestGetProvider_NewCustomerWithoutRedirect(t *testing.T) {
	env := newTestEnv(t)
	env.identity.On("GetAccount", mock.Anything, "user_1", "scope").Return(verifiedAccount("DE"), nil)

	info, err := env.provider.GetProvider(context.Background(), newCustomer(""))
	require.NoError(t, err)
	assert.Equal(t, env.api.tosURL, info.TosLink)
}

func TestCountryAlpha3(t *testing.T) {
	for in, want := range map[string]string{"US": "USA", "de": "DEU", "BR": "BRA", "MX": "MEX"} {
		got, ok := CountryAlpha3(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got)
	}
	for _, in := range []string{"", "XX", "UK", "USA"} {
		_, ok := CountryAlpha3(in)
		assert.False(t, ok, in)
	}
}
