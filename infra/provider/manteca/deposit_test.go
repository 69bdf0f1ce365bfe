package manteca

import (
	"context"
	"testing"

	"github.com/amirasaad/onramp/pkg/provider/onramp"
	"github.com/amirasaad/onramp/pkg/ramp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func depositParams(currency string) *onramp.DepositParams {
	return &onramp.DepositParams{ChainID: celoChainID, Currency: currency, AccountAddress: "0xabc", CustomerID: "100"}
}

func TestGetDepositDetails_Argentina(t *testing.T) {
	env := newTestEnv(t)
	env.api.user = activeUser(ExchangeArgentina)

	details, err := env.provider.GetDepositDetails(context.Background(), depositParams("ars"))
	require.NoError(t, err)
	require.Len(t, details, 1)

	d, ok := details[0].(ramp.ArgFiatTransferDeposit)
	require.True(t, ok)
	assert.Equal(t, ramp.NetworkArgFiatTransfer, d.DepositNetwork())
	assert.Equal(t, "ARS", d.Currency)
	assert.Equal(t, "0070000000000000000001", d.CBU)
	assert.Equal(t, "onramp.manteca", d.Alias)
	assert.Equal(t, "20-12345678-9", d.DepositorLegalID)
	assert.True(t, d.Fee.IsZero())
}

func TestGetDepositDetails_Brazil(t *testing.T) {
	env := newTestEnv(t)
	env.api.user = activeUser(ExchangeBrazil)

	details, err := env.provider.GetDepositDetails(context.Background(), depositParams("BRL"))
	require.NoError(t, err)
	require.Len(t, details, 1)

	d, ok := details[0].(ramp.PIXDeposit)
	require.True(t, ok)
	assert.Equal(t, "pix@manteca.dev", d.PixKey)
	assert.Equal(t, "Manteca Ltda", d.BeneficiaryName)
}

func TestGetDepositDetails_Failures(t *testing.T) {
	inactive := activeUser(ExchangeArgentina)
	inactive.Status = UserOnboarding

	tests := []struct {
		name    string
		user    *User
		params  *onramp.DepositParams
		wantErr error
	}{
		{
			name:    "unsupported chain",
			user:    activeUser(ExchangeArgentina),
			params:  &onramp.DepositParams{ChainID: 56, Currency: "ARS", CustomerID: "100"},
			wantErr: ramp.ErrNotSupportedChainID,
		},
		{name: "no user", user: nil, params: depositParams("ARS"), wantErr: ramp.ErrNoCustomer},
		{name: "not active", user: inactive, params: depositParams("ARS"), wantErr: ramp.ErrNotActiveCustomer},
		{
			name:    "currency of another exchange",
			user:    activeUser(ExchangeArgentina),
			params:  depositParams("BRL"),
			wantErr: ramp.ErrNotAvailableCurrency,
		},
		{
			name:    "exchange without collection account",
			user:    activeUser(ExchangeChile),
			params:  depositParams("CLP"),
			wantErr: ramp.ErrNotAvailableCurrency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.api.user = tt.user

			_, err := env.provider.GetDepositDetails(context.Background(), tt.params)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGetCryptoDepositDetails_NeverAvailable(t *testing.T) {
	env := newTestEnv(t)
	env.api.user = activeUser(ExchangeArgentina)

	_, err := env.provider.GetCryptoDepositDetails(context.Background(), &onramp.CryptoDepositParams{
		ChainID: celoChainID, CryptoCurrency: "USDC", Network: ramp.NetworkSolana, CustomerID: "100",
	})
	assert.ErrorIs(t, err, ramp.ErrNotAvailableCryptoPaymentRail)

	_, err = env.provider.GetCryptoDepositDetails(context.Background(), &onramp.CryptoDepositParams{
		ChainID: 56, CryptoCurrency: "USDC", Network: ramp.NetworkSolana, CustomerID: "100",
	})
	assert.ErrorIs(t, err, ramp.ErrNotSupportedChainID)
}
