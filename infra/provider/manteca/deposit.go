package manteca

import (
	"context"
	"slices"
	"strings"

	"github.com/amirasaad/onramp/pkg/provider/onramp"
	"github.com/amirasaad/onramp/pkg/ramp"
	"github.com/shopspring/decimal"
)

// GetDepositDetails returns the collection account the user transfers fiat into.
// Deposits are matched to the user by their legal id.
func (p *Provider) GetDepositDetails(
	ctx context.Context,
	params *onramp.DepositParams,
) ([]ramp.DepositDetails, error) {
	if _, ok := ramp.RailForChain(params.ChainID); !ok {
		return nil, ramp.ErrNotSupportedChainID
	}
	if params.CustomerID == "" {
		return nil, ramp.ErrNoCustomer
	}
	user, err := p.api.GetUser(ctx, params.CustomerID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ramp.ErrNoCustomer
	}
	if user.Status != UserActive {
		return nil, ramp.ErrNotActiveCustomer
	}

	currency := strings.ToUpper(params.Currency)
	if !slices.Contains(ExchangeCurrencies(user.Exchange), currency) {
		return nil, ramp.ErrNotAvailableCurrency
	}
	details, ok := p.collectionAccount(currency, user)
	if !ok {
		return nil, ramp.ErrNotAvailableCurrency
	}
	return []ramp.DepositDetails{details}, nil
}

func (p *Provider) collectionAccount(currency string, user *User) (ramp.DepositDetails, bool) {
	switch currency {
	case "ARS":
		if p.cfg.ArgCBU == "" && p.cfg.ArgAlias == "" {
			return nil, false
		}
		return ramp.ArgFiatTransferDeposit{
			DepositBase:      ramp.NewDepositBase(ramp.NetworkArgFiatTransfer, currency, decimal.Zero),
			BankName:         p.cfg.ArgBankName,
			CBU:              p.cfg.ArgCBU,
			Alias:            p.cfg.ArgAlias,
			BeneficiaryName:  p.cfg.ArgBeneficiaryName,
			BeneficiaryCUIT:  p.cfg.ArgBeneficiaryCUIT,
			DepositorLegalID: user.LegalID,
		}, true
	case "BRL":
		if p.cfg.PixKey == "" {
			return nil, false
		}
		return ramp.PIXDeposit{
			DepositBase:      ramp.NewDepositBase(ramp.NetworkPIX, currency, decimal.Zero),
			PixKey:           p.cfg.PixKey,
			BeneficiaryName:  p.cfg.PixBeneficiaryName,
			BankName:         p.cfg.PixBankName,
			DepositorLegalID: user.LegalID,
		}, true
	}
	return nil, false
}

// GetCryptoDepositDetails always fails: Manteca has no crypto deposit rails.
func (p *Provider) GetCryptoDepositDetails(
	_ context.Context,
	params *onramp.CryptoDepositParams,
) ([]ramp.DepositDetails, error) {
	if _, ok := ramp.RailForChain(params.ChainID); !ok {
		return nil, ramp.ErrNotSupportedChainID
	}
	return nil, ramp.ErrNotAvailableCryptoPaymentRail
}
