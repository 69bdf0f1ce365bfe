package bridge

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/amirasaad/onramp/pkg/lock"
	"github.com/amirasaad/onramp/pkg/provider/onramp"
	"github.com/amirasaad/onramp/pkg/ramp"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// settlementCurrency is what Bridge delivers on the settlement rail for fiat deposits.
const settlementCurrency = "usdc"

// GetDepositDetails finds or creates the customer's virtual account for currency
// and renders its bank instructions.
func (p *Provider) GetDepositDetails(
	ctx context.Context,
	params *onramp.DepositParams,
) ([]ramp.DepositDetails, error) {
	rail, ok := ramp.RailForChain(params.ChainID)
	if !ok {
		return nil, ramp.ErrNotSupportedChainID
	}
	info, err := p.activeCustomerInfo(ctx, params.CustomerID, rail)
	if err != nil {
		return nil, err
	}
	currency := strings.ToUpper(params.Currency)
	fiat, ok := fiatRails[currency]
	if !ok || !info.HasCurrency(currency) {
		return nil, ramp.ErrNotAvailableCurrency
	}

	key := lock.Key(onramp.ProviderBridge, params.CustomerID, "fiat", currency)
	account, err := reconcile(ctx, &p.flights, p.locker, key, func(ctx context.Context) (*VirtualAccount, error) {
		return p.findOrCreateVirtualAccount(ctx, params.CustomerID, fiat, rail, params.AccountAddress)
	})
	if err != nil {
		return nil, err
	}
	if !ramp.SameAddress(account.Destination.Address, params.AccountAddress) {
		p.logger.Error("virtual account destination does not match account",
			"customer_id", params.CustomerID,
			"virtual_account_id", account.ID,
			"destination", account.Destination.Address,
			"account", params.AccountAddress,
		)
		return nil, ramp.ErrInvalidAccount
	}
	return virtualAccountDetails(currency, fiat, account), nil
}

// GetCryptoDepositDetails finds or creates the customer's liquidation address for
// crypto on network.
func (p *Provider) GetCryptoDepositDetails(
	ctx context.Context,
	params *onramp.CryptoDepositParams,
) ([]ramp.DepositDetails, error) {
	rail, ok := ramp.RailForChain(params.ChainID)
	if !ok {
		return nil, ramp.ErrNotSupportedChainID
	}
	info, err := p.activeCustomerInfo(ctx, params.CustomerID, rail)
	if err != nil {
		return nil, err
	}
	crypto := strings.ToUpper(params.CryptoCurrency)
	cr, ok := cryptoRails[params.Network]
	if !ok || !slices.Contains(cr.currencies, crypto) || !slices.Contains(info.CryptoCurrencies, crypto) {
		return nil, ramp.ErrNotAvailableCryptoPaymentRail
	}

	key := lock.Key(onramp.ProviderBridge, params.CustomerID, cr.chain, crypto)
	address, err := reconcile(ctx, &p.flights, p.locker, key, func(ctx context.Context) (*LiquidationAddress, error) {
		return p.findOrCreateLiquidationAddress(ctx, params.CustomerID, cr.chain, crypto, rail, params.AccountAddress)
	})
	if err != nil {
		return nil, err
	}
	if !ramp.SameAddress(address.DestinationAddress, params.AccountAddress) {
		p.logger.Error("liquidation address destination does not match account",
			"customer_id", params.CustomerID,
			"liquidation_address_id", address.ID,
			"destination", address.DestinationAddress,
			"account", params.AccountAddress,
		)
		return nil, ramp.ErrInvalidAccount
	}
	return []ramp.DepositDetails{ramp.CryptoDeposit{
		DepositBase: ramp.NewDepositBase(params.Network, crypto, parseFee(address.CustomDeveloperFeePercent)),
		Address:     address.Address,
		Memo:        address.BlockchainMemo,
	}}, nil
}

func (p *Provider) activeCustomerInfo(
	ctx context.Context,
	customerID string,
	rail ramp.SettlementRail,
) (*ramp.ProviderInfo, error) {
	if customerID == "" {
		return nil, ramp.ErrNoCustomer
	}
	customer, err := p.api.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	info := p.customerInfo(ctx, customer, rail)
	if info.Status != ramp.StatusActive {
		return nil, ramp.ErrNotActiveCustomer
	}
	return info, nil
}

// flightTimeout bounds a shared reconciliation, which is detached from the
// cancellation of whichever caller happened to start it.
const flightTimeout = 30 * time.Second

// reconcile runs fn at most once at a time per key: concurrent callers in this
// process share one flight and the locker serializes across processes. Each caller
// stops waiting when its own ctx ends; the flight keeps running for the others.
func reconcile[T any](
	ctx context.Context,
	flights *singleflight.Group,
	locker lock.Locker,
	key string,
	fn func(context.Context) (T, error),
) (T, error) {
	var zero T
	ch := flights.DoChan(key, func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), flightTimeout)
		defer cancel()
		unlock, err := locker.Lock(fctx, key)
		if err != nil {
			return nil, fmt.Errorf("bridge: lock %s: %w", key, err)
		}
		defer unlock()
		return fn(fctx)
	})
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

func (p *Provider) findOrCreateVirtualAccount(
	ctx context.Context,
	customerID string,
	fiat fiatRail,
	rail ramp.SettlementRail,
	address string,
) (*VirtualAccount, error) {
	accounts, err := listAll(ctx, func(ctx context.Context, after string) (*Page[VirtualAccount], error) {
		return p.api.ListVirtualAccounts(ctx, customerID, after)
	}, p.reporter, "customer_id", customerID, "resource", "virtual_accounts")
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		va := &accounts[i]
		if va.Status == virtualAccountActivated &&
			strings.EqualFold(va.SourceDepositInstructions.Currency, fiat.sourceCurrency) {
			return va, nil
		}
	}

	req := &CreateVirtualAccountRequest{
		Destination: VirtualAccountDestination{
			PaymentRail: string(rail),
			Currency:    settlementCurrency,
			Address:     address,
		},
		DeveloperFeePercent: p.cfg.DeveloperFeePercent,
	}
	req.Source.Currency = fiat.sourceCurrency
	created, err := p.api.CreateVirtualAccount(ctx, customerID, req)
	if err != nil {
		return nil, err
	}
	p.logger.Info("virtual account created",
		"customer_id", customerID,
		"virtual_account_id", created.ID,
		"currency", fiat.sourceCurrency,
	)
	return created, nil
}

func (p *Provider) findOrCreateLiquidationAddress(
	ctx context.Context,
	customerID, chain, crypto string,
	rail ramp.SettlementRail,
	address string,
) (*LiquidationAddress, error) {
	addresses, err := listAll(ctx, func(ctx context.Context, after string) (*Page[LiquidationAddress], error) {
		return p.api.ListLiquidationAddresses(ctx, customerID, after)
	}, p.reporter, "customer_id", customerID, "resource", "liquidation_addresses")
	if err != nil {
		return nil, err
	}
	for i := range addresses {
		la := &addresses[i]
		if la.State == liquidationActive &&
			strings.EqualFold(la.Chain, chain) &&
			strings.EqualFold(la.Currency, crypto) {
			return la, nil
		}
	}

	created, err := p.api.CreateLiquidationAddress(ctx, customerID, &CreateLiquidationAddressRequest{
		Chain:                     chain,
		Currency:                  strings.ToLower(crypto),
		DestinationPaymentRail:    string(rail),
		DestinationCurrency:       strings.ToLower(crypto),
		DestinationAddress:        address,
		CustomDeveloperFeePercent: p.cfg.DeveloperFeePercent,
	})
	if err != nil {
		return nil, err
	}
	p.logger.Info("liquidation address created",
		"customer_id", customerID,
		"liquidation_address_id", created.ID,
		"chain", chain,
		"currency", crypto,
	)
	return created, nil
}

func virtualAccountDetails(currency string, fiat fiatRail, va *VirtualAccount) []ramp.DepositDetails {
	fee := parseFee(va.DeveloperFeePercent)
	ins := va.SourceDepositInstructions

	details := make([]ramp.DepositDetails, 0, len(fiat.networks))
	for _, network := range networksFor(fiat, ins) {
		base := ramp.NewDepositBase(network, currency, fee)
		switch network {
		case ramp.NetworkACH, ramp.NetworkWire:
			details = append(details, ramp.USBankDeposit{
				DepositBase:        base,
				BankName:           ins.BankName,
				BankAddress:        ins.BankAddress,
				RoutingNumber:      ins.BankRoutingNumber,
				AccountNumber:      ins.BankAccountNumber,
				BeneficiaryName:    ins.BankBeneficiaryName,
				BeneficiaryAddress: ins.BankBeneficiaryAddress,
			})
		case ramp.NetworkSEPA:
			details = append(details, ramp.SEPADeposit{
				DepositBase:       base,
				IBAN:              ins.IBAN,
				BIC:               ins.BIC,
				AccountHolderName: ins.AccountHolderName,
				BankName:          ins.BankName,
				BankAddress:       ins.BankAddress,
				Reference:         ins.DepositMessage,
			})
		case ramp.NetworkSPEI:
			details = append(details, ramp.SPEIDeposit{
				DepositBase:       base,
				CLABE:             ins.CLABE,
				AccountHolderName: ins.AccountHolderName,
				BankName:          ins.BankName,
			})
		case ramp.NetworkFasterPayments:
			details = append(details, ramp.FasterPaymentsDeposit{
				DepositBase:       base,
				SortCode:          ins.SortCode,
				AccountNumber:     ins.AccountNumber,
				AccountHolderName: ins.AccountHolderName,
				BankName:          ins.BankName,
				BankAddress:       ins.BankAddress,
			})
		case ramp.NetworkPIX:
			details = append(details, ramp.PIXDeposit{
				DepositBase:     base,
				PixKey:          ins.PixKey,
				BeneficiaryName: ins.AccountHolderName,
				BankName:        ins.BankName,
			})
		}
	}
	return details
}

// networksFor narrows USD instructions to the rails Bridge enabled on the account.
func networksFor(fiat fiatRail, ins DepositInstructions) []ramp.Network {
	if len(ins.PaymentRails) == 0 || fiat.sourceCurrency != "usd" {
		return fiat.networks
	}
	var networks []ramp.Network
	for _, r := range ins.PaymentRails {
		if n, ok := usRailNetworks[strings.ToLower(r)]; ok && !slices.Contains(networks, n) {
			networks = append(networks, n)
		}
	}
	if len(networks) == 0 {
		return fiat.networks
	}
	return networks
}

func parseFee(percent string) decimal.Decimal {
	fee, err := decimal.NewFromString(percent)
	if err != nil {
		return decimal.Zero
	}
	return fee
}
