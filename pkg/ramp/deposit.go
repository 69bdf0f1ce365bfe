package ramp

import "github.com/shopspring/decimal"

// Network tags a deposit instruction with the rail the user sends funds over.
type Network string

const (
	NetworkACH             Network = "ACH"
	NetworkWire            Network = "WIRE"
	NetworkSEPA            Network = "SEPA"
	NetworkSPEI            Network = "SPEI"
	NetworkFasterPayments  Network = "FASTER_PAYMENTS"
	NetworkArgFiatTransfer Network = "ARG_FIAT_TRANSFER"
	NetworkPIX             Network = "PIX"
	NetworkTron            Network = "TRON"
	NetworkSolana          Network = "SOLANA"
	NetworkStellar         Network = "STELLAR"
)

var processingTimes = map[Network]string{
	NetworkACH:             "1-3 business days",
	NetworkWire:            "same business day",
	NetworkSEPA:            "1 business day",
	NetworkSPEI:            "minutes",
	NetworkFasterPayments:  "minutes",
	NetworkArgFiatTransfer: "minutes",
	NetworkPIX:             "minutes",
	NetworkTron:            "minutes",
	NetworkSolana:          "minutes",
	NetworkStellar:         "minutes",
}

// EstimatedProcessingTime returns the human-readable settlement estimate for n.
func EstimatedProcessingTime(n Network) string {
	return processingTimes[n]
}

// DepositDetails is one canonical way to fund an account. Only the structs in this
// package implement it; callers switch on the concrete type.
type DepositDetails interface {
	DepositNetwork() Network
	sealed()
}

// DepositBase holds the fields every deposit instruction carries.
type DepositBase struct {
	Network                 Network         `json:"network"`
	Currency                string          `json:"currency"`
	Fee                     decimal.Decimal `json:"fee"`
	EstimatedProcessingTime string          `json:"estimatedProcessingTime"`
}

// NewDepositBase fills the shared fields for network n.
func NewDepositBase(n Network, currency string, fee decimal.Decimal) DepositBase {
	return DepositBase{
		Network:                 n,
		Currency:                currency,
		Fee:                     fee,
		EstimatedProcessingTime: EstimatedProcessingTime(n),
	}
}

func (b DepositBase) DepositNetwork() Network { return b.Network }

func (DepositBase) sealed() {}

// USBankDeposit covers ACH and WIRE instructions.
type USBankDeposit struct {
	DepositBase
	BankName           string `json:"bankName"`
	BankAddress        string `json:"bankAddress"`
	RoutingNumber      string `json:"routingNumber"`
	AccountNumber      string `json:"accountNumber"`
	BeneficiaryName    string `json:"beneficiaryName"`
	BeneficiaryAddress string `json:"beneficiaryAddress"`
}

type SEPADeposit struct {
	DepositBase
	IBAN              string `json:"iban"`
	BIC               string `json:"bic"`
	AccountHolderName string `json:"accountHolderName"`
	BankName          string `json:"bankName"`
	BankAddress       string `json:"bankAddress"`
	Reference         string `json:"reference,omitempty"`
}

type SPEIDeposit struct {
	DepositBase
	CLABE             string `json:"clabe"`
	AccountHolderName string `json:"accountHolderName"`
	BankName          string `json:"bankName"`
}

type FasterPaymentsDeposit struct {
	DepositBase
	SortCode          string `json:"sortCode"`
	AccountNumber     string `json:"accountNumber"`
	AccountHolderName string `json:"accountHolderName"`
	BankName          string `json:"bankName"`
	BankAddress       string `json:"bankAddress"`
}

// ArgFiatTransferDeposit is a CBU/CVU transfer inside Argentina.
type ArgFiatTransferDeposit struct {
	DepositBase
	BankName         string `json:"bankName"`
	CBU              string `json:"cbu"`
	Alias            string `json:"alias"`
	BeneficiaryName  string `json:"beneficiaryName"`
	BeneficiaryCUIT  string `json:"beneficiaryCuit"`
	DepositorLegalID string `json:"depositorLegalId"`
}

type PIXDeposit struct {
	DepositBase
	PixKey           string `json:"pixKey"`
	BeneficiaryName  string `json:"beneficiaryName"`
	BankName         string `json:"bankName"`
	DepositorLegalID string `json:"depositorLegalId"`
}

// CryptoDeposit covers TRON, SOLANA and STELLAR liquidation addresses.
type CryptoDeposit struct {
	DepositBase
	Address string `json:"address"`
	Memo    string `json:"memo,omitempty"`
}
