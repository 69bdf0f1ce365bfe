package bridge

import (
	"context"
	"slices"

	"github.com/amirasaad/onramp/pkg/observability"
	"github.com/amirasaad/onramp/pkg/ramp"
)

// Endorsement names.
const (
	EndorsementBase           = "base"
	EndorsementSEPA           = "sepa"
	EndorsementSPEI           = "spei"
	EndorsementPIX            = "pix"
	EndorsementFasterPayments = "faster_payments"
)

var endorsementCurrencies = map[string][]string{
	EndorsementBase:           {"USD"},
	EndorsementSEPA:           {"EUR"},
	EndorsementSPEI:           {"MXN"},
	EndorsementPIX:            {"BRL"},
	EndorsementFasterPayments: {"GBP"},
}

// defaultEndorsements are requested for every customer; their currencies are shown
// while onboarding is still in progress.
var defaultEndorsements = []string{EndorsementBase, EndorsementSEPA}

// AvailableCurrencies walks endorsements in order and stops at the first one that is
// not approved, so a revoked or incomplete endorsement caps everything after it.
func AvailableCurrencies(
	ctx context.Context,
	endorsements []Endorsement,
	reporter observability.Reporter,
) []string {
	currencies := []string{}
	for _, e := range endorsements {
		if e.Status != EndorsementApproved {
			observability.Warn(ctx, reporter, observability.EventEndorsementNotApproved,
				"endorsement", e.Name,
				"status", e.Status,
			)
			break
		}
		currencies = appendUnique(currencies, endorsementCurrencies[e.Name]...)
	}
	return currencies
}

// DefaultCurrencies are reported before endorsements gate availability.
func DefaultCurrencies() []string {
	currencies := []string{}
	for _, name := range defaultEndorsements {
		currencies = appendUnique(currencies, endorsementCurrencies[name]...)
	}
	return currencies
}

// sepaCountries are the ISO alpha-2 codes of SEPA members.
var sepaCountries = map[string]bool{
	"AT": true, "BE": true, "BG": true, "HR": true, "CY": true, "CZ": true, "DK": true,
	"EE": true, "FI": true, "FR": true, "DE": true, "GR": true, "HU": true, "IS": true,
	"IE": true, "IT": true, "LV": true, "LI": true, "LT": true, "LU": true, "MT": true,
	"NL": true, "NO": true, "PL": true, "PT": true, "RO": true, "SK": true, "SI": true,
	"ES": true, "SE": true, "CH": true, "MC": true, "SM": true, "AD": true, "VA": true,
}

// EndorsementsForCountry picks the endorsements requested at customer creation.
func EndorsementsForCountry(alpha2 string) []string {
	endorsements := []string{EndorsementBase}
	switch {
	case sepaCountries[alpha2]:
		endorsements = append(endorsements, EndorsementSEPA)
	case alpha2 == "MX":
		endorsements = append(endorsements, EndorsementSPEI)
	case alpha2 == "BR":
		endorsements = append(endorsements, EndorsementPIX)
	case alpha2 == "GB":
		endorsements = append(endorsements, EndorsementFasterPayments)
	}
	return endorsements
}

type fiatRail struct {
	sourceCurrency string
	networks       []ramp.Network
}

var fiatRails = map[string]fiatRail{
	"USD": {sourceCurrency: "usd", networks: []ramp.Network{ramp.NetworkACH, ramp.NetworkWire}},
	"EUR": {sourceCurrency: "eur", networks: []ramp.Network{ramp.NetworkSEPA}},
	"MXN": {sourceCurrency: "mxn", networks: []ramp.Network{ramp.NetworkSPEI}},
	"GBP": {sourceCurrency: "gbp", networks: []ramp.Network{ramp.NetworkFasterPayments}},
	"BRL": {sourceCurrency: "brl", networks: []ramp.Network{ramp.NetworkPIX}},
}

var usRailNetworks = map[string]ramp.Network{
	"ach_push": ramp.NetworkACH,
	"ach":      ramp.NetworkACH,
	"wire":     ramp.NetworkWire,
}

type cryptoRail struct {
	chain      string
	currencies []string
}

var cryptoRails = map[ramp.Network]cryptoRail{
	ramp.NetworkTron:    {chain: "tron", currencies: []string{ramp.USDT}},
	ramp.NetworkSolana:  {chain: "solana", currencies: []string{ramp.USDC}},
	ramp.NetworkStellar: {chain: "stellar", currencies: []string{ramp.USDC}},
}

func appendUnique(dst []string, values ...string) []string {
	for _, v := range values {
		if !slices.Contains(dst, v) {
			dst = append(dst, v)
		}
	}
	return dst
}
