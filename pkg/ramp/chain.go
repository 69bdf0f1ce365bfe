package ramp

import "strings"

// SettlementRail is the blockchain network credited once fiat is converted.
type SettlementRail string

const (
	RailEthereum SettlementRail = "ethereum"
	RailBase     SettlementRail = "base"
	RailCelo     SettlementRail = "celo"
	RailPolygon  SettlementRail = "polygon"
	RailOptimism SettlementRail = "optimism"
	RailArbitrum SettlementRail = "arbitrum"
)

// Crypto currencies deliverable on settlement rails.
const (
	USDC = "USDC"
	USDT = "USDT"
)

var railsByChainID = map[int64]SettlementRail{
	1:     RailEthereum,
	10:    RailOptimism,
	137:   RailPolygon,
	8453:  RailBase,
	42161: RailArbitrum,
	42220: RailCelo,
}

var cryptoByRail = map[SettlementRail][]string{
	RailEthereum: {USDC, USDT},
	RailPolygon:  {USDC, USDT},
	RailCelo:     {USDC, USDT},
	RailBase:     {USDC},
	RailOptimism: {USDC},
	RailArbitrum: {USDC},
}

// RailForChain resolves the settlement rail for an EVM chain id.
func RailForChain(chainID int64) (SettlementRail, bool) {
	rail, ok := railsByChainID[chainID]
	return rail, ok
}

// CryptoCurrencies returns the crypto currencies that can settle on rail.
// The list does not depend on onboarding state.
func CryptoCurrencies(rail SettlementRail) []string {
	out := make([]string, len(cryptoByRail[rail]))
	copy(out, cryptoByRail[rail])
	return out
}

// SupportsCrypto reports whether crypto (case-insensitive) settles on rail.
func SupportsCrypto(rail SettlementRail, crypto string) bool {
	for _, c := range cryptoByRail[rail] {
		if strings.EqualFold(c, crypto) {
			return true
		}
	}
	return false
}

// SameAddress compares two account addresses ignoring case.
func SameAddress(a, b string) bool {
	return a != "" && strings.EqualFold(a, b)
}
