package manteca

import "strings"

// Exchanges Manteca operates, keyed by name.
const (
	ExchangeArgentina   = "ARGENTINA"
	ExchangeBrazil      = "BRAZIL"
	ExchangeChile       = "CHILE"
	ExchangeColombia    = "COLOMBIA"
	ExchangeMexico      = "MEXICO"
	ExchangePeru        = "PERU"
	ExchangePanama      = "PANAMA"
	ExchangeBolivia     = "BOLIVIA"
	ExchangeParaguay    = "PARAGUAY"
	ExchangeUruguay     = "URUGUAY"
	ExchangeGuatemala   = "GUATEMALA"
	ExchangePhilippines = "PHILIPPINES"
)

var exchangeCurrencies = map[string][]string{
	ExchangeArgentina:   {"ARS"},
	ExchangeBrazil:      {"BRL"},
	ExchangeChile:       {"CLP"},
	ExchangeColombia:    {"COP"},
	ExchangeMexico:      {"MXN"},
	ExchangePeru:        {"PEN"},
	ExchangePanama:      {"USD"},
	ExchangeBolivia:     {"BOB"},
	ExchangeParaguay:    {"PYG"},
	ExchangeUruguay:     {"UYU"},
	ExchangeGuatemala:   {"GTQ"},
	ExchangePhilippines: {"PHP"},
}

var countryExchanges = map[string]string{
	"AR": ExchangeArgentina,
	"BR": ExchangeBrazil,
	"CL": ExchangeChile,
	"CO": ExchangeColombia,
	"MX": ExchangeMexico,
	"PE": ExchangePeru,
	"PA": ExchangePanama,
	"BO": ExchangeBolivia,
	"PY": ExchangeParaguay,
	"UY": ExchangeUruguay,
	"GT": ExchangeGuatemala,
	"PH": ExchangePhilippines,
}

// ExchangeCurrencies returns the fiat currencies of exchange. Unknown exchanges have
// none.
func ExchangeCurrencies(exchange string) []string {
	currencies := exchangeCurrencies[strings.ToUpper(exchange)]
	out := make([]string, len(currencies))
	copy(out, currencies)
	return out
}

// ExchangeForCountry maps an ISO alpha-2 country to the exchange serving it.
func ExchangeForCountry(alpha2 string) (string, bool) {
	exchange, ok := countryExchanges[strings.ToUpper(alpha2)]
	return exchange, ok
}

// CountryCurrencies is ExchangeCurrencies for the exchange serving alpha2.
func CountryCurrencies(alpha2 string) []string {
	exchange, ok := ExchangeForCountry(alpha2)
	if !ok {
		return []string{}
	}
	return ExchangeCurrencies(exchange)
}
