package bridge

import (
	"strings"

	"github.com/amirasaad/onramp/pkg/provider/identity"
	"github.com/amirasaad/onramp/pkg/ramp"
	"github.com/biter777/countries"
)

var documentTypes = map[string]string{
	identity.DocumentPassport:       "passport",
	identity.DocumentDriversLicense: "drivers_license",
	identity.DocumentNationalID:     "national_id",
}

// BridgeDocumentType maps a KYC document type to the identifying_information type
// Bridge accepts.
func BridgeDocumentType(kycType string) (string, bool) {
	t, ok := documentTypes[strings.ToLower(kycType)]
	return t, ok
}

// CountryAlpha3 converts an ISO alpha-2 code to alpha-3.
func CountryAlpha3(alpha2 string) (string, bool) {
	if len(alpha2) != 2 {
		return "", false
	}
	alpha2 = strings.ToUpper(alpha2)
	c := countries.ByName(alpha2)
	if c == countries.Unknown || c == countries.None || c.Alpha2() != alpha2 {
		return "", false
	}
	return c.Alpha3(), true
}

// readiness is what the identity account says about a future Bridge customer.
type readiness struct {
	account      *identity.Account
	document     identity.DocumentRef
	documentType string
	alpha2       string
	alpha3       string
	// status is set when the account cannot be onboarded but that is not an error
	// for status queries.
	status ramp.ProviderStatus
	// code is the error reported when onboarding is attempted anyway.
	code ramp.ErrorCode
}

// checkReadiness applies the identity checks shared by status queries and onboarding.
// The returned error is always one of the ramp error codes.
func checkReadiness(account *identity.Account) (*readiness, error) {
	if account == nil {
		return nil, ramp.ErrNoPersonaAccount
	}
	r := &readiness{account: account}

	doc, ok := account.PrimaryDocument()
	if !ok {
		r.status, r.code = ramp.StatusMissingInformation, ramp.ErrNoDocument
		return r, nil
	}
	docType, ok := BridgeDocumentType(doc.Type)
	if !ok {
		r.status, r.code = ramp.StatusNotAvailable, ramp.ErrNotSupportedDocument
		return r, nil
	}
	r.document, r.documentType = doc, docType

	r.alpha2 = strings.ToUpper(account.CountryCode)
	alpha3, ok := CountryAlpha3(r.alpha2)
	if !ok {
		return nil, ramp.ErrNoCountryAlpha3
	}
	r.alpha3 = alpha3

	if r.alpha2 == "US" && account.SSN == "" {
		return nil, ramp.ErrNoSocialSecurityNumber
	}
	return r, nil
}
