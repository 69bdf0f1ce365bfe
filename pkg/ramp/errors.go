package ramp

// ErrorCode is the closed set of failures the on-ramp engine reports to callers.
// The string values are a stable contract consumed by the HTTP layer.
type ErrorCode string

const (
	ErrAlreadyOnboarded              ErrorCode = "already onboarded"
	ErrInvalidAddress                ErrorCode = "invalid address"
	ErrNotAvailableCurrency          ErrorCode = "not available currency"
	ErrNotAvailableCryptoPaymentRail ErrorCode = "not available crypto payment rail"
	ErrInvalidAccount                ErrorCode = "invalid destination account"
	ErrNoPersonaAccount              ErrorCode = "no persona account"
	ErrNoDocument                    ErrorCode = "no document"
	ErrNotSupportedDocument          ErrorCode = "not supported document"
	ErrNotSupportedChainID           ErrorCode = "not supported chain id"
	ErrMantecaUserInactive           ErrorCode = "manteca user inactive"
	ErrInvalidOrderSize              ErrorCode = "invalid order size"
	ErrNotActiveCustomer             ErrorCode = "not active customer"
	ErrNoCustomer                    ErrorCode = "no customer"
	ErrNoCountryAlpha3               ErrorCode = "no country alpha3"
	ErrNoSocialSecurityNumber        ErrorCode = "no social security number"
	ErrEmailAlreadyExists            ErrorCode = "email already exists"
	ErrInvalidLegalID                ErrorCode = "invalid legal id"
)

// Error implements the error interface.
func (c ErrorCode) Error() string { return string(c) }

// ErrorCodes lists every code in declaration order.
var ErrorCodes = []ErrorCode{
	ErrAlreadyOnboarded,
	ErrInvalidAddress,
	ErrNotAvailableCurrency,
	ErrNotAvailableCryptoPaymentRail,
	ErrInvalidAccount,
	ErrNoPersonaAccount,
	ErrNoDocument,
	ErrNotSupportedDocument,
	ErrNotSupportedChainID,
	ErrMantecaUserInactive,
	ErrInvalidOrderSize,
	ErrNotActiveCustomer,
	ErrNoCustomer,
	ErrNoCountryAlpha3,
	ErrNoSocialSecurityNumber,
	ErrEmailAlreadyExists,
	ErrInvalidLegalID,
}
