package bridge

import "encoding/json"

// Customer statuses reported by Bridge.
const (
	CustomerActive                = "active"
	CustomerOffboarded            = "offboarded"
	CustomerRejected              = "rejected"
	CustomerPaused                = "paused"
	CustomerUnderReview           = "under_review"
	CustomerAwaitingQuestionnaire = "awaiting_questionnaire"
	CustomerAwaitingUBO           = "awaiting_ubo"
	CustomerIncomplete            = "incomplete"
	CustomerNotStarted            = "not_started"
)

// Endorsement statuses.
const (
	EndorsementApproved   = "approved"
	EndorsementIncomplete = "incomplete"
	EndorsementRevoked    = "revoked"
)

const (
	virtualAccountActivated = "activated"
	liquidationActive       = "active"
)

type Requirements struct {
	Complete []string          `json:"complete"`
	Pending  []string          `json:"pending"`
	Missing  json.RawMessage   `json:"missing"`
	Issues   []json.RawMessage `json:"issues"`
}

// HasMissing reports whether Bridge listed any missing sub-requirement.
func (r Requirements) HasMissing() bool {
	switch string(r.Missing) {
	case "", "null", "{}", "[]":
		return false
	}
	return true
}

type Endorsement struct {
	Name                   string       `json:"name"`
	Status                 string       `json:"status"`
	AdditionalRequirements []string     `json:"additional_requirements"`
	Requirements           Requirements `json:"requirements"`
}

type Customer struct {
	ID                    string            `json:"id"`
	Status                string            `json:"status"`
	Email                 string            `json:"email,omitempty"`
	Endorsements          []Endorsement     `json:"endorsements"`
	FutureRequirementsDue []json.RawMessage `json:"future_requirements_due"`
	RequirementsDue       []json.RawMessage `json:"requirements_due"`
}

type ResidentialAddress struct {
	StreetLine1 string `json:"street_line_1"`
	StreetLine2 string `json:"street_line_2,omitempty"`
	City        string `json:"city"`
	Subdivision string `json:"subdivision,omitempty"`
	PostalCode  string `json:"postal_code,omitempty"`
	Country     string `json:"country"`
}

type IdentifyingInformation struct {
	Type           string `json:"type"`
	IssuingCountry string `json:"issuing_country"`
	Number         string `json:"number,omitempty"`
	ImageFront     string `json:"image_front,omitempty"`
	ImageBack      string `json:"image_back,omitempty"`
}

type CreateCustomerRequest struct {
	Type                   string                   `json:"type"`
	FirstName              string                   `json:"first_name"`
	MiddleName             string                   `json:"middle_name,omitempty"`
	LastName               string                   `json:"last_name"`
	Email                  string                   `json:"email"`
	Phone                  string                   `json:"phone,omitempty"`
	BirthDate              string                   `json:"birth_date"`
	ResidentialAddress     ResidentialAddress       `json:"residential_address"`
	SignedAgreementID      string                   `json:"signed_agreement_id,omitempty"`
	Endorsements           []string                 `json:"endorsements"`
	IdentifyingInformation []IdentifyingInformation `json:"identifying_information"`
}

type TosLink struct {
	URL string `json:"url"`
}

// DepositInstructions are the source_deposit_instructions of a virtual account.
// Field presence depends on the currency.
type DepositInstructions struct {
	Currency               string   `json:"currency"`
	PaymentRails           []string `json:"payment_rails"`
	BankName               string   `json:"bank_name"`
	BankAddress            string   `json:"bank_address"`
	BankRoutingNumber      string   `json:"bank_routing_number"`
	BankAccountNumber      string   `json:"bank_account_number"`
	BankBeneficiaryName    string   `json:"bank_beneficiary_name"`
	BankBeneficiaryAddress string   `json:"bank_beneficiary_address"`
	IBAN                   string   `json:"iban"`
	BIC                    string   `json:"bic"`
	AccountHolderName      string   `json:"account_holder_name"`
	CLABE                  string   `json:"clabe"`
	SortCode               string   `json:"sort_code"`
	AccountNumber          string   `json:"account_number"`
	PixKey                 string   `json:"pix_key"`
	DepositMessage         string   `json:"deposit_message"`
}

type VirtualAccountDestination struct {
	PaymentRail string `json:"payment_rail"`
	Currency    string `json:"currency"`
	Address     string `json:"address"`
}

type VirtualAccount struct {
	ID                        string                    `json:"id"`
	Status                    string                    `json:"status"`
	CustomerID                string                    `json:"customer_id"`
	DeveloperFeePercent       string                    `json:"developer_fee_percent"`
	SourceDepositInstructions DepositInstructions       `json:"source_deposit_instructions"`
	Destination               VirtualAccountDestination `json:"destination"`
}

func (v VirtualAccount) itemID() string { return v.ID }

type CreateVirtualAccountRequest struct {
	Source struct {
		Currency string `json:"currency"`
	} `json:"source"`
	Destination         VirtualAccountDestination `json:"destination"`
	DeveloperFeePercent string                    `json:"developer_fee_percent"`
}

type LiquidationAddress struct {
	ID                        string `json:"id"`
	Chain                     string `json:"chain"`
	Address                   string `json:"address"`
	Currency                  string `json:"currency"`
	State                     string `json:"state"`
	BlockchainMemo            string `json:"blockchain_memo"`
	DestinationPaymentRail    string `json:"destination_payment_rail"`
	DestinationCurrency       string `json:"destination_currency"`
	DestinationAddress        string `json:"destination_address"`
	CustomDeveloperFeePercent string `json:"custom_developer_fee_percent"`
}

func (l LiquidationAddress) itemID() string { return l.ID }

type CreateLiquidationAddressRequest struct {
	Chain                     string `json:"chain"`
	Currency                  string `json:"currency"`
	DestinationPaymentRail    string `json:"destination_payment_rail"`
	DestinationCurrency       string `json:"destination_currency"`
	DestinationAddress        string `json:"destination_address"`
	CustomDeveloperFeePercent string `json:"custom_developer_fee_percent,omitempty"`
}

// Page is one page of a Bridge list endpoint.
type Page[T any] struct {
	Count int `json:"count"`
	Data  []T `json:"data"`
}
