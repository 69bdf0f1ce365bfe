package identity

// Document type codes as reported by the KYC provider.
const (
	DocumentPassport        = "pp"
	DocumentDriversLicense  = "dl"
	DocumentNationalID      = "id"
	DocumentResidencePermit = "rp"
)

// Address is a residential address.
type Address struct {
	Street1     string
	Street2     string
	City        string
	Subdivision string
	PostalCode  string
	Country     string
}

// DocumentRef points at one verified government id.
type DocumentRef struct {
	ID             string
	Type           string
	IssuingCountry string
	Number         string
}

// Account is the verified identity of a user. CountryCode is ISO alpha-2.
type Account struct {
	ID                   string
	CountryCode          string
	SSN                  string
	IdentificationNumber string
	FirstName            string
	MiddleName           string
	LastName             string
	Email                string
	Phone                string
	Birthdate            string
	Address              Address
	Documents            []DocumentRef
}

// PrimaryDocument returns the first document on file, if any.
func (a *Account) PrimaryDocument() (DocumentRef, bool) {
	if a == nil || len(a.Documents) == 0 {
		return DocumentRef{}, false
	}
	return a.Documents[0], true
}

// Document carries signed links to a document's images.
type Document struct {
	ID            string
	FrontPhotoURL string
	BackPhotoURL  string
}
