package persona

import "encoding/json"

const governmentIDType = "document/government-id"

type resource struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Attributes    json.RawMessage `json:"attributes"`
	Relationships struct {
		Documents struct {
			Data []struct {
				ID   string `json:"id"`
				Type string `json:"type"`
			} `json:"data"`
		} `json:"documents"`
	} `json:"relationships"`
}

type listResponse struct {
	Data     []resource `json:"data"`
	Included []resource `json:"included"`
}

type singleResponse struct {
	Data resource `json:"data"`
}

type accountAttributes struct {
	ReferenceID          string `json:"reference-id"`
	CountryCode          string `json:"country-code"`
	SocialSecurityNumber string `json:"social-security-number"`
	IdentificationNumber string `json:"identification-number"`
	NameFirst            string `json:"name-first"`
	NameMiddle           string `json:"name-middle"`
	NameLast             string `json:"name-last"`
	EmailAddress         string `json:"email-address"`
	PhoneNumber          string `json:"phone-number"`
	Birthdate            string `json:"birthdate"`
	AddressStreet1       string `json:"address-street-1"`
	AddressStreet2       string `json:"address-street-2"`
	AddressCity          string `json:"address-city"`
	AddressSubdivision   string `json:"address-subdivision"`
	AddressPostalCode    string `json:"address-postal-code"`
	AddressCountryCode   string `json:"address-country-code"`
}

type photo struct {
	URL string `json:"url"`
}

type documentAttributes struct {
	IDClass              string `json:"id-class"`
	IssuingCountry       string `json:"issuing-country"`
	IdentificationNumber string `json:"identification-number"`
	FrontPhoto           *photo `json:"front-photo"`
	BackPhoto            *photo `json:"back-photo"`
}
