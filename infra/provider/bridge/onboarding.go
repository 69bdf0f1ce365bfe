package bridge

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"regexp"

	"github.com/amirasaad/onramp/pkg/provider/identity"
	"github.com/amirasaad/onramp/pkg/provider/onramp"
	"github.com/amirasaad/onramp/pkg/ramp"
	"github.com/amirasaad/onramp/pkg/upstream"
)

// createCustomerErrors maps known customer-creation rejections to error codes. The
// patterns run against the raw upstream body.
var createCustomerErrors = []struct {
	pattern *regexp.Regexp
	code    ramp.ErrorCode
}{
	{regexp.MustCompile(`(?i)email.{0,40}(already|taken|in use|exists)`), ramp.ErrEmailAlreadyExists},
	{regexp.MustCompile(`(?i)residential_address`), ramp.ErrInvalidAddress},
}

// Onboarding creates the Bridge customer for a user from their verified identity and
// stores the returned id. Users that already have a customer are left untouched.
func (p *Provider) Onboarding(ctx context.Context, params *onramp.OnboardingParams) error {
	if params.CustomerID != "" {
		p.logger.Debug("bridge customer already exists", "user_id", params.UserID)
		return nil
	}
	stored, err := p.store.GetCustomerID(ctx, params.UserID, onramp.ProviderBridge)
	if err != nil {
		return fmt.Errorf("bridge: failed to read customer id: %w", err)
	}
	if stored != "" {
		p.logger.Debug("bridge customer already stored", "user_id", params.UserID)
		return nil
	}

	account, err := p.identity.GetAccount(ctx, params.UserID, params.PersonaScope)
	if err != nil {
		return fmt.Errorf("bridge: failed to get identity account: %w", err)
	}
	r, err := checkReadiness(account)
	if err != nil {
		return err
	}
	if r.code != "" {
		return r.code
	}

	doc, err := p.identity.GetDocument(ctx, r.document.ID)
	if err != nil {
		return fmt.Errorf("bridge: failed to get identity document: %w", err)
	}
	front, back, err := p.documentImages(ctx, doc)
	if err != nil {
		return err
	}

	customer, err := p.api.CreateCustomer(ctx, buildCreateCustomer(r, params, front, back))
	if err != nil {
		return translateCreateError(err)
	}
	if err := p.store.SaveCustomerID(ctx, params.UserID, onramp.ProviderBridge, customer.ID); err != nil {
		return fmt.Errorf("bridge: failed to save customer id: %w", err)
	}
	p.logger.Info("bridge customer created",
		"user_id", params.UserID,
		"customer_id", customer.ID,
		"status", customer.Status,
	)
	return nil
}

// documentImages downloads the document photos as data URIs. The back side is
// optional (passports have none).
func (p *Provider) documentImages(ctx context.Context, doc *identity.Document) (front, back string, err error) {
	if doc == nil || doc.FrontPhotoURL == "" {
		return "", "", ramp.ErrNoDocument
	}
	if front, err = p.fetchImage(ctx, doc.FrontPhotoURL); err != nil {
		return "", "", err
	}
	if doc.BackPhotoURL != "" {
		if back, err = p.fetchImage(ctx, doc.BackPhotoURL); err != nil {
			return "", "", err
		}
	}
	return front, back, nil
}

func (p *Provider) fetchImage(ctx context.Context, rawURL string) (string, error) {
	var data []byte
	err := p.retry.Do(ctx, func(ctx context.Context) error {
		var err error
		data, err = p.documents.FetchBytes(ctx, rawURL)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("bridge: failed to download document image: %w", err)
	}
	return DataURI(data), nil
}

// DataURI base64-encodes an image for Bridge's identifying_information fields.
func DataURI(data []byte) string {
	return "data:" + http.DetectContentType(data) + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func buildCreateCustomer(
	r *readiness,
	params *onramp.OnboardingParams,
	front, back string,
) *CreateCustomerRequest {
	a := r.account
	req := &CreateCustomerRequest{
		Type:       "individual",
		FirstName:  a.FirstName,
		MiddleName: a.MiddleName,
		LastName:   a.LastName,
		Email:      a.Email,
		Phone:      a.Phone,
		BirthDate:  a.Birthdate,
		ResidentialAddress: ResidentialAddress{
			StreetLine1: a.Address.Street1,
			StreetLine2: a.Address.Street2,
			City:        a.Address.City,
			Subdivision: a.Address.Subdivision,
			PostalCode:  a.Address.PostalCode,
			Country:     r.alpha3,
		},
		SignedAgreementID: params.SignedAgreementID,
		Endorsements:      EndorsementsForCountry(r.alpha2),
	}

	issuing := r.alpha3
	if c, ok := CountryAlpha3(r.document.IssuingCountry); ok {
		issuing = c
	}
	if a.SSN != "" {
		req.IdentifyingInformation = append(req.IdentifyingInformation, IdentifyingInformation{
			Type:           "ssn",
			IssuingCountry: "USA",
			Number:         a.SSN,
		})
	}
	req.IdentifyingInformation = append(req.IdentifyingInformation, IdentifyingInformation{
		Type:           r.documentType,
		IssuingCountry: issuing,
		Number:         r.document.Number,
		ImageFront:     front,
		ImageBack:      back,
	})
	return req
}

func translateCreateError(err error) error {
	ue, ok := upstream.As(err)
	if !ok {
		return fmt.Errorf("bridge: create customer: %w", err)
	}
	for _, known := range createCustomerErrors {
		if known.pattern.MatchString(ue.Cause) {
			return known.code
		}
	}
	return fmt.Errorf("bridge: create customer: %w", err)
}
