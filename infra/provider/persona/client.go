// Package persona reads verified identities from Persona.
package persona

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/amirasaad/onramp/pkg/config"
	"github.com/amirasaad/onramp/pkg/provider/identity"
	"github.com/amirasaad/onramp/pkg/upstream"
)

// ServiceName prefixes every classified Persona error.
const ServiceName = "Persona"

// Client implements identity.Identity and downloads document images.
type Client struct {
	http *upstream.Client
}

// NewClient builds the Persona client. The API key is sent as a bearer token.
func NewClient(cfg *config.Persona, logger *slog.Logger) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("persona: missing config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Client{http: upstream.NewClient(upstream.ClientConfig{
		Service:    ServiceName,
		BaseURL:    cfg.ApiUrl,
		AuthHeader: "Authorization",
		AuthValue:  "Bearer " + cfg.ApiKey,
		Timeout:    cfg.HTTPTimeout,
	}, logger)}, nil
}

// RetryPolicy is the document download policy configured for Persona.
func RetryPolicy(cfg *config.Persona) upstream.RetryPolicy {
	return upstream.RetryPolicy{
		MaxAttempts: cfg.DocumentAttempts,
		Delay:       cfg.DocumentRetryDelay,
		Retryable:   upstream.IsTransient,
	}
}

// GetAccount finds the account whose reference id is userID. scope narrows the lookup
// to one account type when set.
func (c *Client) GetAccount(ctx context.Context, userID, scope string) (*identity.Account, error) {
	q := url.Values{
		"filter[reference-id]": {userID},
		"include":              {"documents"},
		"page[size]":           {"1"},
	}
	if scope != "" {
		q.Set("filter[account-type-id]", scope)
	}
	var out listResponse
	if err := c.http.Get(ctx, "/api/v1/accounts", q, &out); err != nil {
		if upstream.IsStatus(err, http.StatusNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if len(out.Data) == 0 {
		return nil, nil
	}
	return toAccount(out.Data[0], out.Included)
}

func (c *Client) GetDocument(ctx context.Context, documentID string) (*identity.Document, error) {
	var out singleResponse
	if err := c.http.Get(ctx, "/api/v1/documents/"+url.PathEscape(documentID), nil, &out); err != nil {
		return nil, err
	}
	var attrs documentAttributes
	if err := json.Unmarshal(out.Data.Attributes, &attrs); err != nil {
		return nil, fmt.Errorf("persona: failed to decode document %s: %w", documentID, err)
	}
	doc := &identity.Document{ID: out.Data.ID}
	if attrs.FrontPhoto != nil {
		doc.FrontPhotoURL = attrs.FrontPhoto.URL
	}
	if attrs.BackPhoto != nil {
		doc.BackPhotoURL = attrs.BackPhoto.URL
	}
	return doc, nil
}

// FetchBytes downloads a signed document image link.
func (c *Client) FetchBytes(ctx context.Context, rawURL string) ([]byte, error) {
	return c.http.FetchBytes(ctx, rawURL)
}

func toAccount(r resource, included []resource) (*identity.Account, error) {
	var attrs accountAttributes
	if err := json.Unmarshal(r.Attributes, &attrs); err != nil {
		return nil, fmt.Errorf("persona: failed to decode account %s: %w", r.ID, err)
	}
	account := &identity.Account{
		ID:                   r.ID,
		CountryCode:          attrs.CountryCode,
		SSN:                  attrs.SocialSecurityNumber,
		IdentificationNumber: attrs.IdentificationNumber,
		FirstName:            attrs.NameFirst,
		MiddleName:           attrs.NameMiddle,
		LastName:             attrs.NameLast,
		Email:                attrs.EmailAddress,
		Phone:                attrs.PhoneNumber,
		Birthdate:            attrs.Birthdate,
		Address: identity.Address{
			Street1:     attrs.AddressStreet1,
			Street2:     attrs.AddressStreet2,
			City:        attrs.AddressCity,
			Subdivision: attrs.AddressSubdivision,
			PostalCode:  attrs.AddressPostalCode,
			Country:     attrs.AddressCountryCode,
		},
	}
	if account.CountryCode == "" {
		account.CountryCode = attrs.AddressCountryCode
	}

	byID := make(map[string]resource, len(included))
	for _, inc := range included {
		byID[inc.ID] = inc
	}
	for _, rel := range r.Relationships.Documents.Data {
		if rel.Type != governmentIDType {
			continue
		}
		ref := identity.DocumentRef{ID: rel.ID}
		if inc, ok := byID[rel.ID]; ok {
			var doc documentAttributes
			if err := json.Unmarshal(inc.Attributes, &doc); err == nil {
				ref.Type = doc.IDClass
				ref.IssuingCountry = doc.IssuingCountry
				ref.Number = doc.IdentificationNumber
			}
		}
		account.Documents = append(account.Documents, ref)
	}
	return account, nil
}

var (
	_ identity.Identity        = (*Client)(nil)
	_ identity.DocumentFetcher = (*Client)(nil)
)
