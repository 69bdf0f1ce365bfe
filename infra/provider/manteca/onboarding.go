package manteca

import (
	"context"
	"encoding/base64"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/amirasaad/onramp/pkg/observability"
	"github.com/amirasaad/onramp/pkg/provider/identity"
	"github.com/amirasaad/onramp/pkg/provider/onramp"
	"github.com/amirasaad/onramp/pkg/ramp"
	"github.com/amirasaad/onramp/pkg/upstream"
	"golang.org/x/sync/errgroup"
)

var invalidLegalID = regexp.MustCompile(`(?i)legalId has wrong value`)

// Onboarding registers the user at Manteca, then uploads their id images and accepts
// the terms. The follow-up tasks run concurrently and their failures are only logged:
// Manteca lists whatever is still missing as pending onboarding tasks.
func (p *Provider) Onboarding(ctx context.Context, params *onramp.OnboardingParams) error {
	user, err := p.api.GetUser(ctx, params.UserID)
	if err != nil {
		return err
	}
	if user != nil {
		switch user.Status {
		case UserActive:
			p.logger.Debug("manteca user already active", "user_id", params.UserID)
			return nil
		case UserInactive:
			return ramp.ErrMantecaUserInactive
		}
	}

	account, err := p.identity.GetAccount(ctx, params.UserID, params.PersonaScope)
	if err != nil {
		return fmt.Errorf("manteca: failed to get identity account: %w", err)
	}
	if account == nil {
		return ramp.ErrNoPersonaAccount
	}
	ref, ok := account.PrimaryDocument()
	if !ok {
		return ramp.ErrNoDocument
	}

	// Fetched before initiating so a failure leaves nothing half created at Manteca.
	doc, err := p.identity.GetDocument(ctx, ref.ID)
	if err != nil {
		return fmt.Errorf("manteca: failed to get identity document: %w", err)
	}

	if user == nil {
		if user, err = p.initiate(ctx, params.UserID, account); err != nil {
			return err
		}
	}
	p.completeOnboarding(ctx, user.NumberID, doc)

	if params.CustomerID == "" {
		if err := p.store.SaveCustomerID(ctx, params.UserID, onramp.ProviderManteca, user.NumberID); err != nil {
			return fmt.Errorf("manteca: failed to save user id: %w", err)
		}
	}
	return nil
}

func (p *Provider) initiate(ctx context.Context, userID string, account *identity.Account) (*User, error) {
	exchange, ok := ExchangeForCountry(account.CountryCode)
	if !ok {
		observability.Warn(ctx, p.reporter, observability.EventUnsupportedExchange,
			"user_id", userID,
			"country", account.CountryCode,
		)
		return nil, ramp.ErrNotAvailableCurrency
	}

	user, err := p.api.InitialOnboarding(ctx, &InitialOnboardingRequest{
		ExternalID: userID,
		Email:      account.Email,
		LegalID:    account.IdentificationNumber,
		Type:       "INDIVIDUAL",
		Exchange:   exchange,
		PersonalData: PersonalData{
			Name:           strings.TrimSpace(account.FirstName + " " + account.MiddleName),
			Surname:        account.LastName,
			BirthDate:      account.Birthdate,
			Nationality:    strings.ToUpper(account.CountryCode),
			Phone:          account.Phone,
			Address:        strings.TrimSpace(account.Address.Street1 + " " + account.Address.Street2),
			City:           account.Address.City,
			PostalCode:     account.Address.PostalCode,
			DocumentNumber: account.IdentificationNumber,
		},
	})
	if err != nil {
		if ue, ok := upstream.As(err); ok && invalidLegalID.MatchString(ue.Cause) {
			return nil, ramp.ErrInvalidLegalID
		}
		return nil, err
	}
	p.logger.Info("manteca onboarding initiated",
		"user_id", userID,
		"manteca_user_id", user.NumberID,
		"exchange", exchange,
	)
	return user, nil
}

// completeOnboarding uploads the id images and accepts the terms concurrently. The
// back side is skipped for single-sided documents.
func (p *Provider) completeOnboarding(ctx context.Context, numberID string, doc *identity.Document) {
	var g errgroup.Group
	task := func(name string, fn func() error) {
		g.Go(func() error {
			if err := fn(); err != nil {
				observability.Warn(ctx, p.reporter, observability.EventOnboardingTaskFailed,
					"user_id", numberID,
					"task", name,
					"error", err.Error(),
				)
			}
			return nil
		})
	}

	front, back := "", ""
	if doc != nil {
		front, back = doc.FrontPhotoURL, doc.BackPhotoURL
	}
	task("upload_front", func() error { return p.uploadImage(ctx, numberID, SideFront, front) })
	if back != "" {
		task("upload_back", func() error { return p.uploadImage(ctx, numberID, SideBack, back) })
	}
	task("accept_terms", func() error { return p.api.AcceptTerms(ctx, numberID) })
	_ = g.Wait()
}

func (p *Provider) uploadImage(ctx context.Context, numberID, side, rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("no %s image", strings.ToLower(side))
	}
	var data []byte
	err := p.retry.Do(ctx, func(ctx context.Context) error {
		var err error
		data, err = p.documents.FetchBytes(ctx, rawURL)
		return err
	})
	if err != nil {
		return err
	}
	return p.api.UploadIdentityImage(ctx, &UploadIdentityImageRequest{
		UserAnyID:   numberID,
		Side:        side,
		FileName:    imageName(side, rawURL),
		FileContent: base64.StdEncoding.EncodeToString(data),
	})
}

func imageName(side, rawURL string) string {
	name := path.Base(strings.SplitN(rawURL, "?", 2)[0])
	if name == "" || name == "." || name == "/" {
		name = "document"
	}
	return strings.ToLower(side) + "-" + name
}
