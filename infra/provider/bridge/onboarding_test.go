package bridge

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/amirasaad/onramp/pkg/provider/identity"
	"github.com/amirasaad/onramp/pkg/provider/onramp"
	"github.com/amirasaad/onramp/pkg/ramp"
	"github.com/amirasaad/onramp/pkg/upstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n0000")

func onboardingParams() *onramp.OnboardingParams {
	return &onramp.OnboardingParams{UserID: "user_1", PersonaScope: "scope", SignedAgreementID: "agr_1"}
}

// readyEnv wires an identity account with a passport whose front image is served.
func readyEnv(t *testing.T, account *identity.Account) *testEnv {
	t.Helper()
	env := newTestEnv(t)
	env.store.On("GetCustomerID", mock.Anything, "user_1", onramp.ProviderBridge).Return("", nil)
	env.identity.On("GetAccount", mock.Anything, "user_1", "scope").Return(account, nil)
	env.identity.On("GetDocument", mock.Anything, "doc_1").Return(&identity.Document{
		ID:            "doc_1",
		FrontPhotoURL: "https://files.example/front.png",
	}, nil)
	env.documents.images["https://files.example/front.png"] = pngHeader
	return env
}

func TestOnboarding_SkipsWhenCustomerKnown(t *testing.T) {
	env := newTestEnv(t)
	params := onboardingParams()
	params.CustomerID = testCustomerID

	require.NoError(t, env.provider.Onboarding(context.Background(), params))
	env.store.AssertNotCalled(t, "GetCustomerID", mock.Anything, mock.Anything, mock.Anything)
	env.identity.AssertNotCalled(t, "GetAccount", mock.Anything, mock.Anything, mock.Anything)
}

func TestOnboarding_SkipsWhenCustomerStored(t *testing.T) {
	env := newTestEnv(t)
	env.store.On("GetCustomerID", mock.Anything, "user_1", onramp.ProviderBridge).Return(testCustomerID, nil)

	require.NoError(t, env.provider.Onboarding(context.Background(), onboardingParams()))
	assert.Nil(t, env.api.created)
	env.identity.AssertNotCalled(t, "GetAccount", mock.Anything, mock.Anything, mock.Anything)
}

func TestOnboarding_CreatesCustomer(t *testing.T) {
	env := readyEnv(t, verifiedAccount("DE"))
	env.store.On("SaveCustomerID", mock.Anything, "user_1", onramp.ProviderBridge, "cust_new").Return(nil)

	require.NoError(t, env.provider.Onboarding(context.Background(), onboardingParams()))
	env.store.AssertExpectations(t)

	req := env.api.created
	require.NotNil(t, req)
	assert.Equal(t, "individual", req.Type)
	assert.Equal(t, "Jane", req.FirstName)
	assert.Equal(t, "jane@example.com", req.Email)
	assert.Equal(t, "agr_1", req.SignedAgreementID)
	assert.Equal(t, "DEU", req.ResidentialAddress.Country)
	assert.Equal(t, []string{EndorsementBase, EndorsementSEPA}, req.Endorsements)

	require.Len(t, req.IdentifyingInformation, 1)
	doc := req.IdentifyingInformation[0]
	assert.Equal(t, "passport", doc.Type)
	assert.Equal(t, "DEU", doc.IssuingCountry)
	assert.Equal(t, "X1234567", doc.Number)
	assert.True(t, strings.HasPrefix(doc.ImageFront, "data:image/png;base64,"))
	assert.Empty(t, doc.ImageBack)
}

func TestOnboarding_USCustomerCarriesSSN(t *testing.T) {
	account := verifiedAccount("US")
	account.SSN = "123-45-6789"
	env := readyEnv(t, account)
	env.store.On("SaveCustomerID", mock.Anything, "user_1", onramp.ProviderBridge, "cust_new").Return(nil)

	require.NoError(t, env.provider.Onboarding(context.Background(), onboardingParams()))

	req := env.api.created
	require.NotNil(t, req)
	assert.Equal(t, []string{EndorsementBase}, req.Endorsements)
	require.Len(t, req.IdentifyingInformation, 2)
	assert.Equal(t, "ssn", req.IdentifyingInformation[0].Type)
	assert.Equal(t, "123-45-6789", req.IdentifyingInformation[0].Number)
}

func TestOnboarding_RetriesDocumentDownload(t *testing.T) {
	env := readyEnv(t, verifiedAccount("DE"))
	env.documents.failures = 2
	env.store.On("SaveCustomerID", mock.Anything, "user_1", onramp.ProviderBridge, "cust_new").Return(nil)

	require.NoError(t, env.provider.Onboarding(context.Background(), onboardingParams()))
	assert.Equal(t, 3, env.documents.calls)
}

func TestOnboarding_DocumentDownloadGivesUp(t *testing.T) {
	env := readyEnv(t, verifiedAccount("DE"))
	env.documents.failures = 5

	err := env.provider.Onboarding(context.Background(), onboardingParams())
	require.Error(t, err)
	assert.True(t, upstream.IsStatus(err, 502))
	assert.Equal(t, 3, env.documents.calls)
	assert.Nil(t, env.api.created)
	env.store.AssertNotCalled(t, "SaveCustomerID", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOnboarding_ReadinessFailures(t *testing.T) {
	noDocs := verifiedAccount("DE")
	noDocs.Documents = nil
	residence := verifiedAccount("DE")
	residence.Documents[0].Type = identity.DocumentResidencePermit
	usNoSSN := verifiedAccount("US")
	unknownCountry := verifiedAccount("XX")
	aliasCountry := verifiedAccount("UK")

	tests := []struct {
		name    string
		account *identity.Account
		wantErr error
	}{
		{name: "unknown country", account: unknownCountry, wantErr: ramp.ErrNoCountryAlpha3},
		{name: "non iso country alias", account: aliasCountry, wantErr: ramp.ErrNoCountryAlpha3},
		{name: "no identity account", account: nil, wantErr: ramp.ErrNoPersonaAccount},
		{name: "no document", account: noDocs, wantErr: ramp.ErrNoDocument},
		{name: "unsupported document", account: residence, wantErr: ramp.ErrNotSupportedDocument},
		{name: "us without ssn", account: usNoSSN, wantErr: ramp.ErrNoSocialSecurityNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.store.On("GetCustomerID", mock.Anything, "user_1", onramp.ProviderBridge).Return("", nil)
			env.identity.On("GetAccount", mock.Anything, "user_1", "scope").Return(tt.account, nil)

			err := env.provider.Onboarding(context.Background(), onboardingParams())
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, env.api.created)
		})
	}
}

func TestOnboarding_DocumentWithoutImage(t *testing.T) {
	env := newTestEnv(t)
	env.store.On("GetCustomerID", mock.Anything, "user_1", onramp.ProviderBridge).Return("", nil)
	env.identity.On("GetAccount", mock.Anything, "user_1", "scope").Return(verifiedAccount("DE"), nil)
	env.identity.On("GetDocument", mock.Anything, "doc_1").Return(&identity.Document{ID: "doc_1"}, nil)

	err := env.provider.Onboarding(context.Background(), onboardingParams())
	assert.ErrorIs(t, err, ramp.ErrNoDocument)
}

func TestOnboarding_CreateErrorsAreTranslated(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{
			name:    "email taken",
			body:    `{"code":"bad_request","message":"Invalid request","errors":{"email":["has already been taken"]}}`,
			wantErr: ramp.ErrEmailAlreadyExists,
		},
		{
			name:    "bad address",
			body:    `{"code":"invalid_parameters","message":"residential_address.postal_code is invalid"}`,
			wantErr: ramp.ErrInvalidAddress,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := readyEnv(t, verifiedAccount("DE"))
			env.api.createErr = upstream.NewError(ServiceName, 400, tt.body)

			err := env.provider.Onboarding(context.Background(), onboardingParams())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestOnboarding_UnknownCreateErrorKeepsUpstreamDetail(t *testing.T) {
	env := readyEnv(t, verifiedAccount("DE"))
	env.api.createErr = upstream.NewError(ServiceName, 500, "<html><title>Internal Server Error</title></html>")

	err := env.provider.Onboarding(context.Background(), onboardingParams())
	require.Error(t, err)
	ue, ok := upstream.As(err)
	require.True(t, ok)
	assert.Equal(t, "Bridge500", ue.Name)
	assert.Equal(t, "Internal Server Error", ue.Message)
	var code ramp.ErrorCode
	assert.False(t, errors.As(err, &code))
}

func TestDataURI(t *testing.T) {
	assert.Equal(t, "data:image/png;base64,iVBORw0KGgowMDAw", DataURI(pngHeader))
}
