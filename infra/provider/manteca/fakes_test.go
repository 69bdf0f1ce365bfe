package manteca

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/amirasaad/onramp/pkg/config"
	"github.com/amirasaad/onramp/pkg/observability"
	"github.com/amirasaad/onramp/pkg/provider/identity"
	"github.com/amirasaad/onramp/pkg/upstream"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const celoChainID = int64(42220)

type fakeAPI struct {
	mu sync.Mutex

	user      *User
	userErr   error
	limits    []Limit
	limitsErr error
	initErr   error
	uploadErr map[string]error
	termsErr  error

	initiated *InitialOnboardingRequest
	uploads   []*UploadIdentityImageRequest
	accepted  []string
}

func (f *fakeAPI) GetUser(_ context.Context, _ string) (*User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.userErr != nil {
		return nil, f.userErr
	}
	if f.user == nil {
		return nil, nil
	}
	u := *f.user
	return &u, nil
}

func (f *fakeAPI) GetLimits(context.Context, string) ([]Limit, error) {
	return f.limits, f.limitsErr
}

func (f *fakeAPI) InitialOnboarding(_ context.Context, req *InitialOnboardingRequest) (*User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.initiated = req
	if f.initErr != nil {
		return nil, f.initErr
	}
	return &User{NumberID: "100", ExternalID: req.ExternalID, Exchange: req.Exchange, Status: UserOnboarding}, nil
}

func (f *fakeAPI) UploadIdentityImage(_ context.Context, req *UploadIdentityImageRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads = append(f.uploads, req)
	return f.uploadErr[req.Side]
}

func (f *fakeAPI) AcceptTerms(_ context.Context, userAnyID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accepted = append(f.accepted, userAnyID)
	return f.termsErr
}

type mockIdentity struct {
	mock.Mock
}

func (m *mockIdentity) GetAccount(ctx context.Context, userID, scope string) (*identity.Account, error) {
	args := m.Called(ctx, userID, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Account), args.Error(1)
}

func (m *mockIdentity) GetDocument(ctx context.Context, documentID string) (*identity.Document, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Document), args.Error(1)
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) GetCustomerID(ctx context.Context, userID, provider string) (string, error) {
	args := m.Called(ctx, userID, provider)
	return args.String(0), args.Error(1)
}

func (m *mockStore) SaveCustomerID(ctx context.Context, userID, provider, customerID string) error {
	args := m.Called(ctx, userID, provider, customerID)
	return args.Error(0)
}

type fakeDocuments struct {
	mu     sync.Mutex
	images map[string][]byte
}

func (f *fakeDocuments) FetchBytes(_ context.Context, rawURL string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.images[rawURL]
	if !ok {
		return nil, upstream.NewError("Persona", 404, "not found")
	}
	return data, nil
}

type testEnv struct {
	api       *fakeAPI
	identity  *mockIdentity
	store     *mockStore
	documents *fakeDocuments
	recorder  *observability.Recorder
	provider  *Provider
}

func testConfig() *config.Manteca {
	return &config.Manteca{
		ApiKey:             "key",
		ApiUrl:             "https://api.manteca.dev",
		ArgBankName:        "Banco Galicia",
		ArgCBU:             "0070000000000000000001",
		ArgAlias:           "onramp.manteca",
		ArgBeneficiaryName: "Manteca SA",
		ArgBeneficiaryCUIT: "30-71234567-8",
		PixKey:             "pix@manteca.dev",
		PixBankName:        "Banco do Brasil",
		PixBeneficiaryName: "Manteca Ltda",
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		api:       &fakeAPI{},
		identity:  &mockIdentity{},
		store:     &mockStore{},
		documents: &fakeDocuments{images: map[string][]byte{}},
		recorder:  &observability.Recorder{},
	}
	p, err := New(env.api, testConfig(), Deps{
		Identity:  env.identity,
		Store:     env.store,
		Reporter:  env.recorder,
		Documents: env.documents,
		Retry:     upstream.RetryPolicy{MaxAttempts: 2, Retryable: upstream.IsTransient},
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	env.provider = p
	return env
}

func activeUser(exchange string) *User {
	return &User{NumberID: "100", ExternalID: "user_1", LegalID: "20-12345678-9", Exchange: exchange, Status: UserActive}
}
