package bridge

import (
	"context"
	"fmt"
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

const (
	testCustomerID = "cust_1"
	testAddress    = "0xAbCdEf0000000000000000000000000000000001"
	celoChainID    = int64(42220)
	baseChainID    = int64(8453)
)

// fakeAPI is an in-memory Bridge.
type fakeAPI struct {
	mu sync.Mutex

	customer    *Customer
	customerErr error
	createErr   error
	created     *CreateCustomerRequest
	tosURL      string

	virtualAccounts []VirtualAccount
	liquidations    []LiquidationAddress
	// reportedCount overrides the count field of list pages when non-zero.
	reportedCount int

	listCalls    []string
	vaCreates    []*CreateVirtualAccountRequest
	laCreates    []*CreateLiquidationAddressRequest
	customerGets int
}

func (f *fakeAPI) GetCustomer(_ context.Context, id string) (*Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.customerGets++
	if f.customerErr != nil {
		return nil, f.customerErr
	}
	if f.customer == nil || f.customer.ID != id {
		return nil, upstream.NewError(ServiceName, 404, `{"code":"not_found","message":"Customer not found"}`)
	}
	c := *f.customer
	return &c, nil
}

func (f *fakeAPI) CreateCustomer(_ context.Context, req *CreateCustomerRequest) (*Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = req
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &Customer{ID: "cust_new", Status: CustomerUnderReview}, nil
}

func (f *fakeAPI) CreateTosLink(context.Context) (*TosLink, error) {
	return &TosLink{URL: f.tosURL}, nil
}

func paginate[T identified](items []T, after string, reported int) *Page[T] {
	start := 0
	if after != "" {
		for i, it := range items {
			if it.itemID() == after {
				start = i + 1
				break
			}
		}
	}
	end := min(start+PageSize, len(items))
	count := len(items)
	if reported != 0 {
		count = reported
	}
	data := make([]T, end-start)
	copy(data, items[start:end])
	return &Page[T]{Count: count, Data: data}
}

func (f *fakeAPI) ListVirtualAccounts(_ context.Context, _ string, after string) (*Page[VirtualAccount], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls = append(f.listCalls, after)
	return paginate(f.virtualAccounts, after, f.reportedCount), nil
}

func (f *fakeAPI) CreateVirtualAccount(
	_ context.Context,
	_ string,
	req *CreateVirtualAccountRequest,
) (*VirtualAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.vaCreates = append(f.vaCreates, req)
	va := VirtualAccount{
		ID:     fmt.Sprintf("va_new_%d", len(f.vaCreates)),
		Status: virtualAccountActivated,
		SourceDepositInstructions: DepositInstructions{
			Currency:          req.Source.Currency,
			BankName:          "Lead Bank",
			BankRoutingNumber: "101019644",
			BankAccountNumber: "900000000001",
			IBAN:              "DE00000000000000000001",
			BIC:               "LEADDEFF",
			AccountHolderName: "Jane Doe",
		},
		Destination: req.Destination,
	}
	f.virtualAccounts = append(f.virtualAccounts, va)
	return &va, nil
}

func (f *fakeAPI) ListLiquidationAddresses(
	_ context.Context,
	_ string,
	after string,
) (*Page[LiquidationAddress], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls = append(f.listCalls, after)
	return paginate(f.liquidations, after, f.reportedCount), nil
}

func (f *fakeAPI) CreateLiquidationAddress(
	_ context.Context,
	_ string,
	req *CreateLiquidationAddressRequest,
) (*LiquidationAddress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.laCreates = append(f.laCreates, req)
	la := LiquidationAddress{
		ID:                     fmt.Sprintf("la_new_%d", len(f.laCreates)),
		Chain:                  req.Chain,
		Currency:               req.Currency,
		Address:                "TXYZ000000000000000000000000000001",
		State:                  liquidationActive,
		DestinationPaymentRail: req.DestinationPaymentRail,
		DestinationCurrency:    req.DestinationCurrency,
		DestinationAddress:     req.DestinationAddress,
	}
	f.liquidations = append(f.liquidations, la)
	return &la, nil
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

// fakeDocuments serves image bytes by URL and can fail the first n fetches.
type fakeDocuments struct {
	mu       sync.Mutex
	images   map[string][]byte
	failures int
	calls    int
}

func (f *fakeDocuments) FetchBytes(_ context.Context, rawURL string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failures > 0 {
		f.failures--
		return nil, upstream.NewError("Persona", 502, "<title>502 Bad Gateway</title>")
	}
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

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		api:       &fakeAPI{tosURL: "https://dashboard.bridge.xyz/accept-terms-of-service?session_token=abc"},
		identity:  &mockIdentity{},
		store:     &mockStore{},
		documents: &fakeDocuments{images: map[string][]byte{}},
		recorder:  &observability.Recorder{},
	}
	p, err := New(env.api, &config.Bridge{
		ApiKey:              "key",
		ApiUrl:              "https://api.bridge.xyz",
		DeveloperFeePercent: "0.5",
	}, Deps{
		Identity:  env.identity,
		Store:     env.store,
		Reporter:  env.recorder,
		Documents: env.documents,
		Retry:     upstream.RetryPolicy{MaxAttempts: 3, Retryable: upstream.IsTransient},
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	env.provider = p
	return env
}

func activeCustomer(endorsements ...Endorsement) *Customer {
	return &Customer{ID: testCustomerID, Status: CustomerActive, Endorsements: endorsements}
}

func approved(name string) Endorsement {
	return Endorsement{Name: name, Status: EndorsementApproved}
}

func endorsement(name, status string) Endorsement {
	return Endorsement{Name: name, Status: status}
}
