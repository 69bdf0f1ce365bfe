package bridge

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/amirasaad/onramp/pkg/config"
	"github.com/amirasaad/onramp/pkg/upstream"
)

// ServiceName prefixes every classified Bridge error.
const ServiceName = "Bridge"

// PageSize is the fixed page size for list endpoints.
const PageSize = 20

// API is the subset of the Bridge REST API the on-ramp uses.
type API interface {
	GetCustomer(ctx context.Context, customerID string) (*Customer, error)
	CreateCustomer(ctx context.Context, req *CreateCustomerRequest) (*Customer, error)
	CreateTosLink(ctx context.Context) (*TosLink, error)
	ListVirtualAccounts(ctx context.Context, customerID, startingAfter string) (*Page[VirtualAccount], error)
	CreateVirtualAccount(ctx context.Context, customerID string, req *CreateVirtualAccountRequest) (*VirtualAccount, error)
	ListLiquidationAddresses(ctx context.Context, customerID, startingAfter string) (*Page[LiquidationAddress], error)
	CreateLiquidationAddress(ctx context.Context, customerID string, req *CreateLiquidationAddressRequest) (*LiquidationAddress, error)
}

type client struct {
	http *upstream.Client
}

// NewClient builds the Bridge REST client.
func NewClient(cfg *config.Bridge, logger *slog.Logger) API {
	return &client{http: upstream.NewClient(upstream.ClientConfig{
		Service:    ServiceName,
		BaseURL:    cfg.ApiUrl,
		AuthHeader: "Api-Key",
		AuthValue:  cfg.ApiKey,
		Timeout:    cfg.HTTPTimeout,
	}, logger)}
}

func (c *client) GetCustomer(ctx context.Context, customerID string) (*Customer, error) {
	var out Customer
	if err := c.http.Get(ctx, "/v0/customers/"+url.PathEscape(customerID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *client) CreateCustomer(ctx context.Context, req *CreateCustomerRequest) (*Customer, error) {
	var out Customer
	if err := c.http.Post(ctx, "/v0/customers", req, &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, fmt.Errorf("bridge: create customer returned no id")
	}
	return &out, nil
}

func (c *client) CreateTosLink(ctx context.Context) (*TosLink, error) {
	var out TosLink
	if err := c.http.Post(ctx, "/v0/customers/tos_links", struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func pageQuery(startingAfter string) url.Values {
	q := url.Values{"limit": {strconv.Itoa(PageSize)}}
	if startingAfter != "" {
		q.Set("starting_after", startingAfter)
	}
	return q
}

func (c *client) ListVirtualAccounts(
	ctx context.Context,
	customerID, startingAfter string,
) (*Page[VirtualAccount], error) {
	var out Page[VirtualAccount]
	path := "/v0/customers/" + url.PathEscape(customerID) + "/virtual_accounts"
	if err := c.http.Get(ctx, path, pageQuery(startingAfter), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *client) CreateVirtualAccount(
	ctx context.Context,
	customerID string,
	req *CreateVirtualAccountRequest,
) (*VirtualAccount, error) {
	var out VirtualAccount
	path := "/v0/customers/" + url.PathEscape(customerID) + "/virtual_accounts"
	if err := c.http.Post(ctx, path, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *client) ListLiquidationAddresses(
	ctx context.Context,
	customerID, startingAfter string,
) (*Page[LiquidationAddress], error) {
	var out Page[LiquidationAddress]
	path := "/v0/customers/" + url.PathEscape(customerID) + "/liquidation_addresses"
	if err := c.http.Get(ctx, path, pageQuery(startingAfter), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *client) CreateLiquidationAddress(
	ctx context.Context,
	customerID string,
	req *CreateLiquidationAddressRequest,
) (*LiquidationAddress, error) {
	var out LiquidationAddress
	path := "/v0/customers/" + url.PathEscape(customerID) + "/liquidation_addresses"
	if err := c.http.Post(ctx, path, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
