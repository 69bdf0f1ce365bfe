package manteca

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/amirasaad/onramp/pkg/config"
	"github.com/amirasaad/onramp/pkg/upstream"
)

// ServiceName prefixes every classified Manteca error.
const ServiceName = "Manteca"

// userNotFound is the body marker Manteca uses for an unknown user.
const userNotFound = "USER_NF"

// API is the subset of the Manteca REST API the on-ramp uses. User lookups accept
// either the numeric id or our external id.
type API interface {
	// GetUser returns nil, nil when the user does not exist.
	GetUser(ctx context.Context, userAnyID string) (*User, error)
	GetLimits(ctx context.Context, userAnyID string) ([]Limit, error)
	InitialOnboarding(ctx context.Context, req *InitialOnboardingRequest) (*User, error)
	UploadIdentityImage(ctx context.Context, req *UploadIdentityImageRequest) error
	AcceptTerms(ctx context.Context, userAnyID string) error
}

type client struct {
	http *upstream.Client
}

// NewClient builds the Manteca REST client.
func NewClient(cfg *config.Manteca, logger *slog.Logger) API {
	return &client{http: upstream.NewClient(upstream.ClientConfig{
		Service:    ServiceName,
		BaseURL:    cfg.ApiUrl,
		AuthHeader: "md-api-key",
		AuthValue:  cfg.ApiKey,
		Timeout:    cfg.HTTPTimeout,
	}, logger)}
}

func (c *client) GetUser(ctx context.Context, userAnyID string) (*User, error) {
	var out User
	err := c.http.Get(ctx, "/crypto/v2/users/"+url.PathEscape(userAnyID), nil, &out)
	if err != nil {
		if upstream.IsStatus(err, http.StatusNotFound) && upstream.CauseContains(err, userNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (c *client) GetLimits(ctx context.Context, userAnyID string) ([]Limit, error) {
	var out []Limit
	if err := c.http.Get(ctx, "/crypto/v2/users/"+url.PathEscape(userAnyID)+"/limits", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) InitialOnboarding(ctx context.Context, req *InitialOnboardingRequest) (*User, error) {
	var out InitialOnboardingResponse
	if err := c.http.Post(ctx, "/crypto/v2/onboarding-actions/initial", req, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *client) UploadIdentityImage(ctx context.Context, req *UploadIdentityImageRequest) error {
	return c.http.Post(ctx, "/crypto/v2/onboarding-actions/upload-identity-image", req, nil)
}

func (c *client) AcceptTerms(ctx context.Context, userAnyID string) error {
	return c.http.Post(ctx, "/crypto/v2/onboarding-actions/accept-tyc", &AcceptTermsRequest{UserAnyID: userAnyID}, nil)
}
