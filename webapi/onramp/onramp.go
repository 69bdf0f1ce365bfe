// Package onramp exposes the on-ramp providers over HTTP.
package onramp

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/amirasaad/onramp/pkg/provider"
	pkgonramp "github.com/amirasaad/onramp/pkg/provider/onramp"
	"github.com/amirasaad/onramp/pkg/ramp"
	"github.com/amirasaad/onramp/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// UserIDHeader carries the caller's user id. Authentication happens upstream.
const UserIDHeader = "X-User-ID"

// Routes registers the provider endpoints.
func Routes(
	app *fiber.App,
	registry *provider.Registry,
	store pkgonramp.CustomerStore,
	logger *slog.Logger,
) {
	h := &handlers{registry: registry, store: store, logger: logger}
	group := app.Group("/api/providers")
	group.Get("/", h.list)
	group.Get("/:name", h.requireUser, h.status)
	group.Post("/:name/deposit", h.requireUser, h.deposit)
	group.Post("/:name/crypto-deposit", h.requireUser, h.cryptoDeposit)
	group.Post("/:name/onboarding", h.requireUser, h.onboarding)
}

type handlers struct {
	registry *provider.Registry
	store    pkgonramp.CustomerStore
	logger   *slog.Logger
}

func (h *handlers) requireUser(c *fiber.Ctx) error {
	userID := strings.TrimSpace(c.Get(UserIDHeader))
	if userID == "" {
		return common.ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", "missing "+UserIDHeader+" header")
	}
	c.Locals("user_id", userID)
	return c.Next()
}

func userID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}

// resolve returns the named provider and the user's stored customer id there.
func (h *handlers) resolve(c *fiber.Ctx) (provider.OnRamp, string, error) {
	p, err := h.registry.Get(c.Params("name"))
	if err != nil {
		return nil, "", err
	}
	customerID, err := h.store.GetCustomerID(c.Context(), userID(c), p.Name())
	if err != nil {
		return nil, "", err
	}
	return p, customerID, nil
}

func (h *handlers) fail(c *fiber.Ctx, title string, err error) error {
	if common.ErrorToStatusCode(err) >= fiber.StatusInternalServerError {
		h.logger.Error(title,
			"path", c.Path(),
			"user_id", userID(c),
			"error", err,
		)
	}
	return common.ProblemDetailsJSON(c, title, err)
}

// list returns the registered provider names.
// @Summary List providers
// @Tags providers
// @Produce json
// @Success 200 {object} common.Response
// @Router /api/providers [get]
func (h *handlers) list(c *fiber.Ctx) error {
	return common.SuccessResponseJSON(c, fiber.StatusOK, "Providers fetched successfully", h.registry.Names())
}

// status reports the user's standing with a provider.
// @Summary Get provider status
// @Tags providers
// @Produce json
// @Param name path string true "Provider name"
// @Param chain_id query int true "Chain id"
// @Param country query string false "ISO alpha-2 country for new customers"
// @Param redirect_uri query string false "Redirect after KYC"
// @Param persona_scope query string false "Persona inquiry scope"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 502 {object} common.ProblemDetails
// @Router /api/providers/{name} [get]
// @Security UserID
func (h *handlers) status(c *fiber.Ctx) error {
	chainID, err := strconv.ParseInt(c.Query("chain_id"), 10, 64)
	if err != nil {
		return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Validation failed", "chain_id must be an integer")
	}
	p, customerID, err := h.resolve(c)
	if err != nil {
		return h.fail(c, "Failed to resolve provider", err)
	}

	var input pkgonramp.ProviderInput
	if customerID != "" {
		input = pkgonramp.ExistingCustomer{UserID: userID(c), CustomerID: customerID, ChainID: chainID}
	} else {
		input = pkgonramp.NewCustomer{
			UserID:       userID(c),
			PersonaScope: c.Query("persona_scope"),
			Country:      strings.ToUpper(c.Query("country")),
			RedirectURI:  c.Query("redirect_uri"),
			ChainID:      chainID,
		}
	}
	info, err := p.GetProvider(c.Context(), input)
	if err != nil {
		return h.fail(c, "Failed to get provider status", err)
	}
	return common.SuccessResponseJSON(c, fiber.StatusOK, "Provider status fetched successfully",
		ProviderResponse{Provider: p.Name(), ProviderInfo: info})
}

// @Summary Get fiat deposit instructions
// @Tags providers
// @Accept json
// @Produce json
// @Param name path string true "Provider name"
// @Param request body DepositRequest true "Deposit request"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Failure 502 {object} common.ProblemDetails
// @Router /api/providers/{name}/deposit [post]
// @Security UserID
func (h *handlers) deposit(c *fiber.Ctx) error {
	req, err := common.BindAndValidate[DepositRequest](c)
	if req == nil {
		return err
	}
	p, customerID, err := h.resolve(c)
	if err != nil {
		return h.fail(c, "Failed to resolve provider", err)
	}
	details, err := p.GetDepositDetails(c.Context(), &pkgonramp.DepositParams{
		ChainID:        req.ChainID,
		Currency:       strings.ToUpper(req.Currency),
		AccountAddress: req.AccountAddress,
		CustomerID:     customerID,
	})
	if err != nil {
		return h.fail(c, "Failed to get deposit details", err)
	}
	return common.SuccessResponseJSON(c, fiber.StatusOK, "Deposit details fetched successfully", details)
}

// @Summary Get crypto deposit address
// @Tags providers
// @Accept json
// @Produce json
// @Param name path string true "Provider name"
// @Param request body CryptoDepositRequest true "Crypto deposit request"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 502 {object} common.ProblemDetails
// @Router /api/providers/{name}/crypto-deposit [post]
// @Security UserID
func (h *handlers) cryptoDeposit(c *fiber.Ctx) error {
	req, err := common.BindAndValidate[CryptoDepositRequest](c)
	if req == nil {
		return err
	}
	p, customerID, err := h.resolve(c)
	if err != nil {
		return h.fail(c, "Failed to resolve provider", err)
	}
	details, err := p.GetCryptoDepositDetails(c.Context(), &pkgonramp.CryptoDepositParams{
		ChainID:        req.ChainID,
		CryptoCurrency: strings.ToUpper(req.CryptoCurrency),
		Network:        ramp.Network(req.Network),
		AccountAddress: req.AccountAddress,
		CustomerID:     customerID,
	})
	if err != nil {
		return h.fail(c, "Failed to get crypto deposit details", err)
	}
	return common.SuccessResponseJSON(c, fiber.StatusOK, "Crypto deposit details fetched successfully", details)
}

// @Summary Submit onboarding
// @Tags providers
// @Accept json
// @Produce json
// @Param name path string true "Provider name"
// @Param request body OnboardingRequest true "Onboarding request"
// @Success 202 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 502 {object} common.ProblemDetails
// @Router /api/providers/{name}/onboarding [post]
// @Security UserID
func (h *handlers) onboarding(c *fiber.Ctx) error {
	req, err := common.BindAndValidate[OnboardingRequest](c)
	if req == nil {
		return err
	}
	p, customerID, err := h.resolve(c)
	if err != nil {
		return h.fail(c, "Failed to resolve provider", err)
	}
	params := &pkgonramp.OnboardingParams{
		UserID:            userID(c),
		CustomerID:        customerID,
		PersonaScope:      req.PersonaScope,
		SignedAgreementID: req.SignedAgreementID,
	}
	if err := common.Validate(params); err != nil {
		return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Validation failed", err.Error())
	}
	if err := p.Onboarding(c.Context(), params); err != nil {
		return h.fail(c, "Onboarding failed", err)
	}
	return common.SuccessResponseJSON(c, fiber.StatusAccepted, "Onboarding submitted", nil)
}
