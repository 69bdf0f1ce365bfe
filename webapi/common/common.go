// Package common holds the response envelopes and error mapping shared by handlers.
package common

import (
	"errors"

	"github.com/amirasaad/onramp/pkg/provider"
	"github.com/amirasaad/onramp/pkg/ramp"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`         // HTTP status code
	Message string `json:"message"`        // Human-readable explanation
	Data    any    `json:"data,omitempty"` // Response data
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`     // A URI reference that identifies the problem type
	Title    string `json:"title"`              // Short, human-readable summary
	Status   int    `json:"status"`             // HTTP status code
	Detail   string `json:"detail,omitempty"`   // Human-readable explanation
	Instance string `json:"instance,omitempty"` // URI reference that identifies the specific occurrence
	Code     string `json:"code,omitempty"`     // Stable error code, when the failure has one
	Errors   any    `json:"errors,omitempty"`   // Optional: additional error details
}

// MIMEProblemJSON is the RFC 9457 media type of every error response.
const MIMEProblemJSON = "application/problem+json"

var validate = validator.New()

// SuccessResponseJSON writes a Response envelope.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{Status: status, Message: message, Data: data})
}

// ErrorResponseJSON returns a response following RFC 9457 Problem Details
func ErrorResponseJSON(
	c *fiber.Ctx,
	status int,
	title string,
	detail any,
) error {
	pd := ProblemDetails{
		Type:   "about:blank",
		Title:  title,
		Status: status,
	}
	if detail != nil {
		if s, ok := detail.(string); ok {
			pd.Detail = s
		} else {
			pd.Errors = detail
		}
	}
	return writeProblem(c, pd)
}

// ProblemDetailsJSON maps err to a status and writes it. Error codes are exposed
// verbatim; anything else is reported without internal detail.
func ProblemDetailsJSON(c *fiber.Ctx, title string, err error) error {
	status := ErrorToStatusCode(err)
	pd := ProblemDetails{
		Type:   "about:blank",
		Title:  title,
		Status: status,
	}
	var code ramp.ErrorCode
	switch {
	case errors.As(err, &code):
		pd.Code = string(code)
		pd.Detail = code.Error()
	case errors.Is(err, provider.ErrUnknownProvider):
		pd.Detail = err.Error()
	default:
		var fe *fiber.Error
		if errors.As(err, &fe) {
			pd.Detail = fe.Message
		} else {
			pd.Detail = "internal error"
		}
	}
	return writeProblem(c, pd)
}

func writeProblem(c *fiber.Ctx, pd ProblemDetails) error {
	pd.Instance = c.OriginalURL()
	return c.Status(pd.Status).JSON(pd, MIMEProblemJSON)
}

// ErrorToStatusCode maps error codes to HTTP status codes.
func ErrorToStatusCode(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, provider.ErrUnknownProvider),
		errors.Is(err, ramp.ErrNoCustomer),
		errors.Is(err, ramp.ErrNoPersonaAccount):
		return fiber.StatusNotFound
	case errors.Is(err, ramp.ErrNotActiveCustomer),
		errors.Is(err, ramp.ErrMantecaUserInactive),
		errors.Is(err, ramp.ErrAlreadyOnboarded):
		return fiber.StatusForbidden
	}
	var code ramp.ErrorCode
	if errors.As(err, &code) {
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

// BindAndValidate parses the request body and validates it using go-playground/validator.
// On failure it writes a 400 problem response and returns a nil input together with
// the result of that write, so handlers can return the error as is.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
	}
	if err := validate.Struct(input); err != nil {
		return nil, ErrorResponseJSON(c, fiber.StatusBadRequest, "Validation failed", err.Error())
	}
	return &input, nil
}

// Validate runs struct validation on v.
func Validate(v any) error {
	return validate.Struct(v)
}
