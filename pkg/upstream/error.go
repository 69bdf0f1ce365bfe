package upstream

import (
	"errors"
	"fmt"
	"strings"
)

// Error is a classified failure of an upstream provider call. Status is zero when the
// request never produced a response (timeouts, connection resets).
type Error struct {
	Service string
	Status  int
	Cause   string
	Name    string
	Message string
	Err     error
}

// NewError classifies a raw upstream response body.
func NewError(service string, status int, cause string) *Error {
	c := Classify(service, status, cause, "", "")
	return &Error{
		Service: service,
		Status:  status,
		Cause:   cause,
		Name:    c.Name,
		Message: c.Message,
	}
}

// NewTransportError wraps a failure that happened before any response was read.
func NewTransportError(service string, err error) *Error {
	e := NewError(service, 0, err.Error())
	e.Err = err
	return e
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var ue *Error
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}

// IsStatus reports whether err is an upstream error with the given HTTP status.
func IsStatus(err error, status int) bool {
	ue, ok := As(err)
	return ok && ue.Status == status
}

// CauseContains reports whether err is an upstream error whose raw body contains substr.
func CauseContains(err error, substr string) bool {
	ue, ok := As(err)
	return ok && strings.Contains(ue.Cause, substr)
}
