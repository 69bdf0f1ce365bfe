package upstream

import (
	"context"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryPolicy is a bounded, constant-delay retry. Retryable decides whether a failed
// attempt may be repeated; nil retries every error.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
	Retryable   func(error) bool
}

// DefaultRetryPolicy retries transport failures, throttling and 5xx responses.
var DefaultRetryPolicy = RetryPolicy{
	MaxAttempts: 3,
	Delay:       500 * time.Millisecond,
	Retryable:   IsTransient,
}

// Do runs op until it succeeds, a non-retryable error occurs, attempts run out, or ctx
// is done. The last error is returned.
func (p RetryPolicy) Do(ctx context.Context, op func(context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	b := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(p.Delay), uint64(attempts-1)),
		ctx,
	)
	return backoff.Retry(func() error {
		err := op(ctx)
		if err != nil && p.Retryable != nil && !p.Retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}, b)
}

// IsTransient reports whether err is worth retrying.
func IsTransient(err error) bool {
	ue, ok := As(err)
	if !ok {
		return false
	}
	return ue.Status == 0 || ue.Status == http.StatusTooManyRequests || ue.Status >= 500
}
