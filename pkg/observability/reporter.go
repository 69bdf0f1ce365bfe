// Package observability carries non-fatal anomaly events out of the on-ramp engine.
// A status query must never fail because of something that only means "further
// action is needed later"; those conditions are reported here instead.
package observability

import (
	"context"
	"log/slog"
)

// Event names emitted by the providers.
const (
	EventUnsupportedChain        = "unsupported_chain"
	EventCustomerUnavailable     = "customer_unavailable"
	EventEndorsementNotApproved  = "endorsement_not_approved"
	EventFutureRequirementsDue   = "future_requirements_due"
	EventRequirementsDue         = "requirements_due"
	EventAdditionalRequirements  = "endorsement_additional_requirements"
	EventMissingRequirements     = "endorsement_missing_requirements"
	EventPaginationInconsistent  = "pagination_inconsistent"
	EventPaginationMultiplePages = "pagination_multiple_pages"
	EventLimitsUnavailable       = "limits_unavailable"
	EventOnboardingTaskFailed    = "onboarding_task_failed"
	EventUnsupportedDocument     = "unsupported_document"
	EventUnknownCustomerStatus   = "unknown_customer_status"
	EventUnsupportedExchange     = "unsupported_exchange"
)

// Level is the severity of a reported event.
type Level string

const (
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Reporter receives structured anomaly events. Implementations must not block callers
// for long and must never return errors to them.
type Reporter interface {
	Report(ctx context.Context, level Level, event string, attrs ...any)
}

// Warn reports a warning-level event on r.
func Warn(ctx context.Context, r Reporter, event string, attrs ...any) {
	r.Report(ctx, LevelWarn, event, attrs...)
}

// Error reports an error-level event on r.
func Error(ctx context.Context, r Reporter, event string, attrs ...any) {
	r.Report(ctx, LevelError, event, attrs...)
}

type logReporter struct {
	logger *slog.Logger
}

// NewLogReporter writes events to logger.
func NewLogReporter(logger *slog.Logger) Reporter {
	return &logReporter{logger: logger}
}

func (r *logReporter) Report(ctx context.Context, level Level, event string, attrs ...any) {
	lvl := slog.LevelWarn
	if level == LevelError {
		lvl = slog.LevelError
	}
	r.logger.Log(ctx, lvl, event, attrs...)
}

type multiReporter []Reporter

// Multi fans every event out to all reporters.
func Multi(reporters ...Reporter) Reporter {
	return multiReporter(reporters)
}

func (m multiReporter) Report(ctx context.Context, level Level, event string, attrs ...any) {
	for _, r := range m {
		r.Report(ctx, level, event, attrs...)
	}
}
