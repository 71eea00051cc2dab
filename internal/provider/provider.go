package provider

import (
	"context"
	"errors"
	"time"

	"gapscan/pkg/model"
)

// Timespan is the bar resolution unit
type Timespan string

const (
	TimespanMinute Timespan = "minute"
	TimespanDay    Timespan = "day"
)

// ErrNoData indicates the upstream source failed or had nothing for the
// requested range. Callers treat it as "insufficient data for this
// day/metric", never as a fatal error for a whole scan.
var ErrNoData = errors.New("no data available")

// Provider defines the interface for market-data providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// ListAggregates fetches OHLCV bars for a ticker over [from, to],
	// chronologically sorted with no duplicate timestamps. multiplier
	// scales the timespan unit (e.g. 2 x minute for 2-minute bars).
	// An empty range returns an empty slice, not an error.
	ListAggregates(ctx context.Context, ticker string, multiplier int, timespan Timespan, from, to time.Time) ([]model.Bar, error)

	// DailyOpenClose fetches the vendor's daily summary for one date,
	// carrying the pre-market open and after-hours close scalars.
	DailyOpenClose(ctx context.Context, ticker string, date time.Time) (*model.DailySummary, error)

	// IsAvailable checks if the provider is available (has valid API key)
	IsAvailable() bool

	// RateLimit returns the rate limit per minute
	RateLimit() int
}

// ProviderError represents a provider-specific error
type ProviderError struct {
	Provider  string
	Err       error
	Retryable bool
}

func (e *ProviderError) Error() string {
	return e.Provider + ": " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
