package provider

import (
	"context"
	"sync"
	"time"

	"gapscan/pkg/model"
)

// CachingProvider wraps a Provider with an in-memory cache for daily
// aggregates. Designed for the web UI, where re-analyzing a ticker would
// otherwise refetch three years of daily bars.
type CachingProvider struct {
	inner Provider
	cache map[string][]model.Bar
	mu    sync.Mutex
}

// NewCachingProvider creates a caching wrapper
func NewCachingProvider(inner Provider) *CachingProvider {
	return &CachingProvider{
		inner: inner,
		cache: make(map[string][]model.Bar),
	}
}

func (p *CachingProvider) Name() string      { return p.inner.Name() }
func (p *CachingProvider) IsAvailable() bool { return p.inner.IsAvailable() }
func (p *CachingProvider) RateLimit() int    { return p.inner.RateLimit() }

func (p *CachingProvider) DailyOpenClose(ctx context.Context, ticker string, date time.Time) (*model.DailySummary, error) {
	return p.inner.DailyOpenClose(ctx, ticker, date)
}

// ListAggregates caches daily-resolution responses keyed by ticker and
// range; minute-resolution calls pass through.
func (p *CachingProvider) ListAggregates(ctx context.Context, ticker string, multiplier int, timespan Timespan, from, to time.Time) ([]model.Bar, error) {
	if timespan != TimespanDay {
		return p.inner.ListAggregates(ctx, ticker, multiplier, timespan, from, to)
	}

	key := ticker + "|" + from.Format("2006-01-02") + "|" + to.Format("2006-01-02")

	p.mu.Lock()
	if cached, ok := p.cache[key]; ok {
		p.mu.Unlock()
		return cached, nil
	}
	p.mu.Unlock()

	bars, err := p.inner.ListAggregates(ctx, ticker, multiplier, timespan, from, to)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.cache[key] = bars
	p.mu.Unlock()

	return bars, nil
}
