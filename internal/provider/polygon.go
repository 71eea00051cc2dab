package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"gapscan/internal/ratelimit"
	"gapscan/pkg/model"
)

const polygonBaseURL = "https://api.polygon.io"

// Max results per aggregates request
const polygonMaxLimit = 50000

// PolygonProvider implements the Provider interface for the Polygon.io
// REST API.
type PolygonProvider struct {
	apiKey    string
	baseURL   string
	client    *http.Client
	limiter   *ratelimit.Limiter
	rateLimit int
}

// NewPolygonProvider creates a new Polygon provider
func NewPolygonProvider(apiKey string, rateLimitPerMin int) *PolygonProvider {
	return &PolygonProvider{
		apiKey:    apiKey,
		baseURL:   polygonBaseURL,
		client:    &http.Client{Timeout: 30 * time.Second},
		limiter:   ratelimit.NewLimiter("polygon", rateLimitPerMin),
		rateLimit: rateLimitPerMin,
	}
}

// Name returns the provider name
func (p *PolygonProvider) Name() string {
	return "polygon"
}

// IsAvailable checks if the provider has an API key
func (p *PolygonProvider) IsAvailable() bool {
	return p.apiKey != ""
}

// RateLimit returns the rate limit per minute
func (p *PolygonProvider) RateLimit() int {
	return p.rateLimit
}

// polygonBar is the raw aggregate shape. Volume arrives as a float
// (sometimes in scientific notation), so it is decoded as float64 and
// truncated.
type polygonBar struct {
	T  int64    `json:"t"` // ms epoch, UTC
	O  float64  `json:"o"`
	H  float64  `json:"h"`
	L  float64  `json:"l"`
	C  float64  `json:"c"`
	V  float64  `json:"v"`
	VW *float64 `json:"vw,omitempty"`
}

type polygonAggsResponse struct {
	Ticker       string       `json:"ticker"`
	ResultsCount int          `json:"resultsCount"`
	Results      []polygonBar `json:"results"`
	Status       string       `json:"status"`
	RequestID    string       `json:"request_id"`
}

type polygonOpenCloseResponse struct {
	Status     string   `json:"status"`
	Symbol     string   `json:"symbol"`
	PreMarket  *float64 `json:"preMarket,omitempty"`
	AfterHours *float64 `json:"afterHours,omitempty"`
}

// ListAggregates fetches bars from /v2/aggs, sorted ascending with
// duplicate timestamps dropped.
func (p *PolygonProvider) ListAggregates(ctx context.Context, ticker string, multiplier int, timespan Timespan, from, to time.Time) ([]model.Bar, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/v2/aggs/ticker/%s/range/%d/%s/%d/%d",
		p.baseURL, url.PathEscape(ticker), multiplier, timespan,
		from.UnixMilli(), to.UnixMilli())

	limit := polygonMaxLimit
	if timespan == TimespanDay {
		limit = 10000
	}

	var data polygonAggsResponse
	if err := p.get(ctx, endpoint, url.Values{
		"adjusted": {"true"},
		"sort":     {"asc"},
		"limit":    {fmt.Sprintf("%d", limit)},
	}, &data); err != nil {
		return nil, err
	}

	if data.Status != "OK" && data.Status != "DELAYED" {
		return nil, &ProviderError{Provider: p.Name(), Err: fmt.Errorf("%w: status %s", ErrNoData, data.Status)}
	}

	bars := make([]model.Bar, 0, len(data.Results))
	for _, r := range data.Results {
		bars = append(bars, model.Bar{
			Time:   time.UnixMilli(r.T).UTC(),
			Open:   r.O,
			High:   r.H,
			Low:    r.L,
			Close:  r.C,
			Volume: int64(r.V),
			VWAP:   r.VW,
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return dedupeBars(bars), nil
}

// DailyOpenClose fetches the /v1/open-close summary for one date.
func (p *PolygonProvider) DailyOpenClose(ctx context.Context, ticker string, date time.Time) (*model.DailySummary, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/v1/open-close/%s/%s",
		p.baseURL, url.PathEscape(ticker), date.Format("2006-01-02"))

	var data polygonOpenCloseResponse
	if err := p.get(ctx, endpoint, url.Values{"adjusted": {"true"}}, &data); err != nil {
		return nil, err
	}

	if data.Status != "OK" && data.Status != "DELAYED" {
		return nil, &ProviderError{Provider: p.Name(), Err: fmt.Errorf("%w: status %s", ErrNoData, data.Status)}
	}

	return &model.DailySummary{
		PreMarket:  data.PreMarket,
		AfterHours: data.AfterHours,
	}, nil
}

// get issues an authenticated GET and decodes the JSON body into out.
func (p *PolygonProvider) get(ctx context.Context, endpoint string, query url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	query.Set("apiKey", p.apiKey)
	req.URL.RawQuery = query.Encode()

	resp, err := p.client.Do(req)
	if err != nil {
		return &ProviderError{Provider: p.Name(), Err: err, Retryable: true}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		p.limiter.SignalRateLimited()
		return &ProviderError{Provider: p.Name(), Err: fmt.Errorf("rate limited"), Retryable: true}
	case resp.StatusCode == http.StatusNotFound:
		return &ProviderError{Provider: p.Name(), Err: fmt.Errorf("%w: status 404", ErrNoData)}
	case resp.StatusCode != http.StatusOK:
		return &ProviderError{Provider: p.Name(), Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	p.limiter.ResetBackoff()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// dedupeBars drops bars sharing a timestamp with their predecessor.
// Input must already be sorted ascending.
func dedupeBars(bars []model.Bar) []model.Bar {
	if len(bars) < 2 {
		return bars
	}
	out := bars[:1]
	for _, b := range bars[1:] {
		if b.Time.Equal(out[len(out)-1].Time) {
			continue
		}
		out = append(out, b)
	}
	return out
}
