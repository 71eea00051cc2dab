package scanner

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"gapscan/internal/analyzer"
	"gapscan/internal/provider"
	"gapscan/internal/session"
	"gapscan/internal/store"
	"gapscan/pkg/model"
)

// scanProvider serves one gap day for every ticker except "BAD", whose
// daily fetch fails.
type scanProvider struct {
	calls int64
}

func (p *scanProvider) Name() string      { return "fake" }
func (p *scanProvider) IsAvailable() bool { return true }
func (p *scanProvider) RateLimit() int    { return 0 }

func (p *scanProvider) ListAggregates(ctx context.Context, ticker string, multiplier int, timespan provider.Timespan, from, to time.Time) ([]model.Bar, error) {
	atomic.AddInt64(&p.calls, 1)
	if timespan != provider.TimespanDay {
		return nil, nil
	}
	if ticker == "BAD" {
		return nil, provider.ErrNoData
	}
	day := func(d int) time.Time { return time.Date(2024, 3, d, 0, 0, 0, 0, session.Eastern) }
	return []model.Bar{
		{Time: day(13), Open: 10, High: 10.5, Low: 9.8, Close: 10, Volume: 1000},
		{Time: day(14), Open: 13, High: 14, Low: 10.8, Close: 11, Volume: 2000},
	}, nil
}

func (p *scanProvider) DailyOpenClose(ctx context.Context, ticker string, date time.Time) (*model.DailySummary, error) {
	return nil, provider.ErrNoData
}

func TestScanIsolatesTickerFailures(t *testing.T) {
	st := store.NewMemoryStore()
	s := NewScanner(&scanProvider{}, analyzer.DefaultConfig(), st, 2, time.Minute)

	result, err := s.Scan(context.Background(), []string{"GOOD", "BAD", "ALSO"})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if result.TotalScanned != 3 {
		t.Errorf("TotalScanned = %d, want 3", result.TotalScanned)
	}
	if result.FailedCount != 1 {
		t.Errorf("FailedCount = %d, want 1", result.FailedCount)
	}
	if len(result.Tables) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(result.Tables))
	}

	// Tables come back ordered by ticker
	if result.Tables[0].Ticker != "ALSO" || result.Tables[1].Ticker != "GOOD" {
		t.Errorf("unexpected ordering: %s, %s", result.Tables[0].Ticker, result.Tables[1].Ticker)
	}
	if result.GapDaysFound != 2 {
		t.Errorf("GapDaysFound = %d, want 2", result.GapDaysFound)
	}

	// Successful tickers land in the store; the failed one does not
	if _, err := st.Get(context.Background(), "GOOD"); err != nil {
		t.Errorf("expected GOOD in store: %v", err)
	}
	if _, err := st.Get(context.Background(), "BAD"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected BAD absent from store, got %v", err)
	}
}

func TestScanEmptyTickerList(t *testing.T) {
	s := NewScanner(&scanProvider{}, analyzer.DefaultConfig(), nil, 2, time.Minute)

	result, err := s.Scan(context.Background(), nil)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if result.TotalScanned != 0 || len(result.Tables) != 0 {
		t.Errorf("expected empty result, got %+v", result)
	}
}

func TestScanReportsProgress(t *testing.T) {
	s := NewScanner(&scanProvider{}, analyzer.DefaultConfig(), nil, 1, time.Minute)

	var last int64
	s.SetProgressCallback(func(scanned, total int) {
		atomic.StoreInt64(&last, int64(scanned))
		if total != 2 {
			t.Errorf("total = %d, want 2", total)
		}
	})

	if _, err := s.Scan(context.Background(), []string{"A", "B"}); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if atomic.LoadInt64(&last) != 2 {
		t.Errorf("final progress = %d, want 2", last)
	}
}
