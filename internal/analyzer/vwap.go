package analyzer

import (
	"context"
	"fmt"
	"time"

	"gapscan/internal/provider"
	"gapscan/internal/session"
	"gapscan/pkg/model"
)

// CountCrosses counts sign changes of (close - vwap) across consecutive
// bars. Only strict flips count: a bar closing exactly on its VWAP
// neither registers a cross nor breaks the sequence. A pair with a
// missing vwap on either side is skipped without resetting state.
func CountCrosses(bars []model.Bar) int {
	if len(bars) < 2 {
		return 0
	}

	crosses := 0
	for i := 1; i < len(bars); i++ {
		prev, cur := bars[i-1], bars[i]
		if prev.VWAP == nil || cur.VWAP == nil {
			continue
		}
		if (prev.Close < *prev.VWAP && cur.Close > *cur.VWAP) ||
			(prev.Close > *prev.VWAP && cur.Close < *cur.VWAP) {
			crosses++
		}
	}
	return crosses
}

// CrossCounter fetches 2-minute bars for a single date and counts VWAP
// crosses over them.
type CrossCounter struct {
	provider provider.Provider
}

// NewCrossCounter creates a new VWAP cross counter
func NewCrossCounter(p provider.Provider) *CrossCounter {
	return &CrossCounter{provider: p}
}

// Count returns the number of VWAP crosses on the given date, or an
// error when the fetch fails (degraded to an absent metric upstream).
func (c *CrossCounter) Count(ctx context.Context, ticker string, date time.Time) (int, error) {
	start, end := session.Day(date)

	bars, err := c.provider.ListAggregates(ctx, ticker, 2, provider.TimespanMinute, start, end)
	if err != nil {
		return 0, fmt.Errorf("fetching 2-minute bars: %w", err)
	}

	return CountCrosses(bars), nil
}
