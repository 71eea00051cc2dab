package analyzer

import (
	"context"
	"fmt"
	"time"

	"gapscan/internal/provider"
	"gapscan/internal/session"
	"gapscan/pkg/model"
)

// Aggregate reduces a chronologically ordered bar sequence to its
// window-level extremes and volume. Ties on the extreme price keep the
// earliest bar's timestamp. An empty sequence yields a neutral
// aggregate (nil extremes, zero volume).
func Aggregate(bars []model.Bar) model.WindowAggregate {
	var agg model.WindowAggregate
	for _, b := range bars {
		b := b
		if agg.MaxHigh == nil || b.High > *agg.MaxHigh {
			agg.MaxHigh = &b.High
			t := b.Time
			agg.MaxHighTime = &t
		}
		if agg.MinLow == nil || b.Low < *agg.MinLow {
			agg.MinLow = &b.Low
			t := b.Time
			agg.MinLowTime = &t
		}
		agg.TotalVolume += b.Volume
	}
	return agg
}

// Extractor resolves a named session window for a date, fetches
// 1-minute bars for it, and reduces them to a WindowAggregate.
type Extractor struct {
	provider provider.Provider
}

// NewExtractor creates a new session-window extractor
func NewExtractor(p provider.Provider) *Extractor {
	return &Extractor{provider: p}
}

// Extract computes the aggregate for one window on one date. An empty
// bar sequence is not an error; malformed window bounds are
// (session.ErrInvalidWindow).
func (e *Extractor) Extract(ctx context.Context, ticker string, date time.Time, w session.Window) (model.WindowAggregate, error) {
	start, end, err := w.Resolve(date)
	if err != nil {
		return model.WindowAggregate{}, err
	}

	bars, err := e.provider.ListAggregates(ctx, ticker, 1, provider.TimespanMinute, start, end)
	if err != nil {
		return model.WindowAggregate{}, fmt.Errorf("fetching %s window: %w", w.Name, err)
	}

	return Aggregate(barsWithin(bars, start, end)), nil
}

// barsWithin filters to the half-open interval [start, end). The
// upstream range query is inclusive on both ends, so a bar stamped
// exactly at the window end must be dropped.
func barsWithin(bars []model.Bar, start, end time.Time) []model.Bar {
	out := bars[:0:0]
	for _, b := range bars {
		if b.Time.Before(start) || !b.Time.Before(end) {
			continue
		}
		out = append(out, b)
	}
	return out
}
