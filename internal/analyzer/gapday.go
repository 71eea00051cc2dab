package analyzer

import (
	"context"
	"fmt"
	"time"

	"gapscan/internal/provider"
	"gapscan/internal/session"
	"gapscan/pkg/model"
)

// Config holds gap-day detection settings
type Config struct {
	ThresholdPercent float64 // minimum gap-up percent at open vs prior close
	LookbackDays     int     // calendar days of daily bars to scan back
}

// DefaultConfig returns the default detection settings
func DefaultConfig() Config {
	return Config{
		ThresholdPercent: 25,
		LookbackDays:     1095,
	}
}

// Analyzer detects gap-up days and assembles their feature records.
type Analyzer struct {
	provider  provider.Provider
	cfg       Config
	extractor *Extractor
	crosses   *CrossCounter
	now       func() time.Time
}

// New creates a new gap-day analyzer
func New(p provider.Provider, cfg Config) *Analyzer {
	return &Analyzer{
		provider:  p,
		cfg:       cfg,
		extractor: NewExtractor(p),
		crosses:   NewCrossCounter(p),
		now:       time.Now,
	}
}

// FindGapDays scans daily bars over the lookback range and returns one
// record per day whose open gapped up at least the threshold percent
// over the prior close, chronological ascending.
//
// Only the daily-bar fetch is fatal for the ticker; every per-day
// sub-fetch failure degrades the affected fields to absent.
func (a *Analyzer) FindGapDays(ctx context.Context, ticker string) (*model.ResultTable, error) {
	to := a.now()
	from := to.AddDate(0, 0, -a.cfg.LookbackDays)

	daily, err := a.provider.ListAggregates(ctx, ticker, 1, provider.TimespanDay, from, to)
	if err != nil {
		return nil, fmt.Errorf("fetching daily bars for %s: %w", ticker, err)
	}

	var records []model.GapDayRecord
	for i := 1; i < len(daily); i++ {
		prev, cur := daily[i-1], daily[i]

		// A zero or missing prior close makes the gap percent
		// undefined; the day is excluded.
		if prev.Close == 0 {
			continue
		}

		gapPct := (cur.Open - prev.Close) / prev.Close * 100
		if gapPct < a.cfg.ThresholdPercent {
			continue
		}

		records = append(records, a.buildRecord(ctx, ticker, prev, cur, gapPct))
	}

	return &model.ResultTable{
		Ticker:      ticker,
		Records:     records,
		GeneratedAt: a.now(),
	}, nil
}

// buildRecord assembles the feature record for one qualifying day.
func (a *Analyzer) buildRecord(ctx context.Context, ticker string, prev, cur model.Bar, gapPct float64) model.GapDayRecord {
	date := session.TradingDate(cur.Time)

	rec := model.GapDayRecord{
		Date:           date,
		PrevClose:      prev.Close,
		Open:           cur.Open,
		GapPercent:     gapPct,
		DayHigh:        cur.High,
		DayHighPercent: (cur.High - prev.Close) / prev.Close * 100,
		Close:          cur.Close,
		ClosePercent:   (cur.Close - prev.Close) / prev.Close * 100,
		TotalVolume:    cur.Volume,
		Label:          Label(cur.Open, cur.Close),
	}

	if pm, err := a.extractor.Extract(ctx, ticker, date, session.Premarket); err == nil {
		rec.PremarketHigh = pm.MaxHigh
		rec.PremarketHighTime = pm.MaxHighTime
		vol := pm.TotalVolume
		rec.PremarketVolume = &vol
	}

	if reg, err := a.extractor.Extract(ctx, ticker, date, session.RegularSession); err == nil {
		rec.DayHighTime = reg.MaxHighTime
	}

	if or, err := a.extractor.Extract(ctx, ticker, date, session.OpeningRange); err == nil {
		rec.OpeningRangeHigh = or.MaxHigh
		rec.OpeningRangeHighTime = or.MaxHighTime
		vol := or.TotalVolume
		rec.OpeningRangeVolume = &vol

		if or.MaxHigh != nil && *or.MaxHigh >= rec.DayHigh {
			rec.HighInOpeningRange = true
		}
		if or.MaxHigh != nil && cur.Open != 0 {
			pct := (*or.MaxHigh - cur.Open) / cur.Open * 100
			rec.OpeningRangeHighPct = &pct
		}
	}

	// Daily summary failure degrades premarket open and afterhours
	// close only, never the record.
	if sum, err := a.provider.DailyOpenClose(ctx, ticker, date); err == nil {
		rec.PremarketOpen = sum.PreMarket
		rec.AfterhoursClose = sum.AfterHours
	}

	if n, err := a.crosses.Count(ctx, ticker, date); err == nil {
		rec.VWAPCrosses = &n
	}

	rec.FadeCategory = ClassifyFade(rec.Label, rec.HighInOpeningRange, rec.OpeningRangeHighPct)
	return rec
}
