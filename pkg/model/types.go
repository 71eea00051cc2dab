package model

import "time"

// Bar represents a single OHLCV aggregate for one time bucket.
// VWAP is populated only on bars fetched for VWAP-cross analysis; nil
// means the upstream source did not supply it.
type Bar struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
	VWAP   *float64  `json:"vwap,omitempty"`
}

// DailySummary holds the vendor's daily open/close scalars for one date.
type DailySummary struct {
	PreMarket  *float64 `json:"pre_market,omitempty"`
	AfterHours *float64 `json:"after_hours,omitempty"`
}

// WindowAggregate is the reduction of a bar sequence over one session
// window. All price fields are nil when the window contained no bars;
// TotalVolume is 0 in that case, which is not an error.
// MaxHighTime/MinLowTime are the timestamps of the chronologically first
// bar achieving the extreme.
type WindowAggregate struct {
	MaxHigh     *float64   `json:"max_high,omitempty"`
	MaxHighTime *time.Time `json:"max_high_time,omitempty"`
	MinLow      *float64   `json:"min_low,omitempty"`
	MinLowTime  *time.Time `json:"min_low_time,omitempty"`
	TotalVolume int64      `json:"total_volume"`
}

// DayLabel classifies a day's close relative to its open.
type DayLabel string

const (
	LabelRunner  DayLabel = "Runner"
	LabelFader   DayLabel = "Fader"
	LabelNeutral DayLabel = "Neutral"
)

// FadeCategory describes the intraday shape of a Fader day.
// The empty value means unclassified (Runner/Neutral days, or an
// opening-range extension of 100% or more).
type FadeCategory string

const (
	FadeStraightDown FadeCategory = "Straight Down Fade"
	FadeQuickSwipe   FadeCategory = "Quick Swipe and Fade"
	FadeSteadyGapUp  FadeCategory = "Steady gap up and Fade"
)

// GapDayRecord is one row of the analysis output: the full feature set
// for a single qualifying gap-up day. Every percentage is computed
// against the previous trading day's close. Pointer fields are nil when
// the underlying data was unavailable; presentation code must never
// mutate a record.
type GapDayRecord struct {
	Date      time.Time `json:"date"`
	PrevClose float64   `json:"prev_close"`

	PremarketOpen     *float64   `json:"premarket_open,omitempty"`
	PremarketHigh     *float64   `json:"premarket_high,omitempty"`
	PremarketHighTime *time.Time `json:"premarket_high_time,omitempty"`
	PremarketVolume   *int64     `json:"premarket_volume,omitempty"`

	Open           float64    `json:"open"`
	GapPercent     float64    `json:"gap_up_pct_at_open"`
	DayHigh        float64    `json:"day_high"`
	DayHighTime    *time.Time `json:"day_high_time,omitempty"`
	DayHighPercent float64    `json:"day_high_pct"`
	Close          float64    `json:"close"`
	ClosePercent   float64    `json:"closing_pct"`

	AfterhoursClose *float64 `json:"afterhours_close,omitempty"`
	TotalVolume     int64    `json:"total_volume"`
	VWAPCrosses     *int     `json:"vwap_crosses,omitempty"`
	Label           DayLabel `json:"runner_fader"`

	OpeningRangeHigh     *float64   `json:"high_30min,omitempty"`
	OpeningRangeHighTime *time.Time `json:"high_30min_time,omitempty"`
	OpeningRangeHighPct  *float64   `json:"high_30min_pct_from_open,omitempty"`
	HighInOpeningRange   bool       `json:"high_within_30min"`
	OpeningRangeVolume   *int64     `json:"volume_30min,omitempty"`

	FadeCategory FadeCategory `json:"fade_category,omitempty"`
}

// ResultTable is the ordered set of gap-day records for one ticker,
// chronological ascending.
type ResultTable struct {
	Ticker      string         `json:"ticker"`
	Records     []GapDayRecord `json:"records"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// ScanResult is the output of a batch scan over multiple tickers.
type ScanResult struct {
	TotalScanned int           `json:"total_scanned"`
	GapDaysFound int           `json:"gap_days_found"`
	Tables       []ResultTable `json:"tables"`
	FailedCount  int           `json:"failed_count"`
	ScanTime     time.Duration `json:"scan_time"`
}
