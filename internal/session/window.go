// Package session resolves named trading-session windows to absolute
// time ranges for a given calendar date.
package session

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidWindow is returned when a window's bounds are malformed
// (start not strictly before end). Resolving such a window must fail
// fast instead of issuing an inverted-range query upstream.
var ErrInvalidWindow = errors.New("invalid session window")

// Eastern is exchange-local time as a fixed UTC-5 offset.
// TODO: bars near DST transitions land an hour off; switching to
// America/New_York changes historical window boundaries and needs
// sign-off first.
var Eastern = time.FixedZone("ET", -5*60*60)

// Window is a named, date-relative, half-open interval [start, end)
// expressed in exchange-local wall-clock time.
type Window struct {
	Name      string
	StartHour int
	StartMin  int
	EndHour   int
	EndMin    int
}

// The three canonical session windows.
var (
	Premarket      = Window{Name: "premarket", StartHour: 4, EndHour: 9, EndMin: 30}
	RegularSession = Window{Name: "regular", StartHour: 9, StartMin: 30, EndHour: 16}
	OpeningRange   = Window{Name: "opening-30min", StartHour: 9, StartMin: 30, EndHour: 10}
)

// Resolve returns the window's absolute [start, end) bounds on the
// given calendar date, in exchange-local time.
func (w Window) Resolve(date time.Time) (start, end time.Time, err error) {
	y, m, d := date.In(Eastern).Date()
	start = time.Date(y, m, d, w.StartHour, w.StartMin, 0, 0, Eastern)
	end = time.Date(y, m, d, w.EndHour, w.EndMin, 0, 0, Eastern)
	if !start.Before(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s [%02d:%02d, %02d:%02d)",
			ErrInvalidWindow, w.Name, w.StartHour, w.StartMin, w.EndHour, w.EndMin)
	}
	return start, end, nil
}

// Day returns the full exchange-local calendar day [00:00, 24:00)
// containing the given instant. Used for whole-day intraday fetches.
func Day(date time.Time) (start, end time.Time) {
	y, m, d := date.In(Eastern).Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, Eastern)
	return start, start.AddDate(0, 0, 1)
}

// TradingDate maps a daily bar timestamp to exchange-local midnight of
// the calendar day it covers. Vendors stamp daily bars at midnight
// exchange time, which is early-morning UTC of the same calendar day in
// every season, so the UTC date is authoritative; converting through
// the fixed offset would shift bars stamped during daylight saving onto
// the previous day.
func TradingDate(ts time.Time) time.Time {
	y, m, d := ts.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, Eastern)
}
