// Package render formats gap-day record fields for display. It is pure
// presentation: records are read, never mutated.
package render

import (
	"fmt"
	"time"

	"gapscan/internal/session"
)

// Percent renders a percentage as "X.XX%", or "" when unavailable.
func Percent(p *float64) string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("%.2f%%", *p)
}

// PercentVal renders an always-present percentage as "X.XX%".
func PercentVal(p float64) string {
	return Percent(&p)
}

// Volume renders share volume in millions as "X.XXM", "0M" for exactly
// zero, or "" when unavailable.
func Volume(v *int64) string {
	if v == nil {
		return ""
	}
	if *v == 0 {
		return "0M"
	}
	return fmt.Sprintf("%.2fM", float64(*v)/1_000_000)
}

// VolumeVal renders an always-present volume.
func VolumeVal(v int64) string {
	return Volume(&v)
}

// Price renders a price as "X.XX", or "" when unavailable.
func Price(p *float64) string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *p)
}

// PriceVal renders an always-present price.
func PriceVal(p float64) string {
	return Price(&p)
}

// Clock renders a timestamp as "HH:MM" exchange-local, or "" when
// unavailable.
func Clock(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.In(session.Eastern).Format("15:04")
}

// Date renders a date as "YYYY-MM-DD" exchange-local.
func Date(t time.Time) string {
	return t.In(session.Eastern).Format("2006-01-02")
}

// Count renders a non-negative count, or "" when unavailable.
func Count(n *int) string {
	if n == nil {
		return ""
	}
	return fmt.Sprintf("%d", *n)
}

// Bool renders a yes/no flag.
func Bool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
