package session

import (
	"errors"
	"testing"
	"time"
)

func TestResolveCanonicalWindows(t *testing.T) {
	date := time.Date(2024, 3, 14, 0, 0, 0, 0, Eastern)

	tests := []struct {
		window    Window
		wantStart string
		wantEnd   string
	}{
		{Premarket, "04:00", "09:30"},
		{RegularSession, "09:30", "16:00"},
		{OpeningRange, "09:30", "10:00"},
	}

	for _, tt := range tests {
		t.Run(tt.window.Name, func(t *testing.T) {
			start, end, err := tt.window.Resolve(date)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if got := start.Format("15:04"); got != tt.wantStart {
				t.Errorf("start = %s, want %s", got, tt.wantStart)
			}
			if got := end.Format("15:04"); got != tt.wantEnd {
				t.Errorf("end = %s, want %s", got, tt.wantEnd)
			}
			if start.Year() != 2024 || start.Month() != 3 || start.Day() != 14 {
				t.Errorf("start date drifted: %s", start)
			}
			if !start.Before(end) {
				t.Errorf("expected start < end, got [%s, %s)", start, end)
			}
		})
	}
}

func TestResolveUsesExchangeLocalDate(t *testing.T) {
	// 2024-03-14 01:00 UTC is still 2024-03-13 in exchange-local time;
	// the window must resolve on the local date.
	date := time.Date(2024, 3, 14, 1, 0, 0, 0, time.UTC)

	start, _, err := RegularSession.Resolve(date)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if start.Day() != 13 {
		t.Errorf("expected local date 13, got %d", start.Day())
	}
}

func TestResolveInvalidWindow(t *testing.T) {
	inverted := Window{Name: "inverted", StartHour: 16, EndHour: 9, EndMin: 30}

	_, _, err := inverted.Resolve(time.Now())
	if !errors.Is(err, ErrInvalidWindow) {
		t.Errorf("expected ErrInvalidWindow, got %v", err)
	}

	empty := Window{Name: "empty", StartHour: 9, StartMin: 30, EndHour: 9, EndMin: 30}
	_, _, err = empty.Resolve(time.Now())
	if !errors.Is(err, ErrInvalidWindow) {
		t.Errorf("expected ErrInvalidWindow for zero-length window, got %v", err)
	}
}

func TestTradingDate(t *testing.T) {
	tests := []struct {
		name    string
		stamp   time.Time
		wantDay int
	}{
		// Daily bars arrive stamped at midnight exchange time:
		// 04:00 UTC during daylight saving, 05:00 UTC in winter.
		{"summer stamp", time.Date(2024, 7, 10, 4, 0, 0, 0, time.UTC), 10},
		{"winter stamp", time.Date(2024, 1, 10, 5, 0, 0, 0, time.UTC), 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TradingDate(tt.stamp)
			if got.Day() != tt.wantDay {
				t.Errorf("TradingDate(%s) = %s, want day %d", tt.stamp, got, tt.wantDay)
			}
			if got.Hour() != 0 || got.Location() != Eastern {
				t.Errorf("expected exchange-local midnight, got %s", got)
			}
		})
	}
}

func TestDay(t *testing.T) {
	start, end := Day(time.Date(2024, 3, 14, 12, 0, 0, 0, Eastern))
	if start.Hour() != 0 || start.Day() != 14 {
		t.Errorf("unexpected day start: %s", start)
	}
	if end.Sub(start) != 24*time.Hour {
		t.Errorf("expected 24h day, got %s", end.Sub(start))
	}
}
