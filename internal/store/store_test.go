package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"gapscan/pkg/model"
)

func sampleTable(ticker string, gapPct float64) *model.ResultTable {
	return &model.ResultTable{
		Ticker: ticker,
		Records: []model.GapDayRecord{
			{
				Date:       time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC),
				PrevClose:  10,
				Open:       13,
				GapPercent: gapPct,
				Close:      11,
				Label:      model.LabelFader,
			},
		},
		GeneratedAt: time.Now().UTC(),
	}
}

func TestMemoryStoreLastWriteWins(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if _, err := s.Get(ctx, "TEST"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if err := s.Put(ctx, sampleTable("TEST", 30)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Put(ctx, sampleTable("TEST", 55)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	table, err := s.Get(ctx, "TEST")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if table.Records[0].GapPercent != 55 {
		t.Errorf("expected latest write (55), got %v", table.Records[0].GapPercent)
	}
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gapscan.db")
	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	if _, err := s.Get(ctx, "TEST"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if err := s.Put(ctx, sampleTable("TEST", 30)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	table, err := s.Get(ctx, "TEST")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if table.Ticker != "TEST" || len(table.Records) != 1 {
		t.Fatalf("unexpected table: %+v", table)
	}

	rec := table.Records[0]
	if rec.GapPercent != 30 || rec.Label != model.LabelFader {
		t.Errorf("record did not survive round trip: %+v", rec)
	}
}

func TestSQLiteStoreReturnsLatestRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gapscan.db")
	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	if err := s.Put(ctx, sampleTable("TEST", 30)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	time.Sleep(10 * time.Millisecond) // distinct created_at
	if err := s.Put(ctx, sampleTable("TEST", 55)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	table, err := s.Get(ctx, "TEST")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if table.Records[0].GapPercent != 55 {
		t.Errorf("expected latest run (55), got %v", table.Records[0].GapPercent)
	}
}
