package scanner

import (
	"context"
	"log"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"gapscan/internal/analyzer"
	"gapscan/internal/provider"
	"gapscan/internal/store"
	"gapscan/pkg/model"
)

// ProgressCallback is called with progress updates
type ProgressCallback func(scanned, total int)

// Scanner runs the gap-day pipeline over multiple tickers with a
// bounded worker pool. Each ticker's pipeline is independent: a failure
// is logged and counted, never propagated to the other tickers.
type Scanner struct {
	provider     provider.Provider
	cfg          analyzer.Config
	store        store.Store // optional; results are recorded when set
	workers      int
	timeout      time.Duration // per-ticker pipeline timeout
	progressFunc ProgressCallback
}

// NewScanner creates a new scanner
func NewScanner(p provider.Provider, cfg analyzer.Config, st store.Store, workers int, timeout time.Duration) *Scanner {
	return &Scanner{
		provider: p,
		cfg:      cfg,
		store:    st,
		workers:  workers,
		timeout:  timeout,
	}
}

// SetProgressCallback sets the progress callback function
func (s *Scanner) SetProgressCallback(fn ProgressCallback) {
	s.progressFunc = fn
}

// Scan analyzes every ticker and collects the per-ticker result tables,
// ordered by ticker symbol.
func (s *Scanner) Scan(ctx context.Context, tickers []string) (*model.ScanResult, error) {
	startTime := time.Now()

	if len(tickers) == 0 {
		return &model.ScanResult{
			Tables:   []model.ResultTable{},
			ScanTime: time.Since(startTime),
		}, nil
	}

	jobChan := make(chan string, len(tickers))
	resultChan := make(chan *model.ResultTable, len(tickers))

	for _, ticker := range tickers {
		jobChan <- ticker
	}
	close(jobChan)

	var scannedCount, failedCount int64

	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a := analyzer.New(s.provider, s.cfg)

			for ticker := range jobChan {
				select {
				case <-ctx.Done():
					return
				default:
				}

				table, err := s.scanOne(ctx, a, ticker)
				if err != nil {
					log.Printf("[%s] scan failed: %v", ticker, err)
					atomic.AddInt64(&failedCount, 1)
				} else {
					resultChan <- table
				}

				count := atomic.AddInt64(&scannedCount, 1)
				if s.progressFunc != nil {
					s.progressFunc(int(count), len(tickers))
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	var tables []model.ResultTable
	gapDays := 0
	for table := range resultChan {
		tables = append(tables, *table)
		gapDays += len(table.Records)
	}

	sort.Slice(tables, func(i, j int) bool { return tables[i].Ticker < tables[j].Ticker })

	return &model.ScanResult{
		TotalScanned: len(tickers),
		GapDaysFound: gapDays,
		Tables:       tables,
		FailedCount:  int(atomic.LoadInt64(&failedCount)),
		ScanTime:     time.Since(startTime),
	}, nil
}

// scanOne runs one ticker's pipeline under the per-ticker timeout and
// records the result table when a store is configured.
func (s *Scanner) scanOne(ctx context.Context, a *analyzer.Analyzer, ticker string) (*model.ResultTable, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	table, err := a.FindGapDays(ctx, ticker)
	if err != nil {
		return nil, err
	}

	if s.store != nil {
		if err := s.store.Put(ctx, table); err != nil {
			log.Printf("[%s] storing results: %v", ticker, err)
		}
	}

	return table, nil
}
