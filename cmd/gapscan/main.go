package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"gapscan/internal/analyzer"
	"gapscan/internal/config"
	"gapscan/internal/provider"
	"gapscan/internal/render"
	"gapscan/internal/scanner"
	"gapscan/internal/store"
	"gapscan/internal/web"
	"gapscan/pkg/model"
)

var (
	cfgFile    string
	tickerList string
	threshold  float64
	lookback   int
	workers    int
	format     string
	port       int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gapscan",
		Short: "Gap-up day analyzer for US equities",
		Long: `Gapscan finds historical gap-up days (open >= 25% above the prior
close) for a ticker and computes per-day features: premarket and
intraday extremes with timestamps, session volumes, VWAP crosses,
and a Runner/Fader shape label with fade categories.

Examples:
  gapscan --tickers AREB,SBEV
  gapscan --tickers MLGO --threshold 30 --lookback 730 --format json
  gapscan serve --port 8080`,
		RunE: runScan,
	}

	// Flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
	rootCmd.Flags().StringVar(&tickerList, "tickers", "", "comma-separated list of tickers (default: config/env list)")
	rootCmd.Flags().Float64Var(&threshold, "threshold", 0, "minimum gap-up percent at open")
	rootCmd.Flags().IntVar(&lookback, "lookback", 0, "calendar days of history to scan")
	rootCmd.Flags().IntVar(&workers, "workers", 0, "number of parallel workers")
	rootCmd.Flags().StringVar(&format, "format", "table", "output format: table, json")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web UI",
		RunE:  runServe,
	}
	serveCmd.Flags().IntVar(&port, "port", 0, "HTTP port")
	rootCmd.AddCommand(serveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	// Override config with CLI flags
	if cmd.Flags().Changed("threshold") {
		cfg.Gap.ThresholdPercent = threshold
	}
	if lookback > 0 {
		cfg.Gap.LookbackDays = lookback
	}
	if workers > 0 {
		cfg.Scanner.Workers = workers
	}
	if tickerList != "" {
		cfg.Tickers = nil
		for _, t := range strings.Split(tickerList, ",") {
			if t = strings.ToUpper(strings.TrimSpace(t)); t != "" {
				cfg.Tickers = append(cfg.Tickers, t)
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newStore(cfg *config.Config) (store.Store, error) {
	if cfg.Store.Driver == "sqlite" {
		return store.NewSQLiteStore(cfg.Store.Path)
	}
	return store.NewMemoryStore(), nil
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if len(cfg.Tickers) == 0 {
		return fmt.Errorf("no tickers to scan (use --tickers, GAPSCAN_TICKERS, or the config file)")
	}

	st, err := newStore(cfg)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	p := provider.NewPolygonProvider(cfg.API.Polygon.Key, cfg.API.Polygon.RateLimit)

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nInterrupted. Stopping scan...")
		cancel()
	}()

	gapCfg := analyzer.Config{
		ThresholdPercent: cfg.Gap.ThresholdPercent,
		LookbackDays:     cfg.Gap.LookbackDays,
	}
	s := scanner.NewScanner(p, gapCfg, st, cfg.Scanner.Workers, cfg.Scanner.Timeout)

	fmt.Printf("Scanning %d tickers for gap-ups >= %.0f%% over the last %d days...\n\n",
		len(cfg.Tickers), cfg.Gap.ThresholdPercent, cfg.Gap.LookbackDays)

	// Setup progress bar
	bar := progressbar.NewOptions(len(cfg.Tickers),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Scanning"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]█[reset]",
			SaucerHead:    "[green]█[reset]",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	s.SetProgressCallback(func(scanned, total int) {
		bar.Set(scanned)
	})

	result, err := s.Scan(ctx, cfg.Tickers)
	if err != nil {
		return fmt.Errorf("scanning: %w", err)
	}

	bar.Finish()
	fmt.Println()

	if format == "json" {
		return outputJSON(result)
	}
	return outputTables(result)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if port > 0 {
		cfg.Web.Port = port
	}

	st, err := newStore(cfg)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	// The web UI re-analyzes on demand; cache daily bars so repeated
	// form submissions for the same ticker stay cheap.
	p := provider.NewCachingProvider(
		provider.NewPolygonProvider(cfg.API.Polygon.Key, cfg.API.Polygon.RateLimit))

	a := analyzer.New(p, analyzer.Config{
		ThresholdPercent: cfg.Gap.ThresholdPercent,
		LookbackDays:     cfg.Gap.LookbackDays,
	})

	srv, err := web.NewServer(a, st)
	if err != nil {
		return err
	}

	// Graceful shutdown on interrupt
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}()

	if err := srv.Start(cfg.Web.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func outputTables(result *model.ScanResult) error {
	if result.GapDaysFound == 0 {
		fmt.Println("No significant gap ups found.")
		fmt.Printf("Scanned %d tickers in %s (%d failed)\n",
			result.TotalScanned, result.ScanTime.Round(time.Second), result.FailedCount)
		return nil
	}

	for _, t := range result.Tables {
		if len(t.Records) == 0 {
			continue
		}

		fmt.Printf("--- %s: %d gap-up day(s) ---\n", t.Ticker, len(t.Records))

		table := tablewriter.NewTable(os.Stdout,
			tablewriter.WithHeader([]string{
				"Date", "PD Close", "Open", "Gap %", "Day High", "High Time",
				"Close", "Close %", "Volume", "Crosses", "R/F", "Fade",
			}),
		)

		for i := range t.Records {
			r := &t.Records[i]
			table.Append([]string{
				render.Date(r.Date),
				render.PriceVal(r.PrevClose),
				render.PriceVal(r.Open),
				render.PercentVal(r.GapPercent),
				render.PriceVal(r.DayHigh),
				render.Clock(r.DayHighTime),
				render.PriceVal(r.Close),
				render.PercentVal(r.ClosePercent),
				render.VolumeVal(r.TotalVolume),
				render.Count(r.VWAPCrosses),
				string(r.Label),
				string(r.FadeCategory),
			})
		}

		table.Render()
		fmt.Println()
	}

	fmt.Printf("Found %d gap-up days across %d tickers in %s (%d failed)\n",
		result.GapDaysFound, result.TotalScanned,
		result.ScanTime.Round(time.Second), result.FailedCount)
	return nil
}

func outputJSON(result *model.ScanResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}
