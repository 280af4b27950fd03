package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"StockIndicators/internal/collector"
	"StockIndicators/internal/config"
	"StockIndicators/internal/job"
	"StockIndicators/internal/pipeline"
	"StockIndicators/internal/scheduler"
	"StockIndicators/internal/store"
	"StockIndicators/pkg/logger"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "indicators",
	Short: "Daily stock indicator pipeline (30-day MA, 14-day RSI)",
}

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Fetch daily bars for the configured tickers and store them",
	RunE:  runIngest,
}

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Recompute the indicator table from stored prices",
	RunE:  runCompute,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the daily refresh on a cron schedule until interrupted",
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "configs/config.yaml", "path to config file")
	rootCmd.AddCommand(ingestCmd, computeCmd, serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type app struct {
	cfg   *config.Config
	log   *logger.Logger
	store *store.SQLiteStore
	job   *job.Job
}

func (a *app) close() {
	a.store.Close()
	_ = a.log.Sync()
}

// setup loads config and builds the shared dependencies.
func setup() (*app, error) {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	st, err := store.Open(cfg.Database.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	appLogger.Info("sqlite store opened", zap.String("path", cfg.Database.SQLitePath))

	var fetcher collector.Fetcher
	if cfg.DataSource.BaseURL != "" {
		fetcher = collector.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	appLogger.Info("data source ready", zap.String("fetcher", fetcher.Name()))

	pl := &pipeline.Pipeline{Workers: cfg.Pipeline.Workers}
	return &app{
		cfg:   cfg,
		log:   appLogger,
		store: st,
		job:   job.New(fetcher, st, pl, appLogger),
	}, nil
}

func runIngest(cmd *cobra.Command, _ []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.close()

	start, err := a.cfg.StartTime()
	if err != nil {
		return err
	}
	return a.job.Ingest(cmd.Context(), a.cfg.Data.Tickers, start, time.Now())
}

func runCompute(cmd *cobra.Command, _ []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.close()

	return a.job.Compute(cmd.Context())
}

func runServe(_ *cobra.Command, _ []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.close()

	start, err := a.cfg.StartTime()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, a.job, a.cfg.Data.Tickers, start, a.log)
	if err := sched.RegisterAll(a.cfg.Schedule.DailyCron); err != nil {
		return fmt.Errorf("register cron tasks: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		a.log.Info("RUN_ON_START enabled, refreshing now")
		go sched.RunNow()
	}

	a.log.Info("indicators service running, press Ctrl+C to stop")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received, stopping")
	cancel()
	return nil
}
