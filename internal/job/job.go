package job

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"StockIndicators/internal/collector"
	"StockIndicators/internal/model"
	"StockIndicators/internal/pipeline"
	"StockIndicators/pkg/logger"
)

// PriceStore is the storage surface the job needs.
type PriceStore interface {
	InsertDailyBars(ctx context.Context, ticker string, bars []model.OHLCV) error
	LoadPricePoints(ctx context.Context) ([]model.PricePoint, error)
	ReplaceIndicators(ctx context.Context, rows []model.IndicatorRow) error
}

// Job orchestrates ingestion and indicator materialization around the
// pure pipeline core.
type Job struct {
	Fetcher  collector.Fetcher
	Store    PriceStore
	Pipeline *pipeline.Pipeline
	log      *logger.Logger
}

// New creates a Job.
func New(f collector.Fetcher, s PriceStore, p *pipeline.Pipeline, log *logger.Logger) *Job {
	return &Job{Fetcher: f, Store: s, Pipeline: p, log: log}
}

// Ingest fetches daily history for every ticker and upserts it into the
// price store. A failing ticker is logged and skipped so the remaining
// tickers still ingest; the summary error reports how many failed.
func (j *Job) Ingest(ctx context.Context, tickers []string, start, end time.Time) error {
	var failed int
	for _, t := range tickers {
		if err := ctx.Err(); err != nil {
			return err
		}
		bars, err := j.Fetcher.FetchDailyHistory(ctx, t, start, end)
		if err != nil {
			j.log.Error("fetch daily history", zap.String("ticker", t), zap.Error(err))
			failed++
			continue
		}
		if err := j.Store.InsertDailyBars(ctx, t, bars); err != nil {
			j.log.Error("store daily bars", zap.String("ticker", t), zap.Error(err))
			failed++
			continue
		}
		j.log.Info("ingested daily bars", zap.String("ticker", t), zap.Int("rows", len(bars)))
	}
	if failed > 0 {
		return fmt.Errorf("ingest: %d of %d tickers failed", failed, len(tickers))
	}
	return nil
}

// Compute rebuilds the full indicator table from stored prices. Rejected
// partitions are logged and skipped; the healthy tickers still
// materialize (recomputation always rewrites the whole table).
func (j *Job) Compute(ctx context.Context) error {
	points, err := j.Store.LoadPricePoints(ctx)
	if err != nil {
		return fmt.Errorf("load prices: %w", err)
	}

	enriched, err := j.Pipeline.Run(points)
	if err != nil {
		var perrs pipeline.PartitionErrors
		if !errors.As(err, &perrs) {
			return fmt.Errorf("run pipeline: %w", err)
		}
		for _, pe := range perrs {
			j.log.Warn("partition rejected", zap.String("ticker", pe.Ticker), zap.Error(pe.Err))
		}
	}

	rows := pipeline.Rows(enriched)
	if err := j.Store.ReplaceIndicators(ctx, rows); err != nil {
		return fmt.Errorf("replace indicators: %w", err)
	}
	j.log.Info("indicators materialized", zap.Int("rows", len(rows)))
	return nil
}

// Refresh ingests up to now and recomputes. An ingest failure does not
// stop the recompute: stale-but-consistent indicators beat none.
func (j *Job) Refresh(ctx context.Context, tickers []string, start time.Time) error {
	if err := j.Ingest(ctx, tickers, start, time.Now()); err != nil {
		j.log.Warn("ingest incomplete, computing from stored prices", zap.Error(err))
	}
	return j.Compute(ctx)
}
