package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"StockIndicators/internal/job"
	"StockIndicators/pkg/logger"
)

// Scheduler triggers the daily ingest-and-recompute run.
type Scheduler struct {
	Cron    *cron.Cron
	Job     *job.Job
	Tickers []string
	Start0  time.Time // earliest date to ingest from
	Ctx     context.Context
	log     *logger.Logger
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, j *job.Job, tickers []string, start time.Time, log *logger.Logger) *Scheduler {
	return &Scheduler{
		Cron:    cron.New(cron.WithSeconds()),
		Job:     j,
		Tickers: tickers,
		Start0:  start,
		Ctx:     ctx,
		log:     log,
	}
}

// RegisterAll registers the daily refresh task.
func (s *Scheduler) RegisterAll(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	s.log.Info("scheduler stopped")
}

// RunNow executes the refresh immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.dailyTask()
}

func (s *Scheduler) dailyTask() {
	s.log.Info("running daily refresh", zap.Int("tickers", len(s.Tickers)))
	if err := s.Job.Refresh(s.Ctx, s.Tickers, s.Start0); err != nil {
		s.log.Error("daily refresh", zap.Error(err))
		return
	}
	s.log.Info("daily refresh complete")
}
