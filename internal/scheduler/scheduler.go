package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"TradeTape/internal/config"
	"TradeTape/internal/runner"
)

// BatchRunner runs one ticker.
type BatchRunner interface {
	RunTicker(ctx context.Context, t config.Ticker) (*runner.Result, error)
}

// Scheduler re-runs the batch for a fixed set of tickers on a cron spec.
type Scheduler struct {
	Cron    *cron.Cron
	Runner  BatchRunner
	Tickers []config.Ticker
	Ctx     context.Context

	mu  sync.Mutex // one batch at a time
	log *zap.Logger
}

// New creates a Scheduler. Jobs use ctx, so cancelling it ends a running batch.
func New(ctx context.Context, r BatchRunner, tickers []config.Ticker, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		Cron:    cron.New(cron.WithSeconds()),
		Runner:  r,
		Tickers: tickers,
		Ctx:     ctx,
		log:     log,
	}
}

// Register adds the batch job. spec has a leading seconds field.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.batchTask); err != nil {
		return fmt.Errorf("register batch task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info("scheduler started", zap.Int("entries", len(s.Cron.Entries())))
}

// Stop stops the scheduler and waits for a running batch to return.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.log.Info("scheduler stopped")
}

// RunNow runs the batch immediately and returns the first hard failure.
func (s *Scheduler) RunNow() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.Tickers {
		if err := s.Ctx.Err(); err != nil {
			return err
		}
		if _, err := s.Runner.RunTicker(s.Ctx, t); err != nil {
			return fmt.Errorf("ticker %s: %w", t.Symbol, err)
		}
	}
	return nil
}

func (s *Scheduler) batchTask() {
	s.log.Info("running scheduled batch", zap.Int("tickers", len(s.Tickers)))
	if err := s.RunNow(); err != nil {
		s.log.Error("scheduled batch failed", zap.Error(err))
	}
}
