package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"MrPredictor/internal/collector"
	"MrPredictor/internal/metrics"
	"MrPredictor/pkg/logger"

	"github.com/robfig/cron/v3"
)

// probeTimeout bounds a single probe run.
const probeTimeout = 30 * time.Second

// ProbeStatus is the outcome of the most recent upstream probe.
type ProbeStatus struct {
	OK        bool      `json:"ok"`
	Ticker    string    `json:"ticker"`
	Price     *float64  `json:"price,omitempty"`
	CheckedAt time.Time `json:"checked_at,omitzero"`
	LatencyMs int64     `json:"latency_ms"`
	Error     string    `json:"error,omitempty"`
}

// Scheduler manages the periodic upstream probe.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Ticker    string
	Ctx       context.Context

	mu     sync.RWMutex
	status ProbeStatus
}

// NewScheduler creates a new Scheduler probing ticker through col.
func NewScheduler(ctx context.Context, col *collector.Collector, ticker string) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Ticker:    ticker,
		Ctx:       ctx,
		status:    ProbeStatus{Ticker: ticker},
	}
}

// Register adds the probe job with the given cron spec (seconds field included).
func (s *Scheduler) Register(probeCron string) error {
	if _, err := s.Cron.AddFunc(probeCron, s.probe); err != nil {
		return fmt.Errorf("register probe task: %w", err)
	}
	return nil
}

// RegisterPrune adds the job deleting fetch journal rows older than retention.
func (s *Scheduler) RegisterPrune(pruneCron string, retention time.Duration) error {
	if retention <= 0 {
		return fmt.Errorf("register prune task: retention must be positive, got %s", retention)
	}
	if _, err := s.Cron.AddFunc(pruneCron, func() { _, _ = s.RunPruneNow(retention) }); err != nil {
		return fmt.Errorf("register prune task: %w", err)
	}
	return nil
}

// RunPruneNow deletes journal rows older than retention and returns the count removed.
func (s *Scheduler) RunPruneNow(retention time.Duration) (int64, error) {
	n, err := s.Collector.Recorder.Prune(time.Now().Add(-retention))
	if err != nil {
		logger.Errorw("prune fetch journal", "error", err)
		return 0, err
	}
	logger.Infow("fetch journal pruned", "rows", n, "retention", retention.String())
	return n, nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	logger.Info("scheduler started")
}

// Stop stops the cron scheduler and waits for a running probe to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	logger.Info("scheduler stopped")
}

// RunProbeNow executes the probe immediately (for RUN_ON_START).
func (s *Scheduler) RunProbeNow() ProbeStatus {
	s.probe()
	return s.Status()
}

// Status returns the last probe result.
func (s *Scheduler) Status() ProbeStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func (s *Scheduler) probe() {
	ctx, cancel := context.WithTimeout(s.Ctx, probeTimeout)
	defer cancel()

	start := time.Now()
	quote, err := s.Collector.Probe(ctx, s.Ticker)
	st := ProbeStatus{
		OK:        err == nil,
		Ticker:    s.Ticker,
		CheckedAt: start.UTC(),
		LatencyMs: time.Since(start).Milliseconds(),
	}
	if err != nil {
		st.Error = err.Error()
		logger.Warnw("upstream probe failed", "ticker", s.Ticker, "error", err)
	} else {
		price := quote.Price
		st.Price = &price
		logger.Debugw("upstream probe ok", "ticker", s.Ticker, "price", price, "latency_ms", st.LatencyMs)
	}
	metrics.RecordProbe(st.OK)

	s.mu.Lock()
	s.status = st
	s.mu.Unlock()
}
