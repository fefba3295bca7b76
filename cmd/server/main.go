package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"MrPredictor/internal/api"
	"MrPredictor/internal/catalog"
	"MrPredictor/internal/collector"
	"MrPredictor/internal/config"
	"MrPredictor/internal/metrics"
	"MrPredictor/internal/recorder"
	"MrPredictor/internal/scheduler"
	"MrPredictor/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Bootstrap logger until config provides level and env
	if err := logger.Init("info", "development"); err != nil {
		panic(err)
	}

	// Load config; .env is read first so it can set CONFIG_PATH
	cfg, err := config.Load(config.Path())
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("config validation: %v", err)
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Env); err != nil {
		logger.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("MrPredictor starting...")

	metrics.Init()

	// Init fetcher
	var fetcher collector.Fetcher
	switch cfg.DataSource.Provider {
	case config.ProviderREST:
		fetcher = collector.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	default:
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	logger.Infow("data source ready", "provider", fetcher.Name())

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			logger.Warnw("init sqlite recorder failed, using noop", "error", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}
	defer rec.Close()

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		logger.Fatalf("load catalog: %v", err)
	}

	col := collector.NewCollector(fetcher, rec, cfg.DataSource.Intervals)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, col, cfg.Schedule.ProbeTicker)
	if err := sched.Register(cfg.Schedule.ProbeCron); err != nil {
		logger.Fatalf("register probe: %v", err)
	}
	if err := sched.RegisterPrune(cfg.Schedule.PruneCron, cfg.Database.Retention); err != nil {
		logger.Fatalf("register journal prune: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		logger.Info("RUN_ON_START enabled, probing upstream now")
		go sched.RunProbeNow()
	}

	handler := api.NewHandler(api.Options{
		Catalog:         cat,
		Collector:       col,
		Recorder:        rec,
		Probe:           sched.Status,
		DefaultTicker:   cfg.DataSource.DefaultTicker,
		DefaultInterval: cfg.DataSource.DefaultInterval,
		PushInterval:    cfg.Stream.PushInterval,
	})
	srv := api.NewServer(cfg.Addr(), handler.Routes())

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()
	logger.Infof("MrPredictor is running at http://%s. Press Ctrl+C to stop.", srv.Addr())

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		logger.Info("shutdown signal received, stopping...")
	case err := <-errCh:
		if err != nil {
			logger.Errorw("http server exited", "error", err)
		}
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorw("graceful shutdown", "error", err)
	}
	logger.Info("MrPredictor stopped")
}
