package collector

import (
	"context"
	"errors"
	"time"

	"MrPredictor/internal/metrics"
	"MrPredictor/internal/model"
	"MrPredictor/internal/recorder"
	"MrPredictor/internal/strategy"
	"MrPredictor/pkg/logger"
)

const (
	// HistoryLimit is the number of trailing bars returned to clients.
	HistoryLimit = 50
	// FallbackLookback is used for intervals missing from the lookup table.
	FallbackLookback = "1y"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Bars       []model.Bar
	Price      float64
	HistoryErr error
	PriceErr   error

	HistoryCalls int
	PriceCalls   int
	LastLookback string
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchHistory(_ context.Context, _, _, lookback string) ([]model.Bar, error) {
	m.HistoryCalls++
	m.LastLookback = lookback
	if m.HistoryErr != nil {
		return nil, m.HistoryErr
	}
	return m.Bars, nil
}

func (m *MockFetcher) FetchLivePrice(_ context.Context, _ string) (float64, error) {
	m.PriceCalls++
	if m.PriceErr != nil {
		return 0, m.PriceErr
	}
	return m.Price, nil
}

// GenerateMockBars builds count hourly bars drifting gently around basePrice.
func GenerateMockBars(basePrice float64, count int) []model.Bar {
	bars := make([]model.Bar, count)
	start := time.Now().Truncate(time.Hour).Add(-time.Duration(count) * time.Hour)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.Bar{
			Time:   start.Add(time.Duration(i) * time.Hour),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// Collector orchestrates upstream fetches and the forecast for one request.
// Fetch failures never propagate; they degrade to empty history or an
// unavailable quote.
type Collector struct {
	Fetcher   Fetcher
	Recorder  recorder.Recorder
	Intervals map[string]string // bar interval -> lookback range

	now func() time.Time
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, rec recorder.Recorder, intervals map[string]string) *Collector {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Collector{
		Fetcher:   fetcher,
		Recorder:  rec,
		Intervals: intervals,
		now:       time.Now,
	}
}

// Lookback returns the upstream lookback range for a bar interval.
func (c *Collector) Lookback(interval string) string {
	if rng, ok := c.Intervals[interval]; ok {
		return rng
	}
	return FallbackLookback
}

// History fetches bars for (ticker, interval). Returns an empty, non-nil slice on failure.
func (c *Collector) History(ctx context.Context, ticker, interval string) []model.Bar {
	start := time.Now()
	bars, err := c.Fetcher.FetchHistory(ctx, ticker, interval, c.Lookback(interval))
	c.journal(recorder.KindHistory, ticker, interval, len(bars), time.Since(start), err)
	if err != nil {
		logger.Warnw("history fetch failed", "ticker", ticker, "interval", interval, "error", err)
		return []model.Bar{}
	}
	if bars == nil {
		return []model.Bar{}
	}
	return bars
}

// LivePrice fetches the latest price for ticker.
func (c *Collector) LivePrice(ctx context.Context, ticker string) model.Quote {
	return c.quote(ctx, recorder.KindQuote, ticker)
}

// Probe fetches the latest price and journals it as a probe.
func (c *Collector) Probe(ctx context.Context, ticker string) (model.Quote, error) {
	start := time.Now()
	price, err := c.Fetcher.FetchLivePrice(ctx, ticker)
	c.journal(recorder.KindProbe, ticker, "", 0, time.Since(start), err)
	if err != nil {
		return model.Unavailable, err
	}
	return model.PriceQuote(price), nil
}

func (c *Collector) quote(ctx context.Context, kind, ticker string) model.Quote {
	start := time.Now()
	price, err := c.Fetcher.FetchLivePrice(ctx, ticker)
	c.journal(kind, ticker, "", 0, time.Since(start), err)
	if err != nil {
		logger.Warnw("live price fetch failed", "ticker", ticker, "error", err)
		return model.Unavailable
	}
	return model.PriceQuote(price)
}

// Snapshot runs the full request pipeline: history, live price, forecast and KPI.
func (c *Collector) Snapshot(ctx context.Context, ticker, interval string) model.Snapshot {
	history := c.History(ctx, ticker, interval)
	quote := c.LivePrice(ctx, ticker)

	snap := model.Snapshot{
		Ticker:    ticker,
		Interval:  interval,
		History:   trim(history, HistoryLimit),
		Timestamp: c.now().Format(time.RFC3339),
	}

	price, ok := quote.Value()
	if ok {
		snap.LivePrice = &price
	}

	forecast, produced := strategy.Predict(history, quote)
	switch {
	case produced:
		kpi := strategy.Classify(price, forecast)
		snap.Prediction = &forecast
		snap.KPI = &kpi
		metrics.RecordForecast("produced")
	case !ok:
		metrics.RecordForecast("no_price")
	default:
		metrics.RecordForecast("insufficient_history")
	}

	return snap
}

func (c *Collector) journal(kind, ticker, interval string, bars int, elapsed time.Duration, err error) {
	status := recorder.StatusOK
	errText := ""
	switch {
	case errors.Is(err, ErrNoData):
		status = recorder.StatusEmpty
		errText = err.Error()
	case err != nil:
		status = recorder.StatusError
		errText = err.Error()
	}

	metrics.RecordUpstreamFetch(c.Fetcher.Name(), kind, status, elapsed)

	if rerr := c.Recorder.RecordFetch(&recorder.FetchEvent{
		Time:       c.now(),
		Provider:   c.Fetcher.Name(),
		Kind:       kind,
		Ticker:     ticker,
		Interval:   interval,
		Status:     status,
		Bars:       bars,
		DurationMs: elapsed.Milliseconds(),
		Error:      errText,
	}); rerr != nil {
		logger.Errorw("record fetch", "error", rerr)
	}
}

func trim(bars []model.Bar, limit int) []model.Bar {
	if len(bars) > limit {
		return bars[len(bars)-limit:]
	}
	return bars
}
