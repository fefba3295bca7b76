package scheduler

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"MrPredictor/internal/collector"
	"MrPredictor/internal/recorder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScheduler(f collector.Fetcher) *Scheduler {
	col := collector.NewCollector(f, recorder.NewNoopRecorder(), nil)
	return NewScheduler(context.Background(), col, "BTC-USD")
}

func TestScheduler_StatusBeforeFirstRun(t *testing.T) {
	s := newTestScheduler(&collector.MockFetcher{})
	st := s.Status()
	assert.False(t, st.OK)
	assert.Equal(t, "BTC-USD", st.Ticker)
	assert.True(t, st.CheckedAt.IsZero())
}

func TestScheduler_RunProbeNow(t *testing.T) {
	mock := &collector.MockFetcher{Price: 64000}
	s := newTestScheduler(mock)

	st := s.RunProbeNow()
	assert.True(t, st.OK)
	require.NotNil(t, st.Price)
	assert.Equal(t, 64000.0, *st.Price)
	assert.False(t, st.CheckedAt.IsZero())
	assert.Empty(t, st.Error)
	assert.Equal(t, 1, mock.PriceCalls)

	mock.PriceErr = errors.New("connection refused")
	st = s.RunProbeNow()
	assert.False(t, st.OK)
	assert.Nil(t, st.Price)
	assert.Equal(t, "connection refused", st.Error)
	assert.Equal(t, st, s.Status())
}

func TestScheduler_Register(t *testing.T) {
	s := newTestScheduler(&collector.MockFetcher{})
	require.NoError(t, s.Register("0 */5 * * * *"))
	assert.Len(t, s.Cron.Entries(), 1)

	assert.Error(t, s.Register("not a cron"))

	s.Start()
	s.Stop()
}

func TestScheduler_RunPruneNow(t *testing.T) {
	rec, err := recorder.NewSQLiteRecorder(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	defer rec.Close()

	now := time.Now()
	for _, age := range []time.Duration{10 * 24 * time.Hour, 8 * 24 * time.Hour, time.Hour} {
		require.NoError(t, rec.RecordFetch(&recorder.FetchEvent{
			Time: now.Add(-age), Provider: "mock", Kind: recorder.KindQuote, Ticker: "BTC-USD", Status: recorder.StatusOK,
		}))
	}

	col := collector.NewCollector(&collector.MockFetcher{}, rec, nil)
	s := NewScheduler(context.Background(), col, "BTC-USD")

	n, err := s.RunPruneNow(7 * 24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	events, err := rec.RecentFetches(10)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestScheduler_RegisterPrune(t *testing.T) {
	s := newTestScheduler(&collector.MockFetcher{})
	require.NoError(t, s.Register("0 */5 * * * *"))
	require.NoError(t, s.RegisterPrune("0 0 * * * *", 24*time.Hour))
	assert.Len(t, s.Cron.Entries(), 2)

	assert.Error(t, s.RegisterPrune("0 0 * * * *", 0))
	assert.Error(t, s.RegisterPrune("hourly please", time.Hour))
}
