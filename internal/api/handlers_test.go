package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"MrPredictor/internal/catalog"
	"MrPredictor/internal/collector"
	"MrPredictor/internal/recorder"
	"MrPredictor/internal/scheduler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	mock    *collector.MockFetcher
	journal *stubJournal
	handler http.Handler
}

type stubJournal struct {
	recorder.NoopRecorder
	events   []recorder.FetchEvent
	lastLim  int
	failList bool
}

func (s *stubJournal) RecordFetch(e *recorder.FetchEvent) error {
	s.events = append([]recorder.FetchEvent{*e}, s.events...)
	return nil
}

func (s *stubJournal) RecentFetches(limit int) ([]recorder.FetchEvent, error) {
	s.lastLim = limit
	if s.failList {
		return nil, errors.New("database is locked")
	}
	if len(s.events) > limit {
		return s.events[:limit], nil
	}
	return s.events, nil
}

func newFixture(t *testing.T, probe func() scheduler.ProbeStatus) *fixture {
	t.Helper()
	mock := &collector.MockFetcher{Bars: collector.GenerateMockBars(100, 60), Price: 100.5}
	journal := &stubJournal{}
	col := collector.NewCollector(mock, journal, map[string]string{"1m": "1d", "1h": "1mo", "1d": "1y"})
	h := NewHandler(Options{
		Catalog:         catalog.Default(),
		Collector:       col,
		Recorder:        journal,
		Probe:           probe,
		DefaultTicker:   "BTC-USD",
		DefaultInterval: "1h",
		PushInterval:    time.Hour,
	})
	return &fixture{mock: mock, journal: journal, handler: h.Routes()}
}

func (f *fixture) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

func TestHandleIndex(t *testing.T) {
	f := newFixture(t, nil)
	rr := f.get(t, "/")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rr.Body.String(), "PREDICTOR")

	assert.Equal(t, http.StatusNotFound, f.get(t, "/nope").Code)
}

func TestHandleStocks_PreservesOrder(t *testing.T) {
	f := newFixture(t, nil)
	rr := f.get(t, "/api/stocks")
	require.Equal(t, http.StatusOK, rr.Code)

	body := rr.Body.String()
	first := catalog.Default()[0].Name
	last := catalog.Default()[len(catalog.Default())-1].Name
	assert.Less(t, strings.Index(body, first), strings.Index(body, last))
	assert.Contains(t, body, `"ticker":"AAPL"`)
}

func TestHandleData(t *testing.T) {
	f := newFixture(t, nil)
	rr := f.get(t, "/api/data?ticker=ETH-USD&interval=1d")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	body := decodeBody(t, rr)
	assert.Equal(t, "ETH-USD", body["ticker"])
	assert.Equal(t, "Ethereum", body["name"])
	assert.Equal(t, "1d", body["interval"])
	assert.Len(t, body["history"], collector.HistoryLimit)
	assert.Equal(t, 100.5, body["live_price"])
	assert.Equal(t, "1y", f.mock.LastLookback)

	pred, ok := body["prediction"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, pred["is_prediction"])
	assert.Equal(t, 100.5, pred["open"])

	kpi, ok := body["kpi"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, []interface{}{"BUY", "SELL", "NEUTRAL"}, kpi["signal"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestHandleData_Defaults(t *testing.T) {
	f := newFixture(t, nil)
	body := decodeBody(t, f.get(t, "/api/data"))
	assert.Equal(t, "BTC-USD", body["ticker"])
	assert.Equal(t, "1h", body["interval"])
	assert.Equal(t, "1mo", f.mock.LastLookback)
}

func TestHandleData_UpstreamFailureStill200(t *testing.T) {
	f := newFixture(t, nil)
	f.mock.HistoryErr = collector.ErrUpstream
	f.mock.PriceErr = collector.ErrUpstream

	rr := f.get(t, "/api/data?ticker=ZZZZ&interval=5m")
	require.Equal(t, http.StatusOK, rr.Code)

	body := decodeBody(t, rr)
	assert.NotContains(t, body, "name")
	assert.Equal(t, []interface{}{}, body["history"])
	assert.Nil(t, body["live_price"])
	assert.Nil(t, body["prediction"])
	assert.Nil(t, body["kpi"])
	assert.Equal(t, "1y", f.mock.LastLookback)
}

func TestHandleFetches(t *testing.T) {
	f := newFixture(t, nil)
	f.get(t, "/api/data")

	rr := f.get(t, "/api/fetches")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, DefaultFetchLimit, f.journal.lastLim)

	var events []recorder.FetchEvent
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &events))
	require.Len(t, events, 2)
	assert.Equal(t, recorder.KindQuote, events[0].Kind)
	assert.Equal(t, recorder.KindHistory, events[1].Kind)

	f.get(t, "/api/fetches?limit=1000")
	assert.Equal(t, MaxFetchLimit, f.journal.lastLim)
	f.get(t, "/api/fetches?limit=5")
	assert.Equal(t, 5, f.journal.lastLim)
	f.get(t, "/api/fetches?limit=abc")
	assert.Equal(t, DefaultFetchLimit, f.journal.lastLim)

	f.journal.failList = true
	assert.Equal(t, http.StatusInternalServerError, f.get(t, "/api/fetches").Code)
}

func TestHandleHealth(t *testing.T) {
	f := newFixture(t, nil)
	body := decodeBody(t, f.get(t, "/health"))
	assert.Equal(t, "ok", body["status"])
	assert.Nil(t, body["probe"])

	failed := scheduler.ProbeStatus{Ticker: "BTC-USD", CheckedAt: time.Now(), Error: "timeout"}
	f = newFixture(t, func() scheduler.ProbeStatus { return failed })
	rr := f.get(t, "/health")
	assert.Equal(t, http.StatusOK, rr.Code)
	body = decodeBody(t, rr)
	assert.Equal(t, "degraded", body["status"])
	probe := body["probe"].(map[string]interface{})
	assert.Equal(t, "timeout", probe["error"])
}

func TestMiddleware_CORSAndRequestID(t *testing.T) {
	f := newFixture(t, nil)

	rr := f.get(t, "/api/stocks")
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, rr.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodOptions, "/api/data", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rr = httptest.NewRecorder()
	f.handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "abc-123", rr.Header().Get(requestIDHeader))
	assert.Equal(t, 0, f.mock.HistoryCalls)
}

func TestHandleMetrics(t *testing.T) {
	f := newFixture(t, nil)
	rr := f.get(t, "/metrics")
	assert.Equal(t, http.StatusOK, rr.Code)
}
