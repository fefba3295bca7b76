package api

import (
	"context"
	_ "embed"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"MrPredictor/internal/collector"
	"MrPredictor/internal/metrics"
	"MrPredictor/internal/model"
	"MrPredictor/internal/recorder"
	"MrPredictor/internal/scheduler"
	"MrPredictor/pkg/logger"
)

// Paging limits for /api/fetches.
const (
	DefaultFetchLimit = 20
	MaxFetchLimit     = 200
)

//go:embed static/index.html
var indexHTML []byte

// Options configures a Handler.
type Options struct {
	Catalog         model.Catalog
	Collector       *collector.Collector
	Recorder        recorder.Recorder
	Probe           func() scheduler.ProbeStatus // optional
	DefaultTicker   string
	DefaultInterval string
	PushInterval    time.Duration
}

// Handler serves the dashboard, the JSON API and the live stream.
type Handler struct {
	catalog         model.Catalog
	collector       *collector.Collector
	recorder        recorder.Recorder
	probe           func() scheduler.ProbeStatus
	defaultTicker   string
	defaultInterval string
	pushInterval    time.Duration
	started         time.Time
}

// NewHandler creates a Handler.
func NewHandler(opts Options) *Handler {
	h := &Handler{
		catalog:         opts.Catalog,
		collector:       opts.Collector,
		recorder:        opts.Recorder,
		probe:           opts.Probe,
		defaultTicker:   opts.DefaultTicker,
		defaultInterval: opts.DefaultInterval,
		pushInterval:    opts.PushInterval,
		started:         time.Now(),
	}
	if h.recorder == nil {
		h.recorder = recorder.NewNoopRecorder()
	}
	if h.defaultTicker == "" {
		h.defaultTicker = "BTC-USD"
	}
	if h.defaultInterval == "" {
		h.defaultInterval = "1h"
	}
	if h.pushInterval <= 0 {
		h.pushInterval = 5 * time.Second
	}
	return h
}

// Routes returns the router with all middleware applied.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", h.handleIndex)
	mux.HandleFunc("GET /api/stocks", h.handleStocks)
	mux.HandleFunc("GET /api/data", h.handleData)
	mux.HandleFunc("GET /api/fetches", h.handleFetches)
	mux.HandleFunc("GET /ws/stream", h.handleStream)
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.Handle("GET /metrics", metrics.Handler())

	return requestID(cors(instrument(mux)))
}

func (h *Handler) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

func (h *Handler) handleStocks(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog)
}

// handleData always answers 200; upstream failures surface as empty history and null fields.
func (h *Handler) handleData(w http.ResponseWriter, r *http.Request) {
	ticker, interval := h.selection(r)
	writeJSON(w, http.StatusOK, h.snapshot(r.Context(), ticker, interval))
}

// snapshot runs the collector pipeline and labels the result with the catalog name.
func (h *Handler) snapshot(ctx context.Context, ticker, interval string) model.Snapshot {
	snap := h.collector.Snapshot(ctx, ticker, interval)
	if stock, ok := h.catalog.Lookup(ticker); ok {
		snap.Name = stock.Name
	}
	return snap
}

func (h *Handler) handleFetches(w http.ResponseWriter, r *http.Request) {
	limit := DefaultFetchLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = min(n, MaxFetchLimit)
		}
	}
	events, err := h.recorder.RecentFetches(limit)
	if err != nil {
		logger.Errorw("list fetches", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "fetch journal unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, events)
}

type healthResponse struct {
	Status        string                 `json:"status"`
	UptimeSeconds int64                  `json:"uptime_seconds"`
	Probe         *scheduler.ProbeStatus `json:"probe,omitempty"`
}

// handleHealth reports "degraded" when the last upstream probe failed. The server itself is up either way.
func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	resp := healthResponse{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
	}
	if h.probe != nil {
		st := h.probe()
		resp.Probe = &st
		if !st.CheckedAt.IsZero() && !st.OK {
			resp.Status = "degraded"
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) selection(r *http.Request) (string, string) {
	q := r.URL.Query()
	ticker := q.Get("ticker")
	if ticker == "" {
		ticker = h.defaultTicker
	}
	interval := q.Get("interval")
	if interval == "" {
		interval = h.defaultInterval
	}
	return ticker, interval
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warnw("write response", "error", err)
	}
}
