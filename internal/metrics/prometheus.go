package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Upstream metrics
	UpstreamFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mrpredictor_upstream_fetches_total",
			Help: "Total number of upstream market-data fetches",
		},
		[]string{"provider", "kind", "status"}, // kind: history|quote, status: ok|empty|error
	)

	UpstreamLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mrpredictor_upstream_latency_seconds",
			Help:    "Upstream fetch latency in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"provider", "kind"},
	)

	// Forecast metrics
	Forecasts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mrpredictor_forecasts_total",
			Help: "Forecast attempts by outcome",
		},
		[]string{"outcome"}, // outcome: produced|insufficient_history|no_price
	)

	// HTTP metrics
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mrpredictor_http_requests_total",
			Help: "Total HTTP requests served",
		},
		[]string{"route", "code"},
	)

	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mrpredictor_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	StreamConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "mrpredictor_stream_connections",
			Help: "Current number of open websocket stream connections",
		},
	)

	// Probe metrics
	ProbeUp = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "mrpredictor_upstream_probe_up",
			Help: "1 if the last upstream probe succeeded, 0 otherwise",
		},
	)

	ProbeLastRun = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "mrpredictor_upstream_probe_last_run_timestamp",
			Help: "Unix timestamp of the last upstream probe",
		},
	)
)

var initOnce sync.Once

// Init registers all metrics with Prometheus. Safe to call more than once.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(UpstreamFetches)
		prometheus.MustRegister(UpstreamLatency)

		prometheus.MustRegister(Forecasts)

		prometheus.MustRegister(HTTPRequests)
		prometheus.MustRegister(HTTPDuration)
		prometheus.MustRegister(StreamConnections)

		prometheus.MustRegister(ProbeUp)
		prometheus.MustRegister(ProbeLastRun)
	})
}

// Handler returns Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordUpstreamFetch records one upstream call.
func RecordUpstreamFetch(provider, kind, status string, duration time.Duration) {
	UpstreamFetches.WithLabelValues(provider, kind, status).Inc()
	UpstreamLatency.WithLabelValues(provider, kind).Observe(duration.Seconds())
}

// RecordForecast records whether a forecast was produced and, if not, why.
func RecordForecast(outcome string) {
	Forecasts.WithLabelValues(outcome).Inc()
}

// RecordHTTPRequest records a served HTTP request.
func RecordHTTPRequest(route string, code int, duration time.Duration) {
	HTTPRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	HTTPDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// RecordProbe records the outcome of an upstream probe.
func RecordProbe(ok bool) {
	if ok {
		ProbeUp.Set(1)
	} else {
		ProbeUp.Set(0)
	}
	ProbeLastRun.SetToCurrentTime()
}
