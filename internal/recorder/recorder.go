package recorder

import "time"

// Fetch kinds.
const (
	KindHistory = "history"
	KindQuote   = "quote"
	KindProbe   = "probe"
)

// Fetch outcomes.
const (
	StatusOK    = "ok"
	StatusEmpty = "empty"
	StatusError = "error"
)

// FetchEvent records the outcome of one upstream market-data call.
type FetchEvent struct {
	Time       time.Time `json:"time"`
	Provider   string    `json:"provider"`
	Kind       string    `json:"kind"`
	Ticker     string    `json:"ticker"`
	Interval   string    `json:"interval,omitempty"`
	Status     string    `json:"status"`
	Bars       int       `json:"bars"`
	DurationMs int64     `json:"duration_ms"`
	Error      string    `json:"error,omitempty"`
}

// Recorder journals upstream fetch outcomes for diagnostics.
type Recorder interface {
	RecordFetch(evt *FetchEvent) error
	// RecentFetches returns up to limit events, newest first.
	RecentFetches(limit int) ([]FetchEvent, error)
	// Prune deletes events older than before and returns how many were removed.
	Prune(before time.Time) (int64, error)
	Close() error
}
