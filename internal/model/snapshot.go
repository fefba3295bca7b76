package model

// Snapshot is the payload served for one (ticker, interval) data request.
// History is never nil; LivePrice, Prediction and KPI are nil when unavailable.
type Snapshot struct {
	Ticker     string    `json:"ticker"`
	Name       string    `json:"name,omitempty"` // display name when the ticker is in the catalog
	Interval   string    `json:"interval"`
	History    []Bar     `json:"history"`
	LivePrice  *float64  `json:"live_price"`
	Prediction *Forecast `json:"prediction"`
	KPI        *KPI      `json:"kpi"`
	Timestamp  string    `json:"timestamp"`
}
