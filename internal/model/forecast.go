package model

// Forecast is a synthetic one-step-ahead bar produced by the momentum heuristic.
type Forecast struct {
	Bar
	IsPrediction bool `json:"is_prediction"`
}

// SignalType is the trading signal derived from a forecast.
type SignalType string

const (
	SignalBuy     SignalType = "BUY"
	SignalSell    SignalType = "SELL"
	SignalNeutral SignalType = "NEUTRAL"
)

// KPI holds the dashboard tiles derived from the live price and the forecast.
type KPI struct {
	Target    float64    `json:"target"`
	Movement  float64    `json:"movement"`
	Direction string     `json:"direction"` // "up" or "down"
	Signal    SignalType `json:"signal"`
}
