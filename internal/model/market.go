package model

import "time"

// Bar represents a single OHLC candlestick.
type Bar struct {
	Time   time.Time `json:"time,omitzero"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume,omitempty"`
}

// Change is close minus open.
func (b Bar) Change() float64 { return b.Close - b.Open }

// Range is high minus low.
func (b Bar) Range() float64 { return b.High - b.Low }

// Quote is the outcome of a live price lookup. Available is false when the
// upstream fetch failed, so a zero Price is never mistaken for a failure.
type Quote struct {
	Price     float64
	Available bool
}

// PriceQuote returns an available quote.
func PriceQuote(price float64) Quote { return Quote{Price: price, Available: true} }

// Unavailable is the quote returned when no live price could be fetched.
var Unavailable = Quote{}

// Value returns the price and whether it is available.
func (q Quote) Value() (float64, bool) { return q.Price, q.Available }
