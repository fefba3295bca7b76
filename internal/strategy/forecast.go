package strategy

import (
	"time"

	"MrPredictor/internal/calculator"
	"MrPredictor/internal/model"
)

// Tuning constants of the momentum heuristic.
const (
	WindowSize   = 15
	MomentumGain = 1.5
	MoveCapRatio = 0.9
	WickRatio    = 0.2

	weightStart = 0.1
	weightStop  = 1.0
)

// Predict builds a one-step-ahead forecast bar from the last WindowSize bars
// of history, anchored at the live price. It returns false when history is
// shorter than the window or the quote is unavailable.
//
// Momentum is the recency-weighted mean of close-open changes (weights ramp
// linearly from 0.1 for the oldest bar to 1.0 for the newest). The proposed
// move is momentum*1.5, clamped to ±0.9*volatility, where volatility is the
// mean high-low range of the window.
func Predict(history []model.Bar, quote model.Quote) (model.Forecast, bool) {
	price, ok := quote.Value()
	if !ok || len(history) < WindowSize {
		return model.Forecast{}, false
	}
	window := history[len(history)-WindowSize:]

	weights := calculator.LinearWeights(weightStart, weightStop, len(window))
	momentum, err := calculator.WeightedMean(calculator.Changes(window), weights)
	if err != nil {
		return model.Forecast{}, false
	}
	volatility, err := calculator.MeanRange(window)
	if err != nil {
		return model.Forecast{}, false
	}

	move := momentum * MomentumGain
	maxMove := volatility * MoveCapRatio
	if abs(move) > maxMove {
		move = sign(move) * maxMove
	}

	open := price
	closePrice := price + move
	wick := volatility * WickRatio

	return model.Forecast{
		Bar: model.Bar{
			Time:  nextBarTime(window),
			Open:  open,
			High:  max(open, closePrice) + wick,
			Low:   min(open, closePrice) - wick,
			Close: closePrice,
		},
		IsPrediction: true,
	}, true
}

// nextBarTime steps one bar past the last bar using the spacing of the last two.
// Returns the zero time when the spacing cannot be derived.
func nextBarTime(bars []model.Bar) time.Time {
	if len(bars) < 2 {
		return time.Time{}
	}
	last, prev := bars[len(bars)-1].Time, bars[len(bars)-2].Time
	if last.IsZero() || prev.IsZero() {
		return time.Time{}
	}
	step := last.Sub(prev)
	if step <= 0 {
		return time.Time{}
	}
	return last.Add(step)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
