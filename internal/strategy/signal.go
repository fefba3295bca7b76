package strategy

import "MrPredictor/internal/model"

// NeutralBand is the fraction of the live price within which a forecast
// move is reported as NEUTRAL.
const NeutralBand = 0.0002

// Classify derives the KPI tiles from the live price and the forecast target.
func Classify(price float64, f model.Forecast) model.KPI {
	target := f.Close
	delta := target - price

	direction := "up"
	if delta < 0 {
		direction = "down"
	}

	var signal model.SignalType
	switch {
	case abs(delta) < price*NeutralBand:
		signal = model.SignalNeutral
	case delta > 0:
		signal = model.SignalBuy
	default:
		signal = model.SignalSell
	}

	return model.KPI{
		Target:    target,
		Movement:  abs(delta),
		Direction: direction,
		Signal:    signal,
	}
}
