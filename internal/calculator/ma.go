package calculator

import (
	"errors"
	"fmt"
)

// ExtrapolationWindow is the number of trailing prices averaged per step.
const ExtrapolationWindow = 5

// MaxExtrapolationSteps bounds a single Extrapolate call.
const MaxExtrapolationSteps = 100000

// CalculateSMA computes the simple moving average of the given prices over the specified period.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// Extrapolate predicts the next steps prices by repeatedly appending the mean
// of the trailing window. Shorter series are averaged in full.
// The input slice is not modified.
func Extrapolate(prices []float64, window, steps int) ([]float64, error) {
	if len(prices) == 0 {
		return nil, errors.New("no prices to extrapolate from")
	}
	if window <= 0 {
		return nil, errors.New("window must be positive")
	}
	if steps < 0 {
		return nil, errors.New("steps must not be negative")
	}
	if steps > MaxExtrapolationSteps {
		return nil, fmt.Errorf("steps must not exceed %d", MaxExtrapolationSteps)
	}

	series := append([]float64(nil), prices...)
	predictions := []float64{}
	for i := 0; i < steps; i++ {
		period := min(window, len(series))
		next, err := CalculateSMA(series, period)
		if err != nil {
			return nil, err
		}
		predictions = append(predictions, next)
		series = append(series, next)
	}
	return predictions, nil
}
