package calculator

import (
	"errors"

	"MrPredictor/internal/model"
)

// MeanRange returns the arithmetic mean of high minus low across the bars.
func MeanRange(bars []model.Bar) (float64, error) {
	if len(bars) == 0 {
		return 0, errors.New("no bars provided")
	}
	sum := 0.0
	for _, b := range bars {
		sum += b.Range()
	}
	return sum / float64(len(bars)), nil
}

// Changes extracts close minus open for every bar, in order.
func Changes(bars []model.Bar) []float64 {
	changes := make([]float64, len(bars))
	for i, b := range bars {
		changes[i] = b.Change()
	}
	return changes
}
