package calculator

import (
	"errors"
	"fmt"
)

// LinearWeights returns n evenly spaced weights from start to stop inclusive.
// A single weight equals start.
func LinearWeights(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	weights := make([]float64, n)
	if n == 1 {
		weights[0] = start
		return weights
	}
	step := (stop - start) / float64(n-1)
	for i := range weights {
		weights[i] = start + float64(i)*step
	}
	weights[n-1] = stop
	return weights
}

// WeightedMean computes sum(values*weights)/sum(weights).
func WeightedMean(values, weights []float64) (float64, error) {
	if len(values) != len(weights) {
		return 0, fmt.Errorf("length mismatch: %d values, %d weights", len(values), len(weights))
	}
	if len(values) == 0 {
		return 0, errors.New("no values provided")
	}
	var num, den float64
	for i, v := range values {
		num += v * weights[i]
		den += weights[i]
	}
	if den == 0 {
		return 0, errors.New("weights sum to zero")
	}
	return num / den, nil
}
