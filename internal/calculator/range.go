package calculator

import (
	"math"

	"PatternSentinel/internal/model"
)

// WindowMax returns the maximum of vals[from:to). The result is
// undefined when the range is empty or falls outside the slice.
func WindowMax(vals []float64, from, to int) model.Value {
	if from < 0 || to > len(vals) || from >= to {
		return model.Value{}
	}
	max := math.Inf(-1)
	for i := from; i < to; i++ {
		if vals[i] > max {
			max = vals[i]
		}
	}
	return model.Defined(max)
}

// WindowMin returns the minimum of vals[from:to). The result is
// undefined when the range is empty or falls outside the slice.
func WindowMin(vals []float64, from, to int) model.Value {
	if from < 0 || to > len(vals) || from >= to {
		return model.Value{}
	}
	min := math.Inf(1)
	for i := from; i < to; i++ {
		if vals[i] < min {
			min = vals[i]
		}
	}
	return model.Defined(min)
}
