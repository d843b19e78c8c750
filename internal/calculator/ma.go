package calculator

import "PatternSentinel/internal/model"

// SMA computes the simple moving average of vals over the given window.
// The value at index i is the arithmetic mean of vals[i-window+1 .. i];
// positions before the window is full are undefined.
func SMA(vals []float64, window int) []model.Value {
	out := make([]model.Value, len(vals))
	if window <= 0 {
		return out
	}
	sum := 0.0
	for i, v := range vals {
		sum += v
		if i >= window {
			sum -= vals[i-window]
		}
		if i >= window-1 {
			out[i] = model.Defined(sum / float64(window))
		}
	}
	return out
}
