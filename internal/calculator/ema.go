package calculator

import "PatternSentinel/internal/model"

// EMA computes the exponential moving average of vals with smoothing
// factor 2/(span+1). The recurrence is seeded from the first value, so
// the result is defined from index 0 with no warm-up gap (the
// no-bias-adjustment convention).
func EMA(vals []float64, span int) []model.Value {
	out := make([]model.Value, len(vals))
	if len(vals) == 0 || span <= 0 {
		return out
	}
	alpha := 2.0 / float64(span+1)
	ema := vals[0]
	out[0] = model.Defined(ema)
	for i := 1; i < len(vals); i++ {
		ema = alpha*vals[i] + (1-alpha)*ema
		out[i] = model.Defined(ema)
	}
	return out
}
