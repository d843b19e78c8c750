package model

// IndicatorFrame holds the derived per-bar indicator columns of one
// Series. Columns are positionally aligned with the source bars; each
// value depends only on bars at or before its own position, and positions
// where a rolling window is not yet full carry undefined Values.
type IndicatorFrame struct {
	MA5  []Value
	MA10 []Value
	MA20 []Value
	MA60 []Value

	VolMA5  []Value
	VolMA60 []Value

	DIF  []Value
	DEA  []Value
	MACD []Value
}
