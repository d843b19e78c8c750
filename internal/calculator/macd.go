package calculator

import "PatternSentinel/internal/model"

// MACD computes the dif/dea/macd triple over the closes:
//
//	dif  = ema(fast) - ema(slow)
//	dea  = ema(dif, signal)
//	macd = 2 * (dif - dea)
//
// All three columns are defined from index 0 because the underlying EMAs
// carry no warm-up gap.
func MACD(closes []float64, fast, slow, signal int) (dif, dea, macd []model.Value) {
	n := len(closes)
	dif = make([]model.Value, n)
	macd = make([]model.Value, n)

	emaFast := EMA(closes, fast)
	emaSlow := EMA(closes, slow)

	difRaw := make([]float64, n)
	for i := 0; i < n; i++ {
		difRaw[i] = emaFast[i].Val - emaSlow[i].Val
		dif[i] = model.Defined(difRaw[i])
	}

	dea = EMA(difRaw, signal)
	for i := 0; i < n; i++ {
		macd[i] = model.Defined(2 * (dif[i].Val - dea[i].Val))
	}
	return dif, dea, macd
}
