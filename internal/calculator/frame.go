package calculator

import "PatternSentinel/internal/model"

// Frame computes the full indicator frame for a series: the close moving
// averages (5/10/20/60), the volume moving averages (5/60) and the MACD
// triple with the given spans.
func Frame(s *model.Series, macdFast, macdSlow, macdSignal int) *model.IndicatorFrame {
	closes := s.Closes()
	volumes := s.Volumes()

	f := &model.IndicatorFrame{
		MA5:     SMA(closes, 5),
		MA10:    SMA(closes, 10),
		MA20:    SMA(closes, 20),
		MA60:    SMA(closes, 60),
		VolMA5:  SMA(volumes, 5),
		VolMA60: SMA(volumes, 60),
	}
	f.DIF, f.DEA, f.MACD = MACD(closes, macdFast, macdSlow, macdSignal)
	return f
}
