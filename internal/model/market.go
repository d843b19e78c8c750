package model

import "time"

// Bar represents one trading day for a single instrument.
// PctChg and Turnover come straight from the source feed; they are never
// derived from neighboring bars.
type Bar struct {
	Date     time.Time
	Open     float64
	High     float64
	Low      float64
	Close    float64
	Volume   float64
	PctChg   float64 // percent, signed
	Turnover float64 // percent, non-negative
}

// Bullish reports whether the bar closed above its open.
func (b Bar) Bullish() bool { return b.Close > b.Open }

// Series holds the daily history of one instrument, strictly ascending
// by date. Every window operation of the matchers is defined relative to
// this order.
type Series struct {
	Code string
	Bars []Bar
}

// Len returns the number of bars.
func (s *Series) Len() int { return len(s.Bars) }

// Last returns the most recent bar. Callers must check Len first.
func (s *Series) Last() Bar { return s.Bars[len(s.Bars)-1] }

// Closes returns the close column.
func (s *Series) Closes() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Close
	}
	return out
}

// Highs returns the high column.
func (s *Series) Highs() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.High
	}
	return out
}

// Volumes returns the volume column.
func (s *Series) Volumes() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Volume
	}
	return out
}
