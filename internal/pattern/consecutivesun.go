package pattern

import (
	"math"

	"PatternSentinel/internal/model"
)

// ConsecutiveSunConfig holds the thresholds of the
// accumulation / washout / breakout screen.
type ConsecutiveSunConfig struct {
	MinBars        int     `yaml:"min_bars"`        // minimum history length
	PriceMin       float64 `yaml:"price_min"`       // inclusive band on the latest close
	PriceMax       float64 `yaml:"price_max"`       // inclusive band on the latest close
	Window         int     `yaml:"window"`          // evaluation window, most recent bars
	PeakMinDist    int     `yaml:"peak_min_dist"`   // min bars between volume peak and today
	PeakMaxDist    int     `yaml:"peak_max_dist"`   // max bars between volume peak and today
	WashoutShrink  float64 `yaml:"washout_shrink"`  // washout min volume vs peak volume
	BreakoutVolume float64 `yaml:"breakout_volume"` // today's volume vs yesterday's
}

// DefaultConsecutiveSunConfig returns the standard thresholds.
func DefaultConsecutiveSunConfig() ConsecutiveSunConfig {
	return ConsecutiveSunConfig{
		MinBars:        15,
		PriceMin:       5.0,
		PriceMax:       20.0,
		Window:         10,
		PeakMinDist:    1,
		PeakMaxDist:    4,
		WashoutShrink:  0.5,
		BreakoutVolume: 1.8,
	}
}

// ConsecutiveSun screens a single series for the bullish-accumulation,
// volume-contraction, breakout shape. All sub-conditions form a hard
// conjunctive gate; there is no scoring.
type ConsecutiveSun struct {
	cfg ConsecutiveSunConfig
}

// NewConsecutiveSun creates a matcher with the given thresholds.
func NewConsecutiveSun(cfg ConsecutiveSunConfig) *ConsecutiveSun {
	return &ConsecutiveSun{cfg: cfg}
}

// Match reports whether the most recent bars of s form the pattern.
func (m *ConsecutiveSun) Match(s *model.Series) bool {
	bars := s.Bars
	if len(bars) < m.cfg.MinBars || len(bars) < m.cfg.Window {
		return false
	}

	last := bars[len(bars)-1].Close
	if last < m.cfg.PriceMin || last > m.cfg.PriceMax {
		return false
	}

	w := bars[len(bars)-m.cfg.Window:]
	n := len(w)

	// Accumulation peak: largest volume in the lookback, today excluded.
	// Ties resolve to the earliest bar; changing that silently alters
	// match sets on days with repeated volumes.
	peak := 0
	for i := 1; i < n-1; i++ {
		if w[i].Volume > w[peak].Volume {
			peak = i
		}
	}
	maxVol := w[peak].Volume

	// The peak must leave room for a washout but not be too old.
	dist := (n - 1) - peak
	if dist < m.cfg.PeakMinDist || dist > m.cfg.PeakMaxDist {
		return false
	}

	// The accumulation day itself must be bullish.
	if !w[peak].Bullish() {
		return false
	}

	// Washout zone: bars strictly between the peak and today.
	wash := w[peak+1 : n-1]
	if len(wash) == 0 {
		return false
	}
	minWashVol := math.Inf(1)
	maxWashClose := math.Inf(-1)
	for _, b := range wash {
		if b.Volume < minWashVol {
			minWashVol = b.Volume
		}
		if b.Close > maxWashClose {
			maxWashClose = b.Close
		}
	}
	if minWashVol > maxVol*m.cfg.WashoutShrink {
		return false
	}

	// Breakout day: bullish, volume expansion over yesterday, close
	// reclaiming the washout zone's highest close.
	today, yesterday := w[n-1], w[n-2]
	if !today.Bullish() {
		return false
	}
	if today.Volume <= yesterday.Volume*m.cfg.BreakoutVolume {
		return false
	}
	return today.Close >= maxWashClose
}
