package pattern

import (
	"math"

	"PatternSentinel/internal/calculator"
	"PatternSentinel/internal/model"
)

// DuckHeadConfig holds the thresholds of the tiered trend-continuation
// screen.
type DuckHeadConfig struct {
	MinBars     int     `yaml:"min_bars"`     // minimum history length (excludes recent listings)
	PriceMin    float64 `yaml:"price_min"`    // inclusive band on the latest close
	PriceMax    float64 `yaml:"price_max"`    // inclusive band on the latest close
	MinPctChg   float64 `yaml:"min_pct_chg"`  // latest day percent change, inclusive
	MinTurnover float64 `yaml:"min_turnover"` // latest day turnover, exclusive

	VolumeSurge float64 `yaml:"volume_surge"` // volume vs vol_ma5 for the surge branch

	TrendRef int `yaml:"trend_ref"` // ma60 comparison bar, counted from the end (1 = current)

	HeadWindow    int     `yaml:"head_window"`    // high lookback ending the bar before current
	HeadRatio     float64 `yaml:"head_ratio"`     // recent high vs ma60
	NostrilWindow int     `yaml:"nostril_window"` // volume lookback ending the bar before current
	NostrilRatio  float64 `yaml:"nostril_ratio"`  // recent volume dry-up vs vol_ma60

	MACDFast   int `yaml:"macd_fast"`
	MACDSlow   int `yaml:"macd_slow"`
	MACDSignal int `yaml:"macd_signal"`
}

// DefaultDuckHeadConfig returns the standard thresholds.
func DefaultDuckHeadConfig() DuckHeadConfig {
	return DuckHeadConfig{
		MinBars:       180,
		PriceMin:      5.0,
		PriceMax:      28.0,
		MinPctChg:     3.0,
		MinTurnover:   3.0,
		VolumeSurge:   1.2,
		TrendRef:      5,
		HeadWindow:    20,
		HeadRatio:     1.08,
		NostrilWindow: 10,
		NostrilRatio:  0.8,
		MACDFast:      12,
		MACDSlow:      26,
		MACDSignal:    9,
	}
}

// DuckHead screens a single series for the tiered continuation pattern.
// The gates are strictly additive: AA is only evaluated after A holds,
// AAA only after AA, and a failed higher gate never demotes below the
// tier already reached.
type DuckHead struct {
	cfg DuckHeadConfig
}

// NewDuckHead creates a matcher with the given thresholds.
func NewDuckHead(cfg DuckHeadConfig) *DuckHead {
	return &DuckHead{cfg: cfg}
}

// Match evaluates the series and returns the tiered result, or nil when
// it does not reach tier A. Undefined indicator values fail whichever
// comparison touches them.
func (m *DuckHead) Match(s *model.Series) *model.DuckHeadResult {
	bars := s.Bars
	n := len(bars)
	if n < m.cfg.MinBars {
		return nil
	}
	i := n - 1
	curr := bars[i]

	// Gate 1: price band and activity on the latest bar.
	if curr.Close < m.cfg.PriceMin || curr.Close > m.cfg.PriceMax {
		return nil
	}
	if curr.PctChg < m.cfg.MinPctChg {
		return nil
	}
	if curr.Turnover <= m.cfg.MinTurnover {
		return nil
	}

	f := calculator.Frame(s, m.cfg.MACDFast, m.cfg.MACDSlow, m.cfg.MACDSignal)

	// Gate 2: base strength. Volume must either surge past vol_ma5 or
	// stay quiet while the close holds above ma10.
	trend := f.MA5[i].Lt(curr.Close) && f.MA5[i].GtV(f.MA10[i])
	rising := f.MA5[i].GtV(f.MA5[i-1])
	surge := f.VolMA5[i].Mul(m.cfg.VolumeSurge).Lt(curr.Volume)
	quiet := f.MA10[i].Le(curr.Close) && f.VolMA5[i].Ge(curr.Volume)
	if !trend || !rising || !(surge || quiet) {
		return nil
	}
	tier := model.TierA

	// Gate 3: trend confirmation.
	if f.MA60[i].GtV(f.MA60[n-m.cfg.TrendRef]) && f.MACD[i].GtV(f.MACD[i-1]) {
		tier = model.TierAA

		// Gate 4: textbook shape. Head: a recent high well above the
		// long-term average. Nostril: a recent volume dry-up. Above
		// water: the MACD fast line over zero.
		head := calculator.WindowMax(s.Highs(), n-m.cfg.HeadWindow, n-1)
		nostril := calculator.WindowMin(s.Volumes(), n-m.cfg.NostrilWindow, n-1)
		if head.GtV(f.MA60[i].Mul(m.cfg.HeadRatio)) &&
			nostril.LtV(f.VolMA60[i].Mul(m.cfg.NostrilRatio)) &&
			f.DIF[i].Gt(0) {
			tier = model.TierAAA
		}
	}

	var ratio float64
	if f.VolMA5[i].Defined && f.VolMA5[i].Val > 0 {
		ratio = curr.Volume / f.VolMA5[i].Val
	}

	return &model.DuckHeadResult{
		FilterDate:  curr.Date,
		Code:        s.Code,
		Tier:        tier,
		Price:       round2(curr.Close),
		PctChg:      curr.PctChg,
		Turnover:    curr.Turnover,
		VolumeRatio: round2(ratio),
	}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
