package pattern

import (
	"reflect"
	"testing"
	"time"

	"PatternSentinel/internal/calculator"
	"PatternSentinel/internal/model"
)

// trendSeries builds n bars on a steady uptrend: close 8 + 0.02*i,
// constant volume, quiet feed percentages.
func trendSeries(n int) *model.Series {
	bars := make([]model.Bar, n)
	day := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		c := 8.0 + 0.02*float64(i)
		bars[i] = model.Bar{
			Date:     day,
			Open:     c - 0.05,
			High:     c + 0.1,
			Low:      c - 0.1,
			Close:    c,
			Volume:   10000,
			PctChg:   1.0,
			Turnover: 5.0,
		}
		day = day.AddDate(0, 0, 1)
	}
	return &model.Series{Code: "600001", Bars: bars}
}

// duckSeries is a 200-bar series engineered to reach tier AAA: a head
// wick inside the 20-bar lookback, a volume dry-up inside the 10-bar
// lookback, and a surging breakout bar on top of the trend.
func duckSeries() *model.Series {
	s := trendSeries(200)
	s.Bars[188].High = 13.5   // the "head": well above ma60
	s.Bars[194].Volume = 6000 // the "nostril": volume dry-up
	last := &s.Bars[199]
	last.Open, last.High, last.Low, last.Close = 12.0, 12.6, 11.9, 12.5
	last.Volume = 20000
	last.PctChg = 4.5
	last.Turnover = 5.0
	return s
}

func TestDuckHead_TierAAA(t *testing.T) {
	m := NewDuckHead(DefaultDuckHeadConfig())
	res := m.Match(duckSeries())
	if res == nil {
		t.Fatal("expected a match")
	}
	if res.Tier != model.TierAAA {
		t.Fatalf("expected tier AAA, got %s", res.Tier)
	}
	if res.Code != "600001" {
		t.Errorf("expected code pass-through, got %q", res.Code)
	}
	if res.Price != 12.5 {
		t.Errorf("expected price 12.50, got %.4f", res.Price)
	}
	// 20000 / ((4*10000 + 20000) / 5) = 1.67 after rounding
	if res.VolumeRatio != 1.67 {
		t.Errorf("expected volume ratio 1.67, got %.4f", res.VolumeRatio)
	}
	if res.Name != "" {
		t.Errorf("matcher must not resolve names, got %q", res.Name)
	}
}

func TestDuckHead_InsufficientHistory(t *testing.T) {
	m := NewDuckHead(DefaultDuckHeadConfig())
	if res := m.Match(trendSeries(179)); res != nil {
		t.Fatalf("expected no match below the history floor, got %+v", res)
	}
}

func TestDuckHead_Gate1Boundaries(t *testing.T) {
	m := NewDuckHead(DefaultDuckHeadConfig())

	atPct := duckSeries()
	atPct.Bars[199].PctChg = 3.0 // inclusive
	if m.Match(atPct) == nil {
		t.Error("expected match at pct_chg == 3.0")
	}

	underPct := duckSeries()
	underPct.Bars[199].PctChg = 2.99
	if m.Match(underPct) != nil {
		t.Error("expected no match below the pct_chg floor")
	}

	atTurnover := duckSeries()
	atTurnover.Bars[199].Turnover = 3.0 // exclusive
	if m.Match(atTurnover) != nil {
		t.Error("expected no match at turnover == 3.0")
	}

	overTurnover := duckSeries()
	overTurnover.Bars[199].Turnover = 3.01
	if m.Match(overTurnover) == nil {
		t.Error("expected match just above the turnover floor")
	}

	pricey := duckSeries()
	pricey.Bars[199].Close = 28.5
	if m.Match(pricey) != nil {
		t.Error("expected no match above the price band")
	}
}

func TestDuckHead_FlatMA5IsNoMatch(t *testing.T) {
	// A failed base gate must yield no match at all, not a demoted tier.
	s := duckSeries()
	closes := []float64{12.0, 11.8, 11.9, 12.0, 12.1, 12.0}
	for i, c := range closes {
		s.Bars[194+i].Close = c
	}
	m := NewDuckHead(DefaultDuckHeadConfig())
	if res := m.Match(s); res != nil {
		t.Fatalf("expected no match with a flat ma5, got tier %s", res.Tier)
	}
}

func TestDuckHead_TierMonotonicity(t *testing.T) {
	cfg := DefaultDuckHeadConfig()
	m := NewDuckHead(cfg)
	s := duckSeries()
	res := m.Match(s)
	if res == nil || res.Tier != model.TierAAA {
		t.Fatal("expected a tier AAA match")
	}

	// AAA implies the A and AA conditions held on the same bar.
	f := calculator.Frame(s, cfg.MACDFast, cfg.MACDSlow, cfg.MACDSignal)
	n := s.Len()
	i := n - 1
	curr := s.Bars[i]

	if !(f.MA5[i].Lt(curr.Close) && f.MA5[i].GtV(f.MA10[i]) && f.MA5[i].GtV(f.MA5[i-1])) {
		t.Error("tier A trend conditions do not hold for the AAA bar")
	}
	surge := f.VolMA5[i].Mul(cfg.VolumeSurge).Lt(curr.Volume)
	quiet := f.MA10[i].Le(curr.Close) && f.VolMA5[i].Ge(curr.Volume)
	if !surge && !quiet {
		t.Error("tier A volume condition does not hold for the AAA bar")
	}
	if !(f.MA60[i].GtV(f.MA60[n-cfg.TrendRef]) && f.MACD[i].GtV(f.MACD[i-1])) {
		t.Error("tier AA conditions do not hold for the AAA bar")
	}
}

func TestDuckHead_AbsentMA60ComparesFalse(t *testing.T) {
	// 60 bars: ma60 exists only at the final bar, the trend reference
	// is undefined. The comparison must resolve to false and cap the
	// result at tier A instead of crashing.
	cfg := DefaultDuckHeadConfig()
	cfg.MinBars = 60
	m := NewDuckHead(cfg)

	s := trendSeries(60)
	last := &s.Bars[59]
	last.Open, last.High, last.Low, last.Close = 9.2, 9.7, 9.1, 9.6
	last.Volume = 20000
	last.PctChg = 4.5
	last.Turnover = 5.0

	res := m.Match(s)
	if res == nil {
		t.Fatal("expected a tier A match")
	}
	if res.Tier != model.TierA {
		t.Fatalf("expected the undefined ma60 reference to cap at tier A, got %s", res.Tier)
	}
}

func TestDuckHead_Idempotent(t *testing.T) {
	m := NewDuckHead(DefaultDuckHeadConfig())
	s := duckSeries()
	a := m.Match(s)
	b := m.Match(s)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("expected identical results on repeated runs: %+v vs %+v", a, b)
	}
}
