package model

import "time"

// Tier is the ordinal quality grade of a duck-head match.
// Gates are strictly additive: AAA implies the AA and A conditions held.
type Tier string

const (
	TierA   Tier = "A"
	TierAA  Tier = "AA"
	TierAAA Tier = "AAA"
)

// Rank maps a tier to its ordinal for sorting (AAA > AA > A).
func (t Tier) Rank() int {
	switch t {
	case TierAAA:
		return 3
	case TierAA:
		return 2
	case TierA:
		return 1
	}
	return 0
}

// DuckHeadResult is the output of the duck-head matcher for one matching
// instrument. Price and VolumeRatio are rounded to 2 decimals. Name is
// resolved externally from the instrument table; the matcher leaves it
// empty.
type DuckHeadResult struct {
	FilterDate  time.Time
	Code        string
	Name        string
	Tier        Tier
	Price       float64
	PctChg      float64
	Turnover    float64
	VolumeRatio float64
}

// OutcomeKind classifies the per-instrument result of one scan.
type OutcomeKind int

const (
	OutcomeNoMatch OutcomeKind = iota
	OutcomeMatch
	OutcomeFailed
)

// Outcome is the result of screening a single instrument. A Failed
// outcome records why the instrument could not be evaluated; it never
// aborts the batch.
type Outcome struct {
	Code     string
	Kind     OutcomeKind
	Reason   string          // set when Kind == OutcomeFailed
	DuckHead *DuckHeadResult // set for duck-head matches
}
