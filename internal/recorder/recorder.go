package recorder

import (
	"time"

	"PatternSentinel/internal/model"
)

// ScanRun summarizes one completed scan for persistence.
type ScanRun struct {
	Pattern    string // "consecutive_sun" or "duck_head"
	Universe   int    // admissible instruments for this pattern
	Scanned    int
	Matched    int
	Failed     int
	Elapsed    time.Duration
	OutputPath string
}

// Recorder persists scan history for later analysis.
type Recorder interface {
	RecordRun(run *ScanRun) error
	RecordDuckHeadHits(results []*model.DuckHeadResult) error
	Close() error
}
