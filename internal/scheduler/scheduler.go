package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"PatternSentinel/internal/model"
	"PatternSentinel/internal/pattern"
	"PatternSentinel/internal/recorder"
	"PatternSentinel/internal/report"
	"PatternSentinel/internal/scanner"
	"PatternSentinel/internal/storage"
	"PatternSentinel/internal/universe"
)

// Scheduler runs the pattern scans, either on a cron schedule or
// immediately via the RunNow helpers.
type Scheduler struct {
	Cron     *cron.Cron
	Universe *universe.Table
	Loader   *storage.Loader
	Scanner  *scanner.Scanner
	ConsSun  *pattern.ConsecutiveSun
	DuckHead *pattern.DuckHead
	Report   *report.Writer
	Recorder recorder.Recorder
	Ctx      context.Context
}

// NewScheduler creates a Scheduler.
func NewScheduler(ctx context.Context, table *universe.Table, loader *storage.Loader, sc *scanner.Scanner,
	consSun *pattern.ConsecutiveSun, duckHead *pattern.DuckHead, rw *report.Writer, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Universe: table,
		Loader:   loader,
		Scanner:  sc,
		ConsSun:  consSun,
		DuckHead: duckHead,
		Report:   rw,
		Recorder: rec,
		Ctx:      ctx,
	}
}

// RegisterAll registers both scan tasks on their cron schedules.
func (s *Scheduler) RegisterAll(consSunCron, duckHeadCron string) error {
	if _, err := s.Cron.AddFunc(consSunCron, s.consecutiveSunTask); err != nil {
		return fmt.Errorf("register consecutive-sun task: %w", err)
	}
	if _, err := s.Cron.AddFunc(duckHeadCron, s.duckHeadTask); err != nil {
		return fmt.Errorf("register duck-head task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunConsecutiveSunNow executes the consecutive-sun scan immediately.
func (s *Scheduler) RunConsecutiveSunNow() { s.consecutiveSunTask() }

// RunDuckHeadNow executes the duck-head scan immediately.
func (s *Scheduler) RunDuckHeadNow() { s.duckHeadTask() }

// admissibleCodes intersects the board-filtered universe with the codes
// that actually have a history file on disk.
func (s *Scheduler) admissibleCodes(admit func(code string) bool) ([]string, error) {
	onDisk, err := s.Loader.ListCodes()
	if err != nil {
		return nil, err
	}
	var codes []string
	for _, code := range onDisk {
		if s.Universe.Contains(code) && admit(code) {
			codes = append(codes, code)
		}
	}
	return codes, nil
}

func (s *Scheduler) consecutiveSunTask() {
	log.Println("[INFO] running consecutive-sun scan")
	codes, err := s.admissibleCodes(universe.ExcludeChiNext)
	if err != nil {
		log.Printf("[ERROR] consecutive-sun scan: %v", err)
		return
	}

	outcomes, sum := s.Scanner.Run(s.Ctx, codes, func(series *model.Series) model.Outcome {
		if s.ConsSun.Match(series) {
			return model.Outcome{Code: series.Code, Kind: model.OutcomeMatch}
		}
		return model.Outcome{Code: series.Code, Kind: model.OutcomeNoMatch}
	})

	var matches []universe.Instrument
	for _, out := range outcomes {
		if out.Kind == model.OutcomeMatch {
			matches = append(matches, universe.Instrument{Code: out.Code, Name: s.Universe.Name(out.Code)})
		}
	}

	path, err := s.Report.WriteConsecutiveSun(matches, time.Now())
	if err != nil {
		log.Printf("[ERROR] write consecutive-sun results: %v", err)
		return
	}
	log.Printf("[INFO] consecutive-sun scan done: %d matched, %d failed of %d in %s -> %s",
		sum.Matched, sum.Failed, sum.Scanned, sum.Elapsed.Round(time.Millisecond), path)

	if err := s.Recorder.RecordRun(&recorder.ScanRun{
		Pattern:    "consecutive_sun",
		Universe:   len(codes),
		Scanned:    sum.Scanned,
		Matched:    sum.Matched,
		Failed:     sum.Failed,
		Elapsed:    sum.Elapsed,
		OutputPath: path,
	}); err != nil {
		log.Printf("[ERROR] record consecutive-sun run: %v", err)
	}
}

func (s *Scheduler) duckHeadTask() {
	log.Println("[INFO] running duck-head scan")
	codes, err := s.admissibleCodes(universe.MainBoardsOnly)
	if err != nil {
		log.Printf("[ERROR] duck-head scan: %v", err)
		return
	}

	outcomes, sum := s.Scanner.Run(s.Ctx, codes, func(series *model.Series) model.Outcome {
		if res := s.DuckHead.Match(series); res != nil {
			return model.Outcome{Code: series.Code, Kind: model.OutcomeMatch, DuckHead: res}
		}
		return model.Outcome{Code: series.Code, Kind: model.OutcomeNoMatch}
	})

	var results []*model.DuckHeadResult
	tiers := make(map[model.Tier]int)
	for _, out := range outcomes {
		if out.Kind != model.OutcomeMatch {
			continue
		}
		out.DuckHead.Name = s.Universe.Name(out.DuckHead.Code)
		results = append(results, out.DuckHead)
		tiers[out.DuckHead.Tier]++
	}

	path, err := s.Report.WriteDuckHead(results, time.Now())
	if err != nil {
		log.Printf("[ERROR] write duck-head results: %v", err)
		return
	}
	log.Printf("[INFO] duck-head scan done: %d matched (AAA=%d AA=%d A=%d), %d failed of %d in %s -> %s",
		sum.Matched, tiers[model.TierAAA], tiers[model.TierAA], tiers[model.TierA],
		sum.Failed, sum.Scanned, sum.Elapsed.Round(time.Millisecond), path)

	if err := s.Recorder.RecordRun(&recorder.ScanRun{
		Pattern:    "duck_head",
		Universe:   len(codes),
		Scanned:    sum.Scanned,
		Matched:    sum.Matched,
		Failed:     sum.Failed,
		Elapsed:    sum.Elapsed,
		OutputPath: path,
	}); err != nil {
		log.Printf("[ERROR] record duck-head run: %v", err)
	}
	if err := s.Recorder.RecordDuckHeadHits(results); err != nil {
		log.Printf("[ERROR] record duck-head hits: %v", err)
	}
}
