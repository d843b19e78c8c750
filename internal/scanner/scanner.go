// Package scanner fans the per-instrument pattern check out across a
// bounded worker pool. Matchers are pure functions of one series, so
// instruments are screened independently and failures stay local.
package scanner

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"PatternSentinel/internal/model"
)

// SeriesLoader supplies one instrument's daily history.
type SeriesLoader interface {
	Load(code string) (*model.Series, error)
}

// MatchFunc evaluates one instrument's series and returns its outcome.
type MatchFunc func(s *model.Series) model.Outcome

// Summary aggregates one scan run.
type Summary struct {
	Scanned int
	Matched int
	Failed  int
	Elapsed time.Duration
}

// Scanner runs a matcher over a set of instruments concurrently.
type Scanner struct {
	loader  SeriesLoader
	workers int
}

// New creates a scanner with a pool of the given size.
func New(loader SeriesLoader, workers int) *Scanner {
	if workers < 1 {
		workers = 1
	}
	return &Scanner{loader: loader, workers: workers}
}

// Run screens every code and returns one outcome per code, in input
// order, plus a summary. An error or panic while processing one
// instrument marks that instrument Failed and never aborts the batch.
func (s *Scanner) Run(ctx context.Context, codes []string, match MatchFunc) ([]model.Outcome, Summary) {
	start := time.Now()
	outcomes := make([]model.Outcome, len(codes))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, code := range codes {
		i, code := i, code
		g.Go(func() error {
			outcomes[i] = s.scanOne(code, match)
			return nil
		})
	}
	// Workers never return errors; failures land in their outcome slot.
	_ = g.Wait()

	sum := Summary{Scanned: len(codes), Elapsed: time.Since(start)}
	for _, out := range outcomes {
		switch out.Kind {
		case model.OutcomeMatch:
			sum.Matched++
		case model.OutcomeFailed:
			sum.Failed++
		}
	}
	return outcomes, sum
}

func (s *Scanner) scanOne(code string, match MatchFunc) (out model.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ERROR] scan %s panicked: %v", code, r)
			out = model.Outcome{Code: code, Kind: model.OutcomeFailed, Reason: fmt.Sprintf("panic: %v", r)}
		}
	}()

	series, err := s.loader.Load(code)
	if err != nil {
		log.Printf("[WARN] load %s: %v", code, err)
		return model.Outcome{Code: code, Kind: model.OutcomeFailed, Reason: err.Error()}
	}
	return match(series)
}
