// Package report writes dated CSV result files for completed scans.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"PatternSentinel/internal/model"
	"PatternSentinel/internal/universe"
)

// Writer writes result files under a base output directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a writer rooted at baseDir.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteConsecutiveSun writes the matched instruments to
// <base>/<yyyymm>/consecutive_sun_<yyyymmdd_hhmmss>.csv and returns the
// file path.
func (w *Writer) WriteConsecutiveSun(matches []universe.Instrument, now time.Time) (string, error) {
	dir := filepath.Join(w.baseDir, now.Format("200601"))
	path := filepath.Join(dir, fmt.Sprintf("consecutive_sun_%s.csv", now.Format("20060102_150405")))

	rows := [][]string{{"code", "name"}}
	for _, inst := range matches {
		rows = append(rows, []string{inst.Code, inst.Name})
	}
	if err := writeCSV(dir, path, rows); err != nil {
		return "", err
	}
	return path, nil
}

// WriteDuckHead writes the tiered results to
// <base>/duck_hunter/duck_hunter_<yyyymmdd>.csv, sorted by tier then
// percent change, both descending. The date-only file name keeps one
// file per trading day for downstream confluence scripts.
func (w *Writer) WriteDuckHead(results []*model.DuckHeadResult, now time.Time) (string, error) {
	dir := filepath.Join(w.baseDir, "duck_hunter")
	path := filepath.Join(dir, fmt.Sprintf("duck_hunter_%s.csv", now.Format("20060102")))

	sorted := make([]*model.DuckHeadResult, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Tier.Rank() != sorted[j].Tier.Rank() {
			return sorted[i].Tier.Rank() > sorted[j].Tier.Rank()
		}
		return sorted[i].PctChg > sorted[j].PctChg
	})

	rows := [][]string{{"filter_date", "code", "name", "level", "price", "pct_chg", "turnover", "vol_ratio"}}
	for _, r := range sorted {
		rows = append(rows, []string{
			r.FilterDate.Format("2006-01-02"),
			r.Code,
			r.Name,
			string(r.Tier),
			strconv.FormatFloat(r.Price, 'f', 2, 64),
			percent(r.PctChg),
			percent(r.Turnover),
			strconv.FormatFloat(r.VolumeRatio, 'f', 2, 64),
		})
	}
	if err := writeCSV(dir, path, rows); err != nil {
		return "", err
	}
	return path, nil
}

// percent renders a feed percentage the way the source carries it: the
// raw number with a trailing percent sign.
func percent(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64) + "%"
}

func writeCSV(dir, path string, rows [][]string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create result directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create result file: %w", err)
	}
	defer file.Close()

	cw := csv.NewWriter(file)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write result file: %w", err)
	}
	cw.Flush()
	return cw.Error()
}
