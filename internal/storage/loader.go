// Package storage reads per-instrument daily history files. Source
// column labels are mapped to the canonical schema here, before anything
// reaches the matchers.
package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"PatternSentinel/internal/model"
	"PatternSentinel/internal/universe"
)

// columnNames maps source header labels, including the locale-specific
// feed labels, to canonical column names.
var columnNames = map[string]string{
	"日期":  "date",
	"开盘":  "open",
	"最高":  "high",
	"最低":  "low",
	"收盘":  "close",
	"成交量": "volume",
	"涨跌幅": "pct_chg",
	"换手率": "turnover",

	"date":     "date",
	"open":     "open",
	"high":     "high",
	"low":      "low",
	"close":    "close",
	"volume":   "volume",
	"pct_chg":  "pct_chg",
	"turnover": "turnover",
}

var requiredColumns = []string{"date", "open", "high", "low", "close", "volume"}

var dateLayouts = []string{"2006-01-02", "20060102", "2006/01/02"}

// Loader reads instrument history CSVs from a single directory, one
// <code>.csv file per instrument.
type Loader struct {
	dir string
}

// NewLoader creates a loader for the given data directory. A missing
// directory is a batch-level failure and aborts construction.
func NewLoader(dir string) (*Loader, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("data directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("data directory %s: not a directory", dir)
	}
	return &Loader{dir: dir}, nil
}

// ListCodes returns the zero-padded instrument codes that have a history
// file present, in directory order.
func (l *Loader) ListCodes() ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("list data directory: %w", err)
	}
	var codes []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".csv") {
			continue
		}
		codes = append(codes, universe.PadCode(strings.TrimSuffix(name, ".csv")))
	}
	return codes, nil
}

// Load reads and parses the history for one instrument. Bars are sorted
// ascending by date after parsing; a row with a malformed required field
// fails the whole instrument.
func (l *Loader) Load(code string) (*model.Series, error) {
	path := filepath.Join(l.dir, code+".csv")
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	if len(rows) < 2 {
		return &model.Series{Code: code}, nil
	}

	cols := make(map[string]int)
	for i, h := range rows[0] {
		label := strings.TrimPrefix(strings.TrimSpace(h), "\uFEFF")
		if canonical, ok := columnNames[label]; ok {
			cols[canonical] = i
		}
	}
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			return nil, fmt.Errorf("history %s: missing column %q", path, c)
		}
	}

	bars := make([]model.Bar, 0, len(rows)-1)
	for n, row := range rows[1:] {
		bar, err := parseBar(row, cols)
		if err != nil {
			return nil, fmt.Errorf("history %s row %d: %w", path, n+2, err)
		}
		bars = append(bars, bar)
	}

	// Chronological order is load-bearing for every window operation.
	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return &model.Series{Code: code, Bars: bars}, nil
}

func parseBar(row []string, cols map[string]int) (model.Bar, error) {
	var bar model.Bar
	var err error

	if bar.Date, err = parseDate(field(row, cols, "date")); err != nil {
		return bar, err
	}
	if bar.Open, err = parseFloat(field(row, cols, "open"), "open"); err != nil {
		return bar, err
	}
	if bar.High, err = parseFloat(field(row, cols, "high"), "high"); err != nil {
		return bar, err
	}
	if bar.Low, err = parseFloat(field(row, cols, "low"), "low"); err != nil {
		return bar, err
	}
	if bar.Close, err = parseFloat(field(row, cols, "close"), "close"); err != nil {
		return bar, err
	}
	if bar.Volume, err = parseFloat(field(row, cols, "volume"), "volume"); err != nil {
		return bar, err
	}

	// pct_chg and turnover are optional columns; absent means zero.
	if i, ok := cols["pct_chg"]; ok && i < len(row) {
		if bar.PctChg, err = parseFloat(row[i], "pct_chg"); err != nil {
			return bar, err
		}
	}
	if i, ok := cols["turnover"]; ok && i < len(row) {
		if bar.Turnover, err = parseFloat(row[i], "turnover"); err != nil {
			return bar, err
		}
	}
	return bar, nil
}

func field(row []string, cols map[string]int, name string) string {
	i := cols[name]
	if i >= len(row) {
		return ""
	}
	return row[i]
}

func parseDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", v)
}

func parseFloat(v, name string) (float64, error) {
	v = strings.TrimSuffix(strings.TrimSpace(v), "%")
	if v == "" {
		return 0, fmt.Errorf("missing %s", name)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("non-numeric %s %q", name, v)
	}
	return f, nil
}
