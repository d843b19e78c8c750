package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"PatternSentinel/internal/model"
	"PatternSentinel/internal/universe"
)

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open result: %v", err)
	}
	defer file.Close()
	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read result: %v", err)
	}
	return rows
}

func TestWriteConsecutiveSun(t *testing.T) {
	base := t.TempDir()
	w := NewWriter(base)
	now := time.Date(2024, 3, 5, 15, 30, 1, 0, time.UTC)

	path, err := w.WriteConsecutiveSun([]universe.Instrument{
		{Code: "600036", Name: "招商银行"},
		{Code: "000001", Name: "平安银行"},
	}, now)
	if err != nil {
		t.Fatalf("WriteConsecutiveSun: %v", err)
	}

	want := filepath.Join(base, "202403", "consecutive_sun_20240305_153001.csv")
	if path != want {
		t.Fatalf("path = %s, want %s", path, want)
	}

	rows := readRows(t, path)
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "code" || rows[0][1] != "name" {
		t.Errorf("unexpected header %v", rows[0])
	}
	if rows[1][0] != "600036" || rows[2][1] != "平安银行" {
		t.Errorf("unexpected rows %v", rows[1:])
	}
}

func TestWriteConsecutiveSun_NoMatches(t *testing.T) {
	w := NewWriter(t.TempDir())
	path, err := w.WriteConsecutiveSun(nil, time.Date(2024, 3, 5, 15, 30, 1, 0, time.UTC))
	if err != nil {
		t.Fatalf("WriteConsecutiveSun: %v", err)
	}
	// A header-only file still lands, so an empty day is distinguishable
	// from a failed run.
	if rows := readRows(t, path); len(rows) != 1 {
		t.Fatalf("expected a header-only file, got %d rows", len(rows))
	}
}

func TestWriteDuckHead_SortOrder(t *testing.T) {
	base := t.TempDir()
	w := NewWriter(base)
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	results := []*model.DuckHeadResult{
		{FilterDate: day, Code: "600001", Tier: model.TierA, PctChg: 9.9},
		{FilterDate: day, Code: "600002", Tier: model.TierAAA, PctChg: 3.1},
		{FilterDate: day, Code: "600003", Tier: model.TierAA, PctChg: 4.0},
		{FilterDate: day, Code: "600004", Tier: model.TierAAA, PctChg: 5.2},
	}
	path, err := w.WriteDuckHead(results, day)
	if err != nil {
		t.Fatalf("WriteDuckHead: %v", err)
	}

	want := filepath.Join(base, "duck_hunter", "duck_hunter_20240305.csv")
	if path != want {
		t.Fatalf("path = %s, want %s", path, want)
	}

	rows := readRows(t, path)
	var order []string
	for _, row := range rows[1:] {
		order = append(order, row[1])
	}
	// Tier descending, percent change descending inside a tier.
	wantOrder := []string{"600004", "600002", "600003", "600001"}
	for i, code := range wantOrder {
		if order[i] != code {
			t.Fatalf("sort order = %v, want %v", order, wantOrder)
		}
	}
	// Input order is untouched.
	if results[0].Code != "600001" {
		t.Error("input slice reordered")
	}
}

func TestWriteDuckHead_Rendering(t *testing.T) {
	w := NewWriter(t.TempDir())
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	path, err := w.WriteDuckHead([]*model.DuckHeadResult{{
		FilterDate:  day,
		Code:        "600036",
		Name:        "招商银行",
		Tier:        model.TierAA,
		Price:       12.5,
		PctChg:      4.5,
		Turnover:    5.05,
		VolumeRatio: 1.67,
	}}, day)
	if err != nil {
		t.Fatalf("WriteDuckHead: %v", err)
	}

	rows := readRows(t, path)
	header := []string{"filter_date", "code", "name", "level", "price", "pct_chg", "turnover", "vol_ratio"}
	for i, h := range header {
		if rows[0][i] != h {
			t.Fatalf("header = %v, want %v", rows[0], header)
		}
	}
	got := rows[1]
	want := []string{"2024-03-05", "600036", "招商银行", "AA", "12.50", "4.5%", "5.05%", "1.67"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("column %s = %q, want %q", header[i], got[i], want[i])
		}
	}
}
