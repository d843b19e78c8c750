package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeHistory(t *testing.T, dir, code, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, code+".csv"), []byte(content), 0o644); err != nil {
		t.Fatalf("write history: %v", err)
	}
}

func TestNewLoader_MissingDir(t *testing.T) {
	if _, err := NewLoader(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("expected an error for a missing data directory")
	}
}

func TestListCodes(t *testing.T) {
	dir := t.TempDir()
	writeHistory(t, dir, "600036", "")
	writeHistory(t, dir, "1", "")
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "archive"), 0o755); err != nil {
		t.Fatal(err)
	}

	l, err := NewLoader(dir)
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	codes, err := l.ListCodes()
	if err != nil {
		t.Fatalf("ListCodes: %v", err)
	}
	if len(codes) != 2 {
		t.Fatalf("expected 2 codes, got %v", codes)
	}
	for _, c := range codes {
		if c != "600036" && c != "000001" {
			t.Errorf("unexpected code %q", c)
		}
	}
}

func TestLoad_LocaleHeaders(t *testing.T) {
	dir := t.TempDir()
	writeHistory(t, dir, "600036", strings.Join([]string{
		"日期,开盘,最高,最低,收盘,成交量,涨跌幅,换手率",
		"2024-03-05,10.2,10.6,10.1,10.5,12000,2.94%,1.8%",
		"2024-03-04,10.0,10.3,9.9,10.2,11000,2.00,1.5",
	}, "\n"))

	l, _ := NewLoader(dir)
	s, err := l.Load("600036")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 bars, got %d", s.Len())
	}
	// Rows arrive newest-first and must come back chronological.
	if !s.Bars[0].Date.Before(s.Bars[1].Date) {
		t.Error("bars not sorted ascending by date")
	}
	last := s.Last()
	if last.Close != 10.5 || last.Volume != 12000 {
		t.Errorf("unexpected last bar: %+v", last)
	}
	// Percent suffixes are stripped on the way in.
	if last.PctChg != 2.94 || last.Turnover != 1.8 {
		t.Errorf("percent columns not parsed: %+v", last)
	}
}

func TestLoad_EnglishHeadersOptionalColumns(t *testing.T) {
	dir := t.TempDir()
	writeHistory(t, dir, "000001", strings.Join([]string{
		"date,open,high,low,close,volume",
		"20240304,10.0,10.3,9.9,10.2,11000",
		"2024/03/05,10.2,10.6,10.1,10.5,12000",
	}, "\n"))

	l, _ := NewLoader(dir)
	s, err := l.Load("000001")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 bars, got %d", s.Len())
	}
	if s.Last().PctChg != 0 || s.Last().Turnover != 0 {
		t.Errorf("absent optional columns must read as zero: %+v", s.Last())
	}
}

func TestLoad_MalformedRow(t *testing.T) {
	dir := t.TempDir()
	writeHistory(t, dir, "600036", strings.Join([]string{
		"date,open,high,low,close,volume",
		"2024-03-04,10.0,10.3,9.9,10.2,11000",
		"2024-03-05,10.2,10.6,10.1,n/a,12000",
	}, "\n"))

	l, _ := NewLoader(dir)
	if _, err := l.Load("600036"); err == nil {
		t.Fatal("expected an error for a malformed close field")
	} else if !strings.Contains(err.Error(), "row 3") {
		t.Errorf("error should carry the row number: %v", err)
	}
}

func TestLoad_MissingRequiredColumn(t *testing.T) {
	dir := t.TempDir()
	writeHistory(t, dir, "600036", "date,open,high,low,close\n2024-03-04,10.0,10.3,9.9,10.2\n")

	l, _ := NewLoader(dir)
	if _, err := l.Load("600036"); err == nil {
		t.Fatal("expected an error for a history without a volume column")
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	writeHistory(t, dir, "600036", "")

	l, _ := NewLoader(dir)
	s, err := l.Load("600036")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("expected an empty series, got %d bars", s.Len())
	}
}
