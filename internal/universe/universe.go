// Package universe loads the instrument-name table and applies the
// admissibility filters that run before any series reaches a matcher.
package universe

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Instrument is one row of the instrument-name table.
type Instrument struct {
	Code string // 6 characters, zero-padded
	Name string
}

// Table is the admissible instrument universe: the name table minus
// distressed/delisting-risk names.
type Table struct {
	instruments []Instrument
	names       map[string]string
}

// distressedMarkers flag names excluded from every scan: special
// treatment and delisting-risk instruments.
var distressedMarkers = []string{"ST", "st", "退"}

// Load reads the code/name table from a CSV file with a code,name
// header. Codes are zero-padded to 6 characters; rows whose name carries
// a distressed marker are dropped. A missing table is fatal to the run,
// so the error is returned as-is for the caller to abort on.
func Load(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open instrument table: %w", err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read instrument table: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("instrument table %s is empty", path)
	}

	codeCol, nameCol := -1, -1
	for i, h := range rows[0] {
		switch strings.TrimPrefix(strings.TrimSpace(h), "\uFEFF") {
		case "code":
			codeCol = i
		case "name":
			nameCol = i
		}
	}
	if codeCol < 0 || nameCol < 0 {
		return nil, fmt.Errorf("instrument table %s: missing code/name columns", path)
	}

	t := &Table{names: make(map[string]string)}
	for _, row := range rows[1:] {
		if len(row) <= codeCol || len(row) <= nameCol {
			continue
		}
		code := PadCode(strings.TrimSpace(row[codeCol]))
		name := strings.TrimSpace(row[nameCol])
		if code == "" || excluded(name) {
			continue
		}
		t.instruments = append(t.instruments, Instrument{Code: code, Name: name})
		t.names[code] = name
	}
	return t, nil
}

func excluded(name string) bool {
	for _, marker := range distressedMarkers {
		if strings.Contains(name, marker) {
			return true
		}
	}
	return false
}

// PadCode zero-pads an instrument code to 6 characters.
func PadCode(code string) string {
	for len(code) > 0 && len(code) < 6 {
		code = "0" + code
	}
	return code
}

// Len returns the number of admissible instruments.
func (t *Table) Len() int { return len(t.instruments) }

// Name resolves a code to its display name, or "" when unknown.
func (t *Table) Name(code string) string { return t.names[code] }

// Contains reports whether the code is in the admissible universe.
func (t *Table) Contains(code string) bool {
	_, ok := t.names[code]
	return ok
}

// Filter returns the instruments admitted by the board filter, in table
// order.
func (t *Table) Filter(admit func(code string) bool) []Instrument {
	var out []Instrument
	for _, inst := range t.instruments {
		if admit(inst.Code) {
			out = append(out, inst)
		}
	}
	return out
}

// ExcludeChiNext rejects ChiNext (300-board) codes; used by the
// consecutive-sun scan.
func ExcludeChiNext(code string) bool { return !strings.HasPrefix(code, "30") }

// MainBoardsOnly admits only SH/SZ main-board codes; used by the
// duck-head scan.
func MainBoardsOnly(code string) bool {
	return strings.HasPrefix(code, "60") || strings.HasPrefix(code, "00")
}
