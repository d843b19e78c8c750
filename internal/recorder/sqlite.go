package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"PatternSentinel/internal/model"
)

// SQLiteRecorder persists scan history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs
// migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance while a scan writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS scan_runs (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			pattern       TEXT NOT NULL,
			universe_size INTEGER,
			scanned       INTEGER,
			matched       INTEGER,
			failed        INTEGER,
			duration_ms   INTEGER,
			output_path   TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON scan_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS duck_head_hits (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			filter_date TEXT,
			code        TEXT,
			name        TEXT,
			level       TEXT,
			price       REAL,
			pct_chg     REAL,
			turnover    REAL,
			vol_ratio   REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_hits_ts ON duck_head_hits(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_hits_code ON duck_head_hits(code)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(run *ScanRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO scan_runs
		(timestamp, pattern, universe_size, scanned, matched, failed, duration_ms, output_path)
		VALUES (?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), run.Pattern, run.Universe,
		run.Scanned, run.Matched, run.Failed,
		run.Elapsed.Milliseconds(), run.OutputPath,
	)
	return err
}

func (r *SQLiteRecorder) RecordDuckHeadHits(results []*model.DuckHeadResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().Unix()
	for _, res := range results {
		if _, err := r.db.Exec(`INSERT INTO duck_head_hits
			(timestamp, filter_date, code, name, level, price, pct_chg, turnover, vol_ratio)
			VALUES (?,?,?,?,?,?,?,?,?)`,
			now, res.FilterDate.Format("2006-01-02"), res.Code, res.Name,
			string(res.Tier), res.Price, res.PctChg, res.Turnover, res.VolumeRatio,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
