package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"gopkg.in/yaml.v3"

	"PatternSentinel/internal/pattern"
)

// Config holds all application configuration. Every matcher threshold is
// an explicit field so runs are testable and overridable; nothing hides
// in package-level state.
type Config struct {
	Data struct {
		Dir       string `yaml:"dir"`        // per-instrument history CSVs
		NamesFile string `yaml:"names_file"` // instrument code/name table
		OutputDir string `yaml:"output_dir"` // result file base directory
	} `yaml:"data"`
	Scan struct {
		Workers int `yaml:"workers"`
	} `yaml:"scan"`
	Schedule struct {
		ConsecutiveSunCron string `yaml:"consecutive_sun_cron"`
		DuckHeadCron       string `yaml:"duck_head_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`

	ConsecutiveSun pattern.ConsecutiveSunConfig `yaml:"consecutive_sun"`
	DuckHead       pattern.DuckHeadConfig       `yaml:"duck_head"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. Pattern thresholds start from their standard
// values; the file only needs to name the ones it changes.
func Load(path string) (*Config, error) {
	cfg := &Config{
		ConsecutiveSun: pattern.DefaultConsecutiveSunConfig(),
		DuckHead:       pattern.DefaultDuckHeadConfig(),
	}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.Data.Dir = v
	}
	if v := os.Getenv("NAMES_FILE"); v != "" {
		cfg.Data.NamesFile = v
	}
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		cfg.Data.OutputDir = v
	}
	if v := os.Getenv("SCAN_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Scan.Workers = n
		}
	}
	if v := os.Getenv("CRON_CONSECUTIVE_SUN"); v != "" {
		cfg.Schedule.ConsecutiveSunCron = v
	}
	if v := os.Getenv("CRON_DUCK_HEAD"); v != "" {
		cfg.Schedule.DuckHeadCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.Data.Dir == "" {
		cfg.Data.Dir = "stock_data"
	}
	if cfg.Data.NamesFile == "" {
		cfg.Data.NamesFile = "stock_names.csv"
	}
	if cfg.Data.OutputDir == "" {
		cfg.Data.OutputDir = "results"
	}
	if cfg.Scan.Workers == 0 {
		cfg.Scan.Workers = runtime.NumCPU()
	}
	// Weekday runs shortly after the session close.
	if cfg.Schedule.ConsecutiveSunCron == "" {
		cfg.Schedule.ConsecutiveSunCron = "0 30 15 * * 1-5"
	}
	if cfg.Schedule.DuckHeadCron == "" {
		cfg.Schedule.DuckHeadCron = "0 45 15 * * 1-5"
	}

	return cfg, nil
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Data.Dir == "" {
		return fmt.Errorf("data.dir is required")
	}
	if c.Data.NamesFile == "" {
		return fmt.Errorf("data.names_file is required")
	}
	if c.Scan.Workers < 1 {
		return fmt.Errorf("scan.workers must be positive")
	}
	if c.ConsecutiveSun.Window < 3 {
		return fmt.Errorf("consecutive_sun.window must allow a peak, a washout and a breakout day")
	}
	if c.ConsecutiveSun.MinBars < c.ConsecutiveSun.Window {
		return fmt.Errorf("consecutive_sun.min_bars must cover the evaluation window")
	}
	if c.ConsecutiveSun.PriceMin > c.ConsecutiveSun.PriceMax {
		return fmt.Errorf("consecutive_sun price band is inverted")
	}
	if c.DuckHead.MinBars < 2 {
		return fmt.Errorf("duck_head.min_bars must be at least 2")
	}
	if c.DuckHead.TrendRef < 1 || c.DuckHead.TrendRef > c.DuckHead.MinBars {
		return fmt.Errorf("duck_head.trend_ref must fall inside the minimum history")
	}
	if c.DuckHead.PriceMin > c.DuckHead.PriceMax {
		return fmt.Errorf("duck_head price band is inverted")
	}
	return nil
}
