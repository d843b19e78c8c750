package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"PatternSentinel/internal/config"
	"PatternSentinel/internal/pattern"
	"PatternSentinel/internal/recorder"
	"PatternSentinel/internal/report"
	"PatternSentinel/internal/scanner"
	"PatternSentinel/internal/scheduler"
	"PatternSentinel/internal/storage"
	"PatternSentinel/internal/universe"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] PatternSentinel starting...")

	once := flag.Bool("once", false, "run both scans immediately and exit")
	flag.Parse()

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Batch-level inputs: a missing universe table or data directory
	// aborts the run instead of silently emitting empty results.
	table, err := universe.Load(cfg.Data.NamesFile)
	if err != nil {
		log.Fatalf("[FATAL] load instrument universe: %v", err)
	}
	loader, err := storage.NewLoader(cfg.Data.Dir)
	if err != nil {
		log.Fatalf("[FATAL] open data directory: %v", err)
	}
	log.Printf("[INFO] universe loaded: %d admissible instruments", table.Len())

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sc := scanner.New(loader, cfg.Scan.Workers)
	sched := scheduler.NewScheduler(ctx, table, loader, sc,
		pattern.NewConsecutiveSun(cfg.ConsecutiveSun),
		pattern.NewDuckHead(cfg.DuckHead),
		report.NewWriter(cfg.Data.OutputDir),
		rec,
	)

	if *once {
		sched.RunConsecutiveSunNow()
		sched.RunDuckHeadNow()
		log.Println("[INFO] one-shot scans finished")
		return
	}

	if err := sched.RegisterAll(cfg.Schedule.ConsecutiveSunCron, cfg.Schedule.DuckHeadCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing both scans now")
		go func() {
			sched.RunConsecutiveSunNow()
			sched.RunDuckHeadNow()
		}()
	}

	log.Println("[INFO] PatternSentinel is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] PatternSentinel stopped")
}
