package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/abelbrown/homescout/internal/config"
	"github.com/abelbrown/homescout/internal/store"
)

// dbPath returns the path to homescout.db, creating the data dir if needed.
func dbPath() string {
	dir := config.DataDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatalf("failed to create data directory: %v", err)
	}
	return filepath.Join(dir, "homescout.db")
}

// openDB opens the store or fatals.
func openDB() *store.Store {
	st, err := store.Open(dbPath())
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	return st
}

// loadConfig loads the config (writing defaults on first run) or fatals.
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

// requireAPIKey returns the RapidAPI key or fatals.
func requireAPIKey(cfg *config.Config) string {
	if cfg.Secrets.RapidAPIKey == "" {
		fmt.Fprintln(os.Stderr, "error: RAPIDAPI_KEY environment variable is required")
		fmt.Fprintln(os.Stderr, "  export RAPIDAPI_KEY=... or add it to .env")
		os.Exit(1)
	}
	return cfg.Secrets.RapidAPIKey
}
