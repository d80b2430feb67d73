package config

import (
	"fmt"
	"os"
	"time"
)

// Backends selectable via TAPEDECK_BACKEND.
const (
	BackendFS       = "fs"
	BackendPostgres = "postgres"
)

// Config carries the engine's deployment-provided settings.
type Config struct {
	// BaseDir is the directory holding the "cassettes" subdirectory.
	BaseDir string
	// Backend selects the cassette store implementation.
	Backend string
	// DatabaseURL is required when Backend is "postgres".
	DatabaseURL string
	// RecordTimeout bounds each real call made while recording.
	RecordTimeout time.Duration
	// ListenAddr is the cassette inspector's listen address.
	ListenAddr string
}

func LoadFromEnv() (Config, error) {
	cfg := Config{
		BaseDir:       ".",
		Backend:       BackendFS,
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RecordTimeout: 2 * time.Second,
		ListenAddr:    ":8080",
	}

	if v := os.Getenv("TAPEDECK_DIR"); v != "" {
		cfg.BaseDir = v
	}
	if v := os.Getenv("TAPEDECK_BACKEND"); v != "" {
		switch v {
		case BackendFS, BackendPostgres:
			cfg.Backend = v
		default:
			return Config{}, fmt.Errorf("TAPEDECK_BACKEND must be %q or %q, got %q", BackendFS, BackendPostgres, v)
		}
	}
	if cfg.Backend == BackendPostgres && cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required when TAPEDECK_BACKEND=%s", BackendPostgres)
	}
	if v := os.Getenv("TAPEDECK_RECORD_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("TAPEDECK_RECORD_TIMEOUT must be a duration (e.g. 2s): %w", err)
		}
		cfg.RecordTimeout = d
	}
	if v := os.Getenv("TAPEDECK_LISTEN"); v != "" {
		cfg.ListenAddr = v
	}

	return cfg, nil
}
