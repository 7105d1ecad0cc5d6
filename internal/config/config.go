// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all tunables. Environment variables are prefixed with
// ATTEND_, e.g. ATTEND_DB_PATH, ATTEND_CAPTURE_INTERVAL.
type Config struct {
	DBPath   string `envconfig:"DB_PATH" default:""`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Activity tracking
	ActivityCapacity int           `envconfig:"ACTIVITY_CAPACITY" default:"1000"`
	CaptureInterval  time.Duration `envconfig:"CAPTURE_INTERVAL" default:"1s"`
	AnalyzeInterval  time.Duration `envconfig:"ANALYZE_INTERVAL" default:"5s"`
	EvictInterval    time.Duration `envconfig:"EVICT_INTERVAL" default:"1h"`

	// Productivity analysis
	AnalysisWindow       time.Duration `envconfig:"ANALYSIS_WINDOW" default:"1h"`
	FocusSessionMin      time.Duration `envconfig:"FOCUS_SESSION_MIN" default:"25m"`
	InterventionAfter    time.Duration `envconfig:"INTERVENTION_AFTER" default:"15m"`
	DistractionLimit     int           `envconfig:"DISTRACTION_LIMIT" default:"5"`
	BreakAfterFocusCount int           `envconfig:"BREAK_AFTER_FOCUS_COUNT" default:"4"`

	// Memory
	WorkingMemorySize int `envconfig:"WORKING_MEMORY_SIZE" default:"7"`
	RetrievalLimit    int `envconfig:"RETRIEVAL_LIMIT" default:"5"`

	// Session creation
	SessionCreateRetries uint64 `envconfig:"SESSION_CREATE_RETRIES" default:"5"`
}

// Load parses ATTEND_* environment variables into a Config.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("ATTEND", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath()
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.ActivityCapacity <= 0 {
		return fmt.Errorf("activity capacity must be positive, got %d", c.ActivityCapacity)
	}
	if c.WorkingMemorySize <= 0 {
		return fmt.Errorf("working memory size must be positive, got %d", c.WorkingMemorySize)
	}
	if c.RetrievalLimit <= 0 {
		return fmt.Errorf("retrieval limit must be positive, got %d", c.RetrievalLimit)
	}
	return nil
}

func defaultDBPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".attend", "attend.db")
}
