// Package config loads spectrum.toml and resolves it together with the
// environment and the per-root options record into one Config, tracking
// where every value came from.
package config

import (
	"fmt"
	"time"
)

// Config is the top-level configuration structure mapping to spectrum.toml.
type Config struct {
	Tags   TagsConfig   `toml:"tags"`
	Run    RunConfig    `toml:"run"`
	Report ReportConfig `toml:"report"`
}

// TagsConfig maps to the [tags] section in spectrum.toml.
type TagsConfig struct {
	Include []string `toml:"include"`
	Exclude []string `toml:"exclude"`
}

// RunConfig maps to the [run] section in spectrum.toml.
type RunConfig struct {
	// Timeout is the default per-spec time limit as a Go duration string.
	// Empty means no limit.
	Timeout string `toml:"timeout"`
	// RandomSeed shuffles children of every suite when non-zero.
	RandomSeed uint64 `toml:"random_seed"`
}

// ReportConfig maps to the [report] section in spectrum.toml.
type ReportConfig struct {
	// File is the NDJSON event stream written by each run. Empty disables it.
	File string `toml:"file"`
	// Console mirrors events to stderr.
	Console bool `toml:"console"`
}

// TimeoutDuration parses Timeout. An empty Timeout yields zero.
func (r RunConfig) TimeoutDuration() (time.Duration, error) {
	if r.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(r.Timeout)
	if err != nil {
		return 0, fmt.Errorf("parsing run.timeout %q: %w", r.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("run.timeout %q must not be negative", r.Timeout)
	}
	return d, nil
}
