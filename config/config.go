// Package config loads the optional TOML settings file. The file lives at
// ~/.gpias-marker/config.toml unless --config names another one. Keys left
// out of the file keep their defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/andareed/gpias-marker/trial"
)

// Config mirrors the settings file. TOML keys are snake_case.
type Config struct {
	// TrialLength is the number of consecutive rows per trial.
	// Default: 500
	TrialLength int `toml:"trial_length"`

	// HighlightStartMs and HighlightEndMs bound the shaded reference span.
	// Default: 300 and 320
	HighlightStartMs float64 `toml:"highlight_start_ms"`
	HighlightEndMs   float64 `toml:"highlight_end_ms"`

	// DefaultYMin and DefaultYMax are the fixed limits before a file is
	// loaded. The upper one is reseeded from the data on every load.
	DefaultYMin float64 `toml:"default_y_min"`
	DefaultYMax float64 `toml:"default_y_max"`

	// SeedFactor scales the largest Encl 1 reading into the fixed upper
	// limit. Default: 0.6
	SeedFactor float64 `toml:"seed_factor"`

	// Autoscale starts the session in auto axis mode.
	Autoscale bool `toml:"autoscale"`

	// JournalPath is the SQLite decision journal. Empty disables it.
	// Default: ~/.gpias-marker/journal.db
	JournalPath string `toml:"journal_path"`

	// ExportDir is where the export dialog proposes to write. Empty means
	// next to the source file.
	ExportDir string `toml:"export_dir"`
}

const dirName = ".gpias-marker"

// Default returns the built-in settings.
func Default() *Config {
	opts := trial.DefaultOptions()
	cfg := &Config{
		TrialLength:      opts.TrialLength,
		HighlightStartMs: opts.Highlight.Start,
		HighlightEndMs:   opts.Highlight.End,
		DefaultYMin:      opts.DefaultLimits.Min,
		DefaultYMax:      opts.DefaultLimits.Max,
		SeedFactor:       opts.SeedFactor,
	}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.JournalPath = filepath.Join(home, dirName, "journal.db")
	}
	return cfg
}

// DefaultConfigPath returns ~/.gpias-marker/config.toml.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, dirName, "config.toml"), nil
}

// Load reads the settings file at path over the defaults.
//
// An empty path means the default location, which may be absent. An
// explicit path must exist. Unknown keys are an error so that a typo does
// not silently fall back to a default.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return cfg, nil
		}
		if _, err := os.Stat(defaultPath); errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		path = defaultPath
	} else if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config file %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the settings for values the session cannot work with.
func (c *Config) Validate() error {
	var errs []error
	if c.TrialLength <= 0 {
		errs = append(errs, fmt.Errorf("trial_length must be positive, got %d", c.TrialLength))
	}
	if c.HighlightStartMs > c.HighlightEndMs {
		errs = append(errs, fmt.Errorf("highlight_start_ms %g is after highlight_end_ms %g", c.HighlightStartMs, c.HighlightEndMs))
	}
	if c.DefaultYMin >= c.DefaultYMax {
		errs = append(errs, fmt.Errorf("default_y_min %g must be below default_y_max %g", c.DefaultYMin, c.DefaultYMax))
	}
	if c.SeedFactor <= 0 {
		errs = append(errs, fmt.Errorf("seed_factor must be positive, got %g", c.SeedFactor))
	}
	return errors.Join(errs...)
}

// SessionOptions converts the settings into trial.Options.
func (c *Config) SessionOptions() trial.Options {
	return trial.Options{
		TrialLength:   c.TrialLength,
		Highlight:     trial.Interval{Start: c.HighlightStartMs, End: c.HighlightEndMs},
		DefaultLimits: trial.Limits{Min: c.DefaultYMin, Max: c.DefaultYMax},
		SeedFactor:    c.SeedFactor,
		Autoscale:     c.Autoscale,
	}
}
