package model

import (
	"runtime"
	"time"
)

// Config carries all run-wide settings. It is built once at startup and
// passed into the engine explicitly; nothing reads process-global state.
type Config struct {
	Settings    Settings          `yaml:"settings"`
	Approximate ApproximateConfig `yaml:"approximate"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Cache       CacheConfig       `yaml:"cache"`
	Output      OutputConfig      `yaml:"output"`
}

// Settings are the rule-evaluation defaults shared by every rule that does
// not override them.
type Settings struct {
	// MaxExtractionLength caps extracted span length when a rule sets no
	// max_length of its own.
	MaxExtractionLength int `yaml:"max_extraction_length"`

	TrimWhitespace     bool `yaml:"trim_whitespace"`
	RemoveSpecialChars bool `yaml:"remove_special_chars"`

	// NotFoundValue is the sentinel recorded when no extraction method
	// succeeds for a (document, rule) pair.
	NotFoundValue string `yaml:"default_value_if_not_found"`

	// RequireAfterMatch controls the both-anchor contract: when true (the
	// default), a rule with before and after anchors yields no value if the
	// after-anchor is absent, instead of degrading to before-only matching.
	RequireAfterMatch bool `yaml:"require_after_match"`
}

// ApproximateConfig controls tolerant anchor matching for noisy text
type ApproximateConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Threshold float64 `yaml:"threshold"`
}

// ConcurrencyConfig controls parallel document evaluation
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// CacheConfig controls the converted-document-text cache
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Dir     string        `yaml:"dir,omitempty"`
	TTL     time.Duration `yaml:"ttl"`
}

// OutputConfig controls result rendering
type OutputConfig struct {
	Verbose        bool `yaml:"verbose"`
	IncludeSummary bool `yaml:"include_summary"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Settings: Settings{
			MaxExtractionLength: 100,
			TrimWhitespace:      true,
			RemoveSpecialChars:  false,
			NotFoundValue:       "NOT_FOUND",
			RequireAfterMatch:   true,
		},
		Approximate: ApproximateConfig{
			Enabled:   false,
			Threshold: 0.8,
		},
		Concurrency: ConcurrencyConfig{
			Workers: runtime.NumCPU(),
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     24 * time.Hour,
		},
		Output: OutputConfig{
			Verbose:        false,
			IncludeSummary: true,
		},
	}
}
