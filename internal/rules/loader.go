// Package rules loads extraction rule files and validates them before
// compilation.
package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fieldsift/fieldsift/internal/model"
)

// RuleFile is the on-disk rule document: an optional settings block that
// overrides engine defaults, plus the rule list.
type RuleFile struct {
	Settings *SettingsOverride `yaml:"settings"`
	Rules    []model.Rule      `yaml:"rules"`
}

// SettingsOverride is the rule file's settings block. Every field is a
// pointer so a knob omitted from the file inherits the engine default
// instead of being read as its zero value.
type SettingsOverride struct {
	MaxExtractionLength *int    `yaml:"max_extraction_length"`
	TrimWhitespace      *bool   `yaml:"trim_whitespace"`
	RemoveSpecialChars  *bool   `yaml:"remove_special_chars"`
	NotFoundValue       *string `yaml:"default_value_if_not_found"`
	RequireAfterMatch   *bool   `yaml:"require_after_match"`
}

// Load reads and parses a rule file. Malformed YAML and empty rule lists
// are hard errors; per-rule problems are left to Validate.
func Load(path string) (*RuleFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule file: %w", err)
	}

	var rf RuleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("failed to parse rule file %s: %w", path, err)
	}

	if len(rf.Rules) == 0 {
		return nil, fmt.Errorf("rule file %s contains no rules", path)
	}

	return &rf, nil
}

// ApplySettings merges the file's settings block over the engine defaults.
// Only the fields present in the file override; the rest inherit, including
// booleans set explicitly to false.
func (rf *RuleFile) ApplySettings(base model.Settings) model.Settings {
	o := rf.Settings
	if o == nil {
		return base
	}
	if o.MaxExtractionLength != nil {
		base.MaxExtractionLength = *o.MaxExtractionLength
	}
	if o.TrimWhitespace != nil {
		base.TrimWhitespace = *o.TrimWhitespace
	}
	if o.RemoveSpecialChars != nil {
		base.RemoveSpecialChars = *o.RemoveSpecialChars
	}
	if o.NotFoundValue != nil {
		base.NotFoundValue = *o.NotFoundValue
	}
	if o.RequireAfterMatch != nil {
		base.RequireAfterMatch = *o.RequireAfterMatch
	}
	return base
}
