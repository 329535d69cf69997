// Package config holds the engine's tuning constants. They are policy
// choices, not derived values, and must stay fixed across a season so luck
// scores remain comparable week over week.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Engine collects every constant the analysis packages use. Zero values are
// never valid; construct via DefaultEngine or LoadEngine.
type Engine struct {
	// WeeklyLuckScale converts a win-rate delta (actual minus fair win
	// rate, in [-1, 1]) into points. 100 puts a single week's delta in a
	// roughly ±100 range.
	WeeklyLuckScale float64 `yaml:"weekly_luck_scale"`

	// OpponentStrengthWeight scales the schedule adjustment: beating a weak
	// opponent is discounted, losing to a strong one is forgiven.
	OpponentStrengthWeight float64 `yaml:"opponent_strength_weight"`

	// RecentFormWindow is how many trailing played weeks feed the
	// recent-form average.
	RecentFormWindow int `yaml:"recent_form_window"`

	// StabilityThreshold is the momentum slope magnitude, in points per
	// week, below which a team's trend counts as "stable".
	StabilityThreshold float64 `yaml:"stability_threshold"`
}

// DefaultEngine returns the stock constants.
func DefaultEngine() Engine {
	return Engine{
		WeeklyLuckScale:        100,
		OpponentStrengthWeight: 20,
		RecentFormWindow:       3,
		StabilityThreshold:     2.0,
	}
}

// LoadEngine reads overrides from a YAML file on top of the defaults. A
// missing file is not an error; a malformed one is. Fields left out of the
// file keep their default values.
func LoadEngine(path string) (Engine, error) {
	cfg := DefaultEngine()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse engine config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("engine config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects constants that would make the engine silently degenerate.
func (c Engine) Validate() error {
	if c.WeeklyLuckScale <= 0 {
		return fmt.Errorf("weekly_luck_scale must be positive, got %g", c.WeeklyLuckScale)
	}
	if c.OpponentStrengthWeight < 0 {
		return fmt.Errorf("opponent_strength_weight must not be negative, got %g", c.OpponentStrengthWeight)
	}
	if c.RecentFormWindow < 1 {
		return fmt.Errorf("recent_form_window must be at least 1, got %d", c.RecentFormWindow)
	}
	if c.StabilityThreshold < 0 {
		return fmt.Errorf("stability_threshold must not be negative, got %g", c.StabilityThreshold)
	}
	return nil
}
