// Package config provides YAML-based game configuration loading and
// preset management for the catcher platform.
package config

import (
	"errors"
	"fmt"
)

// CatcherConfig contains all configuration for the Coin Catcher game.
type CatcherConfig struct {
	Field     FieldConfig     `yaml:"field"`
	Collector CollectorConfig `yaml:"collector"`
	Items     ItemsConfig     `yaml:"items"`
	Spawn     SpawnConfig     `yaml:"spawn"`
	Lives     LivesConfig     `yaml:"lives"`
	Audio     AudioConfig     `yaml:"audio"`
}

// FieldConfig maps terminal cells to play-field pixels.
type FieldConfig struct {
	Height     float64 `yaml:"height"`
	CellAspect float64 `yaml:"cell_aspect"`
}

// CollectorConfig defines the paddle geometry.
type CollectorConfig struct {
	InitialWidthRatio float64 `yaml:"initial_width_ratio"`
	MaxWidthRatio     float64 `yaml:"max_width_ratio"`
	GrowthFactor      float64 `yaml:"growth_factor"`
	Height            float64 `yaml:"height"`
	BottomOffset      float64 `yaml:"bottom_offset"`
	KeyStep           float64 `yaml:"key_step"`
}

// ItemsConfig defines falling item geometry and speed range.
type ItemsConfig struct {
	CoinRadius float64 `yaml:"coin_radius"`
	MinSpeed   float64 `yaml:"min_speed"`
	MaxSpeed   float64 `yaml:"max_speed"`
}

// SpawnConfig defines per-tick spawn probabilities.
type SpawnConfig struct {
	ChancePercent     int `yaml:"chance_percent"`
	LifeChancePercent int `yaml:"life_chance_percent"`
}

// LivesConfig defines life counts.
type LivesConfig struct {
	Initial int `yaml:"initial"`
	Max     int `yaml:"max"`
}

// AudioConfig defines the cue tones played by the host.
type AudioConfig struct {
	Enabled    bool      `yaml:"enabled"`
	Volume     float64   `yaml:"volume"`
	CoinToneHz float64   `yaml:"coin_tone_hz"`
	LifeToneHz []float64 `yaml:"life_tone_hz"`
	DurationMs int       `yaml:"duration_ms"`
}

// Preset represents a named set of spawn and speed ranges.
type Preset string

const (
	PresetEasy   Preset = "easy"
	PresetNormal Preset = "normal"
	PresetHard   Preset = "hard"
)

// ParsePreset converts a CLI value to a Preset. Empty input means no preset.
func ParsePreset(s string) (Preset, error) {
	switch Preset(s) {
	case "":
		return "", nil
	case PresetEasy, PresetNormal, PresetHard:
		return Preset(s), nil
	default:
		return "", fmt.Errorf("unknown preset %q (want easy, normal or hard)", s)
	}
}

// ApplyCatcherPreset modifies the config based on a preset.
// Presets only shift the fixed random ranges; nothing changes during a round.
func ApplyCatcherPreset(cfg *CatcherConfig, preset Preset) {
	switch preset {
	case PresetEasy:
		cfg.Items.MinSpeed = 6
		cfg.Items.MaxSpeed = 12
		cfg.Spawn.LifeChancePercent = 15
	case PresetHard:
		cfg.Items.MinSpeed = 15
		cfg.Items.MaxSpeed = 28
		cfg.Spawn.ChancePercent = 3
		cfg.Spawn.LifeChancePercent = 5
	}
}

// Validate reports values that would break the simulation.
func (c CatcherConfig) Validate() error {
	var errs []error

	if c.Field.Height <= 0 {
		errs = append(errs, errors.New("field.height must be positive"))
	}
	if c.Field.CellAspect <= 0 {
		errs = append(errs, errors.New("field.cell_aspect must be positive"))
	}
	if c.Collector.InitialWidthRatio <= 0 || c.Collector.InitialWidthRatio > c.Collector.MaxWidthRatio {
		errs = append(errs, errors.New("collector.initial_width_ratio must be in (0, max_width_ratio]"))
	}
	if c.Collector.MaxWidthRatio > 1 {
		errs = append(errs, errors.New("collector.max_width_ratio must not exceed 1"))
	}
	if c.Collector.GrowthFactor < 1 {
		errs = append(errs, errors.New("collector.growth_factor must be at least 1"))
	}
	if c.Items.CoinRadius <= 0 {
		errs = append(errs, errors.New("items.coin_radius must be positive"))
	}
	if c.Items.MinSpeed <= 0 || c.Items.MaxSpeed < c.Items.MinSpeed {
		errs = append(errs, errors.New("items speeds must satisfy 0 < min_speed <= max_speed"))
	}
	if c.Spawn.ChancePercent < 0 || c.Spawn.ChancePercent > 100 {
		errs = append(errs, errors.New("spawn.chance_percent must be in [0, 100]"))
	}
	if c.Spawn.LifeChancePercent < 0 || c.Spawn.LifeChancePercent > 100 {
		errs = append(errs, errors.New("spawn.life_chance_percent must be in [0, 100]"))
	}
	if c.Lives.Initial <= 0 || c.Lives.Initial > c.Lives.Max {
		errs = append(errs, errors.New("lives must satisfy 0 < initial <= max"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid catcher config: %w", errors.Join(errs...))
	}
	return nil
}
