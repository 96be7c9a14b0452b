package config

import (
	_ "embed"
)

//go:embed defaults/catcher.yaml
var defaultCatcherYAML []byte

// DefaultCatcherConfig returns the default Coin Catcher configuration.
func DefaultCatcherConfig() CatcherConfig {
	return CatcherConfig{
		Field: FieldConfig{
			Height:     2000,
			CellAspect: 0.5,
		},
		Collector: CollectorConfig{
			InitialWidthRatio: 0.15,
			MaxWidthRatio:     0.30,
			GrowthFactor:      1.05,
			Height:            60,
			BottomOffset:      200,
			KeyStep:           0.04,
		},
		Items: ItemsConfig{
			CoinRadius: 40,
			MinSpeed:   10,
			MaxSpeed:   20,
		},
		Spawn: SpawnConfig{
			ChancePercent:     2,
			LifeChancePercent: 10,
		},
		Lives: LivesConfig{
			Initial: 3,
			Max:     5,
		},
		Audio: AudioConfig{
			Enabled:    true,
			Volume:     0.5,
			CoinToneHz: 880,
			LifeToneHz: []float64{941, 1336}, // DTMF "0"
			DurationMs: 150,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "catcher":
		return defaultCatcherYAML
	default:
		return nil
	}
}
