package config

import (
	_ "embed"
)

//go:embed defaults/gems.yaml
var defaultGemsYAML []byte

// DefaultGemsConfig returns the hard-coded configuration used when no YAML
// source can be read.
func DefaultGemsConfig() GemsConfig {
	return GemsConfig{
		Timing: GemsTiming{
			SwapDelayTicks:    6,
			CascadeDelayTicks: 9,
			HintIdleTicks:     300, // 10 seconds at 30 ticks per second
			HintShowTicks:     90,
			BannerTicks:       45,
		},
		Display: GemsDisplay{
			CellWidth:      3,
			GlyphSet:       "shapes",
			ShowHintOnIdle: true,
		},
		Gameplay: GemsGameplay{
			StartStage: 1,
			MaxStages:  1000,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "stage",
				MaxAt: 500,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
				HintDelayFactor: 1.0,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultGemsYAML
}
