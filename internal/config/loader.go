package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadGems loads gems configuration.
// Search order: customPath -> ~/.gems/configs/gems.yaml -> ./configs/gems.yaml -> embedded default
func LoadGems(customPath string) (GemsConfig, error) {
	// Missing keys keep their hard-coded defaults.
	cfg := DefaultGemsConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return sanitize(cfg), nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("gems.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return sanitize(cfg), nil
			}
			cfg = DefaultGemsConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "gems.yaml")); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return sanitize(cfg), nil
		}
		cfg = DefaultGemsConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultGemsYAML, &cfg); err != nil {
		return DefaultGemsConfig(), nil // Fallback to hardcoded if embed fails
	}
	return sanitize(cfg), nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gems", "configs", filename)
}

// ApplyGemsPreset modifies the config based on a difficulty preset.
func ApplyGemsPreset(cfg *GemsConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	switch preset {
	case DifficultyEasy:
		cfg.Display.ShowHintOnIdle = true
	case DifficultyHard:
		cfg.Display.ShowHintOnIdle = false
	}
}

// sanitize replaces values that would stall or break the game loop.
func sanitize(cfg GemsConfig) GemsConfig {
	def := DefaultGemsConfig()
	if cfg.Timing.SwapDelayTicks < 0 {
		cfg.Timing.SwapDelayTicks = def.Timing.SwapDelayTicks
	}
	if cfg.Timing.CascadeDelayTicks < 1 {
		cfg.Timing.CascadeDelayTicks = def.Timing.CascadeDelayTicks
	}
	if cfg.Timing.HintIdleTicks < 1 {
		cfg.Timing.HintIdleTicks = def.Timing.HintIdleTicks
	}
	if cfg.Timing.HintShowTicks < 1 {
		cfg.Timing.HintShowTicks = def.Timing.HintShowTicks
	}
	if cfg.Timing.BannerTicks < 1 {
		cfg.Timing.BannerTicks = def.Timing.BannerTicks
	}
	if cfg.Display.CellWidth != 2 && cfg.Display.CellWidth != 3 {
		cfg.Display.CellWidth = def.Display.CellWidth
	}
	if cfg.Display.GlyphSet != "shapes" && cfg.Display.GlyphSet != "letters" {
		cfg.Display.GlyphSet = def.Display.GlyphSet
	}
	if cfg.Gameplay.MaxStages < 1 || cfg.Gameplay.MaxStages > def.Gameplay.MaxStages {
		cfg.Gameplay.MaxStages = def.Gameplay.MaxStages
	}
	if cfg.Gameplay.StartStage < 1 || cfg.Gameplay.StartStage > cfg.Gameplay.MaxStages {
		cfg.Gameplay.StartStage = 1
	}
	return cfg
}
