// Package config provides YAML configuration loading and difficulty presets
// for the gems game.
package config

// GemsConfig contains all configuration for the gems game.
type GemsConfig struct {
	Timing     GemsTiming       `yaml:"timing"`
	Display    GemsDisplay      `yaml:"display"`
	Gameplay   GemsGameplay     `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// GemsTiming defines presentation pacing in ticks. The engine itself is
// untimed; these values only decide when the host requests the next step.
type GemsTiming struct {
	SwapDelayTicks    int `yaml:"swap_delay_ticks"`    // Accepted swap -> first settle step
	CascadeDelayTicks int `yaml:"cascade_delay_ticks"` // Between settle steps
	HintIdleTicks     int `yaml:"hint_idle_ticks"`     // Idle time before a hint appears on its own
	HintShowTicks     int `yaml:"hint_show_ticks"`     // How long a hint stays visible
	BannerTicks       int `yaml:"banner_ticks"`        // Combo and status banners
}

// GemsDisplay defines how the board is drawn.
type GemsDisplay struct {
	CellWidth      int    `yaml:"cell_width"`        // Columns per gem, 2 or 3
	GlyphSet       string `yaml:"glyph_set"`         // "shapes" or "letters"
	ShowHintOnIdle bool   `yaml:"show_hint_on_idle"` // Reveal a hint after HintIdleTicks
}

// GemsGameplay defines stage progression.
type GemsGameplay struct {
	StartStage int  `yaml:"start_stage"`
	MaxStages  int  `yaml:"max_stages"`
	UnlockAll  bool `yaml:"unlock_all"` // Ignore saved progress when choosing stages
}

// DifficultyConfig defines how pacing tightens as stages advance.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = relaxed, 1.0 = fastest
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines what drives the difficulty level.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "stage" or "none"
	MaxAt int    `yaml:"max_at"` // Stage at which the level reaches 1.0
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Extra cascade speed at level 1.0
	HintDelayFactor float64 `yaml:"hint_delay_factor"` // Extra idle time before hints at level 1.0
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string maps to normal.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, true
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return DifficultyNormal, false
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
