package config

import "math"

// DifficultyManager derives presentation pacing from stage progression.
// Stage rules themselves (moves, targets, grid size) come from the engine.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the difficulty level (0.0 to 1.0) for a stage.
func (d *DifficultyManager) Level(stage int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}
	if d.cfg.Progression.Type != "stage" {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 1 {
		maxAt = 2 // Prevent division by zero
	}
	progress := clampF(float64(stage-1)/(maxAt-1), 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// CascadeDelay returns the number of ticks between settle steps for a stage.
// Higher levels play cascades faster, never below one tick.
func (d *DifficultyManager) CascadeDelay(baseTicks int, stage int) int {
	level := d.Level(stage)
	speed := 1.0 + level*d.cfg.Scaling.SpeedMultiplier
	if speed <= 0 {
		speed = 1
	}
	ticks := int(math.Round(float64(baseTicks) / speed))
	if ticks < 1 {
		ticks = 1
	}
	return ticks
}

// HintDelay returns the idle ticks before a hint is revealed for a stage.
// Hints arrive later as the level rises.
func (d *DifficultyManager) HintDelay(baseTicks int, stage int) int {
	level := d.Level(stage)
	ticks := int(math.Round(float64(baseTicks) * (1.0 + level*d.cfg.Scaling.HintDelayFactor)))
	if ticks < baseTicks {
		ticks = baseTicks
	}
	return ticks
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
