package config

import "math"

// DifficultyManager calculates dynamic game parameters based on laps/time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: cfg.InitialLevel,
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on laps/ticks.
func (d *DifficultyManager) Level(laps int, ticks int) float64 {
	if !d.cfg.Enabled || d.cfg.Progression.Type == "none" {
		return d.initialLevel
	}

	var progress float64
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	switch d.cfg.Progression.Type {
	case "laps":
		progress = float64(laps) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// TurretForce returns the scaled turret base force.
func (d *DifficultyManager) TurretForce(baseForce float64, laps int, ticks int) float64 {
	level := d.Level(laps, ticks)
	return baseForce * (1.0 + level*d.cfg.Scaling.TurretForceMultiplier)
}

// BotSkill returns the CPU opponent skill for the current difficulty,
// interpolated between the configured min and max.
func (d *DifficultyManager) BotSkill(laps int, ticks int) float64 {
	level := d.Level(laps, ticks)
	min := d.cfg.Scaling.BotSkillMin
	max := d.cfg.Scaling.BotSkillMax
	if max < min {
		max = min
	}
	return min + level*(max-min)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
