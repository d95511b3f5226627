// Package config provides YAML-based game configuration loading and
// difficulty management for driftline.
package config

// DriftConfig contains all tunable parameters for the game.
type DriftConfig struct {
	World       WorldConfig      `yaml:"world"`
	Obstacles   ObstacleConfig   `yaml:"obstacles"`
	Checkpoints CheckpointConfig `yaml:"checkpoints"`
	Turrets     TurretConfig     `yaml:"turrets"`
	Race        RaceConfig       `yaml:"race"`
	Car         CarConfig        `yaml:"car"`
	Difficulty  DifficultyConfig `yaml:"difficulty"`
}

// WorldConfig defines the arena bounds and wall geometry.
type WorldConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Margin        float64 `yaml:"margin"`         // Generated geometry stays inside [margin, dim-margin]
	WallThickness float64 `yaml:"wall_thickness"` // Boundary walls, inset by half the thickness
}

// ObstacleConfig defines randomized barrier placement parameters.
type ObstacleConfig struct {
	Count         int     `yaml:"count"`
	MinWidth      float64 `yaml:"min_width"`
	MaxWidth      float64 `yaml:"max_width"`
	MinHeight     float64 `yaml:"min_height"`
	MaxHeight     float64 `yaml:"max_height"`
	AttemptBudget int     `yaml:"attempt_budget"`
}

// CheckpointConfig defines checkpoint placement parameters.
type CheckpointConfig struct {
	Count         int     `yaml:"count"`
	Radius        float64 `yaml:"radius"`
	MinSpacing    float64 `yaml:"min_spacing"`
	InflateFactor float64 `yaml:"inflate_factor"` // Radius inflation for obstacle clearance tests
	AttemptBudget int     `yaml:"attempt_budget"`
}

// TurretConfig defines turret placement and force-field parameters.
type TurretConfig struct {
	Count               int     `yaml:"count"`
	TriggerRadius       float64 `yaml:"trigger_radius"`
	ForceRadius         float64 `yaml:"force_radius"`
	SprayRadius         float64 `yaml:"spray_radius"`
	MinSpacing          float64 `yaml:"min_spacing"`
	CheckpointClearance float64 `yaml:"checkpoint_clearance"`
	SpawnBuffer         float64 `yaml:"spawn_buffer"` // Added to trigger radius for spawn clearance
	BaseForce           float64 `yaml:"base_force"`
	MinForceScale       float64 `yaml:"min_force_scale"` // Floor so the push never vanishes at max range
	SprayMS             float64 `yaml:"spray_ms"`
	AttemptBudget       int     `yaml:"attempt_budget"`
}

// RaceConfig defines the race-rules timing windows.
type RaceConfig struct {
	StartCooldownMS float64 `yaml:"start_cooldown_ms"`
	PenaltyMS       float64 `yaml:"penalty_ms"`
}

// CarConfig defines the drift handling model.
type CarConfig struct {
	Radius             float64 `yaml:"radius"`
	ThrottleAccel      float64 `yaml:"throttle_accel"`
	BrakeAccel         float64 `yaml:"brake_accel"`
	MaxSpeed           float64 `yaml:"max_speed"`
	TurnRate           float64 `yaml:"turn_rate"` // rad/s baseline
	LateralGrip        float64 `yaml:"lateral_grip"`
	HandbrakeGrip      float64 `yaml:"handbrake_grip"`
	HandbrakeTurnBoost float64 `yaml:"handbrake_turn_boost"`
	CoastFriction      float64 `yaml:"coast_friction"`
	BoostImpulse       float64 `yaml:"boost_impulse"` // Forward kick from a boost pad
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "laps", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Laps/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	TurretForceMultiplier float64 `yaml:"turret_force_multiplier"` // Extra turret push at max difficulty
	BotSkillMin           float64 `yaml:"bot_skill_min"`
	BotSkillMax           float64 `yaml:"bot_skill_max"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

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

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *DriftConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}
