package config

import (
	_ "embed"
)

//go:embed defaults/driftline.yaml
var defaultDriftYAML []byte

// DefaultDriftConfig returns the default game configuration.
func DefaultDriftConfig() DriftConfig {
	return DriftConfig{
		World: WorldConfig{
			Width:         3000,
			Height:        2000,
			Margin:        60,
			WallThickness: 60,
		},
		Obstacles: ObstacleConfig{
			Count:         9,
			MinWidth:      120,
			MaxWidth:      320,
			MinHeight:     24,
			MaxHeight:     48,
			AttemptBudget: 4000,
		},
		Checkpoints: CheckpointConfig{
			Count:         6,
			Radius:        70,
			MinSpacing:    420,
			InflateFactor: 1.2,
			AttemptBudget: 4000,
		},
		Turrets: TurretConfig{
			Count:               3,
			TriggerRadius:       110,
			ForceRadius:         260,
			SprayRadius:         180,
			MinSpacing:          500,
			CheckpointClearance: 260,
			SpawnBuffer:         80,
			BaseForce:           220,
			MinForceScale:       0.25,
			SprayMS:             1000,
			AttemptBudget:       4000,
		},
		Race: RaceConfig{
			StartCooldownMS: 1000,
			PenaltyMS:       1000,
		},
		Car: CarConfig{
			Radius:             18,
			ThrottleAccel:      520,
			BrakeAccel:         900,
			MaxSpeed:           640,
			TurnRate:           2.6,
			LateralGrip:        0.82,
			HandbrakeGrip:      0.94,
			HandbrakeTurnBoost: 1.35,
			CoastFriction:      0.985,
			BoostImpulse:       180,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "laps",
				MaxAt: 10,
			},
			Scaling: ScalingConfig{
				TurretForceMultiplier: 0.8,
				BotSkillMin:           0.55,
				BotSkillMax:           0.9,
			},
		},
	}
}
