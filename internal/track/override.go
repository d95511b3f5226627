package track

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"driftline/internal/config"
	"driftline/internal/core"
)

// Override is an optional hand-authored arena document. Each present array
// fully replaces the corresponding generated set; absent arrays leave the
// generated layout untouched. Replacing checkpoints also renumbers the
// in-memory checkpoint index mapping from scratch.
type Override struct {
	Walls       []OverrideRect   `yaml:"walls"` // Replaces the randomized obstacle set
	Checkpoints []OverrideCircle `yaml:"checkpoints"`
	Pads        *OverridePads    `yaml:"pads"`
}

// OverrideRect is one rectangle entry in an override document.
type OverrideRect struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	W     float64 `yaml:"w"`
	H     float64 `yaml:"h"`
	Angle float64 `yaml:"angle"`
}

// OverrideCircle is one checkpoint entry in an override document.
type OverrideCircle struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	R float64 `yaml:"r"`
}

// OverridePads replaces the boost/grip pad sets.
type OverridePads struct {
	Boost []OverrideRect `yaml:"boost"`
	Grip  []OverrideRect `yaml:"grip"`
}

// LoadOverride reads and parses an arena override file.
func LoadOverride(path string) (*Override, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read arena override %s: %w", path, err)
	}
	var ov Override
	if err := yaml.Unmarshal(data, &ov); err != nil {
		return nil, fmt.Errorf("failed to parse arena override %s: %w", path, err)
	}
	return &ov, nil
}

// apply replaces the generated sets on the arena with the override's
// present arrays.
func (ov *Override) apply(a *Arena, cfg config.DriftConfig) {
	if ov.Walls != nil {
		a.Obstacles = rectsFrom(ov.Walls)
		a.ObstacleOutcome = OutcomeGenerated
	}
	if ov.Checkpoints != nil {
		checkpoints := make([]Checkpoint, 0, len(ov.Checkpoints))
		for i, c := range ov.Checkpoints {
			r := c.R
			if r <= 0 {
				r = cfg.Checkpoints.Radius
			}
			checkpoints = append(checkpoints, Checkpoint{
				Center: core.Vec2{X: c.X, Y: c.Y},
				Radius: r,
				Index:  i,
			})
		}
		a.Checkpoints = checkpoints
		a.CheckpointOutcome = OutcomeGenerated
	}
	if ov.Pads != nil {
		if ov.Pads.Boost != nil {
			a.BoostPads = rectsFrom(ov.Pads.Boost)
		}
		if ov.Pads.Grip != nil {
			a.GripPads = rectsFrom(ov.Pads.Grip)
		}
	}
}

func rectsFrom(entries []OverrideRect) []core.OrientedRect {
	out := make([]core.OrientedRect, 0, len(entries))
	for _, e := range entries {
		out = append(out, core.OrientedRect{
			Center: core.Vec2{X: e.X, Y: e.Y},
			W:      e.W,
			H:      e.H,
			Angle:  e.Angle,
		})
	}
	return out
}
