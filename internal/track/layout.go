// Package track generates the arena: randomized obstacles, checkpoints and
// turrets under spacing/overlap constraints, plus the fixed walls, chicanes
// and start line, registered as physics bodies.
package track

import (
	"math"
	"math/rand"

	"driftline/internal/config"
	"driftline/internal/core"
)

// Checkpoint is an ordered waypoint a car must touch, in sequence, to
// validate a lap. Index is its position in the lap order.
type Checkpoint struct {
	Center core.Vec2
	Radius float64
	Index  int
}

// Turret is a placed turret: solid base plus two concentric thresholds,
// the inner trigger radius that starts a spray and the larger force radius
// within which the radial push applies while spraying.
type Turret struct {
	Center        core.Vec2
	Angle         float64
	TriggerRadius float64
	ForceRadius   float64
	SprayRadius   float64
}

// TurretState is the mutable per-turret runtime state, advanced every tick
// by the turret subsystem.
type TurretState struct {
	Triggered bool    // Any car inside the trigger radius last tick
	Spraying  bool
	SprayEnd  float64 // Clock milliseconds at which the spray stops
	Glow      float64 // Visual intensity in [0, 1]
}

// StartPosition is a fixed spawn slot: position plus initial heading.
type StartPosition struct {
	Pos     core.Vec2
	Heading float64
}

// Outcome reports how a generator stage concluded.
type Outcome int

const (
	// OutcomeGenerated means the stage placed its full target count.
	OutcomeGenerated Outcome = iota
	// OutcomeFallback means the attempt budget ran out and the previous
	// fixed set was retained unchanged. Never a partial set.
	OutcomeFallback
)

// Layout is one complete randomized arena layout.
type Layout struct {
	Obstacles   []core.OrientedRect
	Checkpoints []Checkpoint
	Turrets     []Turret

	ObstacleOutcome   Outcome
	CheckpointOutcome Outcome
	TurretOutcome     Outcome
}

// StartPositions returns the fixed spawn slots for the supported car count.
// Cars start just short of the start line, facing through it.
func StartPositions(w config.WorldConfig) []StartPosition {
	line := startLineRect(w)
	return []StartPosition{
		{Pos: core.Vec2{X: line.Center.X - 70, Y: line.Center.Y - 50}, Heading: 0},
		{Pos: core.Vec2{X: line.Center.X - 70, Y: line.Center.Y + 50}, Heading: 0},
	}
}

// startLineRect is the fixed start/finish sensor: a thin vertical band.
func startLineRect(w config.WorldConfig) core.OrientedRect {
	return core.OrientedRect{
		Center: core.Vec2{X: w.Width * 0.2, Y: w.Height * 0.7},
		W:      18,
		H:      280,
	}
}

// Generate runs the three placement stages in order (obstacles, then
// checkpoints, then turrets) since each later stage avoids earlier
// placements. Every stage is bounded by its configured attempt budget;
// an exhausted stage falls back to the fixed default set wholesale so the
// arena is never left partially randomized.
func Generate(cfg config.DriftConfig, spawns []StartPosition, rng *rand.Rand) Layout {
	var l Layout
	l.Obstacles, l.ObstacleOutcome = placeObstacles(cfg, rng)
	l.Checkpoints, l.CheckpointOutcome = placeCheckpoints(cfg, l.Obstacles, rng)
	l.Turrets, l.TurretOutcome = placeTurrets(cfg, l.Checkpoints, spawns, rng)
	return l
}

// placeObstacles rejection-samples non-overlapping rotated barriers.
func placeObstacles(cfg config.DriftConfig, rng *rand.Rand) ([]core.OrientedRect, Outcome) {
	w, o := cfg.World, cfg.Obstacles
	placed := make([]core.OrientedRect, 0, o.Count)

	for attempts := 0; len(placed) < o.Count; attempts++ {
		if attempts >= o.AttemptBudget {
			return DefaultObstacles(cfg), OutcomeFallback
		}

		candidate := core.OrientedRect{
			Center: randomPoint(w, rng),
			W:      o.MinWidth + rng.Float64()*(o.MaxWidth-o.MinWidth),
			H:      o.MinHeight + rng.Float64()*(o.MaxHeight-o.MinHeight),
			Angle:  rng.Float64() * math.Pi,
		}

		overlapping := false
		for _, prev := range placed {
			if core.RectsOverlap(candidate, prev) {
				overlapping = true
				break
			}
		}
		if overlapping {
			continue
		}
		placed = append(placed, candidate)
	}
	return placed, OutcomeGenerated
}

// placeCheckpoints rejection-samples checkpoints with mutual spacing and
// obstacle clearance. The clearance test inflates the checkpoint radius by
// the configured factor so cars have room to actually drive through.
func placeCheckpoints(cfg config.DriftConfig, obstacles []core.OrientedRect, rng *rand.Rand) ([]Checkpoint, Outcome) {
	w, c := cfg.World, cfg.Checkpoints
	placed := make([]Checkpoint, 0, c.Count)

	for attempts := 0; len(placed) < c.Count; attempts++ {
		if attempts >= c.AttemptBudget {
			return DefaultCheckpoints(cfg), OutcomeFallback
		}

		center := randomPoint(w, rng)

		tooClose := false
		for _, prev := range placed {
			if core.Distance(center, prev.Center) < c.MinSpacing {
				tooClose = true
				break
			}
		}
		if tooClose {
			continue
		}

		inflated := core.Circle{Center: center, Radius: c.Radius * c.InflateFactor}
		blocked := false
		for _, obs := range obstacles {
			if core.CircleRectOverlap(inflated, obs) {
				blocked = true
				break
			}
		}
		if blocked {
			continue
		}

		placed = append(placed, Checkpoint{
			Center: center,
			Radius: c.Radius,
			Index:  len(placed),
		})
	}
	return placed, OutcomeGenerated
}

// placeTurrets rejection-samples turrets with mutual spacing, checkpoint
// clearance, and spawn clearance of trigger radius plus buffer so a car
// never spawns inside an armed trigger.
func placeTurrets(cfg config.DriftConfig, checkpoints []Checkpoint, spawns []StartPosition, rng *rand.Rand) ([]Turret, Outcome) {
	w, t := cfg.World, cfg.Turrets
	placed := make([]Turret, 0, t.Count)

	for attempts := 0; len(placed) < t.Count; attempts++ {
		if attempts >= t.AttemptBudget {
			return DefaultTurrets(cfg), OutcomeFallback
		}

		center := randomPoint(w, rng)

		rejected := false
		for _, prev := range placed {
			if core.Distance(center, prev.Center) < t.MinSpacing {
				rejected = true
				break
			}
		}
		if !rejected {
			for _, cp := range checkpoints {
				if core.Distance(center, cp.Center) < t.CheckpointClearance {
					rejected = true
					break
				}
			}
		}
		if !rejected {
			for _, sp := range spawns {
				if core.Distance(center, sp.Pos) < t.TriggerRadius+t.SpawnBuffer {
					rejected = true
					break
				}
			}
		}
		if rejected {
			continue
		}

		placed = append(placed, Turret{
			Center:        center,
			Angle:         rng.Float64() * 2 * math.Pi,
			TriggerRadius: t.TriggerRadius,
			ForceRadius:   t.ForceRadius,
			SprayRadius:   t.SprayRadius,
		})
	}
	return placed, OutcomeGenerated
}

// randomPoint samples a point uniformly within the margin-bounded world.
func randomPoint(w config.WorldConfig, rng *rand.Rand) core.Vec2 {
	return core.Vec2{
		X: w.Margin + rng.Float64()*(w.Width-2*w.Margin),
		Y: w.Margin + rng.Float64()*(w.Height-2*w.Margin),
	}
}

// DefaultObstacles is the fixed fallback barrier set: a grid of alternating
// horizontal and vertical bars, guaranteed non-overlapping.
func DefaultObstacles(cfg config.DriftConfig) []core.OrientedRect {
	w, o := cfg.World, cfg.Obstacles
	out := make([]core.OrientedRect, 0, o.Count)

	cols := 3
	for i := 0; i < o.Count; i++ {
		col := i % cols
		row := i / cols
		angle := 0.0
		if (col+row)%2 == 1 {
			angle = math.Pi / 2
		}
		out = append(out, core.OrientedRect{
			Center: core.Vec2{
				X: w.Width * (0.25 + 0.25*float64(col)),
				Y: w.Height * (0.25 + 0.25*float64(row)),
			},
			W:     (o.MinWidth + o.MaxWidth) / 2,
			H:     (o.MinHeight + o.MaxHeight) / 2,
			Angle: angle,
		})
	}
	return out
}

// DefaultCheckpoints is the fixed fallback checkpoint loop: an ellipse of
// evenly spaced gates around the arena center.
func DefaultCheckpoints(cfg config.DriftConfig) []Checkpoint {
	w, c := cfg.World, cfg.Checkpoints
	out := make([]Checkpoint, 0, c.Count)

	cx, cy := w.Width/2, w.Height/2
	rx := w.Width/2 - 2.5*w.Margin
	ry := w.Height/2 - 2.5*w.Margin

	for i := 0; i < c.Count; i++ {
		theta := 2 * math.Pi * float64(i) / float64(c.Count)
		out = append(out, Checkpoint{
			Center: core.Vec2{X: cx + rx*math.Cos(theta), Y: cy + ry*math.Sin(theta)},
			Radius: c.Radius,
			Index:  i,
		})
	}
	return out
}

// DefaultTurrets is the fixed fallback turret set, spread along the arena
// midline away from the spawn corner.
func DefaultTurrets(cfg config.DriftConfig) []Turret {
	w, t := cfg.World, cfg.Turrets
	out := make([]Turret, 0, t.Count)

	for i := 0; i < t.Count; i++ {
		frac := float64(i+1) / float64(t.Count+1)
		out = append(out, Turret{
			Center:        core.Vec2{X: w.Width * (0.3 + 0.5*frac), Y: w.Height * 0.35},
			Angle:         2 * math.Pi * frac,
			TriggerRadius: t.TriggerRadius,
			ForceRadius:   t.ForceRadius,
			SprayRadius:   t.SprayRadius,
		})
	}
	return out
}
