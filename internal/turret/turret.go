// Package turret drives the per-tick trigger/force/spray state machine
// for every placed turret: proximity detection against all cars, timed
// spray activation with an outward radial push, and a glow value the
// renderer reads for visual feedback.
package turret

import (
	"math"
	"math/rand"

	"driftline/internal/config"
	"driftline/internal/core"
	"driftline/internal/physics"
	"driftline/internal/track"
)

// ParticleFunc receives one cosmetic particle spawn request. Purely a
// rendering side effect; a nil func disables the burst.
type ParticleFunc func(pos, vel core.Vec2, lifetimeMS float64, color core.Color)

const (
	idleGlowDecay = 0.92
	glowFloor     = 0.01
	burstCount    = 14
)

// UpdateAll advances every turret's runtime state by one tick and applies
// spray forces to cars in range. turrets and states are parallel arrays
// owned by the arena; cars is the live car body list. now is the tick's
// clock reading in milliseconds. Every car is checked against every
// turret with no special-casing by player index.
func UpdateAll(turrets []track.Turret, states []track.TurretState, cars []*physics.Body, cfg config.TurretConfig, now float64, rng *rand.Rand, emit ParticleFunc) {
	for i := range turrets {
		updateOne(&turrets[i], &states[i], cars, cfg, now, rng, emit)
	}
}

func updateOne(t *track.Turret, st *track.TurretState, cars []*physics.Body, cfg config.TurretConfig, now float64, rng *rand.Rand, emit ParticleFunc) {
	triggeredNow := false
	for _, car := range cars {
		d := core.Distance(t.Center, car.Position())
		if d > 0 && d < t.TriggerRadius {
			triggeredNow = true
			break
		}
	}

	// Rising edge starts a spray; an active spray runs to its end even
	// if the car leaves the trigger radius.
	if triggeredNow && !st.Triggered && !st.Spraying {
		st.Spraying = true
		st.SprayEnd = now + cfg.SprayMS
		st.Glow = 1.0
		if emit != nil {
			spawnBurst(t, rng, emit)
		}
	}

	if st.Spraying {
		if now < st.SprayEnd {
			applySprayForce(t, cars, cfg)
			// Linear decay 1.0 -> 0.5 across the spray window.
			remain := (st.SprayEnd - now) / cfg.SprayMS
			st.Glow = 0.5 + 0.5*core.ClampF(remain, 0, 1)
		} else {
			st.Spraying = false
			st.Glow = 0
		}
	} else if !triggeredNow {
		st.Glow *= idleGlowDecay
		if st.Glow < glowFloor {
			st.Glow = 0
		}
	}

	st.Triggered = triggeredNow
}

// applySprayForce pushes every car inside the force radius straight away
// from the turret center. Magnitude falls off with distance but never
// below the configured floor, so the push stays felt at maximum range.
func applySprayForce(t *track.Turret, cars []*physics.Body, cfg config.TurretConfig) {
	for _, car := range cars {
		delta := car.Position().Sub(t.Center)
		d := delta.Length()
		if d <= 0 || d >= t.ForceRadius {
			continue
		}
		scale := math.Max(cfg.MinForceScale, 1-d/t.ForceRadius)
		car.ApplyForce(delta.Scale(cfg.BaseForce * scale / d))
	}
}

func spawnBurst(t *track.Turret, rng *rand.Rand, emit ParticleFunc) {
	for i := 0; i < burstCount; i++ {
		angle := rng.Float64() * 2 * math.Pi
		speed := 60 + rng.Float64()*140
		vel := core.Vec2{X: math.Cos(angle), Y: math.Sin(angle)}.Scale(speed)
		lifetime := 300 + rng.Float64()*500
		emit(t.Center, vel, lifetime, core.ColorOrange)
	}
}
