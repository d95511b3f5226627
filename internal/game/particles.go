package game

import "driftline/internal/core"

// MaxParticles caps the live particle pool; the oldest particles are
// overwritten when the pool is full.
const MaxParticles = 256

// Particle is one cosmetic spark. Positions and velocities are in world
// units; Life counts down in milliseconds.
type Particle struct {
	Pos  core.Vec2
	Vel  core.Vec2
	Life float64
	Max  float64
	Col  core.Color
}

// ParticleSystem owns the live particle pool for one game instance.
type ParticleSystem struct {
	p      []Particle
	max    int
	ovrIdx int // circular overwrite index when full
}

// NewParticleSystem creates an empty pool capped at max particles.
func NewParticleSystem(max int) *ParticleSystem {
	if max <= 0 {
		max = MaxParticles
	}
	return &ParticleSystem{
		p:   make([]Particle, 0, max),
		max: max,
	}
}

// Clear drops every live particle.
func (ps *ParticleSystem) Clear() {
	ps.p = ps.p[:0]
	ps.ovrIdx = 0
}

// Spawn adds one particle, overwriting the oldest slot when full.
func (ps *ParticleSystem) Spawn(pos, vel core.Vec2, lifetimeMS float64, c core.Color) {
	p := Particle{Pos: pos, Vel: vel, Life: lifetimeMS, Max: lifetimeMS, Col: c}
	if len(ps.p) < ps.max {
		ps.p = append(ps.p, p)
		return
	}
	if ps.ovrIdx >= ps.max {
		ps.ovrIdx = 0
	}
	ps.p[ps.ovrIdx] = p
	ps.ovrIdx++
}

// Update advances every particle by dtMS milliseconds and compacts out
// the expired ones.
func (ps *ParticleSystem) Update(dtMS float64) {
	alive := ps.p[:0]
	for _, p := range ps.p {
		p.Life -= dtMS
		if p.Life <= 0 {
			continue
		}
		p.Pos = p.Pos.Add(p.Vel.Scale(dtMS / 1000))
		p.Vel = p.Vel.Scale(0.96) // drag
		alive = append(alive, p)
	}
	ps.p = alive
	if ps.ovrIdx > len(ps.p) {
		ps.ovrIdx = 0
	}
}

// Alive returns the live particle count.
func (ps *ParticleSystem) Alive() int {
	return len(ps.p)
}

// Each calls fn for every live particle.
func (ps *ParticleSystem) Each(fn func(Particle)) {
	for _, p := range ps.p {
		fn(p)
	}
}
