package physics

import (
	"driftline/internal/core"
)

// CollisionPair is one contact that started touching during the last Step.
// A is always the car; B is the other body (possibly another car).
type CollisionPair struct {
	A *Body
	B *Body
}

// World owns every registered body and advances the simulation one tick at a
// time. It is single-threaded by design: one Step per animation frame, with
// the collision-start batch handed back synchronously.
type World struct {
	bodies  []*Body
	cars    []*Body
	statics []*Body
	nextID  int

	// touching tracks which pairs overlapped last tick, keyed by body ids,
	// so Step can report only newly started contacts.
	touching map[pairKey]bool
}

type pairKey struct {
	lo, hi int
}

func keyFor(a, b *Body) pairKey {
	if a.id < b.id {
		return pairKey{lo: a.id, hi: b.id}
	}
	return pairKey{lo: b.id, hi: a.id}
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{
		touching: make(map[pairKey]bool),
	}
}

// AddStaticRect registers a static rectangle body. Sensor bodies report
// overlap but exert no collision response.
func (w *World) AddStaticRect(kind BodyKind, index int, rect core.OrientedRect, sensor bool) *Body {
	b := &Body{
		id:     w.nextID,
		kind:   kind,
		index:  index,
		sensor: sensor,
		shape:  ShapeRect,
		rect:   rect,
	}
	w.nextID++
	w.bodies = append(w.bodies, b)
	w.statics = append(w.statics, b)
	return b
}

// AddStaticCircle registers a static circle body.
func (w *World) AddStaticCircle(kind BodyKind, index int, circle core.Circle, sensor bool) *Body {
	b := &Body{
		id:     w.nextID,
		kind:   kind,
		index:  index,
		sensor: sensor,
		shape:  ShapeCircle,
		circle: circle,
	}
	w.nextID++
	w.bodies = append(w.bodies, b)
	w.statics = append(w.statics, b)
	return b
}

// AddCar registers a dynamic circular car body with a stable slot index.
func (w *World) AddCar(index int, pos core.Vec2, heading, radius float64) *Body {
	b := &Body{
		id:      w.nextID,
		kind:    KindCar,
		index:   index,
		shape:   ShapeCircle,
		dynamic: true,
		pos:     pos,
		heading: heading,
		radius:  radius,
	}
	w.nextID++
	w.bodies = append(w.bodies, b)
	w.cars = append(w.cars, b)
	return b
}

// Cars returns the registered car bodies in attach order.
func (w *World) Cars() []*Body {
	return w.cars
}

// Clear removes every static body and forgets their contact history, keeping
// the cars. Called when the arena is rebuilt; any handle to a removed body
// is invalid afterwards.
func (w *World) Clear() {
	w.statics = w.statics[:0]
	w.bodies = w.bodies[:0]
	w.bodies = append(w.bodies, w.cars...)
	w.touching = make(map[pairKey]bool)
}

// Step advances the world by dt seconds: integrates car positions, resolves
// solid contacts with zero restitution, and returns the batch of contacts
// that started touching this tick (sensor overlaps included).
func (w *World) Step(dt float64) []CollisionPair {
	for _, car := range w.cars {
		car.pos = car.pos.Add(car.vel.Scale(dt))
	}

	now := make(map[pairKey]bool)
	var batch []CollisionPair

	for _, car := range w.cars {
		for _, s := range w.statics {
			if !w.overlaps(car, s) {
				continue
			}
			if !s.sensor {
				w.resolveSolid(car, s)
				// Re-check: the pushout may have separated them, but the
				// contact still happened this tick.
			}
			k := keyFor(car, s)
			now[k] = true
			if !w.touching[k] {
				batch = append(batch, CollisionPair{A: car, B: s})
			}
		}
	}

	// Car-vs-car contacts are reported (and resolved) too; downstream
	// consumers that only care about track elements ignore them.
	for i, a := range w.cars {
		for _, b := range w.cars[i+1:] {
			ca := core.Circle{Center: a.pos, Radius: a.radius}
			cb := core.Circle{Center: b.pos, Radius: b.radius}
			if !core.CirclesOverlap(ca, cb) {
				continue
			}
			w.resolveCars(a, b)
			k := keyFor(a, b)
			now[k] = true
			if !w.touching[k] {
				batch = append(batch, CollisionPair{A: a, B: b})
			}
		}
	}

	w.touching = now
	return batch
}

// overlaps tests a car against a static body.
func (w *World) overlaps(car, s *Body) bool {
	c := core.Circle{Center: car.pos, Radius: car.radius}
	if s.shape == ShapeCircle {
		return core.CirclesOverlap(c, s.circle)
	}
	return core.CircleRectOverlap(c, s.rect)
}

// resolveSolid pushes the car out of a solid static body and cancels the
// normal component of its velocity. Zero restitution, zero friction: the
// car slides along the surface instead of bouncing.
func (w *World) resolveSolid(car, s *Body) {
	var normal core.Vec2
	var depth float64

	if s.shape == ShapeCircle {
		delta := car.pos.Sub(s.circle.Center)
		dist := delta.Length()
		if dist == 0 {
			normal = core.Vec2{X: 1}
			depth = car.radius + s.circle.Radius
		} else {
			normal = delta.Scale(1 / dist)
			depth = car.radius + s.circle.Radius - dist
		}
	} else {
		// Closest point on the rectangle in its local frame.
		local := car.pos.Sub(s.rect.Center).Rotated(-s.rect.Angle)
		closest := core.Vec2{
			X: core.ClampF(local.X, -s.rect.W/2, s.rect.W/2),
			Y: core.ClampF(local.Y, -s.rect.H/2, s.rect.H/2),
		}
		delta := local.Sub(closest)
		dist := delta.Length()
		if dist == 0 {
			// Center inside the rect: push out along the shallowest face.
			normal = shallowestFaceNormal(local, s.rect)
			depth = car.radius
		} else {
			normal = delta.Scale(1 / dist)
			depth = car.radius - dist
		}
		normal = normal.Rotated(s.rect.Angle)
	}

	if depth <= 0 {
		return
	}

	car.pos = car.pos.Add(normal.Scale(depth))
	vn := car.vel.Dot(normal)
	if vn < 0 {
		car.vel = car.vel.Sub(normal.Scale(vn))
	}
}

// shallowestFaceNormal picks the local-frame face normal with the smallest
// penetration for a point inside the rectangle.
func shallowestFaceNormal(local core.Vec2, r core.OrientedRect) core.Vec2 {
	right := r.W/2 - local.X
	left := local.X + r.W/2
	top := local.Y + r.H/2
	bottom := r.H/2 - local.Y

	min := right
	n := core.Vec2{X: 1}
	if left < min {
		min = left
		n = core.Vec2{X: -1}
	}
	if bottom < min {
		min = bottom
		n = core.Vec2{Y: 1}
	}
	if top < min {
		n = core.Vec2{Y: -1}
	}
	return n
}

// resolveCars separates two overlapping cars and exchanges the approaching
// velocity along the contact normal.
func (w *World) resolveCars(a, b *Body) {
	delta := b.pos.Sub(a.pos)
	dist := delta.Length()
	minDist := a.radius + b.radius
	if dist == 0 {
		delta = core.Vec2{X: 1}
		dist = 1
	}
	normal := delta.Scale(1 / dist)
	overlap := minDist - dist

	a.pos = a.pos.Sub(normal.Scale(overlap / 2))
	b.pos = b.pos.Add(normal.Scale(overlap / 2))

	rel := b.vel.Sub(a.vel).Dot(normal)
	if rel < 0 {
		// Equal-mass elastic-ish swap along the normal, damped.
		impulse := normal.Scale(rel * 0.5)
		a.vel = a.vel.Add(impulse)
		b.vel = b.vel.Sub(impulse)
	}
}
