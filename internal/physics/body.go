// Package physics provides the lightweight 2D world the game runs on:
// static and sensor bodies with tagged kinds, dynamic car bodies, per-tick
// collision-start reporting and impulse application.
package physics

import (
	"fmt"

	"driftline/internal/core"
)

// BodyKind discriminates what a body is. The kind is resolved once at body
// creation so collision handlers never parse label strings in the hot loop.
type BodyKind int

const (
	KindWall       BodyKind = iota // Boundary walls and chicane bars
	KindObstacle                   // Randomized barriers
	KindCheckpoint                 // Ordered lap sensors, Index = ordinal
	KindStartLine                  // The start/finish sensor
	KindTurret                     // Solid turret base, Index = turret slot
	KindBoostPad                   // Sensor pad that adds forward impulse
	KindGripPad                    // Sensor pad that raises lateral grip
	KindCar                        // Dynamic car body, Index = car slot
)

// Shape selects which geometry a body carries.
type Shape int

const (
	ShapeRect Shape = iota
	ShapeCircle
)

// Body is a single collidable registered in a World.
type Body struct {
	id     int
	kind   BodyKind
	index  int
	sensor bool
	shape  Shape

	rect   core.OrientedRect // Valid when shape == ShapeRect
	circle core.Circle       // Valid when shape == ShapeCircle

	// Dynamic state, used only for cars.
	dynamic bool
	pos     core.Vec2
	vel     core.Vec2
	heading float64
	radius  float64
}

// Kind returns the body's discriminant.
func (b *Body) Kind() BodyKind {
	return b.kind
}

// Index returns the per-kind ordinal (checkpoint number, car slot, ...).
func (b *Body) Index() int {
	return b.index
}

// Sensor reports whether the body detects overlap without colliding.
func (b *Body) Sensor() bool {
	return b.sensor
}

// Rect returns the rectangle geometry of a rect-shaped body.
func (b *Body) Rect() core.OrientedRect {
	return b.rect
}

// CircleShape returns the circle geometry of a circle-shaped static body.
func (b *Body) CircleShape() core.Circle {
	return b.circle
}

// Position returns the body's current center.
func (b *Body) Position() core.Vec2 {
	if b.dynamic {
		return b.pos
	}
	if b.shape == ShapeCircle {
		return b.circle.Center
	}
	return b.rect.Center
}

// Velocity returns the current velocity of a dynamic body.
func (b *Body) Velocity() core.Vec2 {
	return b.vel
}

// SetVelocity overwrites the velocity of a dynamic body.
func (b *Body) SetVelocity(v core.Vec2) {
	b.vel = v
}

// SetPosition teleports a dynamic body, used for spawn and race resets.
func (b *Body) SetPosition(p core.Vec2) {
	b.pos = p
}

// Heading returns the facing angle of a dynamic body in radians.
func (b *Body) Heading() float64 {
	return b.heading
}

// SetHeading sets the facing angle of a dynamic body.
func (b *Body) SetHeading(h float64) {
	b.heading = h
}

// Radius returns the collision radius of a dynamic body.
func (b *Body) Radius() float64 {
	return b.radius
}

// ApplyForce applies an instantaneous impulse to a dynamic body.
// Static bodies ignore it.
func (b *Body) ApplyForce(f core.Vec2) {
	if !b.dynamic {
		return
	}
	b.vel = b.vel.Add(f)
}

// Label renders the body as the legacy debug/HUD label: "WALL", "START",
// "CHECK_3", "TURRET_1", "CAR0". Display only, never parsed.
func (b *Body) Label() string {
	switch b.kind {
	case KindWall:
		return "WALL"
	case KindObstacle:
		return "OBSTACLE"
	case KindCheckpoint:
		return fmt.Sprintf("CHECK_%d", b.index)
	case KindStartLine:
		return "START"
	case KindTurret:
		return fmt.Sprintf("TURRET_%d", b.index)
	case KindBoostPad:
		return "PAD_BOOST"
	case KindGripPad:
		return "PAD_GRIP"
	case KindCar:
		return fmt.Sprintf("CAR%d", b.index)
	default:
		return "UNKNOWN"
	}
}
