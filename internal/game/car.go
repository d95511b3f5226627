package game

import (
	"math"

	"driftline/internal/config"
	"driftline/internal/core"
	"driftline/internal/physics"
)

// stepCar applies one tick of the drift handling model to a car body.
// Velocity is decomposed into forward/lateral components along the
// heading; throttle and braking act on the forward component while grip
// bleeds the lateral one, which is what lets the rear step out in a
// drift. onGripPad tightens the lateral grip while the car crosses a
// grip pad.
func stepCar(body *physics.Body, in core.InputFrame, cfg config.CarConfig, onGripPad bool, dt float64) {
	vel := body.Velocity()
	speed := vel.Length()

	steer := 0.0
	if in.Has(core.ActionSteerLeft) {
		steer -= 1
	}
	if in.Has(core.ActionSteerRight) {
		steer += 1
	}

	// Turn authority shrinks with speed so flat-out driving arcs wide.
	turnScale := 1.0 - math.Min(speed/cfg.MaxSpeed, 0.75)
	turnRate := cfg.TurnRate * (0.55 + turnScale)
	if in.Has(core.ActionHandbrake) {
		turnRate *= cfg.HandbrakeTurnBoost
	}
	heading := core.NormalizeAngle(body.Heading() + steer*turnRate*dt)
	body.SetHeading(heading)

	forward := core.Vec2{X: math.Cos(heading), Y: math.Sin(heading)}
	right := core.Vec2{X: -forward.Y, Y: forward.X}
	forwardSpeed := vel.Dot(forward)
	lateralSpeed := vel.Dot(right)

	throttle := 0.0
	if in.Has(core.ActionThrottle) {
		throttle += 1
	}
	if in.Has(core.ActionBrake) {
		throttle -= 1
	}

	accel := throttle * cfg.ThrottleAccel
	if throttle*forwardSpeed < 0 {
		// Pedal opposes current motion: braking, not reversing.
		accel = throttle * cfg.BrakeAccel
	}
	forwardSpeed += accel * dt
	if throttle == 0 {
		forwardSpeed *= cfg.CoastFriction
	}
	forwardSpeed = core.ClampF(forwardSpeed, -cfg.MaxSpeed, cfg.MaxSpeed)

	grip := cfg.LateralGrip
	if in.Has(core.ActionHandbrake) {
		grip = cfg.HandbrakeGrip
	}
	if onGripPad {
		grip *= 0.5
	}
	lateralSpeed *= grip

	body.SetVelocity(forward.Scale(forwardSpeed).Add(right.Scale(lateralSpeed)))
}
