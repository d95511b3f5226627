package game

import (
	"math"

	"driftline/internal/core"
	"driftline/internal/physics"
)

// botInput steers the CPU car toward its next checkpoint. skill in [0,1]
// narrows the steering deadzone and raises commitment to the throttle, so
// a low-skill bot wanders and lifts early while a high-skill bot holds a
// tight line. Pure function of the car state, deterministic per tick.
func botInput(car *physics.Body, target core.Vec2, skill float64) core.InputFrame {
	frame := core.NewInputFrame()

	delta := target.Sub(car.Position())
	desired := math.Atan2(delta.Y, delta.X)
	turn := core.NormalizeAngle(desired - car.Heading())

	deadzone := 0.35 - 0.25*core.ClampF(skill, 0, 1)
	if turn > deadzone {
		frame.Set(core.ActionSteerRight)
	} else if turn < -deadzone {
		frame.Set(core.ActionSteerLeft)
	}

	// Facing badly wrong: brake and crank the car around.
	if math.Abs(turn) > 2.2 {
		frame.Set(core.ActionBrake)
	} else {
		frame.Set(core.ActionThrottle)
	}

	// Kick the rear out through sharp corrections.
	if math.Abs(turn) > 1.1 {
		frame.Set(core.ActionHandbrake)
	}

	return frame
}
