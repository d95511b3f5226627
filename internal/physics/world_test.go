package physics

import (
	"testing"

	"driftline/internal/core"
)

func TestCollisionStartReportedOnce(t *testing.T) {
	w := NewWorld()
	w.AddStaticRect(KindWall, 0, core.OrientedRect{Center: core.Vec2{X: 100, Y: 0}, W: 20, H: 200}, false)
	car := w.AddCar(0, core.Vec2{X: 0, Y: 0}, 0, 10)
	car.SetVelocity(core.Vec2{X: 500, Y: 0})

	var starts int
	for i := 0; i < 30; i++ {
		for _, p := range w.Step(1.0 / 60.0) {
			if p.B.Kind() == KindWall {
				starts++
			}
		}
		// Keep driving into the wall so the contact persists.
		car.SetVelocity(core.Vec2{X: 500, Y: 0})
	}

	if starts != 1 {
		t.Errorf("wall contact reported %d times, expected exactly 1", starts)
	}
}

func TestSolidWallStopsCar(t *testing.T) {
	w := NewWorld()
	w.AddStaticRect(KindWall, 0, core.OrientedRect{Center: core.Vec2{X: 100, Y: 0}, W: 20, H: 200}, false)
	car := w.AddCar(0, core.Vec2{X: 0, Y: 0}, 0, 10)
	car.SetVelocity(core.Vec2{X: 600, Y: 0})

	for i := 0; i < 60; i++ {
		w.Step(1.0 / 60.0)
	}

	// The wall face is at x=90; the car center can never pass 90-radius.
	if car.Position().X > 80.001 {
		t.Errorf("car penetrated wall: x = %f", car.Position().X)
	}
	if car.Velocity().X > 0.001 {
		t.Errorf("normal velocity not cancelled: vx = %f", car.Velocity().X)
	}
}

func TestSensorDoesNotBlock(t *testing.T) {
	w := NewWorld()
	w.AddStaticCircle(KindCheckpoint, 2, core.Circle{Center: core.Vec2{X: 100, Y: 0}, Radius: 30}, true)
	car := w.AddCar(0, core.Vec2{X: 0, Y: 0}, 0, 10)

	var sawCheckpoint bool
	for i := 0; i < 120; i++ {
		car.SetVelocity(core.Vec2{X: 200, Y: 0})
		for _, p := range w.Step(1.0 / 60.0) {
			if p.B.Kind() == KindCheckpoint && p.B.Index() == 2 {
				sawCheckpoint = true
			}
		}
	}

	if !sawCheckpoint {
		t.Fatal("checkpoint sensor never reported")
	}
	// Car passes clean through the sensor.
	if car.Position().X < 300 {
		t.Errorf("sensor blocked the car: x = %f", car.Position().X)
	}
}

func TestSensorRetriggersAfterLeaving(t *testing.T) {
	w := NewWorld()
	w.AddStaticCircle(KindStartLine, 0, core.Circle{Center: core.Vec2{X: 100, Y: 0}, Radius: 20}, true)
	car := w.AddCar(0, core.Vec2{X: 0, Y: 0}, 0, 5)

	countStarts := func(vx float64, ticks int) int {
		n := 0
		for i := 0; i < ticks; i++ {
			car.SetVelocity(core.Vec2{X: vx, Y: 0})
			for _, p := range w.Step(1.0 / 60.0) {
				if p.B.Kind() == KindStartLine {
					n++
				}
			}
		}
		return n
	}

	if got := countStarts(300, 60); got != 1 {
		t.Errorf("first pass: %d start events, expected 1", got)
	}
	if got := countStarts(-300, 60); got != 1 {
		t.Errorf("return pass: %d start events, expected 1", got)
	}
}

func TestClearKeepsCars(t *testing.T) {
	w := NewWorld()
	w.AddStaticRect(KindWall, 0, core.OrientedRect{Center: core.Vec2{X: 50, Y: 0}, W: 10, H: 100}, false)
	car := w.AddCar(0, core.Vec2{X: 0, Y: 0}, 0, 10)

	w.Clear()

	if len(w.Cars()) != 1 || w.Cars()[0] != car {
		t.Fatal("Clear dropped the car bodies")
	}
	car.SetVelocity(core.Vec2{X: 600, Y: 0})
	w.Step(1.0 / 60.0)
	if car.Position().X <= 0 {
		t.Error("car did not move after Clear")
	}
	// The wall is gone: nothing stops the car now.
	for i := 0; i < 60; i++ {
		car.SetVelocity(core.Vec2{X: 600, Y: 0})
		w.Step(1.0 / 60.0)
	}
	if car.Position().X < 100 {
		t.Errorf("removed wall still blocking: x = %f", car.Position().X)
	}
}

func TestBodyLabels(t *testing.T) {
	w := NewWorld()
	tests := []struct {
		body *Body
		want string
	}{
		{w.AddStaticRect(KindWall, 0, core.OrientedRect{W: 1, H: 1}, false), "WALL"},
		{w.AddStaticRect(KindStartLine, 0, core.OrientedRect{W: 1, H: 1}, true), "START"},
		{w.AddStaticCircle(KindCheckpoint, 3, core.Circle{Radius: 1}, true), "CHECK_3"},
		{w.AddStaticRect(KindTurret, 1, core.OrientedRect{W: 1, H: 1}, false), "TURRET_1"},
		{w.AddCar(0, core.Vec2{}, 0, 1), "CAR0"},
	}
	for _, tc := range tests {
		if got := tc.body.Label(); got != tc.want {
			t.Errorf("Label() = %q, expected %q", got, tc.want)
		}
	}
}
