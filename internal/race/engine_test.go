package race

import (
	"errors"
	"math"
	"testing"

	"driftline/internal/core"
	"driftline/internal/physics"
)

// testBodies builds a world with the given car count and 6 checkpoints,
// returning handles the tests can assemble collision pairs from.
type testBodies struct {
	cars        []*physics.Body
	checkpoints []*physics.Body
	startLine   *physics.Body
	wall        *physics.Body
}

func newTestBodies(t *testing.T, numCars int) testBodies {
	t.Helper()
	w := physics.NewWorld()
	tb := testBodies{
		startLine: w.AddStaticRect(physics.KindStartLine, 0, core.OrientedRect{W: 18, H: 280}, true),
		wall:      w.AddStaticRect(physics.KindWall, 0, core.OrientedRect{W: 100, H: 10}, false),
	}
	for i := 0; i < 6; i++ {
		tb.checkpoints = append(tb.checkpoints,
			w.AddStaticCircle(physics.KindCheckpoint, i, core.Circle{Radius: 70}, true))
	}
	for i := 0; i < numCars; i++ {
		tb.cars = append(tb.cars, w.AddCar(i, core.Vec2{}, 0, 14))
	}
	return tb
}

func pair(car, b *physics.Body) []physics.CollisionPair {
	return []physics.CollisionPair{{A: car, B: b}}
}

func TestAttachRequiresCars(t *testing.T) {
	if _, err := Attach(0, 6, 1000, 1000, 0, Callbacks{}); !errors.Is(err, ErrNoCars) {
		t.Fatalf("expected ErrNoCars, got %v", err)
	}
}

func TestOrderedCheckpointGating(t *testing.T) {
	tb := newTestBodies(t, 1)
	var got []int
	e, err := Attach(1, 6, 1000, 1000, 0, Callbacks{
		OnCheckpoint: func(car, cp int) { got = append(got, cp) },
	})
	if err != nil {
		t.Fatal(err)
	}

	e.HandleCollisions(pair(tb.cars[0], tb.checkpoints[0]), 100)
	e.HandleCollisions(pair(tb.cars[0], tb.checkpoints[1]), 200)

	// Out-of-order touch: no progress, no callback.
	e.HandleCollisions(pair(tb.cars[0], tb.checkpoints[4]), 300)
	info, _ := e.LapInfo(0, 300)
	if info.Progress != 2 {
		t.Errorf("out-of-order touch moved progress to %d", info.Progress)
	}

	e.HandleCollisions(pair(tb.cars[0], tb.checkpoints[2]), 400)
	info, _ = e.LapInfo(0, 400)
	if info.Progress != 3 {
		t.Errorf("in-order touch left progress at %d", info.Progress)
	}

	want := []int{0, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("checkpoint callbacks %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("checkpoint callbacks %v, want %v", got, want)
		}
	}
}

// Progress reads 0 both on a fresh lap and after a full cycle; Visited is
// what separates the two, so consumers (the bot targeting, the lap gate)
// can tell them apart.
func TestVisitedDistinguishesFreshLapFromWrapped(t *testing.T) {
	tb := newTestBodies(t, 1)
	e, err := Attach(1, 6, 1000, 1000, 0, Callbacks{})
	if err != nil {
		t.Fatal(err)
	}

	info, _ := e.LapInfo(0, 0)
	if info.Progress != 0 || info.Visited != 0 {
		t.Fatalf("fresh lap: progress=%d visited=%d, want 0/0", info.Progress, info.Visited)
	}

	for i := 0; i < 6; i++ {
		e.HandleCollisions(pair(tb.cars[0], tb.checkpoints[i]), float64(2000+i*100))
	}
	info, _ = e.LapInfo(0, 3000)
	if info.Progress != 0 || info.Visited != 6 {
		t.Fatalf("wrapped lap: progress=%d visited=%d, want 0/6", info.Progress, info.Visited)
	}

	// Completing the lap at the start line resets both.
	e.HandleCollisions(pair(tb.cars[0], tb.startLine), 4000)
	info, _ = e.LapInfo(0, 4000)
	if info.Lap != 1 || info.Progress != 0 || info.Visited != 0 {
		t.Fatalf("after lap: lap=%d progress=%d visited=%d, want 1/0/0", info.Lap, info.Progress, info.Visited)
	}
}

func TestLapCompletionAndCooldown(t *testing.T) {
	tb := newTestBodies(t, 1)
	laps := 0
	var lastLapSeconds float64
	e, err := Attach(1, 6, 1000, 1000, 0, Callbacks{
		OnLap: func(car int, s float64) { laps++; lastLapSeconds = s },
	})
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 6; i++ {
		e.HandleCollisions(pair(tb.cars[0], tb.checkpoints[i]), float64(1000*(i+1)))
	}
	e.HandleCollisions(pair(tb.cars[0], tb.startLine), 12000)

	if laps != 1 {
		t.Fatalf("expected one lap callback, got %d", laps)
	}
	if math.Abs(lastLapSeconds-12.0) > 1e-9 {
		t.Errorf("lap time %f, expected 12.0", lastLapSeconds)
	}

	// Residual overlap re-trigger inside the cooldown window is ignored.
	e.HandleCollisions(pair(tb.cars[0], tb.startLine), 12500)
	if laps != 1 {
		t.Errorf("cooldown crossing counted a lap, total %d", laps)
	}

	info, _ := e.LapInfo(0, 12500)
	if info.Lap != 1 || info.Progress != 0 {
		t.Errorf("after lap: %+v", info)
	}
}

func TestStartCrossingWithoutFullCycleIgnored(t *testing.T) {
	tb := newTestBodies(t, 1)
	laps := 0
	e, _ := Attach(1, 6, 1000, 1000, 0, Callbacks{
		OnLap: func(int, float64) { laps++ },
	})

	// Order violated at the second touch: 0, 2, 1, 3, 4, 5.
	for _, cp := range []int{0, 2, 1, 3, 4, 5} {
		e.HandleCollisions(pair(tb.cars[0], tb.checkpoints[cp]), 500)
	}
	e.HandleCollisions(pair(tb.cars[0], tb.startLine), 9000)

	if laps != 0 {
		t.Fatalf("order-violating run completed %d laps", laps)
	}
	info, _ := e.LapInfo(0, 9000)
	if info.Lap != 0 {
		t.Errorf("lap count %d after invalid run", info.Lap)
	}
	// 0, then 1 after the 2 was ignored... progress stalls at 2.
	if info.Progress != 2 {
		t.Errorf("progress %d, expected stall at 2", info.Progress)
	}
}

func TestBestLapMonotonic(t *testing.T) {
	tb := newTestBodies(t, 1)
	e, _ := Attach(1, 6, 1000, 1000, 0, Callbacks{})

	runLap := func(start, finish float64) {
		for i := 0; i < 6; i++ {
			e.HandleCollisions(pair(tb.cars[0], tb.checkpoints[i]), start+float64(i))
		}
		e.HandleCollisions(pair(tb.cars[0], tb.startLine), finish)
	}

	runLap(0, 12000)     // 12.0s
	runLap(13000, 21500) // 9.5s
	runLap(22000, 32500) // 11.0s

	info, _ := e.LapInfo(0, 33000)
	if math.Abs(info.BestLap-9.5) > 1e-9 {
		t.Errorf("best lap %f, want 9.5", info.BestLap)
	}
	if math.Abs(info.LastLap-11.0) > 1e-9 {
		t.Errorf("last lap %f, want 11.0", info.LastLap)
	}
	if info.Lap != 3 {
		t.Errorf("lap count %d, want 3", info.Lap)
	}
}

func TestWallPenaltyWindow(t *testing.T) {
	tb := newTestBodies(t, 1)
	hits := 0
	e, _ := Attach(1, 6, 1000, 1000, 0, Callbacks{
		OnWallHit: func(int) { hits++ },
	})

	e.HandleCollisions(pair(tb.cars[0], tb.wall), 5000)
	if hits != 1 {
		t.Fatalf("wall callback fired %d times", hits)
	}

	for _, tc := range []struct {
		now  float64
		want bool
	}{
		{5000, true},
		{5500, true},
		{5999.9, true},
		{6000, false},
		{7000, false},
	} {
		got, err := e.IsPenalized(0, tc.now)
		if err != nil {
			t.Fatal(err)
		}
		if got != tc.want {
			t.Errorf("IsPenalized at %f = %v, want %v", tc.now, got, tc.want)
		}
	}

	// Penalty never touches checkpoint progress.
	info, _ := e.LapInfo(0, 5100)
	if info.Progress != 0 || info.Lap != 0 {
		t.Errorf("wall hit disturbed race state: %+v", info)
	}
}

func TestPerCarIsolation(t *testing.T) {
	tb := newTestBodies(t, 2)
	e, _ := Attach(2, 6, 1000, 1000, 0, Callbacks{})

	for _, cp := range []int{0, 1, 2, 3} {
		e.HandleCollisions(pair(tb.cars[0], tb.checkpoints[cp]), 100)
	}

	info0, _ := e.LapInfo(0, 200)
	info1, _ := e.LapInfo(1, 200)
	if info0.Progress != 4 {
		t.Errorf("car 0 progress %d, want 4", info0.Progress)
	}
	if info1.Progress != 0 {
		t.Errorf("car 0's touches leaked into car 1: progress %d", info1.Progress)
	}
}

func TestUnrecognizedPairsIgnored(t *testing.T) {
	tb := newTestBodies(t, 2)
	e, _ := Attach(2, 6, 1000, 1000, 0, Callbacks{
		OnCheckpoint: func(int, int) { t.Error("checkpoint callback for junk pair") },
		OnLap:        func(int, float64) { t.Error("lap callback for junk pair") },
		OnWallHit:    func(int) { t.Error("wall callback for junk pair") },
	})

	// Car-car contact and nil halves must be silent no-ops.
	e.HandleCollisions([]physics.CollisionPair{
		{A: tb.cars[0], B: tb.cars[1]},
		{A: tb.cars[0], B: nil},
		{A: nil, B: tb.wall},
	}, 100)

	info, _ := e.LapInfo(0, 100)
	if info.Progress != 0 || info.Penalized {
		t.Errorf("junk pairs mutated state: %+v", info)
	}
}

func TestQueriesRejectBadIndex(t *testing.T) {
	e, _ := Attach(1, 6, 1000, 1000, 0, Callbacks{})

	if _, err := e.LapInfo(1, 0); !errors.Is(err, ErrCarIndex) {
		t.Errorf("LapInfo(1) err = %v", err)
	}
	if _, err := e.IsPenalized(-1, 0); !errors.Is(err, ErrCarIndex) {
		t.Errorf("IsPenalized(-1) err = %v", err)
	}
	if err := e.ResetCar(5, 0); !errors.Is(err, ErrCarIndex) {
		t.Errorf("ResetCar(5) err = %v", err)
	}
}

func TestResetCar(t *testing.T) {
	tb := newTestBodies(t, 1)
	e, _ := Attach(1, 6, 1000, 1000, 0, Callbacks{})

	for i := 0; i < 6; i++ {
		e.HandleCollisions(pair(tb.cars[0], tb.checkpoints[i]), 1000)
	}
	e.HandleCollisions(pair(tb.cars[0], tb.startLine), 8000)
	e.HandleCollisions(pair(tb.cars[0], tb.wall), 8100)

	if err := e.ResetCar(0, 9000); err != nil {
		t.Fatal(err)
	}

	info, _ := e.LapInfo(0, 9000)
	if info.Lap != 0 || info.LastLap != 0 || info.BestLap != 0 || info.Progress != 0 || info.Penalized {
		t.Errorf("reset left state behind: %+v", info)
	}
	ms, _ := e.CurrentLapMS(0, 9500)
	if ms != 500 {
		t.Errorf("lap clock not restamped, current lap %f ms", ms)
	}
}
