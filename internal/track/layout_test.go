package track

import (
	"math/rand"
	"testing"

	"driftline/internal/config"
	"driftline/internal/core"
)

func testConfig() config.DriftConfig {
	return config.DefaultDriftConfig()
}

func TestObstaclesNeverOverlap(t *testing.T) {
	cfg := testConfig()

	// Several seeds to cover different sampling paths.
	for _, seed := range []int64{1, 7, 42, 1234, 99999} {
		rng := rand.New(rand.NewSource(seed))
		spawns := StartPositions(cfg.World)
		layout := Generate(cfg, spawns, rng)

		if layout.ObstacleOutcome != OutcomeGenerated {
			t.Fatalf("seed %d: default parameters should not exhaust the budget", seed)
		}
		for i, a := range layout.Obstacles {
			for _, b := range layout.Obstacles[i+1:] {
				if core.RectsOverlap(a, b) {
					t.Errorf("seed %d: obstacles %+v and %+v overlap", seed, a, b)
				}
			}
		}
	}
}

func TestCheckpointSpacingAndClearance(t *testing.T) {
	cfg := testConfig()
	rng := rand.New(rand.NewSource(42))
	layout := Generate(cfg, StartPositions(cfg.World), rng)

	for i, a := range layout.Checkpoints {
		if a.Index != i {
			t.Errorf("checkpoint %d carries index %d", i, a.Index)
		}
		for _, b := range layout.Checkpoints[i+1:] {
			if d := core.Distance(a.Center, b.Center); d < cfg.Checkpoints.MinSpacing {
				t.Errorf("checkpoints %d and %d only %f apart, need %f", a.Index, b.Index, d, cfg.Checkpoints.MinSpacing)
			}
		}
		circle := core.Circle{Center: a.Center, Radius: a.Radius}
		for _, obs := range layout.Obstacles {
			if core.CircleRectOverlap(circle, obs) {
				t.Errorf("checkpoint %d overlaps obstacle %+v", a.Index, obs)
			}
		}
	}
}

func TestTurretClearances(t *testing.T) {
	cfg := testConfig()
	spawns := StartPositions(cfg.World)
	rng := rand.New(rand.NewSource(42))
	layout := Generate(cfg, spawns, rng)

	for i, a := range layout.Turrets {
		for _, b := range layout.Turrets[i+1:] {
			if d := core.Distance(a.Center, b.Center); d < cfg.Turrets.MinSpacing {
				t.Errorf("turrets %f apart, need %f", d, cfg.Turrets.MinSpacing)
			}
		}
		for _, cp := range layout.Checkpoints {
			if d := core.Distance(a.Center, cp.Center); d < cfg.Turrets.CheckpointClearance {
				t.Errorf("turret within %f of checkpoint %d, need %f", d, cp.Index, cfg.Turrets.CheckpointClearance)
			}
		}
		for _, sp := range spawns {
			min := cfg.Turrets.TriggerRadius + cfg.Turrets.SpawnBuffer
			if d := core.Distance(a.Center, sp.Pos); d < min {
				t.Errorf("turret within %f of a spawn, need %f", d, min)
			}
		}
	}
}

// The generator must terminate with either the full target count or the
// fixed default set, never a partial count.
func TestExhaustionFallsBackToFullDefaultSet(t *testing.T) {
	cfg := testConfig()
	cfg.Obstacles.AttemptBudget = 3 // Guaranteed exhaustion
	cfg.Checkpoints.AttemptBudget = 3
	cfg.Turrets.AttemptBudget = 3

	rng := rand.New(rand.NewSource(1))
	layout := Generate(cfg, StartPositions(cfg.World), rng)

	if layout.ObstacleOutcome != OutcomeFallback {
		t.Error("expected obstacle fallback with a tiny budget")
	}
	if len(layout.Obstacles) != cfg.Obstacles.Count {
		t.Errorf("fallback produced %d obstacles, expected the full %d", len(layout.Obstacles), cfg.Obstacles.Count)
	}
	if len(layout.Checkpoints) != cfg.Checkpoints.Count {
		t.Errorf("fallback produced %d checkpoints, expected %d", len(layout.Checkpoints), cfg.Checkpoints.Count)
	}
	if len(layout.Turrets) != cfg.Turrets.Count {
		t.Errorf("fallback produced %d turrets, expected %d", len(layout.Turrets), cfg.Turrets.Count)
	}
}

func TestDefaultObstaclesAreValid(t *testing.T) {
	cfg := testConfig()
	defaults := DefaultObstacles(cfg)

	if len(defaults) != cfg.Obstacles.Count {
		t.Fatalf("default set has %d obstacles, expected %d", len(defaults), cfg.Obstacles.Count)
	}
	for i, a := range defaults {
		for _, b := range defaults[i+1:] {
			if core.RectsOverlap(a, b) {
				t.Errorf("default obstacles %+v and %+v overlap", a, b)
			}
		}
		if a.Center.X < cfg.World.Margin || a.Center.X > cfg.World.Width-cfg.World.Margin {
			t.Errorf("default obstacle center %+v outside margins", a.Center)
		}
	}
}

func TestGenerateDeterministicForSeed(t *testing.T) {
	cfg := testConfig()
	spawns := StartPositions(cfg.World)

	a := Generate(cfg, spawns, rand.New(rand.NewSource(77)))
	b := Generate(cfg, spawns, rand.New(rand.NewSource(77)))

	if len(a.Obstacles) != len(b.Obstacles) {
		t.Fatal("same seed produced different obstacle counts")
	}
	for i := range a.Obstacles {
		if a.Obstacles[i] != b.Obstacles[i] {
			t.Errorf("obstacle %d differs between identical seeds", i)
		}
	}
	for i := range a.Checkpoints {
		if a.Checkpoints[i] != b.Checkpoints[i] {
			t.Errorf("checkpoint %d differs between identical seeds", i)
		}
	}
}

func TestGeneratedGeometryWithinMargins(t *testing.T) {
	cfg := testConfig()
	rng := rand.New(rand.NewSource(5))
	layout := Generate(cfg, StartPositions(cfg.World), rng)

	inBounds := func(p core.Vec2) bool {
		return p.X >= cfg.World.Margin && p.X <= cfg.World.Width-cfg.World.Margin &&
			p.Y >= cfg.World.Margin && p.Y <= cfg.World.Height-cfg.World.Margin
	}

	for _, o := range layout.Obstacles {
		if !inBounds(o.Center) {
			t.Errorf("obstacle center %+v outside margins", o.Center)
		}
	}
	for _, c := range layout.Checkpoints {
		if !inBounds(c.Center) {
			t.Errorf("checkpoint center %+v outside margins", c.Center)
		}
	}
	for _, tr := range layout.Turrets {
		if !inBounds(tr.Center) {
			t.Errorf("turret center %+v outside margins", tr.Center)
		}
	}
}
