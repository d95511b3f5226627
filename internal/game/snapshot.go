package game

import "driftline/internal/core"

// CarSnap captures one car's observable state.
type CarSnap struct {
	Pos     core.Vec2
	Vel     core.Vec2
	Heading float64
	Lap     int
	LastLap float64
	BestLap float64
}

// Snapshot captures the complete race state for determinism testing and
// replay verification.
type Snapshot struct {
	Tick      int
	Cars      []CarSnap
	Particles int
	GameOver  bool
	Winner    int
}

// Snapshot returns the current race snapshot.
func (g *Game) Snapshot() Snapshot {
	now := g.Now()
	snap := Snapshot{
		Tick:      g.tick,
		Particles: g.particles.Alive(),
		GameOver:  g.gameOver,
		Winner:    g.winner,
	}
	for i, car := range g.cars {
		info, _ := g.engine.LapInfo(i, now)
		snap.Cars = append(snap.Cars, CarSnap{
			Pos:     car.Position(),
			Vel:     car.Velocity(),
			Heading: car.Heading(),
			Lap:     info.Lap,
			LastLap: info.LastLap,
			BestLap: info.BestLap,
		})
	}
	return snap
}
