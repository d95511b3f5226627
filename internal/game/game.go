// Package game implements the drift-race mode: a procedurally generated
// arena, a player car and a CPU rival, ordered checkpoints with lap
// timing, and area-denial turrets. Pure logic with no TUI dependencies;
// the platform layer handles input mapping, timing, and terminal output.
package game

import (
	"fmt"
	"math"
	"math/rand"

	"driftline/internal/config"
	"driftline/internal/core"
	"driftline/internal/physics"
	"driftline/internal/race"
	"driftline/internal/registry"
	"driftline/internal/track"
	"driftline/internal/turret"
)

// TargetLaps ends the race once any car completes this many laps.
const TargetLaps = 5

const (
	// PlayerCar and BotCar are the fixed car slot indices.
	PlayerCar = 0
	BotCar    = 1
)

func init() {
	registry.Register("race", func() registry.Game { return New() })
}

// Game holds one race: the physics world, the built arena, the race
// rules engine, turret state, and both cars.
type Game struct {
	cfg   core.RuntimeConfig
	drift config.DriftConfig

	world      *physics.World
	arena      *track.Arena
	engine     *race.Engine
	difficulty *config.DifficultyManager
	particles  *ParticleSystem
	rng        *rand.Rand

	cars     []*physics.Body
	override *track.Override

	tick     int
	gameOver bool
	paused   bool
	winner   int // valid once gameOver

	notice      string  // transient HUD line (checkpoint, penalty, lap)
	noticeUntil float64 // ms
}

// New creates a race with the tuning installed via the package-level
// setters, falling back to defaults when nothing is configured.
func New() *Game {
	drift, err := config.Load(configPath)
	if err != nil {
		drift = config.DefaultDriftConfig()
	}
	if difficultyPreset != "" {
		config.ApplyPreset(&drift, difficultyPreset)
	}
	g := NewWithConfig(drift)
	g.override = arenaOverride
	return g
}

// NewWithConfig creates a race with explicit tuning, typically loaded
// from a YAML config file.
func NewWithConfig(drift config.DriftConfig) *Game {
	return &Game{
		drift:      drift,
		difficulty: config.NewDifficultyManager(drift.Difficulty),
	}
}

// SetOverride installs a hand-authored arena document applied on the
// next Reset.
func (g *Game) SetOverride(ov *track.Override) {
	g.override = ov
}

// ID returns the unique identifier for this mode.
func (g *Game) ID() string {
	return "race"
}

// Title returns the display name for this mode.
func (g *Game) Title() string {
	return "Drift Race"
}

// Reset builds a fresh arena and restarts the race. The previous world
// and every body handle into it are discarded wholesale.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = cfg
	if g.cfg.TickRate <= 0 {
		g.cfg.TickRate = 60
	}
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.world = physics.NewWorld()
	g.particles = NewParticleSystem(MaxParticles)
	g.tick = 0
	g.gameOver = false
	g.paused = false
	g.winner = -1
	g.notice = ""
	g.noticeUntil = 0

	// Arena build cannot fail here: the world is freshly constructed.
	arena, err := track.BuildArena(g.world, g.drift, g.rng, g.override)
	if err != nil {
		panic("game: arena build against a fresh world failed: " + err.Error())
	}
	g.arena = arena

	g.cars = g.cars[:0]
	for i, sp := range arena.Spawns {
		g.cars = append(g.cars, g.world.AddCar(i, sp.Pos, sp.Heading, g.drift.Car.Radius))
	}

	engine, err := race.Attach(len(g.cars), len(arena.Checkpoints),
		g.drift.Race.StartCooldownMS, g.drift.Race.PenaltyMS, 0, race.Callbacks{
			OnCheckpoint: g.onCheckpoint,
			OnLap:        g.onLap,
			OnWallHit:    g.onWallHit,
		})
	if err != nil {
		panic("game: race rules attach failed: " + err.Error())
	}
	g.engine = engine
}

// Now returns the current simulation clock reading in milliseconds,
// derived from the tick counter so replays with the same seed and input
// sequence are bit-identical.
func (g *Game) Now() float64 {
	return float64(g.tick) * 1000 / float64(g.cfg.TickRate)
}

// Step advances the race by one fixed tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		if in.Has(core.ActionRestart) {
			g.Reset(g.cfg)
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionRestart) {
		g.Reset(g.cfg)
		return core.StepResult{State: g.State()}
	}

	g.tick++
	now := g.Now()
	dt := 1.0 / float64(g.cfg.TickRate)

	stepCar(g.cars[PlayerCar], in, g.drift.Car, g.onGripPad(g.cars[PlayerCar]), dt)

	playerLaps := g.lapCount(PlayerCar, now)
	bot := g.cars[BotCar]
	botFrame := botInput(bot, g.botTarget(now), g.difficulty.BotSkill(playerLaps, g.tick))
	stepCar(bot, botFrame, g.drift.Car, g.onGripPad(bot), dt)

	pairs := g.world.Step(dt)
	g.applyPadHits(pairs)
	g.engine.HandleCollisions(pairs, now)

	tcfg := g.drift.Turrets
	tcfg.BaseForce = g.difficulty.TurretForce(tcfg.BaseForce, playerLaps, g.tick)
	turret.UpdateAll(g.arena.Turrets, g.arena.TurretState, g.cars, tcfg, now, g.rng, g.particles.Spawn)

	g.particles.Update(dt * 1000)

	for i := range g.cars {
		if g.lapCount(i, now) >= TargetLaps {
			g.gameOver = true
			g.winner = i
			break
		}
	}

	return core.StepResult{State: g.State()}
}

// State returns the race status; Score is the player's completed laps.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.lapCount(PlayerCar, g.Now()),
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// LapInfo exposes a car's race snapshot at the current tick's clock.
func (g *Game) LapInfo(car int) (race.LapInfo, error) {
	return g.engine.LapInfo(car, g.Now())
}

// Arena exposes the built arena for the renderer and layout tooling.
func (g *Game) Arena() *track.Arena {
	return g.arena
}

// Winner returns the winning car slot, or -1 while the race runs.
func (g *Game) Winner() int {
	return g.winner
}

func (g *Game) lapCount(car int, now float64) int {
	info, err := g.engine.LapInfo(car, now)
	if err != nil {
		return 0
	}
	return info.Lap
}

// botTarget is the center of the bot's next expected checkpoint, or the
// start line once its checkpoint cycle has wrapped.
func (g *Game) botTarget(now float64) core.Vec2 {
	info, err := g.engine.LapInfo(BotCar, now)
	if err != nil || len(g.arena.Checkpoints) == 0 {
		return core.Vec2{X: g.drift.World.Width / 2, Y: g.drift.World.Height / 2}
	}
	if info.Progress == 0 && info.Visited > 0 {
		// Full cycle collected: crossing the start line closes out the
		// lap. Progress alone cannot tell a wrapped lap from a fresh one.
		return g.arena.StartLine.Position()
	}
	return g.arena.Checkpoints[info.Progress].Center
}

// applyPadHits handles boost pad crossings from the tick's
// collision-start batch. Grip pads act continuously and are handled by
// position in onGripPad instead.
func (g *Game) applyPadHits(pairs []physics.CollisionPair) {
	for _, p := range pairs {
		if p.A == nil || p.B == nil || p.A.Kind() != physics.KindCar {
			continue
		}
		if p.B.Kind() != physics.KindBoostPad {
			continue
		}
		h := p.A.Heading()
		kick := core.Vec2{X: math.Cos(h), Y: math.Sin(h)}.Scale(g.drift.Car.BoostImpulse)
		p.A.ApplyForce(kick)
	}
}

func (g *Game) onGripPad(car *physics.Body) bool {
	c := core.Circle{Center: car.Position(), Radius: car.Radius()}
	for _, pad := range g.arena.GripPads {
		if core.CircleRectOverlap(c, pad) {
			return true
		}
	}
	return false
}

func (g *Game) onCheckpoint(car, checkpoint int) {
	if car != PlayerCar {
		return
	}
	g.setNotice(fmt.Sprintf("checkpoint %d/%d", checkpoint+1, len(g.arena.Checkpoints)))
}

func (g *Game) onLap(car int, lapSeconds float64) {
	if car != PlayerCar {
		return
	}
	g.setNotice(fmt.Sprintf("lap %.2fs", lapSeconds))
}

func (g *Game) onWallHit(car int) {
	// Small scrape burst at the impact point.
	pos := g.cars[car].Position()
	for i := 0; i < 6; i++ {
		ang := g.rng.Float64() * 2 * math.Pi
		vel := core.Vec2{X: math.Cos(ang), Y: math.Sin(ang)}.Scale(40 + g.rng.Float64()*40)
		g.particles.Spawn(pos, vel, 300, core.ColorGray)
	}
	if car != PlayerCar {
		return
	}
	g.setNotice("wall penalty")
}

func (g *Game) setNotice(s string) {
	g.notice = s
	g.noticeUntil = g.Now() + 1500
}
