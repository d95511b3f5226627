package track

import (
	"errors"
	"math"
	"math/rand"

	"driftline/internal/config"
	"driftline/internal/core"
	"driftline/internal/physics"
)

// ErrInvalidWorld is returned when the arena is built against a nil world.
var ErrInvalidWorld = errors.New("track: invalid physics world")

// Arena owns one built arena: the world bounds, every registered body
// handle, the placement data, and the turret runtime state. Consumers get
// read-only access; rebuilding the arena invalidates all previous handles.
type Arena struct {
	Bounds config.WorldConfig

	Walls     []*physics.Body // Four boundary walls plus the two chicanes
	StartLine *physics.Body

	Obstacles      []core.OrientedRect
	ObstacleBodies []*physics.Body

	// Checkpoint sensors are order-significant: index = array position.
	Checkpoints      []Checkpoint
	CheckpointBodies []*physics.Body

	Turrets      []Turret
	TurretBodies []*physics.Body
	TurretState  []TurretState

	BoostPads []core.OrientedRect
	GripPads  []core.OrientedRect

	Spawns []StartPosition

	// Stage outcomes, for the HUD/debug layer.
	ObstacleOutcome   Outcome
	CheckpointOutcome Outcome
	TurretOutcome     Outcome
}

// BuildArena registers the full track in the physics world and returns the
// handle bundling everything the race rules, turret subsystem and renderer
// need. An override, when non-nil, replaces the corresponding generated
// sets wholesale (see Override).
func BuildArena(world *physics.World, cfg config.DriftConfig, rng *rand.Rand, ov *Override) (*Arena, error) {
	if world == nil {
		return nil, ErrInvalidWorld
	}

	a := &Arena{
		Bounds: cfg.World,
		Spawns: StartPositions(cfg.World),
	}

	layout := Generate(cfg, a.Spawns, rng)
	a.Obstacles = layout.Obstacles
	a.Checkpoints = layout.Checkpoints
	a.Turrets = layout.Turrets
	a.ObstacleOutcome = layout.ObstacleOutcome
	a.CheckpointOutcome = layout.CheckpointOutcome
	a.TurretOutcome = layout.TurretOutcome

	a.BoostPads = defaultBoostPads(cfg.World)
	a.GripPads = defaultGripPads(cfg.World)

	if ov != nil {
		ov.apply(a, cfg)
	}

	registerBoundaryWalls(world, a, cfg.World)
	registerChicanes(world, a, cfg.World)

	a.StartLine = world.AddStaticRect(physics.KindStartLine, 0, startLineRect(cfg.World), true)

	for _, obs := range a.Obstacles {
		a.ObstacleBodies = append(a.ObstacleBodies, world.AddStaticRect(physics.KindObstacle, len(a.ObstacleBodies), obs, false))
	}
	for _, cp := range a.Checkpoints {
		circle := core.Circle{Center: cp.Center, Radius: cp.Radius}
		a.CheckpointBodies = append(a.CheckpointBodies, world.AddStaticCircle(physics.KindCheckpoint, cp.Index, circle, true))
	}
	for i, t := range a.Turrets {
		base := core.OrientedRect{Center: t.Center, W: 36, H: 36, Angle: t.Angle}
		a.TurretBodies = append(a.TurretBodies, world.AddStaticRect(physics.KindTurret, i, base, false))
	}
	for i, pad := range a.BoostPads {
		world.AddStaticRect(physics.KindBoostPad, i, pad, true)
	}
	for i, pad := range a.GripPads {
		world.AddStaticRect(physics.KindGripPad, i, pad, true)
	}

	a.TurretState = make([]TurretState, len(a.Turrets))

	return a, nil
}

// registerBoundaryWalls adds the four outer walls, thickness T, inset by
// T/2 from each edge. Zero restitution and friction come from the world's
// solid-contact response.
func registerBoundaryWalls(world *physics.World, a *Arena, w config.WorldConfig) {
	t := w.WallThickness
	half := t / 2

	walls := []core.OrientedRect{
		{Center: core.Vec2{X: w.Width / 2, Y: half}, W: w.Width, H: t},            // top
		{Center: core.Vec2{X: w.Width / 2, Y: w.Height - half}, W: w.Width, H: t}, // bottom
		{Center: core.Vec2{X: half, Y: w.Height / 2}, W: t, H: w.Height},          // left
		{Center: core.Vec2{X: w.Width - half, Y: w.Height / 2}, W: t, H: w.Height},
	}
	for i, rect := range walls {
		a.Walls = append(a.Walls, world.AddStaticRect(physics.KindWall, i, rect, false))
	}
}

// registerChicanes adds the two fixed chicane bars. Permanent track
// furniture, never randomized.
func registerChicanes(world *physics.World, a *Arena, w config.WorldConfig) {
	chicanes := []core.OrientedRect{
		{Center: core.Vec2{X: w.Width * 0.42, Y: w.Height * 0.30}, W: 420, H: 34, Angle: math.Pi / 7},
		{Center: core.Vec2{X: w.Width * 0.62, Y: w.Height * 0.68}, W: 420, H: 34, Angle: -math.Pi / 7},
	}
	for _, rect := range chicanes {
		a.Walls = append(a.Walls, world.AddStaticRect(physics.KindWall, len(a.Walls), rect, false))
	}
}

// defaultBoostPads returns the fixed boost pads on the back straight.
func defaultBoostPads(w config.WorldConfig) []core.OrientedRect {
	return []core.OrientedRect{
		{Center: core.Vec2{X: w.Width * 0.80, Y: w.Height * 0.28}, W: 160, H: 90},
		{Center: core.Vec2{X: w.Width * 0.34, Y: w.Height * 0.86}, W: 160, H: 90},
	}
}

// defaultGripPads returns the fixed grip pads near the chicanes.
func defaultGripPads(w config.WorldConfig) []core.OrientedRect {
	return []core.OrientedRect{
		{Center: core.Vec2{X: w.Width * 0.50, Y: w.Height * 0.46}, W: 140, H: 140},
		{Center: core.Vec2{X: w.Width * 0.16, Y: w.Height * 0.30}, W: 140, H: 140},
	}
}
