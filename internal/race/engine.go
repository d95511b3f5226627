// Package race implements the lap state machine: per-car ordered
// checkpoint progress, start-line lap completion with a cooldown,
// wall-hit penalty windows, and current/last/best lap timing.
package race

import (
	"errors"
	"fmt"

	"driftline/internal/physics"
)

// ErrNoCars is returned when the engine is attached without any car bodies.
var ErrNoCars = errors.New("race: no car bodies attached")

// ErrCarIndex is returned by queries with a car index outside the
// attached car list.
var ErrCarIndex = errors.New("race: car index out of range")

// Callbacks are invoked synchronously from HandleCollisions. Nil entries
// are skipped.
type Callbacks struct {
	OnCheckpoint func(car, checkpoint int)
	OnLap        func(car int, lapSeconds float64)
	OnWallHit    func(car int)
}

// LapInfo is a point-in-time snapshot of one car's race state.
type LapInfo struct {
	Lap       int
	LastLap   float64 // seconds, 0 until the first lap completes
	BestLap   float64 // seconds, 0 until the first lap completes
	Progress  int     // next expected checkpoint index
	Visited   int     // checkpoints collected this lap; distinguishes a fresh lap from a wrapped one
	Penalized bool
}

// carState holds one car's race bookkeeping. Timestamps are milliseconds
// on the engine's single monotonic clock.
type carState struct {
	next          int // next expected checkpoint index
	visited       int // checkpoints collected this lap
	cooldownUntil float64
	penaltyUntil  float64
	lapStart      float64
	lapCount      int
	lastLap       float64
	bestLap       float64 // 0 = unset
}

// Engine consumes per-tick collision-start batches and maintains race
// state for every attached car. It owns the CarRaceState slots
// exclusively; nothing else mutates them.
type Engine struct {
	checkpoints int
	cooldownMS  float64
	penaltyMS   float64
	cars        []carState
	callbacks   Callbacks
}

// Attach creates an engine for the given car count. numCheckpoints is the
// lap's cycle length; startTime stamps every car's first lap start.
func Attach(numCars, numCheckpoints int, cooldownMS, penaltyMS, startTime float64, cb Callbacks) (*Engine, error) {
	if numCars <= 0 {
		return nil, ErrNoCars
	}
	if numCheckpoints <= 0 {
		return nil, fmt.Errorf("race: need at least one checkpoint, got %d", numCheckpoints)
	}
	e := &Engine{
		checkpoints: numCheckpoints,
		cooldownMS:  cooldownMS,
		penaltyMS:   penaltyMS,
		cars:        make([]carState, numCars),
		callbacks:   cb,
	}
	for i := range e.cars {
		e.cars[i].lapStart = startTime
	}
	return e, nil
}

// HandleCollisions processes one tick's collision-start batch. Each pair's
// A side is a car body; pairs whose B side is not a recognized track
// element, and car-car pairs, are ignored. now is the tick's clock reading
// in milliseconds; every comparison within the batch uses this single value.
func (e *Engine) HandleCollisions(pairs []physics.CollisionPair, now float64) {
	for _, p := range pairs {
		if p.A == nil || p.B == nil || p.A.Kind() != physics.KindCar {
			continue
		}
		car := p.A.Index()
		if car < 0 || car >= len(e.cars) {
			continue
		}
		switch p.B.Kind() {
		case physics.KindCheckpoint:
			e.handleCheckpoint(car, p.B.Index())
		case physics.KindStartLine:
			e.handleStartLine(car, now)
		case physics.KindWall, physics.KindObstacle:
			e.handleWallHit(car, now)
		}
	}
}

func (e *Engine) handleCheckpoint(car, checkpoint int) {
	s := &e.cars[car]
	if checkpoint != s.next {
		// Out-of-order touch: legal to drive through, does not count.
		return
	}
	s.next = (s.next + 1) % e.checkpoints
	s.visited++
	if e.callbacks.OnCheckpoint != nil {
		e.callbacks.OnCheckpoint(car, checkpoint)
	}
}

func (e *Engine) handleStartLine(car int, now float64) {
	s := &e.cars[car]
	if now < s.cooldownUntil {
		return
	}
	// A lap counts only once the expected index has wrapped back to 0
	// with every checkpoint collected since the previous completion.
	if s.next != 0 || s.visited == 0 {
		return
	}
	lapMS := now - s.lapStart
	s.lapStart = now
	s.lapCount++
	s.lastLap = lapMS / 1000
	if s.bestLap == 0 || s.lastLap < s.bestLap {
		s.bestLap = s.lastLap
	}
	s.cooldownUntil = now + e.cooldownMS
	s.next = 0
	s.visited = 0
	if e.callbacks.OnLap != nil {
		e.callbacks.OnLap(car, s.lastLap)
	}
}

func (e *Engine) handleWallHit(car int, now float64) {
	s := &e.cars[car]
	s.penaltyUntil = now + e.penaltyMS
	if e.callbacks.OnWallHit != nil {
		e.callbacks.OnWallHit(car)
	}
}

// LapInfo returns a snapshot of car i's state at the given clock reading.
func (e *Engine) LapInfo(i int, now float64) (LapInfo, error) {
	if i < 0 || i >= len(e.cars) {
		return LapInfo{}, fmt.Errorf("%w: %d", ErrCarIndex, i)
	}
	s := &e.cars[i]
	return LapInfo{
		Lap:       s.lapCount,
		LastLap:   s.lastLap,
		BestLap:   s.bestLap,
		Progress:  s.next,
		Visited:   s.visited,
		Penalized: now < s.penaltyUntil,
	}, nil
}

// IsPenalized reports whether car i is inside a wall-penalty window.
func (e *Engine) IsPenalized(i int, now float64) (bool, error) {
	if i < 0 || i >= len(e.cars) {
		return false, fmt.Errorf("%w: %d", ErrCarIndex, i)
	}
	return now < e.cars[i].penaltyUntil, nil
}

// CurrentLapMS returns how long car i's in-progress lap has been running.
func (e *Engine) CurrentLapMS(i int, now float64) (float64, error) {
	if i < 0 || i >= len(e.cars) {
		return 0, fmt.Errorf("%w: %d", ErrCarIndex, i)
	}
	return now - e.cars[i].lapStart, nil
}

// ResetCar zeroes car i's race state and restamps its lap start.
func (e *Engine) ResetCar(i int, now float64) error {
	if i < 0 || i >= len(e.cars) {
		return fmt.Errorf("%w: %d", ErrCarIndex, i)
	}
	e.cars[i] = carState{lapStart: now}
	return nil
}

// Cars returns the number of attached cars.
func (e *Engine) Cars() int {
	return len(e.cars)
}
