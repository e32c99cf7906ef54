package core

import "time"

// LoopState tells whether the simulation advances
type LoopState uint8

const (
	StateStopped LoopState = iota
	StatePlaying
	StatePaused
)

// GameLoop manages the fixed-timestep game loop for deterministic simulation
type GameLoop struct {
	World       *World
	State       LoopState
	TickRate    float64 // fixed ticks per second
	accumulator time.Duration
	lastTime    time.Time

	// Now is the clock source, replaceable in tests
	Now func() time.Time
	// BeforeTick runs ahead of every simulation tick with the tick number
	BeforeTick func(tick uint64)
}

// maxFrameTime caps the catch-up work per frame to avoid a spiral of death
const maxFrameTime = 250 * time.Millisecond

// NewGameLoop creates a game loop with fixed tick rate
func NewGameLoop(w *World, tickRate float64) *GameLoop {
	return &GameLoop{
		World:    w,
		TickRate: tickRate,
		Now:      time.Now,
		lastTime: time.Now(),
	}
}

// Step returns the fixed tick duration
func (gl *GameLoop) Step() time.Duration {
	if gl.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Duration(float64(time.Second) / gl.TickRate)
}

// Update should be called every render frame. It runs the simulation
// at fixed timestep and returns the interpolation alpha for rendering.
func (gl *GameLoop) Update() float64 {
	now := gl.Now()
	frameTime := now.Sub(gl.lastTime)
	gl.lastTime = now

	if frameTime > maxFrameTime {
		frameTime = maxFrameTime
	}

	dt := gl.Step()
	gl.accumulator += frameTime

	for gl.accumulator >= dt {
		if gl.State == StatePlaying {
			gl.TickOnce()
		}
		gl.accumulator -= dt
	}

	return float64(gl.accumulator) / float64(dt)
}

// TickOnce advances the simulation by exactly one fixed step
func (gl *GameLoop) TickOnce() {
	if gl.BeforeTick != nil {
		gl.BeforeTick(gl.World.TickCount)
	}
	gl.World.Tick(gl.Step())
}

// Play starts or resumes the game
func (gl *GameLoop) Play() {
	gl.State = StatePlaying
	gl.lastTime = gl.Now()
	gl.accumulator = 0
}

// Pause pauses the game
func (gl *GameLoop) Pause() {
	gl.State = StatePaused
}

// Stop halts the simulation until the next Play
func (gl *GameLoop) Stop() {
	gl.State = StateStopped
}

// CurrentTick returns the current simulation tick
func (gl *GameLoop) CurrentTick() uint64 {
	return gl.World.TickCount
}
