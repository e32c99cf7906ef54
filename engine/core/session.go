package core

import (
	"math/rand/v2"
	"time"
)

// Phase is the wave scheduler state
type Phase uint8

const (
	PhaseWaiting Phase = iota
	PhaseActive
	PhaseCleared
	PhaseWon
	PhaseLost
)

var phaseNames = [...]string{"waiting", "active", "cleared", "won", "lost"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// Terminal reports whether the session has ended
func (p Phase) Terminal() bool { return p == PhaseWon || p == PhaseLost }

// Tuning holds the simulation constants a session runs with
type Tuning struct {
	WaveDuration     time.Duration
	DeathDuration    time.Duration
	DeathScaleFloor  float64
	ShrinkFloor      float64
	SpinRange        float64 // death spin rates are drawn from [-SpinRange, SpinRange)
	WrapMargin       float64
	SpawnMargin      float64
	FlightDuration   time.Duration
	FallDuration     time.Duration
	SingleProjectile bool
	DustCount        int
	DustSpeed        float64
	DustDuration     time.Duration
}

// DefaultTuning mirrors the shipped game
func DefaultTuning() Tuning {
	return Tuning{
		WaveDuration:     20 * time.Second,
		DeathDuration:    time.Second,
		DeathScaleFloor:  0.25,
		ShrinkFloor:      0.1,
		SpinRange:        6,
		WrapMargin:       256,
		SpawnMargin:      256,
		FlightDuration:   350 * time.Millisecond,
		FallDuration:     400 * time.Millisecond,
		SingleProjectile: true,
		DustCount:        16,
		DustSpeed:        50,
		DustDuration:     250 * time.Millisecond,
	}
}

// Outcome is the read-only view exposed to screens and spectators
type Outcome struct {
	Score         int
	Win           bool
	Wave          int
	WaveRemaining time.Duration
	Alive         int
	Kills         int
	Phase         Phase
}

// Session is the explicit simulation context of one gameplay run. It is
// built when gameplay starts and dropped when it ends.
type Session struct {
	ID string
	// Area is the play area size; the zero value means "not established yet"
	Area    Vec2
	Tuning  Tuning
	Outcome Outcome
	Rand    *rand.Rand
	Bus     *EventBus
	// DevMode disables the wave scheduler so single levels can be tried
	DevMode bool
	Seed    uint64

	// WaveTimer limits how long a wave may stay uncleared
	WaveTimer Timer
	// NextLevel is the index of the next level definition to spawn
	NextLevel int
}

// NewSession creates a session with a deterministic RNG
func NewSession(id string, area Vec2, tuning Tuning, seed uint64) *Session {
	return &Session{
		ID:     id,
		Area:   area,
		Tuning: tuning,
		Rand:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		Bus:    NewEventBus(),
		Seed:   seed,

		WaveTimer: NewTimer(tuning.WaveDuration, Once),
	}
}

// Ready reports whether the play area has been established
func (s *Session) Ready() bool { return s.Area.X > 0 && s.Area.Y > 0 }

// Uniform draws from [lo, hi). An empty or inverted range returns lo.
func (s *Session) Uniform(lo, hi float64) float64 {
	if !(hi > lo) {
		return lo
	}
	return lo + s.Rand.Float64()*(hi-lo)
}

// Emit queues an event stamped with tick
func (s *Session) Emit(t EventType, tick uint64, payload any) {
	if s.Bus != nil {
		s.Bus.Emit(Event{Type: t, Tick: tick, Payload: payload})
	}
}
