package core

import (
	"fmt"
	"math"
	"strings"
)

// ---- Species ----

// Species selects the creature image. It decides the sprite atlas and the
// hit box size.
type Species uint8

const (
	Fox Species = iota
	Snake
	Mouse
	Duck
)

// DisplayedSize is the on-screen edge length of a creature at scale 1
const DisplayedSize = 128.0

var speciesNames = [...]string{"fox", "snake", "mouse", "duck"}

func (s Species) String() string {
	if int(s) < len(speciesNames) {
		return speciesNames[s]
	}
	return fmt.Sprintf("species(%d)", s)
}

// ParseSpecies maps a level file tag to a species
func ParseSpecies(name string) (Species, error) {
	for i, n := range speciesNames {
		if strings.EqualFold(n, name) {
			return Species(i), nil
		}
	}
	return 0, fmt.Errorf("unknown creature image %q", name)
}

// AllSpecies lists every species in declaration order
func AllSpecies() []Species { return []Species{Fox, Snake, Mouse, Duck} }

// ImageSize returns the source image size in pixels
func (s Species) ImageSize() (w, h int) {
	if s == Duck {
		return 32, 32
	}
	return 256, 256
}

// DefaultScale converts source pixels to displayed pixels
func (s Species) DefaultScale() float64 {
	w, h := s.ImageSize()
	return DisplayedSize / float64(max(w, h))
}

// BaseSize returns the displayed sprite size before shrinking
func (s Species) BaseSize() Vec2 {
	w, h := s.ImageSize()
	return Vec2{float64(w), float64(h)}.Scale(s.DefaultScale())
}

// Atlas returns the number of sprite atlas columns and rows
func (s Species) Atlas() (cols, rows int) {
	if s == Duck {
		return 6, 2
	}
	return 2, 1
}

// ---- Movement ----

// MovementController turns an intent into motion
type MovementController struct {
	// Intent is the direction the creature wants to move in
	Intent Vec2
	// IntentModifier is multiplied elementwise into Intent, used by bounce
	IntentModifier Vec2
	// MaxSpeed is in world units per second
	MaxSpeed float64
}

// NewMovementController returns a controller with a neutral modifier
func NewMovementController(maxSpeed float64) MovementController {
	return MovementController{IntentModifier: One, MaxSpeed: maxSpeed}
}

// Velocity returns max_speed × intent × intent_modifier
func (m *MovementController) Velocity() Vec2 {
	return m.Intent.Mul(m.IntentModifier).Scale(m.MaxSpeed)
}

// MotionPattern is a closed set of movement patterns: *Constant, *Periodic
// and *Circle. Consumers switch over the concrete types.
type MotionPattern interface {
	motionPattern()
}

// Constant moves with a fixed intent
type Constant struct {
	Velocity Vec2
}

// Periodic scales MaxSpeed by the positive half of a sine over Timer
type Periodic struct {
	Timer    Timer
	MaxSpeed Vec2
}

// Circle walks a circle once per Timer period
type Circle struct {
	Timer  Timer
	Radius float64
}

func (*Constant) motionPattern() {}
func (*Periodic) motionPattern() {}
func (*Circle) motionPattern()   {}

// Boundary is the screen edge policy of a creature
type Boundary uint8

const (
	Bounce Boundary = iota
	Wrap
)

func (b Boundary) String() string {
	if b == Wrap {
		return "wrap"
	}
	return "bounce"
}

// ---- Creature ----

// Creature is a simulated target
type Creature struct {
	Species  Species
	Pos      Vec2
	Movement MovementController
	Pattern  MotionPattern
	Boundary Boundary

	// Shrink runs from spawn and drives the cosmetic size decay
	Shrink Timer
	// Scale is the visual size factor, recomputed every tick
	Scale float64

	// Death is set once the creature has been hit
	Death *Death

	// Wave is the wave number that spawned the creature (0 for dev spawns)
	Wave int
	// Frame is the sprite atlas index
	Frame int
}

// Alive reports whether the creature can still be hit
func (c *Creature) Alive() bool { return c.Death == nil }

// HitBox returns the axis-aligned box used for hit tests
func (c *Creature) HitBox() Rect {
	return Rect{Center: c.Pos, Half: c.Species.BaseSize().Scale(c.Scale / 2)}
}

// Death holds the cosmetic spin-down state of a shot creature
type Death struct {
	Timer Timer
	// SpinX and SpinY are rotation rates in radians per second
	SpinX, SpinY float64
	// RotX and RotY accumulate the spin for rendering
	RotX, RotY float64
}

// DeathScale eases from 1 down to floor on fraction_remaining²
func (d *Death) DeathScale(floor float64) float64 {
	r := d.Timer.FractionRemaining()
	return floor + (1-floor)*r*r
}

// ---- Attacks ----

// AttackKind tells instant clicks from thrown projectiles
type AttackKind uint8

const (
	AttackClick AttackKind = iota
	AttackThrow
)

func (k AttackKind) String() string {
	if k == AttackThrow {
		return "throw"
	}
	return "click"
}

// AttackPhase is the lifecycle of an attack event
type AttackPhase uint8

const (
	// Flying attacks are on their way to Target
	Flying AttackPhase = iota
	// Landed attacks are resolved by the hit detector this tick
	Landed
	// Falling attacks missed and drop away until Timer finishes
	Falling
)

// Attack is a transient click or projectile
type Attack struct {
	Kind   AttackKind
	Phase  AttackPhase
	Origin Vec2
	Target Vec2
	Pos    Vec2
	// Timer is the flight time while Flying and the fall time while Falling
	Timer Timer
}

// AttackInput is a player attack collected by the frontend
type AttackInput struct {
	Kind AttackKind
	Pos  Vec2
}

// ---- Dust ----

// Dust is a cosmetic puff released when a creature dies
type Dust struct {
	Pos      Vec2
	Movement MovementController
	Timer    Timer
}

// Alpha fades out over the dust lifetime
func (d *Dust) Alpha() float64 { return d.Timer.FractionRemaining() }

// TwoPi is used for circular patterns and dust bursts
const TwoPi = 2 * math.Pi
