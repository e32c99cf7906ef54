package level

import (
	"fmt"
	"math"
	"time"

	"github.com/1siamBot/creature-waves/engine/core"
)

// DefaultShrinkDuration applies when a creature omits shrink_duration_ms
const DefaultShrinkDuration = 10 * time.Second

// Definition is a single level: the creatures spawned together as one wave
type Definition struct {
	Name      string        `toml:"name"`
	Creatures []CreatureDef `toml:"creatures"`
}

// CreatureDef declares one creature of a level
type CreatureDef struct {
	Image            string    `toml:"image"`
	MaxSpeed         float64   `toml:"max_speed"`
	Pos              []float64 `toml:"pos,omitempty"`
	Movement         MotionDef `toml:"movement"`
	ShrinkDurationMs *int64    `toml:"shrink_duration_ms,omitempty"`
	Wrap             bool      `toml:"wrap,omitempty"`
}

// Motion pattern kinds
const (
	KindConstant = "constant"
	KindPeriodic = "periodic"
	KindCircle   = "circle"
)

// MotionDef is the serialized form of a motion pattern
type MotionDef struct {
	Kind       string    `toml:"kind"`
	Speed      []float64 `toml:"speed,omitempty"`
	DurationMs int64     `toml:"duration_ms,omitempty"`
	MaxSpeed   []float64 `toml:"max_speed,omitempty"`
	Radius     float64   `toml:"radius,omitempty"`
}

// Species resolves the image tag
func (c *CreatureDef) Species() (core.Species, error) {
	return core.ParseSpecies(c.Image)
}

// Position returns the fixed spawn position, if any
func (c *CreatureDef) Position() (core.Vec2, bool) {
	if len(c.Pos) != 2 {
		return core.Vec2{}, false
	}
	return core.Vec2{X: c.Pos[0], Y: c.Pos[1]}, true
}

// ShrinkDuration returns the configured shrink time or the default
func (c *CreatureDef) ShrinkDuration() time.Duration {
	if c.ShrinkDurationMs == nil {
		return DefaultShrinkDuration
	}
	return time.Duration(*c.ShrinkDurationMs) * time.Millisecond
}

// Boundary maps the wrap flag to a boundary policy
func (c *CreatureDef) Boundary() core.Boundary {
	if c.Wrap {
		return core.Wrap
	}
	return core.Bounce
}

// Build creates a fresh motion pattern with its own timer
func (m *MotionDef) Build() core.MotionPattern {
	period := time.Duration(m.DurationMs) * time.Millisecond
	switch m.Kind {
	case KindPeriodic:
		return &core.Periodic{Timer: core.NewTimer(period, core.Repeating), MaxSpeed: vec(m.MaxSpeed)}
	case KindCircle:
		return &core.Circle{Timer: core.NewTimer(period, core.Repeating), Radius: m.Radius}
	default:
		return &core.Constant{Velocity: vec(m.Speed)}
	}
}

func vec(v []float64) core.Vec2 {
	if len(v) != 2 {
		return core.Vec2{}
	}
	return core.Vec2{X: v[0], Y: v[1]}
}

// Validate checks a definition for values the simulation cannot run
func (d *Definition) Validate() error {
	for i := range d.Creatures {
		if err := d.Creatures[i].validate(); err != nil {
			return fmt.Errorf("creature %d: %w", i, err)
		}
	}
	return nil
}

func (c *CreatureDef) validate() error {
	if _, err := c.Species(); err != nil {
		return err
	}
	if !finite(c.MaxSpeed) || c.MaxSpeed < 0 {
		return fmt.Errorf("max_speed %v must be a non-negative number", c.MaxSpeed)
	}
	if c.Pos != nil && (len(c.Pos) != 2 || !finite(c.Pos...)) {
		return fmt.Errorf("pos must be two finite numbers, got %v", c.Pos)
	}
	if c.ShrinkDurationMs != nil && *c.ShrinkDurationMs < 0 {
		return fmt.Errorf("shrink_duration_ms %d is negative", *c.ShrinkDurationMs)
	}
	return c.Movement.validate()
}

func (m *MotionDef) validate() error {
	switch m.Kind {
	case KindConstant:
		if len(m.Speed) != 2 || !finite(m.Speed...) {
			return fmt.Errorf("constant movement needs speed = [x, y], got %v", m.Speed)
		}
	case KindPeriodic:
		if m.DurationMs <= 0 {
			return fmt.Errorf("periodic movement needs a positive duration_ms, got %d", m.DurationMs)
		}
		if len(m.MaxSpeed) != 2 || !finite(m.MaxSpeed...) {
			return fmt.Errorf("periodic movement needs max_speed = [x, y], got %v", m.MaxSpeed)
		}
	case KindCircle:
		if m.DurationMs <= 0 {
			return fmt.Errorf("circle movement needs a positive duration_ms, got %d", m.DurationMs)
		}
		if !finite(m.Radius) {
			return fmt.Errorf("circle radius %v is not finite", m.Radius)
		}
	default:
		return fmt.Errorf("unknown movement kind %q", m.Kind)
	}
	return nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
