package systems

import (
	"math"
	"time"

	"github.com/1siamBot/creature-waves/engine/core"
)

// Intent evaluates a motion pattern at its current timer position. The
// result is not yet scaled by the creature's max speed.
func Intent(p core.MotionPattern) core.Vec2 {
	switch p := p.(type) {
	case *core.Constant:
		return p.Velocity
	case *core.Periodic:
		// positive half of the sine wave
		return p.MaxSpeed.Scale(math.Sin(math.Pi * p.Timer.Fraction()))
	case *core.Circle:
		angle := p.Timer.Fraction() * core.TwoPi
		return core.Vec2{X: -math.Sin(angle) * p.Radius, Y: math.Cos(angle) * p.Radius}
	}
	return core.Zero
}

// Advance ticks the pattern's timer. Constant has none.
func Advance(p core.MotionPattern, dt time.Duration) {
	switch p := p.(type) {
	case *core.Periodic:
		p.Timer.Tick(dt)
	case *core.Circle:
		p.Timer.Tick(dt)
	}
}

// MotionSystem writes pattern intents into alive creatures' controllers
type MotionSystem struct{}

func (s *MotionSystem) Priority() int { return PrioMotion }

func (s *MotionSystem) Update(w *core.World, _ time.Duration) {
	w.Creatures.Each(func(_ core.EntityID, c *core.Creature) {
		if !c.Alive() || c.Pattern == nil {
			return
		}
		c.Movement.Intent = Intent(c.Pattern)
	})
}
