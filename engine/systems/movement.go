package systems

import (
	"math"
	"time"

	"github.com/1siamBot/creature-waves/engine/core"
)

// fallDistance is how far a missed projectile drops while falling
const fallDistance = 60.0

// MovementSystem integrates velocities and applies the boundary policies
type MovementSystem struct{}

func (s *MovementSystem) Priority() int { return PrioMovement }

func (s *MovementSystem) Update(w *core.World, dt time.Duration) {
	secs := dt.Seconds()
	sess := w.Session
	ready := sess != nil && sess.Ready()

	w.Creatures.Each(func(_ core.EntityID, c *core.Creature) {
		c.Pos = c.Pos.Add(c.Movement.Velocity().Scale(secs))
		if !ready {
			// no play area yet, nothing to wrap or bounce against
			return
		}
		switch c.Boundary {
		case core.Wrap:
			c.Pos = WrapPosition(c.Pos, sess.Area.Add(core.Splat(sess.Tuning.WrapMargin)))
		case core.Bounce:
			c.Movement.IntentModifier = BounceModifier(c, sess.Area)
		}
	})

	w.Dust.Each(func(_ core.EntityID, d *core.Dust) {
		d.Pos = d.Pos.Add(d.Movement.Velocity().Scale(secs))
	})

	w.Attacks.Each(func(_ core.EntityID, a *core.Attack) {
		switch a.Phase {
		case core.Flying:
			a.Pos = a.Origin.Lerp(a.Target, a.Timer.Fraction())
			if a.Timer.Finished() {
				a.Pos = a.Target
				a.Phase = core.Landed
			}
		case core.Falling:
			a.Pos = a.Target.Sub(core.Vec2{Y: fallDistance * a.Timer.Fraction()})
		}
	})
}

// WrapPosition wraps p into [-size/2, size/2) on both axes
func WrapPosition(p, size core.Vec2) core.Vec2 {
	half := size.Scale(0.5)
	return p.Add(half).RemEuclid(size).Sub(half)
}

// BounceModifier returns the intent modifier for a bouncing creature.
//
// Once the creature's center leaves the inner area (play area minus its
// sprite size) on an axis, that axis of the modifier is set so the current
// intent points back toward the center. The modifier persists, so it keeps
// applying until the next crossing. This is not a physical reflection: a
// pattern that already heads inward keeps doing so.
func BounceModifier(c *core.Creature, area core.Vec2) core.Vec2 {
	half := area.Sub(c.Species.BaseSize()).Scale(0.5)
	mod := c.Movement.IntentModifier
	intent := c.Movement.Intent.Signum()
	pos := c.Pos.Signum()
	if math.Abs(c.Pos.X) > half.X {
		mod.X = intent.X * -pos.X
	}
	if math.Abs(c.Pos.Y) > half.Y {
		mod.Y = intent.Y * -pos.Y
	}
	return mod
}
