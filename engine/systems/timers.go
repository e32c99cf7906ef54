package systems

import (
	"time"

	"github.com/1siamBot/creature-waves/engine/core"
)

// TimerSystem advances every timer in the world. It runs first so later
// stages see this tick's fractions and just-finished flags.
type TimerSystem struct{}

func (s *TimerSystem) Priority() int { return PrioTimers }

func (s *TimerSystem) Update(w *core.World, dt time.Duration) {
	w.Creatures.Each(func(_ core.EntityID, c *core.Creature) {
		c.Shrink.Tick(dt)
		if c.Death != nil {
			c.Death.Timer.Tick(dt)
			return
		}
		Advance(c.Pattern, dt)
	})
	w.Attacks.Each(func(_ core.EntityID, a *core.Attack) {
		a.Timer.Tick(dt)
	})
	w.Dust.Each(func(_ core.EntityID, d *core.Dust) {
		d.Timer.Tick(dt)
	})

	if sess := w.Session; sess != nil && !sess.DevMode && sess.Outcome.Phase == core.PhaseActive {
		sess.WaveTimer.Tick(dt)
	}
}
