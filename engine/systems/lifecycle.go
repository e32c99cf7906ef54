package systems

import (
	"math"
	"time"

	"github.com/1siamBot/creature-waves/engine/core"
)

// frameTime is how long each atlas frame of an animated sprite is shown
const frameTime = 100 * time.Millisecond

// ShotFrame returns the atlas index used for a creature that has been hit:
// the first frame of the second row, or the last column of a single row.
func ShotFrame(sp core.Species) int {
	cols, rows := sp.Atlas()
	if rows > 1 {
		return cols
	}
	return cols - 1
}

// Kill moves a creature from alive to dying. It reports false when the
// creature is gone or already dying.
func Kill(w *core.World, id core.EntityID) bool {
	c := w.Creatures.Get(id)
	if c == nil || !c.Alive() {
		return false
	}
	sess := w.Session
	tuning := core.DefaultTuning()
	if sess != nil {
		tuning = sess.Tuning
	}

	c.Movement.Intent = core.Zero
	c.Frame = ShotFrame(c.Species)
	d := &core.Death{Timer: core.NewTimer(tuning.DeathDuration, core.Once)}
	if sess != nil {
		d.SpinX = sess.Uniform(-tuning.SpinRange, tuning.SpinRange)
		d.SpinY = sess.Uniform(-tuning.SpinRange, tuning.SpinRange)
	}
	c.Death = d

	spawnDust(w, c.Pos, tuning)

	if sess != nil {
		sess.Outcome.Kills++
		sess.Emit(core.EvtCreatureKilled, w.TickCount, core.KillPayload{ID: id, Species: c.Species, Pos: c.Pos})
	}
	return true
}

func spawnDust(w *core.World, at core.Vec2, t core.Tuning) {
	for i := 0; i < t.DustCount; i++ {
		angle := float64(i) * core.TwoPi / float64(t.DustCount)
		m := core.NewMovementController(t.DustSpeed)
		m.Intent = core.FromAngle(angle)
		w.Dust.Insert(core.Dust{Pos: at, Movement: m, Timer: core.NewTimer(t.DustDuration, core.Once)})
	}
}

// LifecycleSystem applies shrink and death scaling, animates sprites and
// despawns finished deaths, fallen projectiles and dust.
type LifecycleSystem struct {
	anim time.Duration
}

func (s *LifecycleSystem) Priority() int { return PrioLifecycle }

// Reset restarts the sprite animation clock
func (s *LifecycleSystem) Reset() { s.anim = 0 }

func (s *LifecycleSystem) Update(w *core.World, dt time.Duration) {
	tuning := core.DefaultTuning()
	if w.Session != nil {
		tuning = w.Session.Tuning
	}
	s.anim += dt
	secs := dt.Seconds()

	for _, id := range w.Creatures.IDs() {
		c := w.Creatures.Get(id)
		shrink := math.Max(1-c.Shrink.Fraction(), tuning.ShrinkFloor)
		if c.Death == nil {
			c.Scale = shrink
			if cols, _ := c.Species.Atlas(); cols > 2 {
				c.Frame = int(s.anim/frameTime) % cols
			}
			continue
		}

		c.Death.RotX += c.Death.SpinX * secs
		c.Death.RotY += c.Death.SpinY * secs
		c.Scale = shrink * c.Death.DeathScale(tuning.DeathScaleFloor)
		if c.Death.Timer.Finished() {
			w.Creatures.Remove(id)
			if w.Session != nil {
				w.Session.Emit(core.EvtCreatureRemoved, w.TickCount, id)
			}
		}
	}

	for _, id := range w.Attacks.IDs() {
		if a := w.Attacks.Get(id); a.Phase == core.Falling && a.Timer.Finished() {
			w.Attacks.Remove(id)
		}
	}
	for _, id := range w.Dust.IDs() {
		if w.Dust.Get(id).Timer.Finished() {
			w.Dust.Remove(id)
		}
	}
}
