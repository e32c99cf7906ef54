package systems

import (
	"log/slog"
	"time"

	"github.com/1siamBot/creature-waves/engine/core"
)

// AttackSystem turns queued player input into attack records. Clicks land
// immediately; throws fly from the bottom edge toward the cursor.
type AttackSystem struct {
	queue []core.AttackInput

	// Recorder, when set, receives every accepted input with its tick
	Recorder func(tick uint64, in core.AttackInput)
}

func (s *AttackSystem) Priority() int { return PrioAttack }

// Push queues an input for the next tick
func (s *AttackSystem) Push(in core.AttackInput) {
	s.queue = append(s.queue, in)
}

// Pending returns the number of queued inputs
func (s *AttackSystem) Pending() int { return len(s.queue) }

// Reset drops queued inputs
func (s *AttackSystem) Reset() { s.queue = s.queue[:0] }

func (s *AttackSystem) Update(w *core.World, _ time.Duration) {
	if len(s.queue) == 0 {
		return
	}
	sess := w.Session
	if sess == nil || sess.Outcome.Phase.Terminal() {
		s.queue = s.queue[:0]
		return
	}
	if !sess.Ready() {
		// kept until the play area is known
		return
	}
	for _, in := range s.queue {
		if !in.Pos.IsFinite() {
			slog.Warn("attack input dropped", "pos", in.Pos)
			continue
		}

		var a core.Attack
		switch in.Kind {
		case core.AttackThrow:
			if sess.Tuning.SingleProjectile && projectileInFlight(w) {
				continue
			}
			origin := core.Vec2{Y: -sess.Area.Y / 2}
			a = core.Attack{
				Kind:   core.AttackThrow,
				Phase:  core.Flying,
				Origin: origin,
				Target: in.Pos,
				Pos:    origin,
				Timer:  core.NewTimer(sess.Tuning.FlightDuration, core.Once),
			}
		default:
			a = core.Attack{Kind: core.AttackClick, Phase: core.Landed, Origin: in.Pos, Target: in.Pos, Pos: in.Pos}
		}

		id := w.Attacks.Insert(a)
		if s.Recorder != nil {
			s.Recorder(w.TickCount, in)
		}
		sess.Emit(core.EvtAttackStarted, w.TickCount, core.AttackPayload{ID: id, Kind: a.Kind})
	}
	s.queue = s.queue[:0]
}

func projectileInFlight(w *core.World) bool {
	found := false
	w.Attacks.Each(func(_ core.EntityID, a *core.Attack) {
		if a.Kind == core.AttackThrow && a.Phase == core.Flying {
			found = true
		}
	})
	return found
}
