package systems

import (
	"time"

	"github.com/1siamBot/creature-waves/engine/core"
)

// Hit pairs a landed attack with a creature whose box contains it
type Hit struct {
	Attack   core.EntityID
	Creature core.EntityID
}

// DetectHits tests the landed attacks against every alive creature's hit box.
// Overlapping creatures can all be hit by one attack, but each creature is
// reported at most once per batch. Nothing in the world is modified.
func DetectHits(w *core.World, landed []core.EntityID) []Hit {
	var hits []Hit
	taken := make(map[core.EntityID]bool)
	for _, aid := range landed {
		a := w.Attacks.Get(aid)
		if a == nil {
			continue
		}
		w.Creatures.Each(func(cid core.EntityID, c *core.Creature) {
			if !c.Alive() || taken[cid] {
				return
			}
			if c.HitBox().Contains(a.Pos) {
				taken[cid] = true
				hits = append(hits, Hit{Attack: aid, Creature: cid})
			}
		})
	}
	return hits
}

// HitSystem resolves landed attacks into kills. It sees the positions
// integrated earlier in the same tick.
type HitSystem struct{}

func (s *HitSystem) Priority() int { return PrioHit }

func (s *HitSystem) Update(w *core.World, _ time.Duration) {
	var landed []core.EntityID
	w.Attacks.Each(func(id core.EntityID, a *core.Attack) {
		if a.Phase == core.Landed {
			landed = append(landed, id)
		}
	})
	if len(landed) == 0 {
		return
	}

	hits := DetectHits(w, landed)
	scored := make(map[core.EntityID]bool, len(hits))
	kills := 0
	for _, h := range hits {
		scored[h.Attack] = true
		if Kill(w, h.Creature) {
			kills++
		}
	}

	sess := w.Session
	for _, id := range landed {
		a := w.Attacks.Get(id)
		if a.Kind == core.AttackThrow && !scored[id] && sess != nil {
			a.Phase = core.Falling
			a.Timer = core.NewTimer(sess.Tuning.FallDuration, core.Once)
			continue
		}
		w.Attacks.Remove(id)
	}

	if sess == nil {
		return
	}
	evt := core.EvtAttackMiss
	if kills > 0 {
		evt = core.EvtAttackHit
	}
	sess.Emit(evt, w.TickCount, core.BatchPayload{Attacks: len(landed), Kills: kills})
}
