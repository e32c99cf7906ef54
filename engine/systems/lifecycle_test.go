package systems

import (
	"testing"
	"time"

	"github.com/1siamBot/creature-waves/engine/core"
)

const step = 50 * time.Millisecond

func TestLifecycle_DeathRunsToRemoval(t *testing.T) {
	w, _ := newTestWorld(nil)
	w.Session.DevMode = true
	id := spawnStill(w, core.Fox, core.Vec2{})

	if !Kill(w, id) {
		t.Fatal("Kill = false for an alive creature")
	}
	if Kill(w, id) {
		t.Error("second Kill should report false")
	}
	c := w.Creatures.Get(id)
	if c.Frame != ShotFrame(core.Fox) {
		t.Errorf("Frame = %d, want shot frame", c.Frame)
	}
	spin := w.Session.Tuning.SpinRange
	if c.Death.SpinX < -spin || c.Death.SpinX >= spin {
		t.Errorf("SpinX = %v outside [-%v, %v)", c.Death.SpinX, spin, spin)
	}
	if w.Dust.Len() != w.Session.Tuning.DustCount {
		t.Errorf("dust = %d, want %d", w.Dust.Len(), w.Session.Tuning.DustCount)
	}

	w.Tick(step)
	if c.Scale >= 1 || c.Scale <= w.Session.Tuning.DeathScaleFloor {
		t.Errorf("Scale = %v, want easing toward the floor", c.Scale)
	}

	// 1s death timer at 50ms per tick
	for i := 1; i < 19; i++ {
		w.Tick(step)
	}
	if !w.Creatures.Has(id) {
		t.Fatal("removed before the death timer finished")
	}
	if w.Dust.Len() != 0 {
		t.Errorf("dust still present after its lifetime: %d", w.Dust.Len())
	}
	w.Tick(step)
	if w.Creatures.Has(id) {
		t.Error("creature not removed when the death timer finished")
	}
}

func TestLifecycle_ShrinkNeverDespawns(t *testing.T) {
	w, _ := newTestWorld(nil)
	w.Session.DevMode = true
	id := SpawnCreature(w, SpawnRequest{Species: core.Duck, Pattern: &core.Constant{}, ShrinkDuration: time.Second})

	for i := 0; i < 100; i++ {
		w.Tick(step)
	}
	c := w.Creatures.Get(id)
	if c == nil || !c.Alive() {
		t.Fatal("shrinking alone removed the creature")
	}
	if !near(c.Scale, w.Session.Tuning.ShrinkFloor) {
		t.Errorf("Scale = %v, want the shrink floor %v", c.Scale, w.Session.Tuning.ShrinkFloor)
	}
}

func TestLifecycle_DuckAnimates(t *testing.T) {
	w, _ := newTestWorld(nil)
	w.Session.DevMode = true
	id := spawnStill(w, core.Duck, core.Vec2{})

	seen := map[int]bool{}
	for i := 0; i < 12; i++ {
		w.Tick(step)
		seen[w.Creatures.Get(id).Frame] = true
	}
	cols, _ := core.Duck.Atlas()
	if len(seen) != cols {
		t.Errorf("frames seen = %v, want all %d columns", seen, cols)
	}
}

func TestWorldReset_DiscardsSessionState(t *testing.T) {
	w, p := newTestWorld(nil)
	spawnStill(w, core.Fox, core.Vec2{})
	w.Tick(step)
	p.Attack.Push(core.AttackInput{Pos: core.Vec2{}})

	w.Reset(core.NewSession("next", testArea, core.DefaultTuning(), 2))
	if w.EntityCount() != 0 {
		t.Errorf("EntityCount = %d after reset", w.EntityCount())
	}
	if p.Attack.Pending() != 0 {
		t.Error("attack queue survived the reset")
	}
}
