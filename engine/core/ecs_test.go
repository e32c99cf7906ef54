package core

import (
	"testing"
	"time"
)

func TestArena_InsertGetRemove(t *testing.T) {
	var a Arena[int]
	id1 := a.Insert(10)
	id2 := a.Insert(20)

	if id1 == 0 || id2 == 0 {
		t.Fatal("handles must never be zero")
	}
	if got := *a.Get(id2); got != 20 {
		t.Errorf("Get(id2) = %d, want 20", got)
	}
	if !a.Remove(id1) {
		t.Fatal("Remove(id1) = false, want true")
	}
	if a.Get(id1) != nil {
		t.Error("removed handle still resolves")
	}
	if a.Remove(id1) {
		t.Error("double remove should be a no-op")
	}

	// slot reuse bumps the generation
	id3 := a.Insert(30)
	if id3.Index() != id1.Index() {
		t.Errorf("Index = %d, want reused slot %d", id3.Index(), id1.Index())
	}
	if id3.Gen() == id1.Gen() {
		t.Error("reused slot kept the old generation")
	}
	if a.Get(id1) != nil {
		t.Error("stale handle resolves to the new record")
	}
	if a.Len() != 2 {
		t.Errorf("Len = %d, want 2", a.Len())
	}
}

func TestArena_EachInSlotOrder(t *testing.T) {
	var a Arena[string]
	a.Insert("a")
	b := a.Insert("b")
	a.Insert("c")
	a.Remove(b)

	var got []string
	a.Each(func(_ EntityID, v *string) { got = append(got, *v) })
	if len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Errorf("Each visited %v, want [a c]", got)
	}
}

func TestArena_ClearInvalidatesHandles(t *testing.T) {
	var a Arena[int]
	ids := []EntityID{a.Insert(1), a.Insert(2)}
	a.Clear()
	for _, id := range ids {
		if a.Has(id) {
			t.Errorf("handle %d survived Clear", id)
		}
	}
	if a.Len() != 0 {
		t.Errorf("Len = %d, want 0", a.Len())
	}
}

type recordingSystem struct {
	prio  int
	log   *[]int
	reset bool
}

func (s *recordingSystem) Priority() int                    { return s.prio }
func (s *recordingSystem) Update(_ *World, _ time.Duration) { *s.log = append(*s.log, s.prio) }
func (s *recordingSystem) Reset()                           { s.reset = true }

func TestWorld_SystemsRunInPriorityOrder(t *testing.T) {
	var log []int
	w := NewWorld(NewSession("t", Vec2{800, 600}, DefaultTuning(), 1))
	w.AddSystem(&recordingSystem{prio: 30, log: &log})
	w.AddSystem(&recordingSystem{prio: 10, log: &log})
	w.AddSystem(&recordingSystem{prio: 20, log: &log})

	w.Tick(time.Millisecond)
	if len(log) != 3 || log[0] != 10 || log[1] != 20 || log[2] != 30 {
		t.Errorf("run order = %v, want [10 20 30]", log)
	}
	if w.TickCount != 1 {
		t.Errorf("TickCount = %d, want 1", w.TickCount)
	}
}

func TestWorld_ResetTearsDownSession(t *testing.T) {
	var log []int
	sys := &recordingSystem{prio: 1, log: &log}
	w := NewWorld(NewSession("a", Vec2{800, 600}, DefaultTuning(), 1))
	w.AddSystem(sys)
	w.Creatures.Insert(Creature{Scale: 1})
	w.Attacks.Insert(Attack{})
	w.Dust.Insert(Dust{})

	next := NewSession("b", Vec2{800, 600}, DefaultTuning(), 2)
	w.Reset(next)

	if w.EntityCount() != 0 {
		t.Errorf("EntityCount = %d, want 0", w.EntityCount())
	}
	if !sys.reset {
		t.Error("system state was not reset")
	}
	if w.Session != next {
		t.Error("world kept the old session")
	}
}

func TestWorld_AliveCreaturesSkipsDying(t *testing.T) {
	w := NewWorld(nil)
	w.Creatures.Insert(Creature{})
	w.Creatures.Insert(Creature{Death: &Death{}})
	if got := w.AliveCreatures(); got != 1 {
		t.Errorf("AliveCreatures = %d, want 1", got)
	}
}

func TestGameLoop_FixedStep(t *testing.T) {
	var log []int
	w := NewWorld(nil)
	w.AddSystem(&recordingSystem{prio: 1, log: &log})

	now := time.Unix(0, 0)
	gl := NewGameLoop(w, 20)
	gl.Now = func() time.Time { return now }
	gl.Play()

	now = now.Add(120 * time.Millisecond)
	alpha := gl.Update()
	if gl.CurrentTick() != 2 {
		t.Errorf("CurrentTick = %d, want 2", gl.CurrentTick())
	}
	if alpha < 0.39 || alpha > 0.41 {
		t.Errorf("alpha = %v, want 0.4", alpha)
	}

	gl.Pause()
	now = now.Add(time.Second)
	gl.Update()
	if gl.CurrentTick() != 2 {
		t.Error("paused loop must not tick")
	}
}
