package systems

import (
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/1siamBot/creature-waves/engine/core"
)

var testArea = core.Vec2{X: 800, Y: 600}

func newTestWorld(levels LevelSource) (*core.World, *Pipeline) {
	sess := core.NewSession("test", testArea, core.DefaultTuning(), 1)
	w := core.NewWorld(sess)
	return w, Install(w, levels)
}

func TestWrapPosition_StaysInside(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		size := core.Vec2{
			X: rapid.Float64Range(1, 5000).Draw(t, "w"),
			Y: rapid.Float64Range(1, 5000).Draw(t, "h"),
		}
		p := core.Vec2{
			X: rapid.Float64Range(-1e5, 1e5).Draw(t, "x"),
			Y: rapid.Float64Range(-1e5, 1e5).Draw(t, "y"),
		}
		got := WrapPosition(p, size)
		half := size.Scale(0.5)
		if got.X < -half.X || got.X > half.X || got.Y < -half.Y || got.Y > half.Y {
			t.Fatalf("WrapPosition(%v, %v) = %v escapes the area", p, size, got)
		}
	})
}

func TestMovementSystem_WrapCrossesToOppositeEdge(t *testing.T) {
	w, _ := newTestWorld(nil)
	half := testArea.Add(core.Splat(w.Session.Tuning.WrapMargin)).Scale(0.5)
	id := SpawnCreature(w, SpawnRequest{
		Species:  core.Mouse,
		Pos:      core.Vec2{X: half.X + 0.5},
		Boundary: core.Wrap,
		Pattern:  &core.Constant{},
	})

	(&MovementSystem{}).Update(w, 50*time.Millisecond)
	got := w.Creatures.Get(id).Pos
	if !near(got.X, -half.X+0.5) || !near(got.Y, 0) {
		t.Errorf("Pos = %v, want (%v, 0)", got, -half.X+0.5)
	}
}

func TestMovementSystem_BounceReversesAxis(t *testing.T) {
	w, _ := newTestWorld(nil)
	inner := testArea.Sub(core.Fox.BaseSize()).Scale(0.5)
	id := SpawnCreature(w, SpawnRequest{
		Species:  core.Fox,
		MaxSpeed: 100,
		Pos:      core.Vec2{X: inner.X - 1},
		Boundary: core.Bounce,
		Pattern:  &core.Constant{Velocity: core.Vec2{X: 1}},
	})
	mv := &MovementSystem{}

	// 100 units/s for 50ms crosses the inner edge
	mv.Update(w, 50*time.Millisecond)
	c := w.Creatures.Get(id)
	if c.Movement.IntentModifier.X != -1 {
		t.Fatalf("IntentModifier.X = %v, want -1", c.Movement.IntentModifier.X)
	}
	if c.Movement.IntentModifier.Y != 1 {
		t.Errorf("in-bounds axis flipped: %v", c.Movement.IntentModifier)
	}

	before := c.Pos.X
	mv.Update(w, 50*time.Millisecond)
	if c.Pos.X >= before {
		t.Errorf("x went %v -> %v, want it to move back inward", before, c.Pos.X)
	}
}

func TestBounceModifier_InwardIntentKeepsDirection(t *testing.T) {
	c := &core.Creature{
		Species:  core.Fox,
		Pos:      core.Vec2{X: 1000},
		Movement: core.NewMovementController(1),
	}
	c.Movement.Intent = core.Vec2{X: -1}
	mod := BounceModifier(c, testArea)
	if v := c.Movement.Intent.Mul(mod); v.X >= 0 {
		t.Errorf("effective intent %v points outward", v)
	}
}

func TestMovementSystem_ThrowLandsAfterFlight(t *testing.T) {
	w, p := newTestWorld(nil)
	w.Session.DevMode = true
	target := core.Vec2{X: 100, Y: 100}
	p.Attack.Push(core.AttackInput{Kind: core.AttackThrow, Pos: target})

	step := 50 * time.Millisecond
	w.Tick(step)
	ids := w.Attacks.IDs()
	if len(ids) != 1 {
		t.Fatalf("attacks = %d, want 1", len(ids))
	}
	a := w.Attacks.Get(ids[0])
	if a.Phase != core.Flying || a.Pos != a.Origin {
		t.Fatalf("attack after spawn = %+v", a)
	}

	flight := w.Session.Tuning.FlightDuration
	for elapsed := time.Duration(0); elapsed < flight-step; elapsed += step {
		w.Tick(step)
	}
	if a.Phase != core.Flying {
		t.Fatalf("landed early at tick %d", w.TickCount)
	}
	w.Tick(step)
	// nothing to hit: the projectile lands and starts falling in the same tick
	if a.Phase != core.Falling {
		t.Errorf("Phase = %v, want falling", a.Phase)
	}
}
