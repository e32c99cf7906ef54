package systems

import (
	"math"
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/1siamBot/creature-waves/engine/core"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func TestIntent_PeriodicFollowsHalfSine(t *testing.T) {
	p := &core.Periodic{Timer: core.NewTimer(time.Second, core.Repeating), MaxSpeed: core.Vec2{X: 3}}
	if got := Intent(p); !near(got.X, 0) {
		t.Errorf("intent at fraction 0 = %v, want 0", got)
	}
	Advance(p, 500*time.Millisecond)
	if got := Intent(p); !near(got.X, 3) || !near(got.Y, 0) {
		t.Errorf("intent at fraction 0.5 = %v, want (3, 0)", got)
	}
	Advance(p, 500*time.Millisecond)
	if got := Intent(p); !near(got.X, 0) {
		t.Errorf("intent after a full period = %v, want 0", got)
	}
}

func TestIntent_CircleQuarterTurn(t *testing.T) {
	c := &core.Circle{Timer: core.NewTimer(time.Second, core.Repeating), Radius: 10}
	if got := Intent(c); !near(got.X, 0) || !near(got.Y, 10) {
		t.Errorf("start heading = %v, want (0, 10)", got)
	}
	Advance(c, 250*time.Millisecond)
	if got := Intent(c); !near(got.X, -10) || !near(got.Y, 0) {
		t.Errorf("quarter turn = %v, want (-10, 0)", got)
	}
}

func TestIntent_ConstantHasNoTimer(t *testing.T) {
	c := &core.Constant{Velocity: core.Vec2{X: 1, Y: -2}}
	Advance(c, time.Hour)
	if got := Intent(c); got != c.Velocity {
		t.Errorf("Intent = %v, want %v", got, c.Velocity)
	}
}

func TestIntent_PeriodicStaysWithinMaxSpeed(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		maxX := rapid.Float64Range(0, 1000).Draw(t, "max_x")
		period := time.Duration(rapid.Int64Range(1, int64(5*time.Second)).Draw(t, "period"))
		p := &core.Periodic{Timer: core.NewTimer(period, core.Repeating), MaxSpeed: core.Vec2{X: maxX}}
		for _, step := range rapid.SliceOfN(rapid.Int64Range(0, int64(time.Second)), 1, 50).Draw(t, "steps") {
			Advance(p, time.Duration(step))
			x := Intent(p).X
			if x < -eps || x > maxX+eps {
				t.Fatalf("intent.x = %v outside [0, %v]", x, maxX)
			}
		}
	})
}

func TestMotionSystem_SkipsDyingCreatures(t *testing.T) {
	w, _ := newTestWorld(nil)
	id := SpawnCreature(w, SpawnRequest{Species: core.Fox, MaxSpeed: 10, Pattern: &core.Constant{Velocity: core.Vec2{X: 1}}})
	Kill(w, id)

	(&MotionSystem{}).Update(w, 50*time.Millisecond)
	if got := w.Creatures.Get(id).Movement.Intent; got != core.Zero {
		t.Errorf("dying creature intent = %v, want zero", got)
	}
}
