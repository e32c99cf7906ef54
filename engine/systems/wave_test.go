package systems

import (
	"fmt"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/1siamBot/creature-waves/engine/core"
	"github.com/1siamBot/creature-waves/engine/level"
	"github.com/1siamBot/creature-waves/engine/systems/mocks"
)

func stillLevel(name string, n int) *level.Definition {
	def := &level.Definition{Name: name}
	for i := 0; i < n; i++ {
		def.Creatures = append(def.Creatures, level.CreatureDef{
			Image:    "fox",
			Pos:      []float64{float64(i) * 200, 0},
			Movement: level.MotionDef{Kind: level.KindConstant, Speed: []float64{0, 0}},
		})
	}
	return def
}

func killAll(w *core.World) {
	for _, id := range w.Creatures.IDs() {
		Kill(w, id)
	}
}

func TestWaveSystem_PlaysThroughToWin(t *testing.T) {
	w, _ := newTestWorld(level.FromDefinitions(stillLevel("one", 2), stillLevel("two", 1)))
	out := &w.Session.Outcome

	w.Tick(step)
	if out.Wave != 1 || out.Score != 1 || out.Phase != core.PhaseActive {
		t.Fatalf("after first tick: %+v", *out)
	}
	if out.Alive != 2 {
		t.Errorf("Alive = %d, want 2", out.Alive)
	}

	killAll(w)
	w.Tick(step)
	if out.Wave != 2 || out.Score != 2 {
		t.Fatalf("second wave did not start: %+v", *out)
	}
	if out.Alive != 1 {
		t.Errorf("Alive = %d, want 1", out.Alive)
	}

	killAll(w)
	w.Tick(step)
	if out.Phase != core.PhaseWon || !out.Win {
		t.Fatalf("want won, got %+v", *out)
	}
	if out.Score != 2 {
		t.Errorf("Score = %d, want 2", out.Score)
	}

	// nothing spawns after the game ends
	for i := 0; i < 40; i++ {
		w.Tick(step)
	}
	if w.AliveCreatures() != 0 || out.Wave != 2 {
		t.Errorf("spawned after win: alive=%d wave=%d", w.AliveCreatures(), out.Wave)
	}
}

func TestWaveSystem_TimeoutLoses(t *testing.T) {
	w, _ := newTestWorld(level.FromDefinitions(stillLevel("one", 1), stillLevel("two", 1)))
	out := &w.Session.Outcome
	var lost int
	w.Session.Bus.On(core.EvtGameLost, func(core.Event) { lost++ })

	w.Tick(time.Second)
	if out.Wave != 1 {
		t.Fatalf("wave = %d, want 1", out.Wave)
	}
	for i := 0; i < 19; i++ {
		w.Tick(time.Second)
	}
	if out.Phase != core.PhaseActive {
		t.Fatalf("phase = %v before the wave timer ran out", out.Phase)
	}
	if out.WaveRemaining != time.Second {
		t.Errorf("WaveRemaining = %v, want 1s", out.WaveRemaining)
	}

	w.Tick(time.Second)
	if out.Phase != core.PhaseLost || out.Win {
		t.Fatalf("want lost, got %+v", *out)
	}
	if out.Score != 1 {
		t.Errorf("Score = %d, want the last wave 1", out.Score)
	}
	if lost != 1 {
		t.Errorf("lost events = %d, want 1", lost)
	}
}

func TestWaveSystem_ClearOnTimeoutTickAdvances(t *testing.T) {
	w, p := newTestWorld(level.FromDefinitions(stillLevel("one", 1), stillLevel("two", 1)))
	out := &w.Session.Outcome

	w.Tick(time.Second)
	for i := 0; i < 19; i++ {
		w.Tick(time.Second)
	}
	// the kill and the timeout land in the same tick
	p.Attack.Push(core.AttackInput{Pos: core.Vec2{}})
	w.Tick(time.Second)

	if out.Phase != core.PhaseActive || out.Wave != 2 {
		t.Errorf("want wave 2 active, got %+v", *out)
	}
}

func TestWaveSystem_NotLoadedRetries(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mocks.NewMockLevelSource(ctrl)
	src.EXPECT().Len().Return(1).AnyTimes()
	gomock.InOrder(
		src.EXPECT().Level(0).Return(nil, fmt.Errorf("%w: 00", level.ErrNotLoaded)).Times(2),
		src.EXPECT().Level(0).Return(stillLevel("late", 1), nil),
	)

	w, _ := newTestWorld(src)
	out := &w.Session.Outcome
	w.Tick(step)
	w.Tick(step)
	if out.Wave != 0 || out.Phase != core.PhaseWaiting {
		t.Fatalf("spawned while not loaded: %+v", *out)
	}
	w.Tick(step)
	if out.Wave != 1 || w.AliveCreatures() != 1 {
		t.Errorf("level not spawned once loaded: %+v", *out)
	}
}

func TestWaveSystem_MalformedLevelSkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mocks.NewMockLevelSource(ctrl)
	src.EXPECT().Len().Return(2).AnyTimes()
	src.EXPECT().Level(0).Return(nil, fmt.Errorf("00: %w", level.ErrMalformed))
	src.EXPECT().Level(1).Return(stillLevel("good", 3), nil)

	w, _ := newTestWorld(src)
	var skipped []int
	w.Session.Bus.On(core.EvtLevelSkipped, func(e core.Event) { skipped = append(skipped, e.Payload.(int)) })

	w.Tick(step)
	out := w.Session.Outcome
	if out.Wave != 1 || out.Alive != 3 {
		t.Errorf("outcome = %+v, want wave 1 with 3 alive", out)
	}
	if len(skipped) != 1 || skipped[0] != 0 {
		t.Errorf("skipped = %v, want [0]", skipped)
	}
	if w.Session.NextLevel != 2 {
		t.Errorf("NextLevel = %d, want 2", w.Session.NextLevel)
	}
}

func TestWaveSystem_IdleWithoutPlayArea(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mocks.NewMockLevelSource(ctrl)

	sess := core.NewSession("test", core.Vec2{}, core.DefaultTuning(), 1)
	w := core.NewWorld(sess)
	Install(w, src)
	w.Tick(step)

	if sess.Outcome.Wave != 0 || w.Creatures.Len() != 0 {
		t.Errorf("spawned without a play area: %+v", sess.Outcome)
	}
}

func TestWaveSystem_DevModeSpawnsNothing(t *testing.T) {
	w, _ := newTestWorld(level.FromDefinitions(stillLevel("one", 1)))
	w.Session.DevMode = true
	SpawnLevel(w, stillLevel("picked", 2), 0)

	for i := 0; i < 10; i++ {
		w.Tick(time.Second)
	}
	out := w.Session.Outcome
	if out.Wave != 0 || out.Phase != core.PhaseWaiting {
		t.Errorf("dev session advanced waves: %+v", out)
	}
	if out.Alive != 2 {
		t.Errorf("Alive = %d, want 2", out.Alive)
	}
}

func TestRandomSpawnPos_InsideMargin(t *testing.T) {
	sess := core.NewSession("test", testArea, core.DefaultTuning(), 7)
	half := testArea.Sub(core.Splat(sess.Tuning.SpawnMargin)).Scale(0.5)
	for i := 0; i < 500; i++ {
		p := RandomSpawnPos(sess)
		if !(core.Rect{Half: half}).Contains(p) {
			t.Fatalf("spawn %v outside %v", p, half)
		}
	}

	sess.Area = core.Vec2{X: 100, Y: 100}
	if p := RandomSpawnPos(sess); p != core.Zero {
		t.Errorf("margin wider than the area should spawn at the center, got %v", p)
	}
}
