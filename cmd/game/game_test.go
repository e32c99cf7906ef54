package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/1siamBot/creature-waves/engine/config"
	"github.com/1siamBot/creature-waves/engine/core"
	"github.com/1siamBot/creature-waves/engine/level"
	"github.com/1siamBot/creature-waves/engine/network"
	"github.com/1siamBot/creature-waves/engine/ui"
)

func oneDuck(x float64) *level.Definition {
	return &level.Definition{Name: "one duck", Creatures: []level.CreatureDef{{
		Image:    "duck",
		Pos:      []float64{x, 0},
		Movement: level.MotionDef{Kind: level.KindConstant, Speed: []float64{0, 0}},
	}}}
}

func newTestGame(t *testing.T, cfg config.Config, defs ...*level.Definition) *Game {
	t.Helper()
	g, err := NewGame(cfg, level.FromDefinitions(defs...), nil, nil)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Window.Width, cfg.Window.Height = 800, 600
	cfg.Sim.Seed = 42
	return cfg
}

func tick(g *Game, n int) {
	for range n {
		g.loop.TickOnce()
	}
}

func TestGame_SessionStartsFirstWave(t *testing.T) {
	g := newTestGame(t, testConfig(), oneDuck(0))
	g.menu.OnPlay()

	sess := g.Session()
	if sess == nil || g.menu.Screen != ui.ScreenGameplay {
		t.Fatalf("no session after play, screen %v", g.menu.Screen)
	}
	if _, err := uuid.Parse(sess.ID); err != nil {
		t.Errorf("session id %q: %v", sess.ID, err)
	}
	tick(g, 1)
	if sess.Outcome.Wave != 1 || g.world.AliveCreatures() != 1 {
		t.Errorf("wave %d alive %d after first tick", sess.Outcome.Wave, g.world.AliveCreatures())
	}
}

func TestGame_WinShowsScoreAndTearsDown(t *testing.T) {
	g := newTestGame(t, testConfig(), oneDuck(0))
	g.startSession(noDevLevel)
	tick(g, 1)

	g.pipeline.Attack.Push(core.AttackInput{Kind: core.AttackClick, Pos: core.Zero})
	// kill, death spin, then the scheduler finds no level left
	for range 200 {
		tick(g, 1)
		if g.Session().Outcome.Phase.Terminal() {
			break
		}
	}
	if !g.step() {
		t.Fatal("step did not end the won session")
	}
	if g.menu.Screen != ui.ScreenScore || !g.menu.Outcome.Win || g.menu.Outcome.Kills != 1 {
		t.Errorf("score screen %v outcome %+v", g.menu.Screen, g.menu.Outcome)
	}
	if g.Session() != nil || g.world.EntityCount() != 0 {
		t.Errorf("world not torn down: %d entities", g.world.EntityCount())
	}
}

func TestGame_DevLevelDisablesWaves(t *testing.T) {
	g := newTestGame(t, testConfig(), oneDuck(0), oneDuck(100))
	g.menu.OnDevLevel(1)

	sess := g.Session()
	if sess == nil || !sess.DevMode || !g.hud.Dev {
		t.Fatal("dev session not started")
	}
	tick(g, 30)
	if sess.Outcome.Wave != 0 || g.world.Creatures.Len() != 1 {
		t.Errorf("dev session ran the scheduler: wave %d creatures %d", sess.Outcome.Wave, g.world.Creatures.Len())
	}
}

func TestGame_RecordThenReplay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.replay")
	cfg := testConfig()
	cfg.Replay.Record = path

	g := newTestGame(t, cfg, oneDuck(0))
	g.startSession(noDevLevel)
	tick(g, 2)
	g.pipeline.Attack.Push(core.AttackInput{Kind: core.AttackClick, Pos: core.Vec2{X: 500}})
	tick(g, 1)
	g.endSession()

	r, err := network.LoadReplay(path)
	if err != nil {
		t.Fatalf("LoadReplay: %v", err)
	}
	if len(r.Commands) != 1 || r.Commands[0].Tick != 2 || r.Header.Seed != 42 {
		t.Fatalf("replay = %+v %+v", r.Header, r.Commands)
	}

	cfg.Replay.Record = ""
	cfg.Replay.Play = path
	cfg.Sim.Seed = 7 // the replay seed wins
	p := newTestGame(t, cfg, oneDuck(0))
	p.startSession(noDevLevel)
	if p.Session().Seed != 42 {
		t.Errorf("playback seed = %d", p.Session().Seed)
	}
	var started int
	p.Session().Bus.On(core.EvtAttackStarted, func(core.Event) { started++ })
	tick(p, 4)
	if started != 1 {
		t.Errorf("playback fed %d attacks, want 1", started)
	}
}

func oneWanderingFox() *level.Definition {
	return &level.Definition{Name: "one fox", Creatures: []level.CreatureDef{{
		Image:    "fox",
		Movement: level.MotionDef{Kind: level.KindConstant, Speed: []float64{0, 0}},
	}}}
}

func foxPos(g *Game) core.Vec2 {
	var pos core.Vec2
	g.world.Creatures.Each(func(_ core.EntityID, c *core.Creature) { pos = c.Pos })
	return pos
}

func TestGame_ReplayKeepsRecordedPlayArea(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.replay")
	recordedArea := core.Vec2{X: 1280, Y: 720}
	cfg := testConfig()
	cfg.Window.Width, cfg.Window.Height = 1280, 720
	cfg.Replay.Record = path

	g := newTestGame(t, cfg, oneWanderingFox())
	g.startSession(noDevLevel)
	tick(g, 1)
	fox := foxPos(g)

	// resizing while recording leaves the simulated area alone
	frozen := time.Now()
	g.loop.Now = func() time.Time { return frozen }
	g.loop.Play()
	g.cam.SetScreen(400, 300)
	g.step()
	if got := g.Session().Area; got != recordedArea {
		t.Fatalf("area after resize = %v, want %v", got, recordedArea)
	}

	g.pipeline.Attack.Push(core.AttackInput{Kind: core.AttackClick, Pos: fox})
	tick(g, 1)
	if k := g.Session().Outcome.Kills; k != 1 {
		t.Fatalf("recorded kills = %d, want 1", k)
	}
	g.endSession()

	cfg.Window.Width, cfg.Window.Height = 800, 600
	cfg.Replay.Record = ""
	cfg.Replay.Play = path
	p := newTestGame(t, cfg, oneWanderingFox())
	if p.playback.Header.Area != recordedArea {
		t.Fatalf("header area = %v", p.playback.Header.Area)
	}
	p.startSession(noDevLevel)
	if got := p.Session().Area; got != recordedArea {
		t.Errorf("playback area = %v, want %v", got, recordedArea)
	}
	tick(p, 1)
	if got := foxPos(p); got != fox {
		t.Errorf("fox spawned at %v, recorded at %v", got, fox)
	}
	tick(p, 2)
	if k := p.Session().Outcome.Kills; k != 1 {
		t.Errorf("playback kills = %d, want 1", k)
	}
}

func TestGame_EndSessionStopsLoop(t *testing.T) {
	g := newTestGame(t, testConfig(), oneDuck(0))
	g.startSession(noDevLevel)
	g.endSession()
	if g.loop.State != core.StateStopped || g.Session() != nil {
		t.Error("loop still running after teardown")
	}
	if g.step() {
		t.Error("step reported an ending without a session")
	}
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.toml")
	doc := "[sim]\nwave_duration = \"5s\"\nattack_mode = \"throw\"\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig([]string{"-config", path, "-attack", "click"})
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Sim.WaveDuration != 5*time.Second || cfg.Sim.AttackMode != config.AttackClick {
		t.Errorf("sim = %+v", cfg.Sim)
	}
}
