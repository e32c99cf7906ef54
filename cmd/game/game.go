package main

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/1siamBot/creature-waves/engine/audio"
	"github.com/1siamBot/creature-waves/engine/config"
	"github.com/1siamBot/creature-waves/engine/core"
	"github.com/1siamBot/creature-waves/engine/input"
	"github.com/1siamBot/creature-waves/engine/level"
	"github.com/1siamBot/creature-waves/engine/network"
	"github.com/1siamBot/creature-waves/engine/render"
	"github.com/1siamBot/creature-waves/engine/systems"
	"github.com/1siamBot/creature-waves/engine/ui"
)

var backgroundColor = color.RGBA{40, 70, 45, 255}

// noDevLevel starts a normal session driven by the wave scheduler
const noDevLevel = -1

// Game implements ebiten.Game. It owns one world for the whole process and
// swaps a fresh session in every time gameplay starts.
type Game struct {
	cfg    config.Config
	levels *level.Library

	world    *core.World
	loop     *core.GameLoop
	pipeline *systems.Pipeline

	cam      *render.Camera
	renderer *render.WorldRenderer
	input    *input.InputState
	menu     *ui.MenuSystem
	hud      *ui.HUD
	audio    *audio.AudioManager

	// Spectators is nil when the outcome feed is off
	Spectators *network.Hub

	recorder *network.Replay
	playback *network.Replay
	// pinned holds the play area of a recorded or replayed session; the
	// zero value lets the area follow the window
	pinned core.Vec2
	kind   core.AttackKind
	exit   bool
}

// NewGame wires the frontend. sprites may be nil when nothing is drawn and
// out may be nil for a silent game.
func NewGame(cfg config.Config, levels *level.Library, sprites *render.SpriteManager, out audio.Output) (*Game, error) {
	g := &Game{
		cfg:    cfg,
		levels: levels,
		cam:    render.NewCamera(cfg.Window.Width, cfg.Window.Height),
		input:  input.NewInputState(),
		menu:   ui.NewMenuSystem(cfg.Window.Width, cfg.Window.Height),
		hud:    ui.NewHUD(cfg.Window.Width, cfg.Window.Height, cfg.Sim.WaveDuration),
		audio:  audio.NewAudioManager(out, cfg.Audio.Master, cfg.Audio.SFX),
		kind:   cfg.AttackKind(),
	}
	if sprites != nil {
		g.renderer = render.NewWorldRenderer(g.cam, sprites)
	}

	tickRate := cfg.Sim.TickRate
	if cfg.Replay.Play != "" {
		r, err := network.LoadReplay(cfg.Replay.Play)
		if err != nil {
			return nil, fmt.Errorf("replay: %w", err)
		}
		g.playback = r
		tickRate = r.Header.TickRate
		slog.Info("replay loaded", "session", r.Header.SessionID, "commands", len(r.Commands), "seed", r.Header.Seed)
	}

	g.world = core.NewWorld(nil)
	g.pipeline = systems.Install(g.world, levels)
	g.loop = core.NewGameLoop(g.world, tickRate)

	g.menu.OnPlay = func() { g.startSession(noDevLevel) }
	g.menu.OnRestart = func() { g.startSession(noDevLevel) }
	g.menu.OnDevLevel = g.startSession
	g.menu.OnExit = func() { g.exit = true }
	return g, nil
}

// Session returns the running session, or nil outside gameplay
func (g *Game) Session() *core.Session { return g.world.Session }

func (g *Game) seed() uint64 {
	switch {
	case g.playback != nil:
		return g.playback.Header.Seed
	case g.cfg.Sim.Seed != 0:
		return g.cfg.Sim.Seed
	}
	return uint64(time.Now().UnixNano())
}

// startSession enters gameplay with a fresh session. dev selects a single
// level to try with the scheduler off.
func (g *Game) startSession(dev int) {
	g.endSession()

	id := uuid.New()
	seed := g.seed()
	area := g.cam.PlayArea()
	if g.playback != nil {
		area = g.playback.Header.Area
	}
	sess := core.NewSession(id.String(), area, g.cfg.Tuning(), seed)
	sess.DevMode = dev != noDevLevel
	g.world.Reset(sess)
	g.audio.Attach(sess.Bus)
	g.hud.Dev = sess.DevMode

	if sess.DevMode {
		def, err := g.levels.Level(dev)
		if err != nil {
			slog.Error("dev level unavailable", "level", dev, "err", err)
			g.endSession()
			g.menu.Screen = ui.ScreenDev
			return
		}
		n := systems.SpawnLevel(g.world, def, 0)
		slog.Info("dev level started", "level", def.Name, "creatures", n)
	}

	g.pipeline.Attack.Recorder = nil
	g.loop.BeforeTick = nil
	switch {
	case g.playback != nil:
		g.playback.Rewind()
		g.pinned = area
		g.loop.BeforeTick = func(tick uint64) {
			for _, cmd := range g.playback.CommandsForTick(tick) {
				g.pipeline.Attack.Push(cmd.Input())
			}
		}
	case g.cfg.Replay.Record != "" && !sess.DevMode:
		rec, err := network.NewReplayRecorder(g.cfg.Replay.Record, network.Header{
			SessionID: id, Seed: seed, TickRate: g.loop.TickRate, Area: area,
		})
		if err != nil {
			slog.Error("replay recording disabled", "err", err)
			break
		}
		g.recorder = rec
		g.pinned = area
		g.pipeline.Attack.Recorder = func(tick uint64, in core.AttackInput) {
			if err := rec.Record(network.AttackCommand(tick, in)); err != nil {
				slog.Error("replay write failed", "err", err)
			}
		}
	}

	slog.Info("session started", "session", sess.ID, "seed", seed, "dev", sess.DevMode)
	g.menu.Screen = ui.ScreenGameplay
	g.loop.Play()
}

// endSession tears gameplay down: every entity, the scheduler state and
// the replay recorder go with the session
func (g *Game) endSession() {
	if g.recorder != nil {
		if err := g.recorder.Close(); err != nil {
			slog.Error("replay close failed", "err", err)
		}
		g.recorder = nil
	}
	g.pipeline.Attack.Recorder = nil
	g.pinned = core.Zero
	g.loop.Stop()
	g.world.Reset(nil)
	g.hud.Dev = false
}

// step advances gameplay by one frame worth of fixed ticks and reports
// whether the session just ended
func (g *Game) step() bool {
	sess := g.Session()
	if sess == nil {
		return false
	}
	if g.pinned == core.Zero {
		sess.Area = g.cam.PlayArea()
	}
	g.loop.Update()
	g.publish()

	if sess.Outcome.Phase.Terminal() {
		outcome := sess.Outcome
		g.endSession()
		g.menu.ShowScore(outcome)
		return true
	}
	return false
}

func (g *Game) publish() {
	if g.Spectators != nil && g.Session() != nil {
		g.Spectators.Publish(network.SnapshotOf(g.Session()))
	}
}

func (g *Game) Update() error {
	g.input.Update()

	if g.menu.Screen != ui.ScreenGameplay {
		g.menu.LevelNames = g.levelNames()
		g.menu.Update(1.0 / 60)
	} else {
		g.updateGameplay()
	}

	if g.exit {
		g.endSession()
		return ebiten.Termination
	}
	return nil
}

func (g *Game) updateGameplay() {
	switch {
	case g.input.IsKeyJustPressed(ebiten.KeyEscape):
		g.endSession()
		g.menu.Screen = ui.ScreenTitle
		return
	case g.input.DevPortalOpened:
		g.endSession()
		g.menu.Screen = ui.ScreenDev
		return
	case g.input.IsKeyJustPressed(ebiten.KeyM):
		g.audio.Muted = !g.audio.Muted
	case g.input.IsKeyJustPressed(ebiten.KeyH) && g.renderer != nil:
		g.renderer.ShowHitBoxes = !g.renderer.ShowHitBoxes
	}

	if g.playback == nil {
		if in, ok := g.input.Attack(g.cam, g.kind); ok {
			g.pipeline.Attack.Push(in)
		}
	}
	g.step()
}

func (g *Game) levelNames() []string {
	names := make([]string, g.levels.Len())
	for i := range names {
		names[i] = g.levels.Name(i)
		if _, err := g.levels.Level(i); errors.Is(err, level.ErrMalformed) {
			names[i] += " (broken)"
		}
	}
	return names
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.menu.Screen != ui.ScreenGameplay || g.Session() == nil {
		g.menu.Draw(screen)
		return
	}
	screen.Fill(backgroundColor)
	if g.renderer != nil {
		g.renderer.Draw(screen, g.world)
	}
	g.hud.Draw(screen, g.Session().Outcome)
}

// Layout follows the window so the play area is the visible screen
func (g *Game) Layout(outsideW, outsideH int) (int, int) {
	g.cam.SetScreen(outsideW, outsideH)
	g.menu.ScreenW, g.menu.ScreenH = outsideW, outsideH
	g.hud.ScreenW, g.hud.ScreenH = outsideW, outsideH
	return outsideW, outsideH
}
