package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/1siamBot/creature-waves/editor"
	"github.com/1siamBot/creature-waves/engine/core"
	"github.com/1siamBot/creature-waves/engine/input"
	"github.com/1siamBot/creature-waves/engine/render"
	"github.com/1siamBot/creature-waves/engine/systems"
)

const (
	ScreenWidth  = 1280
	ScreenHeight = 720
)

// playtest is a throwaway dev session running the level being edited
type playtest struct {
	world    *core.World
	loop     *core.GameLoop
	pipeline *systems.Pipeline
}

type EditorApp struct {
	editor   *editor.Editor
	cam      *render.Camera
	renderer *render.WorldRenderer
	input    *input.InputState
	hover    core.Vec2
	status   string

	test *playtest
}

func NewEditorApp(path string) *EditorApp {
	cam := render.NewCamera(ScreenWidth, ScreenHeight)
	a := &EditorApp{
		editor:   editor.NewEditor("Untitled"),
		cam:      cam,
		renderer: render.NewWorldRenderer(cam, render.NewSpriteManager()),
		input:    input.NewInputState(),
	}
	a.renderer.ShowHitBoxes = true

	if path != "" {
		if err := a.editor.LoadLevel(path); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				slog.Error("failed to load level", "path", path, "err", err)
			}
			a.editor.FilePath = path
		}
	}
	return a
}

func (a *EditorApp) Update() error {
	a.input.Update()
	a.hover = a.input.Cursor(a.cam)

	if a.input.ScrollY != 0 {
		a.cam.ZoomAt(a.input.ScrollY*0.1, a.input.MouseX, a.input.MouseY)
	}
	speed := 8.0
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		a.cam.Pan(0, -speed)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		a.cam.Pan(0, speed)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		a.cam.Pan(-speed, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		a.cam.Pan(speed, 0)
	}

	if a.input.IsKeyJustPressed(ebiten.KeyP) {
		a.togglePlaytest()
	}
	if a.test != nil {
		if in, ok := a.input.Attack(a.cam, core.AttackClick); ok {
			a.test.pipeline.Attack.Push(in)
		}
		a.test.world.Session.Area = a.cam.PlayArea()
		a.test.loop.Update()
		return nil
	}

	a.updateEditing()
	return nil
}

func (a *EditorApp) updateEditing() {
	e := a.editor
	if a.input.IsKeyJustPressed(ebiten.KeyTab) {
		e.CycleSpecies()
	}
	if a.input.IsKeyJustPressed(ebiten.KeyM) {
		e.CyclePattern()
	}
	if a.input.IsKeyJustPressed(ebiten.KeyB) {
		e.ToggleBoundary()
	}
	if a.input.IsKeyJustPressed(ebiten.KeyEqual) {
		e.AdjustSpeed(20)
	}
	if a.input.IsKeyJustPressed(ebiten.KeyMinus) {
		e.AdjustSpeed(-20)
	}

	if a.input.LeftJustPressed {
		e.Place(a.hover)
	}
	if a.input.RightJustPressed {
		e.RemoveNearest(a.hover)
	}

	// Undo/Redo (Ctrl+Z / Ctrl+Shift+Z)
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl)
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	if ctrl && a.input.IsKeyJustPressed(ebiten.KeyZ) {
		if shift {
			e.Redo()
		} else {
			e.Undo()
		}
	}

	// Save (Ctrl+S)
	if ctrl && a.input.IsKeyJustPressed(ebiten.KeyS) {
		if err := e.SaveLevel(""); err != nil {
			slog.Error("save failed", "err", err)
			a.status = "save failed: " + err.Error()
		} else {
			slog.Info("level saved", "path", e.FilePath)
			a.status = "saved " + e.FilePath
		}
	}
}

func (a *EditorApp) togglePlaytest() {
	if a.test != nil {
		a.test = nil
		a.status = ""
		return
	}
	sess := core.NewSession("playtest", a.cam.PlayArea(), core.DefaultTuning(), 1)
	sess.DevMode = true
	w := core.NewWorld(sess)
	p := systems.Install(w, nil)
	n := systems.SpawnLevel(w, a.editor.Level, 0)
	loop := core.NewGameLoop(w, 60)
	loop.Play()
	a.test = &playtest{world: w, loop: loop, pipeline: p}
	a.status = fmt.Sprintf("playtest: %d creatures, P to stop", n)
}

func (a *EditorApp) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{30, 40, 30, 255})
	a.drawPlayArea(screen)

	if a.test != nil {
		a.renderer.Draw(screen, a.test.world)
	} else {
		for i := range a.editor.Level.Creatures {
			a.drawPlaced(screen, i)
		}
		hx, hy := a.cam.WorldToScreen(a.hover)
		vector.StrokeCircle(screen, float32(hx), float32(hy), float32(a.editor.PickRadius*a.cam.Zoom), 1, color.RGBA{255, 255, 0, 120}, false)
	}

	a.drawSidebar(screen)

	info := fmt.Sprintf("Level Editor | (%.0f, %.0f) | [LMB]Place [RMB]Remove [Tab]Species [M]Movement [B]Boundary [+/-]Speed [P]Playtest [Ctrl+Z]Undo [Ctrl+S]Save",
		a.hover.X, a.hover.Y)
	ebitenutil.DebugPrintAt(screen, info, 5, ScreenHeight-20)
}

// drawPlayArea outlines the spawn area of a default sized window
func (a *EditorApp) drawPlayArea(screen *ebiten.Image) {
	half := core.Vec2{X: ScreenWidth, Y: ScreenHeight}.Sub(core.Splat(core.DefaultTuning().SpawnMargin)).Scale(0.5)
	x0, y0 := a.cam.WorldToScreen(core.Vec2{X: -half.X, Y: half.Y})
	x1, y1 := a.cam.WorldToScreen(core.Vec2{X: half.X, Y: -half.Y})
	vector.StrokeRect(screen, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0), 1, color.RGBA{120, 160, 120, 160}, false)
}

func (a *EditorApp) drawPlaced(screen *ebiten.Image, i int) {
	cd := &a.editor.Level.Creatures[i]
	sp, err := cd.Species()
	if err != nil {
		return
	}
	pos, _ := cd.Position()
	c := core.Creature{Species: sp, Pos: pos, Scale: 1, Movement: core.NewMovementController(cd.MaxSpeed)}
	a.renderer.DrawCreature(screen, &c)

	sx, sy := a.cam.WorldToScreen(pos)
	label := fmt.Sprintf("%s %s %.0f", cd.Movement.Kind, cd.Boundary(), cd.MaxSpeed)
	ebitenutil.DebugPrintAt(screen, label, int(sx)-len(label)*3, int(sy)+int(core.DisplayedSize*a.cam.Zoom/2))
}

func (a *EditorApp) drawSidebar(screen *ebiten.Image) {
	sx := float32(ScreenWidth - 200)
	vector.DrawFilledRect(screen, sx, 0, 200, float32(ScreenHeight), color.RGBA{20, 30, 20, 220}, false)

	e := a.editor
	brush := e.Brush(core.Zero)
	lines := []string{
		"=== LEVEL ===",
		e.Level.Name,
		fmt.Sprintf("creatures: %d", len(e.Level.Creatures)),
		"",
		"=== BRUSH ===",
		"species:  " + e.Species.String(),
		"movement: " + e.Pattern,
		fmt.Sprintf("boundary: %s", brush.Boundary()),
		fmt.Sprintf("speed:    %.0f", e.MaxSpeed),
	}
	y := 10
	for _, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, int(sx)+10, y)
		y += 18
	}
	if e.Modified {
		ebitenutil.DebugPrintAt(screen, "* MODIFIED *", int(sx)+10, y+20)
	}
	if a.status != "" {
		ebitenutil.DebugPrintAt(screen, a.status, int(sx)+10, y+40)
	}
}

func (a *EditorApp) Layout(w, h int) (int, int) {
	a.cam.SetScreen(ScreenWidth, ScreenHeight)
	return ScreenWidth, ScreenHeight
}

func main() {
	logLevel := flag.String("log-level", "info", "debug, info, warn or error")
	flag.Parse()

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))

	ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	ebiten.SetWindowTitle("Creature Waves Level Editor")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	app := NewEditorApp(flag.Arg(0))
	if err := ebiten.RunGame(app); err != nil {
		slog.Error("editor stopped", "err", err)
		os.Exit(1)
	}
}
