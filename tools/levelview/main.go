// levelview runs a level headless in the terminal: creatures move and
// bounce exactly as in the game, drawn as letters. No attacks.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/1siamBot/creature-waves/engine/core"
	"github.com/1siamBot/creature-waves/engine/level"
	"github.com/1siamBot/creature-waves/engine/systems"
)

var glyphs = map[core.Species]rune{
	core.Fox:   'F',
	core.Snake: 'S',
	core.Mouse: 'M',
	core.Duck:  'D',
}

var speciesStyles = map[core.Species]tcell.Style{
	core.Fox:   tcell.StyleDefault.Foreground(tcell.ColorOrange),
	core.Snake: tcell.StyleDefault.Foreground(tcell.ColorGreen),
	core.Mouse: tcell.StyleDefault.Foreground(tcell.ColorSilver),
	core.Duck:  tcell.StyleDefault.Foreground(tcell.ColorYellow),
}

// preview owns a dev session and draws it onto a terminal screen
type preview struct {
	screen tcell.Screen
	def    *level.Definition
	area   core.Vec2
	seed   uint64
	world  *core.World
	step   time.Duration
}

func newPreview(screen tcell.Screen, def *level.Definition, area core.Vec2, seed uint64) *preview {
	p := &preview{screen: screen, def: def, area: area, seed: seed, step: time.Second / 60}
	p.world = core.NewWorld(nil)
	systems.Install(p.world, nil)
	p.restart()
	return p
}

// restart respawns the level in a fresh session
func (p *preview) restart() {
	sess := core.NewSession("levelview", p.area, core.DefaultTuning(), p.seed)
	sess.DevMode = true
	p.world.Reset(sess)
	n := systems.SpawnLevel(p.world, p.def, 0)
	slog.Debug("level spawned", "level", p.def.Name, "creatures", n)
}

// cellOf maps a world position onto the terminal grid. Positions outside
// the play area are not drawn.
func (p *preview) cellOf(pos core.Vec2) (int, int, bool) {
	w, h := p.screen.Size()
	h-- // status line
	if w <= 0 || h <= 0 {
		return 0, 0, false
	}
	fx := (pos.X + p.area.X/2) / p.area.X
	fy := (p.area.Y/2 - pos.Y) / p.area.Y
	if fx < 0 || fx >= 1 || fy < 0 || fy >= 1 {
		return 0, 0, false
	}
	return int(fx * float64(w)), int(fy * float64(h)), true
}

func (p *preview) draw() {
	p.screen.Clear()
	p.world.Creatures.Each(func(_ core.EntityID, c *core.Creature) {
		x, y, ok := p.cellOf(c.Pos)
		if !ok {
			return
		}
		r, style := glyphs[c.Species], speciesStyles[c.Species]
		if c.Scale < 0.5 {
			r = unicode.ToLower(r)
		}
		p.screen.SetContent(x, y, r, nil, style)
	})

	w, h := p.screen.Size()
	status := fmt.Sprintf(" %s | creatures %d | tick %d | r restart, q quit ",
		p.def.Name, p.world.Creatures.Len(), p.world.TickCount)
	for i, r := range status {
		if i >= w {
			break
		}
		p.screen.SetContent(i, h-1, r, nil, tcell.StyleDefault.Reverse(true))
	}
	p.screen.Show()
}

// handle reacts to one terminal event and reports whether to keep running
func (p *preview) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case 'r':
				p.restart()
			}
		}
	case *tcell.EventResize:
		p.screen.Sync()
	}
	return true
}

func (p *preview) run() {
	ticker := time.NewTicker(p.step)
	defer ticker.Stop()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := p.screen.PollEvent()
			events <- ev
			if ev == nil {
				return
			}
		}
	}()

	for {
		select {
		case ev := <-events:
			if ev == nil || !p.handle(ev) {
				return
			}
		case <-ticker.C:
			p.world.Tick(p.step)
			p.draw()
		}
	}
}

// loadLevel accepts a level file path or an index into the level library
func loadLevel(arg, dir string) (*level.Definition, error) {
	if strings.HasSuffix(arg, level.FileSuffix) {
		data, err := os.ReadFile(arg)
		if err != nil {
			return nil, err
		}
		return level.Parse(data)
	}
	i, err := strconv.Atoi(arg)
	if err != nil {
		return nil, fmt.Errorf("level %q is neither a %s file nor an index", arg, level.FileSuffix)
	}
	fsys := level.Embedded()
	if dir != "" {
		fsys = os.DirFS(dir)
	}
	lib, err := level.Open(context.Background(), fsys)
	if err != nil {
		return nil, err
	}
	return lib.Level(i)
}

func main() {
	dir := flag.String("levels", "", "level directory, empty for the built-in levels")
	width := flag.Float64("width", 1280, "play area width in world units")
	height := flag.Float64("height", 720, "play area height in world units")
	seed := flag.Uint64("seed", 1, "rng seed for random spawn positions")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: levelview [flags] <file%s | index>\n", level.FileSuffix)
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	def, err := loadLevel(flag.Arg(0), *dir)
	if err != nil {
		slog.Error("cannot load level", "level", flag.Arg(0), "err", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		slog.Error("no terminal", "err", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		slog.Error("no terminal", "err", err)
		os.Exit(1)
	}
	defer screen.Fini()

	newPreview(screen, def, core.Vec2{X: *width, Y: *height}, *seed).run()
}
