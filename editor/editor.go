package editor

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"github.com/1siamBot/creature-waves/engine/core"
	"github.com/1siamBot/creature-waves/engine/level"
)

// Action represents an undoable editor action: inserting or removing one
// creature at Index
type Action struct {
	Index    int
	Creature level.CreatureDef
	Insert   bool
}

// Editor holds level editor state
type Editor struct {
	Level     *level.Definition
	Species   core.Species
	Pattern   string
	Wrap      bool
	MaxSpeed  float64
	UndoStack []Action
	RedoStack []Action
	FilePath  string
	Modified  bool
	// PickRadius is how far from a creature a removal click may land
	PickRadius float64
}

var patterns = []string{level.KindConstant, level.KindPeriodic, level.KindCircle}

// NewEditor creates an editor on an empty level
func NewEditor(name string) *Editor {
	return &Editor{
		Level:      &level.Definition{Name: name},
		Species:    core.Duck,
		Pattern:    level.KindConstant,
		MaxSpeed:   120,
		PickRadius: 64,
	}
}

// Brush returns the creature definition a placement at pos would add
func (e *Editor) Brush(pos core.Vec2) level.CreatureDef {
	c := level.CreatureDef{
		Image:    e.Species.String(),
		MaxSpeed: e.MaxSpeed,
		Pos:      []float64{pos.X, pos.Y},
		Wrap:     e.Wrap,
	}
	switch e.Pattern {
	case level.KindPeriodic:
		c.Movement = level.MotionDef{Kind: level.KindPeriodic, DurationMs: 2000, MaxSpeed: []float64{1, 0.5}}
	case level.KindCircle:
		c.Movement = level.MotionDef{Kind: level.KindCircle, DurationMs: 2000, Radius: 1}
	default:
		c.Movement = level.MotionDef{Kind: level.KindConstant, Speed: []float64{1, 0}}
	}
	return c
}

// Place adds a creature built from the current brush at pos
func (e *Editor) Place(pos core.Vec2) {
	e.do(Action{Index: len(e.Level.Creatures), Creature: e.Brush(pos), Insert: true})
}

// Nearest returns the index of the placed creature closest to pos within
// PickRadius, or -1
func (e *Editor) Nearest(pos core.Vec2) int {
	best, bestDist := -1, e.PickRadius
	for i := range e.Level.Creatures {
		p, ok := e.Level.Creatures[i].Position()
		if !ok {
			continue
		}
		if d := p.Sub(pos).Len(); d <= bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// RemoveNearest deletes the creature closest to pos and reports whether one
// was in reach
func (e *Editor) RemoveNearest(pos core.Vec2) bool {
	i := e.Nearest(pos)
	if i < 0 {
		return false
	}
	e.do(Action{Index: i, Creature: e.Level.Creatures[i], Insert: false})
	return true
}

func (e *Editor) do(a Action) {
	e.apply(a, false)
	e.UndoStack = append(e.UndoStack, a)
	e.RedoStack = nil
	e.Modified = true
}

// apply runs a forward, or its inverse when undo is set
func (e *Editor) apply(a Action, undo bool) {
	cs := e.Level.Creatures
	if a.Insert != undo {
		cs = append(cs, level.CreatureDef{})
		copy(cs[a.Index+1:], cs[a.Index:])
		cs[a.Index] = a.Creature
	} else {
		cs = append(cs[:a.Index], cs[a.Index+1:]...)
	}
	e.Level.Creatures = cs
}

// Undo reverts the last action
func (e *Editor) Undo() {
	if len(e.UndoStack) == 0 {
		return
	}
	a := e.UndoStack[len(e.UndoStack)-1]
	e.UndoStack = e.UndoStack[:len(e.UndoStack)-1]
	e.apply(a, true)
	e.RedoStack = append(e.RedoStack, a)
	e.Modified = true
}

// Redo re-applies the last undone action
func (e *Editor) Redo() {
	if len(e.RedoStack) == 0 {
		return
	}
	a := e.RedoStack[len(e.RedoStack)-1]
	e.RedoStack = e.RedoStack[:len(e.RedoStack)-1]
	e.apply(a, false)
	e.UndoStack = append(e.UndoStack, a)
	e.Modified = true
}

// CycleSpecies selects the next creature image
func (e *Editor) CycleSpecies() {
	all := core.AllSpecies()
	e.Species = all[(int(e.Species)+1)%len(all)]
}

// CyclePattern selects the next motion pattern
func (e *Editor) CyclePattern() {
	for i, p := range patterns {
		if p == e.Pattern {
			e.Pattern = patterns[(i+1)%len(patterns)]
			return
		}
	}
	e.Pattern = patterns[0]
}

// ToggleBoundary switches between bounce and wrap
func (e *Editor) ToggleBoundary() { e.Wrap = !e.Wrap }

// AdjustSpeed changes the brush speed, never below zero
func (e *Editor) AdjustSpeed(delta float64) {
	e.MaxSpeed = math.Max(0, e.MaxSpeed+delta)
}

// LoadLevel loads a level file
func (e *Editor) LoadLevel(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load level: %w", err)
	}
	def, err := level.Parse(data)
	if err != nil {
		return fmt.Errorf("load level %s: %w", path, err)
	}
	e.Level = def
	e.FilePath = path
	e.Modified = false
	e.UndoStack = nil
	e.RedoStack = nil
	return nil
}

// SaveLevel validates and writes the current level
func (e *Editor) SaveLevel(path string) error {
	if path == "" {
		path = e.FilePath
	}
	if path == "" {
		path = "untitled" + level.FileSuffix
	}
	if err := e.Level.Validate(); err != nil {
		return fmt.Errorf("save level: %w: %v", level.ErrMalformed, err)
	}
	var buf bytes.Buffer
	if err := level.Encode(&buf, e.Level); err != nil {
		return fmt.Errorf("save level: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("save level: %w", err)
	}
	e.FilePath = path
	e.Modified = false
	return nil
}

// NewLevel starts over with an empty level
func (e *Editor) NewLevel(name string) {
	e.Level = &level.Definition{Name: name}
	e.FilePath = ""
	e.Modified = false
	e.UndoStack = nil
	e.RedoStack = nil
}
