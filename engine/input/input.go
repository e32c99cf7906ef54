package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/1siamBot/creature-waves/engine/core"
)

// ScreenMapper converts cursor pixels into world coordinates
type ScreenMapper interface {
	ScreenToWorld(sx, sy int) core.Vec2
}

// InputState tracks mouse and keyboard state per frame
type InputState struct {
	// Mouse
	MouseX, MouseY    int
	LeftJustPressed   bool
	RightJustPressed  bool
	MiddleJustPressed bool
	ScrollY           float64

	// Keyboard
	JustPressed []ebiten.Key

	// DevPortalOpened is true on the frame the dev key sequence completed
	DevPortalOpened bool
	portal          DevPortal
}

func NewInputState() *InputState {
	return &InputState{}
}

// Update should be called every frame
func (s *InputState) Update() {
	s.MouseX, s.MouseY = ebiten.CursorPosition()
	s.LeftJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	s.RightJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)
	s.MiddleJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle)
	_, s.ScrollY = ebiten.Wheel()

	s.JustPressed = inpututil.AppendJustPressedKeys(s.JustPressed[:0])
	s.DevPortalOpened = false
	for _, k := range s.JustPressed {
		if s.portal.Key(k) {
			s.DevPortalOpened = true
		}
	}
}

// IsKeyJustPressed returns true if key was just pressed this frame
func (s *InputState) IsKeyJustPressed(key ebiten.Key) bool {
	for _, k := range s.JustPressed {
		if k == key {
			return true
		}
	}
	return false
}

// Cursor returns the cursor position in world coordinates
func (s *InputState) Cursor(m ScreenMapper) core.Vec2 {
	return m.ScreenToWorld(s.MouseX, s.MouseY)
}

// Attack returns the attack issued this frame, if any
func (s *InputState) Attack(m ScreenMapper, kind core.AttackKind) (core.AttackInput, bool) {
	if !s.LeftJustPressed {
		return core.AttackInput{}, false
	}
	return core.AttackInput{Kind: kind, Pos: s.Cursor(m)}, true
}

// PortalPresses is how many D presses in a row open the dev screen
const PortalPresses = 3

// DevPortal counts consecutive presses of the dev key
type DevPortal struct {
	count int
}

// Key feeds one key press and reports whether the sequence completed.
// Any other key restarts the count.
func (p *DevPortal) Key(k ebiten.Key) bool {
	if k != ebiten.KeyD {
		p.count = 0
		return false
	}
	p.count++
	if p.count >= PortalPresses {
		p.count = 0
		return true
	}
	return false
}

// Reset clears a partial sequence
func (p *DevPortal) Reset() { p.count = 0 }
