package ui

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/1siamBot/creature-waves/engine/core"
)

// Screen is the top level state of the game frontend
type Screen int

const (
	ScreenTitle Screen = iota
	ScreenGameplay
	ScreenScore
	ScreenDev
)

var screenNames = [...]string{"title", "gameplay", "score", "dev"}

func (s Screen) String() string {
	if int(s) < len(screenNames) {
		return screenNames[s]
	}
	return "unknown"
}

// MenuButton represents a clickable menu button
type MenuButton struct {
	X, Y, W, H int
	Text       string
	Disabled   bool
	action     func()
}

func (b MenuButton) contains(mx, my int) bool {
	return mx >= b.X && mx < b.X+b.W && my >= b.Y && my < b.Y+b.H
}

// MenuSystem draws the Title, Score and Dev screens and routes their clicks
type MenuSystem struct {
	Screen  Screen
	ScreenW int
	ScreenH int
	Tick    float64

	// Outcome is shown on the Score screen
	Outcome core.Outcome
	// LevelNames fills the Dev screen, one button per level
	LevelNames []string

	hoverIdx int

	// Callbacks
	OnPlay     func()
	OnDevLevel func(i int)
	OnRestart  func()
	OnMenu     func()
	OnExit     func()
}

func NewMenuSystem(screenW, screenH int) *MenuSystem {
	return &MenuSystem{
		Screen:   ScreenTitle,
		ScreenW:  screenW,
		ScreenH:  screenH,
		hoverIdx: -1,
	}
}

// ScoreMessage is the headline of the Score screen
func ScoreMessage(o core.Outcome) string {
	if o.Win {
		return "You've cleared all waves. Congratulations!"
	}
	return fmt.Sprintf("You've reached wave %d. Try again!", o.Wave)
}

// ShowScore switches to the Score screen for a finished session
func (m *MenuSystem) ShowScore(o core.Outcome) {
	m.Outcome = o
	m.Screen = ScreenScore
}

// Update tracks the hover state and fires the button under a fresh click
func (m *MenuSystem) Update(dt float64) {
	m.Tick += dt
	mx, my := ebiten.CursorPosition()
	m.hoverIdx = m.buttonAt(mx, my)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		m.Click(mx, my)
	}
}

// Click presses the button at mx, my and reports whether one was hit
func (m *MenuSystem) Click(mx, my int) bool {
	i := m.buttonAt(mx, my)
	if i < 0 {
		return false
	}
	if a := m.Buttons()[i].action; a != nil {
		a()
	}
	return true
}

func (m *MenuSystem) buttonAt(mx, my int) int {
	for i, b := range m.Buttons() {
		if !b.Disabled && b.contains(mx, my) {
			return i
		}
	}
	return -1
}

// Buttons lays out the buttons of the current screen
func (m *MenuSystem) Buttons() []MenuButton {
	switch m.Screen {
	case ScreenTitle:
		return m.column(m.ScreenH/2-20, []string{"PLAY", "DEV", "EXIT"}, []func(){
			m.play, m.openDev, m.exit,
		})
	case ScreenScore:
		return m.column(m.ScreenH/2+40, []string{"RESTART", "MENU", "EXIT"}, []func(){
			m.restart, m.menu, m.exit,
		})
	case ScreenDev:
		names := make([]string, 0, len(m.LevelNames)+1)
		actions := make([]func(), 0, len(m.LevelNames)+1)
		for i, n := range m.LevelNames {
			names = append(names, fmt.Sprintf("%d. %s", i+1, n))
			actions = append(actions, func() { m.devLevel(i) })
		}
		names = append(names, "BACK")
		actions = append(actions, m.menu)
		return m.column(120, names, actions)
	}
	return nil
}

func (m *MenuSystem) column(startY int, names []string, actions []func()) []MenuButton {
	cx := m.ScreenW / 2
	bw, bh, gap := 260, 40, 8
	buttons := make([]MenuButton, len(names))
	for i, name := range names {
		buttons[i] = MenuButton{
			X: cx - bw/2, Y: startY + i*(bh+gap),
			W: bw, H: bh, Text: name, action: actions[i],
		}
	}
	return buttons
}

func (m *MenuSystem) play() {
	m.Screen = ScreenGameplay
	if m.OnPlay != nil {
		m.OnPlay()
	}
}

func (m *MenuSystem) openDev() { m.Screen = ScreenDev }

func (m *MenuSystem) devLevel(i int) {
	m.Screen = ScreenGameplay
	if m.OnDevLevel != nil {
		m.OnDevLevel(i)
	}
}

func (m *MenuSystem) restart() {
	m.Screen = ScreenGameplay
	if m.OnRestart != nil {
		m.OnRestart()
	}
}

func (m *MenuSystem) menu() {
	m.Screen = ScreenTitle
	if m.OnMenu != nil {
		m.OnMenu()
	}
}

func (m *MenuSystem) exit() {
	if m.OnExit != nil {
		m.OnExit()
	}
}

func (m *MenuSystem) Draw(screen *ebiten.Image) {
	switch m.Screen {
	case ScreenTitle:
		screen.Fill(menuBG)
		m.drawAnimatedBG(screen)
		m.drawTitle(screen)
	case ScreenScore:
		m.drawScore(screen)
	case ScreenDev:
		screen.Fill(menuBG)
		m.drawAnimatedBG(screen)
		drawTextCentered(screen, "DEV MODE", float64(m.ScreenW)/2, 50, 2, menuGold)
		drawTextCentered(screen, "waves are off; pick a level", float64(m.ScreenW)/2, 85, 1, menuTextDim)
	default:
		return
	}
	for i, b := range m.Buttons() {
		m.drawMenuButton(screen, b, i == m.hoverIdx)
	}
}

// ==================== TITLE ====================

func (m *MenuSystem) drawTitle(screen *ebiten.Image) {
	cx := float64(m.ScreenW) / 2
	title := "CREATURE WAVES"

	pulse := 0.7 + 0.3*math.Sin(m.Tick*2)
	drawRoundedRect(screen, float32(cx-180), 60, 360, 80, 8,
		color.NRGBA{60, 140, 60, uint8(60 * pulse)})

	ty := 78.0
	drawTextCentered(screen, title, cx, ty, 3, menuAccent)
	lineY := float32(ty + 44)
	vector.DrawFilledRect(screen, float32(cx-120), lineY, 240, 2, menuAccent, false)
	drawTextCentered(screen, "click the creatures before the wave runs out", cx, ty+52, 1, menuTextDim)
}

func (m *MenuSystem) drawAnimatedBG(screen *ebiten.Image) {
	t := m.Tick
	for i := 0; i < 30; i++ {
		px := float32(math.Mod(float64(i)*43.7+t*10+float64(i*i)*0.3, float64(m.ScreenW)))
		py := float32(math.Mod(float64(i)*67.3+t*5+float64(i)*1.7, float64(m.ScreenH)))
		alpha := uint8(30 + 20*math.Sin(t*2+float64(i)))
		vector.DrawFilledCircle(screen, px, py, 2, color.NRGBA{150, 230, 120, alpha}, false)
	}
}

// ==================== SCORE ====================

func (m *MenuSystem) drawScore(screen *ebiten.Image) {
	screen.Fill(menuBG)

	cx := m.ScreenW / 2
	cy := m.ScreenH / 2
	panelW, panelH := 460, 300
	px := float32(cx - panelW/2)
	py := float32(cy - panelH/2 - 40)
	drawRoundedRect(screen, px, py, float32(panelW), float32(panelH), 12, menuPanel)
	drawRoundedRectStroke(screen, px, py, float32(panelW), float32(panelH), 12, menuBorder)

	resultText, resultClr := "DEFEAT", menuRed
	if m.Outcome.Win {
		resultText, resultClr = "VICTORY", menuGreen
	}
	ty := float64(py) + 24
	drawTextCentered(screen, resultText, float64(cx), ty, 2, resultClr)
	vector.DrawFilledRect(screen, float32(cx-60), float32(ty+30), 120, 3, resultClr, false)

	drawTextCentered(screen, ScoreMessage(m.Outcome), float64(cx), ty+48, 1, menuText)
	stats := []string{
		fmt.Sprintf("Score: %d", m.Outcome.Score),
		fmt.Sprintf("Kills: %d", m.Outcome.Kills),
	}
	for i, line := range stats {
		drawTextCentered(screen, line, float64(cx), ty+76+float64(i)*20, 1, menuTextDim)
	}
}

// ==================== DRAWING HELPERS ====================

func (m *MenuSystem) drawMenuButton(screen *ebiten.Image, b MenuButton, hovered bool) {
	clr := menuBtnNorm
	if hovered {
		clr = menuBtnHov
	}
	drawRoundedRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 6, clr)

	borderClr := color.Color(color.RGBA{50, 100, 60, 200})
	if hovered {
		borderClr = menuAccent
	}
	drawRoundedRectStroke(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 6, borderClr)

	textClr := menuText
	if b.Disabled {
		textClr = menuTextDim
	}
	drawTextCentered(screen, b.Text, float64(b.X+b.W/2), float64(b.Y+b.H/2-7), 1, textClr)
}
