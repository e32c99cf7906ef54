package ui

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/1siamBot/creature-waves/engine/core"
)

// HUD is the gameplay heads-up display
type HUD struct {
	ScreenW, ScreenH int
	TopBarHeight     int
	// Dev marks sessions started from the Dev screen
	Dev bool
	// WaveDuration is the full wave length the timer bar is scaled to
	WaveDuration time.Duration
}

func NewHUD(sw, sh int, waveDuration time.Duration) *HUD {
	return &HUD{
		ScreenW:      sw,
		ScreenH:      sh,
		TopBarHeight: 30,
		WaveDuration: waveDuration,
	}
}

// Lines returns the text shown on the top bar
func (h *HUD) Lines(o core.Outcome) []string {
	if h.Dev {
		return []string{
			"DEV",
			fmt.Sprintf("Alive: %d", o.Alive),
			fmt.Sprintf("Kills: %d", o.Kills),
		}
	}
	return []string{
		fmt.Sprintf("Score: %d", o.Score),
		fmt.Sprintf("Wave: %d", o.Wave),
		fmt.Sprintf("Time: %s", formatRemaining(o.WaveRemaining)),
		fmt.Sprintf("Alive: %d", o.Alive),
		fmt.Sprintf("Kills: %d", o.Kills),
	}
}

// formatRemaining rounds up to whole seconds so the bar reads 0 only at the end
func formatRemaining(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	return fmt.Sprintf("%ds", int(math.Ceil(d.Seconds())))
}

// Draw renders the HUD
func (h *HUD) Draw(screen *ebiten.Image, o core.Outcome) {
	vector.DrawFilledRect(screen, 0, 0, float32(h.ScreenW), float32(h.TopBarHeight), color.NRGBA{0, 0, 0, 160}, false)

	x := 10.0
	for i, line := range h.Lines(o) {
		clr := menuText
		if i == 0 && h.Dev {
			clr = menuGold
		}
		drawText(screen, line, x, 8, 1, clr)
		x += float64(len(line)*7) + 24
	}

	// wave timer bar under the top bar
	if !h.Dev && o.WaveRemaining > 0 && h.WaveDuration > 0 {
		frac := float32(min(o.WaveRemaining.Seconds()/h.WaveDuration.Seconds(), 1))
		clr := menuGreen
		if frac < 0.25 {
			clr = menuRed
		}
		vector.DrawFilledRect(screen, 0, float32(h.TopBarHeight), float32(h.ScreenW)*frac, 3, clr, false)
	}
}
