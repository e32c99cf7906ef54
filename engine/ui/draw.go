package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var (
	menuBG      = color.RGBA{12, 24, 16, 255}
	menuPanel   = color.NRGBA{20, 35, 25, 230}
	menuBorder  = color.RGBA{90, 170, 90, 255}
	menuAccent  = color.RGBA{150, 230, 120, 255}
	menuBtnNorm = color.RGBA{30, 55, 35, 240}
	menuBtnHov  = color.RGBA{45, 85, 50, 255}
	menuText    = color.RGBA{225, 240, 215, 255}
	menuTextDim = color.RGBA{130, 160, 125, 255}
	menuGold    = color.RGBA{255, 200, 50, 255}
	menuRed     = color.RGBA{220, 60, 50, 255}
	menuGreen   = color.RGBA{80, 220, 90, 255}
)

// face is the bitmap font every screen uses
var face = text.NewGoXFace(basicfont.Face7x13)

// drawText draws s with its top-left corner at x, y scaled by size
func drawText(dst *ebiten.Image, s string, x, y, size float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, face, op)
}

// drawTextCentered centers s horizontally on cx
func drawTextCentered(dst *ebiten.Image, s string, cx, y, size float64, clr color.Color) {
	w, _ := text.Measure(s, face, 0)
	drawText(dst, s, cx-w*size/2, y, size, clr)
}

func drawRoundedRect(dst *ebiten.Image, x, y, w, h, r float32, clr color.Color) {
	var p vector.Path
	p.MoveTo(x+r, y)
	p.LineTo(x+w-r, y)
	p.QuadTo(x+w, y, x+w, y+r)
	p.LineTo(x+w, y+h-r)
	p.QuadTo(x+w, y+h, x+w-r, y+h)
	p.LineTo(x+r, y+h)
	p.QuadTo(x, y+h, x, y+h-r)
	p.LineTo(x, y+r)
	p.QuadTo(x, y, x+r, y)
	p.Close()
	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(clr)
	vector.FillPath(dst, &p, nil, op)
}

func drawRoundedRectStroke(dst *ebiten.Image, x, y, w, h, r float32, clr color.Color) {
	var p vector.Path
	p.MoveTo(x+r, y)
	p.LineTo(x+w-r, y)
	p.QuadTo(x+w, y, x+w, y+r)
	p.LineTo(x+w, y+h-r)
	p.QuadTo(x+w, y+h, x+w-r, y+h)
	p.LineTo(x+r, y+h)
	p.QuadTo(x, y+h, x, y+h-r)
	p.LineTo(x, y+r)
	p.QuadTo(x, y, x+r, y)
	p.Close()
	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(clr)
	vector.StrokePath(dst, &p, &vector.StrokeOptions{Width: 1.5}, op)
}
