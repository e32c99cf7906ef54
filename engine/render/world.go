package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/1siamBot/creature-waves/engine/core"
)

var (
	attackColor = color.NRGBA{250, 250, 250, 255}
	dustColor   = color.NRGBA{200, 180, 150, 255}
	boxColor    = color.NRGBA{255, 60, 60, 160}
)

// WorldRenderer draws creatures, attacks and dust through a camera
type WorldRenderer struct {
	Cam     *Camera
	Sprites *SpriteManager
	// ShowHitBoxes outlines every alive creature's hit box
	ShowHitBoxes bool
}

func NewWorldRenderer(cam *Camera, sprites *SpriteManager) *WorldRenderer {
	return &WorldRenderer{Cam: cam, Sprites: sprites}
}

// Draw renders the whole world
func (r *WorldRenderer) Draw(screen *ebiten.Image, w *core.World) {
	w.Dust.Each(func(_ core.EntityID, d *core.Dust) { r.drawDust(screen, d) })
	w.Creatures.Each(func(_ core.EntityID, c *core.Creature) { r.DrawCreature(screen, c) })
	w.Attacks.Each(func(_ core.EntityID, a *core.Attack) { r.drawAttack(screen, a) })
}

// DrawCreature draws one creature with its current frame, scale and spin
func (r *WorldRenderer) DrawCreature(screen *ebiten.Image, c *core.Creature) {
	atlas, ok := r.Sprites.Atlases[c.Species]
	if !ok {
		return
	}
	frame := atlas.Frame(c.Frame)

	sx, sy := r.Cam.WorldToScreen(c.Pos)
	scale := c.Species.DefaultScale() * c.Scale * r.Cam.Zoom
	fx, fy := scale, scale
	if c.Death != nil {
		// fake a 3D tumble by squashing each axis
		fx *= math.Cos(c.Death.RotY)
		fy *= math.Cos(c.Death.RotX)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(atlas.FrameW)/2, -float64(atlas.FrameH)/2)
	// sprites face the direction they move in
	if c.Movement.Velocity().X < 0 {
		op.GeoM.Scale(-1, 1)
	}
	op.GeoM.Scale(fx, fy)
	op.GeoM.Translate(sx, sy)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(frame, op)

	if r.ShowHitBoxes && c.Alive() {
		box := c.HitBox()
		x0, y0 := r.Cam.WorldToScreen(box.Center.Sub(box.Half.Mul(core.Vec2{X: 1, Y: -1})))
		bw := box.Half.X * 2 * r.Cam.Zoom
		bh := box.Half.Y * 2 * r.Cam.Zoom
		vector.StrokeRect(screen, float32(x0), float32(y0), float32(bw), float32(bh), 1, boxColor, false)
	}
}

func (r *WorldRenderer) drawAttack(screen *ebiten.Image, a *core.Attack) {
	if a.Kind == core.AttackClick {
		return
	}
	sx, sy := r.Cam.WorldToScreen(a.Pos)
	clr := attackColor
	radius := float32(8 * r.Cam.Zoom)
	if a.Phase == core.Falling {
		fade := a.Timer.FractionRemaining()
		clr.A = uint8(255 * fade)
		radius *= float32(0.5 + 0.5*fade)
	}
	vector.DrawFilledCircle(screen, float32(sx), float32(sy), radius, clr, true)
}

func (r *WorldRenderer) drawDust(screen *ebiten.Image, d *core.Dust) {
	sx, sy := r.Cam.WorldToScreen(d.Pos)
	clr := dustColor
	clr.A = uint8(255 * d.Alpha())
	vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(6*r.Cam.Zoom), clr, true)
}
