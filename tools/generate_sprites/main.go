// generate_sprites paints the creature sprite atlases the game loads from
// assets/creatures. Each atlas matches the frame grid of its species; the
// last frames hold the shot pose.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/1siamBot/creature-waves/engine/core"
)

// frame is one cell of an atlas. Painters work in a 64×64 design grid that
// u scales to the real frame size.
type frame struct {
	img    *image.RGBA
	ox, oy float64
	u      float64
	phase  float64 // 0..1 through the animation loop
	shot   bool
	seed   float64
}

func (f *frame) p(x, y float64) (int, int) {
	return int(f.ox + x*f.u), int(f.oy + y*f.u)
}

func (f *frame) n(v float64) int { return max(int(v*f.u), 1) }

type painter func(f *frame)

var painters = map[core.Species]painter{
	core.Fox:   paintFox,
	core.Snake: paintSnake,
	core.Mouse: paintMouse,
	core.Duck:  paintDuck,
}

var (
	foxMat   = Material{BaseColor: color.RGBA{225, 115, 40, 255}, Roughness: 0.8, AO: 0.6}
	snakeMat = Material{BaseColor: color.RGBA{70, 165, 70, 255}, Roughness: 0.35, AO: 0.4}
	mouseMat = Material{BaseColor: color.RGBA{160, 160, 172, 255}, Roughness: 0.85, AO: 0.6}
	duckMat  = Material{BaseColor: color.RGBA{240, 210, 60, 255}, Roughness: 0.7, AO: 0.5}

	white = color.RGBA{245, 245, 240, 255}
	black = color.RGBA{15, 15, 15, 255}
	beak  = color.RGBA{240, 140, 30, 255}
	pink  = color.RGBA{230, 150, 160, 255}
)

// isShot mirrors the atlas layout the game expects: a whole second row,
// or the last column of a single row atlas
func isShot(i, cols, rows int) bool {
	return i >= cols*(rows-1) && (rows > 1 || i == cols-1)
}

// Atlas paints every frame of a species atlas
func Atlas(sp core.Species, seed float64) *image.RGBA {
	cols, rows := sp.Atlas()
	w, h := sp.ImageSize()
	img := image.NewRGBA(image.Rect(0, 0, cols*w, rows*h))
	paint := painters[sp]

	alive := cols
	if rows == 1 {
		alive = cols - 1
	}
	for i := 0; i < cols*rows; i++ {
		f := &frame{
			img:  img,
			ox:   float64((i % cols) * w),
			oy:   float64((i / cols) * h),
			u:    float64(w) / 64,
			shot: isShot(i, cols, rows),
			seed: seed,
		}
		f.phase = float64(i%cols) / float64(max(alive, 1))
		paint(f)
	}
	return img
}

func eyes(f *frame, lx, rx, y, r float64) {
	for _, x := range []float64{lx, rx} {
		cx, cy := f.p(x, y)
		if f.shot {
			a, b := f.p(x-r, y-r)
			c, d := f.p(x+r, y+r)
			thickLine(f.img, a, b, c, d, float64(f.n(r*0.5)), black)
			a, b = f.p(x-r, y+r)
			c, d = f.p(x+r, y-r)
			thickLine(f.img, a, b, c, d, float64(f.n(r*0.5)), black)
			continue
		}
		fCircle(f.img, cx, cy, f.n(r), white)
		fCircle(f.img, cx, cy, f.n(r*0.55), black)
	}
}

func shadow(f *frame) {
	x, y := f.p(32, 56)
	drawSoftShadow(f.img, x, y, f.n(14), f.n(3), 0.35)
}

func paintFox(f *frame) {
	shadow(f)
	bob := math.Sin(f.phase*2*math.Pi) * 1.5
	// tail
	tx0, ty0 := f.p(44, 40+bob)
	tx1, ty1 := f.p(58, 28+bob)
	thickLine(f.img, tx0, ty0, tx1, ty1, float64(f.n(6)), foxMat.BaseColor)
	tx, ty := f.p(58, 28+bob)
	fCircle(f.img, tx, ty, f.n(3), white)
	// body and head
	bx, by := f.p(36, 40+bob)
	shadedEllipse(f.img, bx, by, f.n(14), f.n(10), foxMat, f.seed)
	hx, hy := f.p(24, 26+bob)
	shadedEllipse(f.img, hx, hy, f.n(11), f.n(10), foxMat, f.seed+1)
	// ears
	for _, ex := range []float64{16, 30} {
		a, b := f.p(ex-4, 19+bob)
		c, d := f.p(ex+4, 19+bob)
		g, h := f.p(ex, 8+bob)
		fTriangle(f.img, a, b, c, d, g, h, darken(foxMat.BaseColor, 0.2))
	}
	mx, my := f.p(24, 32+bob)
	fCircle(f.img, mx, my, f.n(4), white)
	nx, ny := f.p(24, 30+bob)
	fCircle(f.img, nx, ny, f.n(1.5), black)
	eyes(f, 20, 28, 24+bob, 2.5)
}

func paintSnake(f *frame) {
	shadow(f)
	wave := f.phase * 2 * math.Pi
	const segments = 10
	var px, py int
	for i := 0; i <= segments; i++ {
		t := float64(i) / segments
		x := 54 - t*38
		y := 46 + math.Sin(t*3*math.Pi+wave)*6
		cx, cy := f.p(x, y)
		if i > 0 {
			thickLine(f.img, px, py, cx, cy, float64(f.n(7-t*2)), snakeMat.BaseColor)
		}
		px, py = cx, cy
	}
	hx, hy := f.p(16, 30)
	shadedEllipse(f.img, hx, hy, f.n(10), f.n(8), snakeMat, f.seed)
	// neck joins the head to the body
	nx, ny := f.p(16, 38)
	thickLine(f.img, nx, ny, px, py, float64(f.n(6)), snakeMat.BaseColor)
	if !f.shot {
		tx0, ty0 := f.p(8, 34)
		tx1, ty1 := f.p(3, 37)
		thickLine(f.img, tx0, ty0, tx1, ty1, float64(f.n(1)), color.RGBA{200, 30, 40, 255})
	}
	eyes(f, 13, 20, 27, 2.2)
}

func paintMouse(f *frame) {
	shadow(f)
	bob := math.Sin(f.phase*2*math.Pi) * 1
	tx0, ty0 := f.p(46, 46)
	tx1, ty1 := f.p(60, 36+bob)
	thickLine(f.img, tx0, ty0, tx1, ty1, float64(f.n(1.5)), pink)
	bx, by := f.p(36, 42+bob)
	shadedEllipse(f.img, bx, by, f.n(13), f.n(10), mouseMat, f.seed)
	for _, ex := range []float64{14, 30} {
		ox, oy := f.p(ex, 16+bob)
		fCircle(f.img, ox, oy, f.n(7), darken(mouseMat.BaseColor, 0.15))
		fCircle(f.img, ox, oy, f.n(4.5), pink)
	}
	hx, hy := f.p(22, 28+bob)
	shadedEllipse(f.img, hx, hy, f.n(10), f.n(9), mouseMat, f.seed+1)
	nx, ny := f.p(14, 31+bob)
	fCircle(f.img, nx, ny, f.n(2), pink)
	eyes(f, 18, 26, 25+bob, 2.2)
}

func paintDuck(f *frame) {
	shadow(f)
	flap := math.Sin(f.phase * 2 * math.Pi)
	bx, by := f.p(34, 40)
	shadedEllipse(f.img, bx, by, f.n(16), f.n(11), duckMat, f.seed)
	// wing
	wx0, wy0 := f.p(30, 38)
	wx1, wy1 := f.p(48, 38)
	wx2, wy2 := f.p(42, 30-flap*8)
	fTriangle(f.img, wx0, wy0, wx1, wy1, wx2, wy2, darken(duckMat.BaseColor, 0.2))
	hx, hy := f.p(22, 24)
	shadedEllipse(f.img, hx, hy, f.n(10), f.n(10), duckMat, f.seed+1)
	b0x, b0y := f.p(12, 22)
	b1x, b1y := f.p(12, 30)
	b2x, b2y := f.p(2, 27)
	fTriangle(f.img, b0x, b0y, b1x, b1y, b2x, b2y, beak)
	eyes(f, 19, 26, 21, 2.5)
}

func savePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, f.Close()) }()
	return png.Encode(f, img)
}

func main() {
	out := flag.String("out", filepath.Join("assets", "creatures"), "output directory")
	seed := flag.Float64("seed", 3, "fur noise seed")
	flag.Parse()

	if err := os.MkdirAll(*out, 0o755); err != nil {
		slog.Error("cannot create output directory", "dir", *out, "err", err)
		os.Exit(1)
	}
	for _, sp := range core.AllSpecies() {
		path := filepath.Join(*out, sp.String()+".png")
		if err := savePNG(path, Atlas(sp, *seed)); err != nil {
			slog.Error("cannot write atlas", "species", sp, "err", err)
			os.Exit(1)
		}
		fmt.Println("  →", path)
	}
}
