package render

import (
	"image"
	"image/color"
	_ "image/png"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"runtime"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/1siamBot/creature-waves/engine/core"
)

// Atlas is a species sprite sheet split into equally sized frames
type Atlas struct {
	Image      *ebiten.Image
	Cols, Rows int
	FrameW     int
	FrameH     int
}

// Frame returns atlas frame i in row-major order, wrapping out of range
// indices
func (a *Atlas) Frame(i int) *ebiten.Image {
	n := a.Cols * a.Rows
	i = ((i % n) + n) % n
	x, y := (i%a.Cols)*a.FrameW, (i/a.Cols)*a.FrameH
	return a.Image.SubImage(image.Rect(x, y, x+a.FrameW, y+a.FrameH)).(*ebiten.Image)
}

// SpriteManager holds one atlas per species
type SpriteManager struct {
	Atlases map[core.Species]*Atlas
}

var speciesColors = map[core.Species]color.RGBA{
	core.Fox:   {230, 120, 40, 255},
	core.Snake: {70, 170, 70, 255},
	core.Mouse: {160, 160, 170, 255},
	core.Duck:  {240, 210, 60, 255},
}

// NewSpriteManager loads <species>.png atlases from the assets directory and
// generates the ones that are missing
func NewSpriteManager() *SpriteManager {
	sm := &SpriteManager{Atlases: make(map[core.Species]*Atlas)}
	dir := getAssetsDir()
	loaded := 0
	for _, sp := range core.AllSpecies() {
		cols, rows := sp.Atlas()
		w, h := sp.ImageSize()
		img := loadFromFile(filepath.Join(dir, "creatures", sp.String()+".png"))
		if img != nil && img.Bounds().Dx() == cols*w && img.Bounds().Dy() == rows*h {
			loaded++
		} else {
			img = generateAtlas(sp)
		}
		sm.Atlases[sp] = &Atlas{Image: img, Cols: cols, Rows: rows, FrameW: w, FrameH: h}
	}
	slog.Debug("sprites ready", "loaded", loaded, "generated", len(sm.Atlases)-loaded)
	return sm
}

// generateAtlas paints a simple creature per frame: a body, two eyes and
// a wobble that differs per column. The last row holds the shot frames.
func generateAtlas(sp core.Species) *ebiten.Image {
	cols, rows := sp.Atlas()
	w, h := sp.ImageSize()
	img := ebiten.NewImage(cols*w, rows*h)
	body := speciesColors[sp]

	for i := 0; i < cols*rows; i++ {
		shot := i >= cols*(rows-1) && (rows > 1 || i == cols-1)
		ox, oy := float32((i%cols)*w), float32((i/cols)*h)
		cx, cy := ox+float32(w)/2, oy+float32(h)/2
		r := float32(min(w, h)) * 0.4
		wobble := float32(math.Sin(float64(i)*math.Pi/3)) * r * 0.1

		vector.DrawFilledCircle(img, cx, cy+wobble, r, body, true)
		ear := r * 0.35
		vector.DrawFilledCircle(img, cx-r*0.6, cy-r*0.7+wobble, ear, body, true)
		vector.DrawFilledCircle(img, cx+r*0.6, cy-r*0.7+wobble, ear, body, true)

		eye := r * 0.12
		ex, ey := r*0.35, cy-r*0.15+wobble
		if shot {
			stroke := max(eye*0.5, 1)
			for _, x := range []float32{cx - ex, cx + ex} {
				vector.StrokeLine(img, x-eye, ey-eye, x+eye, ey+eye, stroke, color.Black, true)
				vector.StrokeLine(img, x-eye, ey+eye, x+eye, ey-eye, stroke, color.Black, true)
			}
			continue
		}
		vector.DrawFilledCircle(img, cx-ex, ey, eye, color.Black, true)
		vector.DrawFilledCircle(img, cx+ex, ey, eye, color.Black, true)
	}
	return img
}

func getAssetsDir() string {
	exe, err := os.Executable()
	if err == nil {
		dir := filepath.Join(filepath.Dir(exe), "assets")
		if _, err := os.Stat(dir); err == nil {
			return dir
		}
	}
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Join(filepath.Dir(filename), "..", "..", "assets")
	if _, err := os.Stat(dir); err == nil {
		return dir
	}
	return "assets"
}

func loadFromFile(path string) *ebiten.Image {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		slog.Warn("could not decode sprite", "path", path, "err", err)
		return nil
	}
	return ebiten.NewImageFromImage(img)
}
