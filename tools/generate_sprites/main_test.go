package main

import (
	"bytes"
	"image"
	"path/filepath"
	"testing"

	"github.com/1siamBot/creature-waves/engine/core"
)

func TestAtlas_MatchesSpeciesGrid(t *testing.T) {
	for _, sp := range core.AllSpecies() {
		img := Atlas(sp, 1)
		cols, rows := sp.Atlas()
		w, h := sp.ImageSize()
		if b := img.Bounds(); b.Dx() != cols*w || b.Dy() != rows*h {
			t.Errorf("%s atlas is %v, want %dx%d", sp, b, cols*w, rows*h)
		}
		// corners stay transparent so sprites blend over the field
		if a := img.RGBAAt(0, 0).A; a != 0 {
			t.Errorf("%s corner alpha = %d", sp, a)
		}
	}
}

func frameAt(img *image.RGBA, sp core.Species, i int) []byte {
	cols, _ := sp.Atlas()
	w, h := sp.ImageSize()
	x, y := (i%cols)*w, (i/cols)*h
	sub := img.SubImage(image.Rect(x, y, x+w, y+h)).(*image.RGBA)
	var buf bytes.Buffer
	for row := sub.Rect.Min.Y; row < sub.Rect.Max.Y; row++ {
		off := sub.PixOffset(sub.Rect.Min.X, row)
		buf.Write(sub.Pix[off : off+w*4])
	}
	return buf.Bytes()
}

func TestAtlas_ShotFrameDiffers(t *testing.T) {
	for _, sp := range core.AllSpecies() {
		img := Atlas(sp, 1)
		cols, rows := sp.Atlas()
		last := cols*rows - 1
		if !isShot(last, cols, rows) || isShot(0, cols, rows) {
			t.Fatalf("%s shot layout wrong", sp)
		}
		if bytes.Equal(frameAt(img, sp, 0), frameAt(img, sp, last)) {
			t.Errorf("%s shot frame looks alive", sp)
		}
	}
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "duck.png")
	if err := savePNG(path, Atlas(core.Duck, 1)); err != nil {
		t.Fatal(err)
	}
	if err := savePNG(filepath.Join(t.TempDir(), "missing", "x.png"), Atlas(core.Duck, 1)); err == nil {
		t.Error("writing into a missing directory succeeded")
	}
}
