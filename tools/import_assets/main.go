// import_assets builds a creature atlas from hand drawn frames. Every frame
// is scaled into its cell of the species grid, alive frames first and the
// shot pose last.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"

	"github.com/1siamBot/creature-waves/engine/core"
)

// loadPNG decodes one source frame
func loadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// BuildAtlas scales frames into the atlas grid of sp. It needs exactly one
// frame per cell.
func BuildAtlas(sp core.Species, frames []image.Image) (*image.RGBA, error) {
	cols, rows := sp.Atlas()
	if len(frames) != cols*rows {
		return nil, fmt.Errorf("%s needs %d frames (%dx%d), got %d", sp, cols*rows, cols, rows, len(frames))
	}
	w, h := sp.ImageSize()
	atlas := image.NewRGBA(image.Rect(0, 0, cols*w, rows*h))
	for i, src := range frames {
		x, y := (i%cols)*w, (i/cols)*h
		cell := image.Rect(x, y, x+w, y+h)
		xdraw.CatmullRom.Scale(atlas, cell, src, src.Bounds(), xdraw.Over, nil)
	}
	return atlas, nil
}

func savePNG(path string, img image.Image) (err error) {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, out.Close()) }()
	return png.Encode(out, img)
}

func run(species, outDir string, paths []string) error {
	sp, err := core.ParseSpecies(species)
	if err != nil {
		return err
	}
	frames := make([]image.Image, len(paths))
	for i, p := range paths {
		if frames[i], err = loadPNG(p); err != nil {
			return err
		}
	}
	atlas, err := BuildAtlas(sp, frames)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	dst := filepath.Join(outDir, sp.String()+".png")
	if err := savePNG(dst, atlas); err != nil {
		return err
	}
	slog.Info("atlas written", "species", sp, "frames", len(frames), "path", dst)
	return nil
}

func main() {
	species := flag.String("species", "", "fox, snake, mouse or duck")
	out := flag.String("out", filepath.Join("assets", "creatures"), "output directory")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: import_assets -species duck frame0.png frame1.png ...")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(*species, *out, flag.Args()); err != nil {
		slog.Error("import failed", "err", err)
		os.Exit(1)
	}
}
