package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/sync/errgroup"

	"github.com/1siamBot/creature-waves/engine/audio"
	"github.com/1siamBot/creature-waves/engine/config"
	"github.com/1siamBot/creature-waves/engine/level"
	"github.com/1siamBot/creature-waves/engine/network"
	"github.com/1siamBot/creature-waves/engine/render"
)

func main() {
	if err := run(os.Args[1:]); err != nil && !errors.Is(err, flag.ErrHelp) {
		slog.Error("game stopped", "err", err)
		os.Exit(1)
	}
}

// loadConfig applies defaults, then the optional -config file, then every
// flag given on the command line
func loadConfig(args []string) (config.Config, error) {
	cfg := config.Default()
	fs := flag.NewFlagSet("game", flag.ContinueOnError)
	path := fs.String("config", "", "TOML config file")
	cfg.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if *path == "" {
		return cfg, cfg.Validate()
	}

	fileCfg, err := config.Load(*path)
	if err != nil {
		return fileCfg, err
	}
	override := flag.NewFlagSet("game", flag.ContinueOnError)
	fileCfg.RegisterFlags(override)
	fs.Visit(func(f *flag.Flag) {
		if f.Name != "config" {
			_ = override.Set(f.Name, f.Value.String())
		}
	})
	return fileCfg, fileCfg.Validate()
}

func levelFS(cfg config.Config) fs.FS {
	if cfg.Levels.Dir == "" {
		return level.Embedded()
	}
	return os.DirFS(cfg.Levels.Dir)
}

func run(args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	lvl, _ := cfg.SlogLevel()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))

	fsys := levelFS(cfg)
	files, err := level.Discover(fsys)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no levels in %q", cfg.Levels.Dir)
	}
	levels := level.NewLibrary(files)

	game, err := NewGame(cfg, levels, render.NewSpriteManager(), audio.NewEbitenOutput())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	eg, ctx := errgroup.WithContext(ctx)

	// the wave scheduler retries levels that are still loading
	eg.Go(func() error { return levels.Load(ctx, fsys) })

	if cfg.Spectate.Addr != "" {
		hub := network.NewHub()
		game.Spectators = hub
		eg.Go(func() error {
			if err := network.Serve(ctx, cfg.Spectate.Addr, hub); err != nil {
				slog.Error("spectator feed failed", "addr", cfg.Spectate.Addr, "err", err)
			}
			return nil
		})
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle("Creature Waves")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(true)
	ebiten.SetTPS(int(cfg.Sim.TickRate))

	runErr := ebiten.RunGame(game)
	cancel()
	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("background task failed", "err", err)
	}
	return runErr
}
