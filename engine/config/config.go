// Package config holds the game settings: defaults, an optional TOML file
// and command-line overrides.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/1siamBot/creature-waves/engine/core"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid config")

// Attack modes
const (
	AttackClick = "click"
	AttackThrow = "throw"
)

// Config is the complete game configuration
type Config struct {
	Window   WindowConfig   `toml:"window"`
	Sim      SimConfig      `toml:"sim"`
	Levels   LevelsConfig   `toml:"levels"`
	Audio    AudioConfig    `toml:"audio"`
	Replay   ReplayConfig   `toml:"replay"`
	Spectate SpectateConfig `toml:"spectate"`
	LogLevel string         `toml:"log_level"`
}

type WindowConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// SimConfig maps onto core.Tuning plus the loop settings
type SimConfig struct {
	TickRate         float64       `toml:"tick_rate"`
	WaveDuration     time.Duration `toml:"wave_duration"`
	DeathDuration    time.Duration `toml:"death_duration"`
	DeathScaleFloor  float64       `toml:"death_scale_floor"`
	ShrinkFloor      float64       `toml:"shrink_floor"`
	WrapMargin       float64       `toml:"wrap_margin"`
	SpawnMargin      float64       `toml:"spawn_margin"`
	FlightDuration   time.Duration `toml:"flight_duration"`
	FallDuration     time.Duration `toml:"fall_duration"`
	SingleProjectile bool          `toml:"single_projectile"`
	AttackMode       string        `toml:"attack_mode"`
	// Seed 0 picks a time based seed
	Seed uint64 `toml:"seed"`
}

type LevelsConfig struct {
	// Dir empty means the levels embedded in the binary
	Dir string `toml:"dir"`
}

type AudioConfig struct {
	Master float64 `toml:"master"`
	SFX    float64 `toml:"sfx"`
}

type ReplayConfig struct {
	Record string `toml:"record"`
	Play   string `toml:"play"`
}

type SpectateConfig struct {
	// Addr empty disables the spectator feed
	Addr string `toml:"addr"`
}

// Default returns the shipped settings
func Default() Config {
	t := core.DefaultTuning()
	return Config{
		Window: WindowConfig{Width: 1280, Height: 720},
		Sim: SimConfig{
			TickRate:         60,
			WaveDuration:     t.WaveDuration,
			DeathDuration:    t.DeathDuration,
			DeathScaleFloor:  t.DeathScaleFloor,
			ShrinkFloor:      t.ShrinkFloor,
			WrapMargin:       t.WrapMargin,
			SpawnMargin:      t.SpawnMargin,
			FlightDuration:   t.FlightDuration,
			FallDuration:     t.FallDuration,
			SingleProjectile: t.SingleProjectile,
			AttackMode:       AttackClick,
		},
		Audio:    AudioConfig{Master: 0.8, SFX: 1},
		LogLevel: "info",
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := Decode(string(data), &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode applies a TOML document to cfg and validates the result
func Decode(doc string, cfg *Config) error {
	md, err := toml.Decode(doc, cfg)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("%w: unknown keys %v", ErrInvalid, undecoded)
	}
	return cfg.Validate()
}

// RegisterFlags binds the overridable fields to fs. Call fs.Parse after
// loading the file so flags win.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.Window.Width, "width", c.Window.Width, "window width")
	fs.IntVar(&c.Window.Height, "height", c.Window.Height, "window height")
	fs.Float64Var(&c.Sim.TickRate, "tick-rate", c.Sim.TickRate, "simulation ticks per second")
	fs.DurationVar(&c.Sim.WaveDuration, "wave-duration", c.Sim.WaveDuration, "time limit per wave")
	fs.StringVar(&c.Sim.AttackMode, "attack", c.Sim.AttackMode, "attack mode: click or throw")
	fs.BoolVar(&c.Sim.SingleProjectile, "single-projectile", c.Sim.SingleProjectile, "allow one projectile in flight")
	fs.Uint64Var(&c.Sim.Seed, "seed", c.Sim.Seed, "rng seed, 0 for time based")
	fs.StringVar(&c.Levels.Dir, "levels", c.Levels.Dir, "level directory, empty for the built-in levels")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	fs.Float64Var(&c.Audio.Master, "volume", c.Audio.Master, "master volume 0..1")
	fs.StringVar(&c.Replay.Record, "record", c.Replay.Record, "write a replay to this file")
	fs.StringVar(&c.Replay.Play, "replay", c.Replay.Play, "play back a replay file")
	fs.StringVar(&c.Spectate.Addr, "spectate", c.Spectate.Addr, "serve the outcome feed on this address")
}

// Validate rejects settings the game cannot run with
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}
	check(c.Window.Width > 0 && c.Window.Height > 0, "window %dx%d", c.Window.Width, c.Window.Height)
	check(c.Sim.TickRate > 0, "tick_rate %v", c.Sim.TickRate)
	check(c.Sim.WaveDuration > 0, "wave_duration %v", c.Sim.WaveDuration)
	check(c.Sim.DeathDuration > 0, "death_duration %v", c.Sim.DeathDuration)
	check(c.Sim.FlightDuration > 0, "flight_duration %v", c.Sim.FlightDuration)
	check(c.Sim.FallDuration > 0, "fall_duration %v", c.Sim.FallDuration)
	check(c.Sim.DeathScaleFloor >= 0 && c.Sim.DeathScaleFloor <= 1, "death_scale_floor %v", c.Sim.DeathScaleFloor)
	check(c.Sim.ShrinkFloor >= 0 && c.Sim.ShrinkFloor <= 1, "shrink_floor %v", c.Sim.ShrinkFloor)
	check(c.Sim.WrapMargin >= 0 && c.Sim.SpawnMargin >= 0, "negative margin")
	check(c.Sim.AttackMode == AttackClick || c.Sim.AttackMode == AttackThrow, "attack_mode %q", c.Sim.AttackMode)
	check(c.Audio.Master >= 0 && c.Audio.Master <= 1 && c.Audio.SFX >= 0 && c.Audio.SFX <= 1, "volume out of range")
	_, lvlErr := c.SlogLevel()
	check(lvlErr == nil, "log_level %q", c.LogLevel)
	return errors.Join(errs...)
}

// Tuning converts the simulation settings for a new session
func (c *Config) Tuning() core.Tuning {
	t := core.DefaultTuning()
	t.WaveDuration = c.Sim.WaveDuration
	t.DeathDuration = c.Sim.DeathDuration
	t.DeathScaleFloor = c.Sim.DeathScaleFloor
	t.ShrinkFloor = c.Sim.ShrinkFloor
	t.WrapMargin = c.Sim.WrapMargin
	t.SpawnMargin = c.Sim.SpawnMargin
	t.FlightDuration = c.Sim.FlightDuration
	t.FallDuration = c.Sim.FallDuration
	t.SingleProjectile = c.Sim.SingleProjectile
	return t
}

// AttackKind maps the attack mode onto the input kind
func (c *Config) AttackKind() core.AttackKind {
	if c.Sim.AttackMode == AttackThrow {
		return core.AttackThrow
	}
	return core.AttackClick
}

// SlogLevel parses LogLevel
func (c *Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel)))
	return lvl, err
}
