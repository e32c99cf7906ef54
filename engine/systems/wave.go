package systems

import (
	"errors"
	"log/slog"
	"time"

	"github.com/1siamBot/creature-waves/engine/core"
	"github.com/1siamBot/creature-waves/engine/level"
)

//go:generate go tool mockgen -destination=./mocks/level_source_mock.go -package=mocks . LevelSource

// LevelSource is the ordered list of levels the scheduler plays through.
// *level.Library implements it.
type LevelSource interface {
	Len() int
	Level(i int) (*level.Definition, error)
}

// WaveSystem spawns one level per wave, tracks the wave timer and decides
// when the game is won or lost. All of its state lives in the session.
type WaveSystem struct {
	Levels LevelSource
}

func (s *WaveSystem) Priority() int { return PrioWave }

func (s *WaveSystem) Update(w *core.World, _ time.Duration) {
	sess := w.Session
	if sess == nil {
		return
	}
	alive := w.AliveCreatures()
	defer func() {
		sess.Outcome.Alive = w.AliveCreatures()
		sess.Outcome.WaveRemaining = sess.WaveTimer.Remaining()
	}()
	if sess.DevMode || sess.Outcome.Phase.Terminal() || s.Levels == nil {
		return
	}

	if sess.Outcome.Wave == 0 || alive == 0 {
		if sess.Outcome.Phase == core.PhaseActive {
			sess.Outcome.Phase = core.PhaseCleared
		}
		s.advance(w)
		alive = w.AliveCreatures()
	}

	// the clear check above runs first so a wave cleared on the timeout
	// tick counts as cleared
	if sess.Outcome.Phase == core.PhaseActive && sess.WaveTimer.JustFinished() && alive > 0 {
		sess.Outcome.Phase = core.PhaseLost
		sess.Outcome.Win = false
		slog.Info("game lost", "session", sess.ID, "wave", sess.Outcome.Wave, "alive", alive)
		sess.Emit(core.EvtGameLost, w.TickCount, sess.Outcome)
	}
}

func (s *WaveSystem) advance(w *core.World) {
	sess := w.Session
	for {
		if !sess.Ready() {
			slog.Warn("play area not established, wave delayed")
			return
		}
		if sess.NextLevel >= s.Levels.Len() {
			sess.Outcome.Phase = core.PhaseWon
			sess.Outcome.Win = true
			slog.Info("game won", "session", sess.ID, "wave", sess.Outcome.Wave, "kills", sess.Outcome.Kills)
			sess.Emit(core.EvtGameWon, w.TickCount, sess.Outcome)
			return
		}

		def, err := s.Levels.Level(sess.NextLevel)
		if errors.Is(err, level.ErrNotLoaded) {
			slog.Warn("level not loaded yet, retrying", "level", sess.NextLevel)
			return
		}
		if err != nil {
			slog.Error("level skipped", "level", sess.NextLevel, "err", err)
			sess.Emit(core.EvtLevelSkipped, w.TickCount, sess.NextLevel)
			sess.NextLevel++
			continue
		}

		wave := sess.Outcome.Wave + 1
		n := SpawnLevel(w, def, wave)
		sess.Emit(core.EvtWaveStarted, w.TickCount, core.WavePayload{Wave: wave, Level: sess.NextLevel, Creatures: n})
		slog.Info("wave started", "wave", wave, "level", def.Name, "creatures", n)

		sess.NextLevel++
		sess.Outcome.Wave = wave
		sess.Outcome.Score = wave
		sess.Outcome.Phase = core.PhaseActive
		sess.WaveTimer.Reset()
		return
	}
}
