package audio

import (
	"log/slog"

	"github.com/1siamBot/creature-waves/engine/core"
)

//go:generate go tool mockgen -destination=./mocks/output_mock.go -package=mocks . Output

// Output plays rendered PCM clips
type Output interface {
	Play(pcm []byte)
}

// AudioManager turns game events into sound effects
type AudioManager struct {
	MasterVolume float64
	SFXVolume    float64
	Muted        bool

	out    Output
	sounds map[SoundID][]byte
}

// NewAudioManager pre-renders every effect at the given volumes
func NewAudioManager(out Output, master, sfx float64) *AudioManager {
	am := &AudioManager{out: out}
	am.SetVolume(master, sfx)
	return am
}

// SetVolume clamps both volumes to [0,1] and re-renders the effects
func (am *AudioManager) SetVolume(master, sfx float64) {
	am.MasterVolume = core.Clamp01(master)
	am.SFXVolume = core.Clamp01(sfx)
	am.sounds = make(map[SoundID][]byte, len(AllSounds))
	for _, id := range AllSounds {
		am.sounds[id] = Render(Synth(id, am.MasterVolume*am.SFXVolume))
	}
}

// PlaySFX plays a prepared effect
func (am *AudioManager) PlaySFX(id SoundID) {
	if am.Muted || am.out == nil {
		return
	}
	pcm, ok := am.sounds[id]
	if !ok {
		slog.Warn("unknown sound", "id", id)
		return
	}
	am.out.Play(pcm)
}

// Attach subscribes the manager to the events that have a sound
func (am *AudioManager) Attach(bus *core.EventBus) {
	play := func(id SoundID) core.EventHandler {
		return func(core.Event) { am.PlaySFX(id) }
	}
	bus.On(core.EvtAttackStarted, func(e core.Event) {
		// clicks only get the hit or miss sound
		if p, ok := e.Payload.(core.AttackPayload); ok && p.Kind == core.AttackThrow {
			am.PlaySFX(SndThrow)
		}
	})
	bus.On(core.EvtAttackHit, play(SndHit))
	bus.On(core.EvtAttackMiss, play(SndMiss))
	bus.On(core.EvtWaveStarted, play(SndWave))
	bus.On(core.EvtGameWon, play(SndWin))
	bus.On(core.EvtGameLost, play(SndLose))
}
