package audio

import (
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/1siamBot/creature-waves/engine/audio/mocks"
	"github.com/1siamBot/creature-waves/engine/core"
)

func TestTone_StreamsExactLength(t *testing.T) {
	d := 100 * time.Millisecond
	s := Tone(440, d, Sine, SampleRate)
	pcm := Render(s)
	if want := SampleRate.N(d) * 4; len(pcm) != want {
		t.Errorf("len(pcm) = %d, want %d", len(pcm), want)
	}
	if _, ok := s.Stream(make([][2]float64, 8)); ok {
		t.Error("drained tone still reports ok")
	}
}

func TestSynth_EverySoundRenders(t *testing.T) {
	for _, id := range AllSounds {
		pcm := Render(Synth(id, 1))
		if len(pcm) == 0 || len(pcm)%4 != 0 {
			t.Errorf("%s: %d bytes", id, len(pcm))
		}
	}
	if Synth("nope", 1) != nil {
		t.Error("unknown id should have no streamer")
	}
}

func TestSynth_SilentAtZeroVolume(t *testing.T) {
	for _, b := range Render(Synth(SndHit, 0)) {
		if b != 0 {
			t.Fatal("zero volume produced sound")
		}
	}
}

func TestAudioManager_OneSoundPerEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	out := mocks.NewMockOutput(ctrl)
	am := NewAudioManager(out, 1, 1)
	bus := core.NewEventBus()
	am.Attach(bus)

	out.EXPECT().Play(am.sounds[SndHit]).Times(1)
	out.EXPECT().Play(am.sounds[SndWave]).Times(1)

	bus.Emit(core.Event{Type: core.EvtAttackHit})
	bus.Emit(core.Event{Type: core.EvtWaveStarted})
	bus.Emit(core.Event{Type: core.EvtCreatureKilled})
	bus.Dispatch()
}

func TestAudioManager_Muted(t *testing.T) {
	ctrl := gomock.NewController(t)
	out := mocks.NewMockOutput(ctrl)
	am := NewAudioManager(out, 1, 1)
	am.Muted = true
	am.PlaySFX(SndMiss)
}

func TestAudioManager_ThrowSoundOnlyForThrows(t *testing.T) {
	ctrl := gomock.NewController(t)
	out := mocks.NewMockOutput(ctrl)
	am := NewAudioManager(out, 1, 1)
	bus := core.NewEventBus()
	am.Attach(bus)

	out.EXPECT().Play(am.sounds[SndThrow]).Times(1)
	out.EXPECT().Play(am.sounds[SndMiss]).Times(1)

	bus.Emit(core.Event{Type: core.EvtAttackStarted, Payload: core.AttackPayload{Kind: core.AttackClick}})
	bus.Emit(core.Event{Type: core.EvtAttackMiss})
	bus.Emit(core.Event{Type: core.EvtAttackStarted, Payload: core.AttackPayload{Kind: core.AttackThrow}})
	bus.Dispatch()
}
