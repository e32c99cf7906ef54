package audio

import (
	"encoding/binary"
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// SampleRate is the rate every effect is synthesized at
const SampleRate = beep.SampleRate(44100)

// SoundID identifies a sound effect
type SoundID string

const (
	SndThrow SoundID = "throw"
	SndHit   SoundID = "hit"
	SndMiss  SoundID = "miss"
	SndWave  SoundID = "wave"
	SndWin   SoundID = "win"
	SndLose  SoundID = "lose"
)

// AllSounds lists the effects the manager prepares
var AllSounds = []SoundID{SndThrow, SndHit, SndMiss, SndWave, SndWin, SndLose}

// Wave shapes
type Wave int

const (
	Sine Wave = iota
	Square
	Noise
)

type oscillator struct {
	freq  float64
	phase float64
	left  int
	wave  Wave
	rate  beep.SampleRate
}

// Tone streams a fixed-frequency wave for d
func Tone(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &oscillator{freq: freq, left: rate.N(d), wave: wave, rate: rate}
}

func (o *oscillator) Stream(samples [][2]float64) (int, bool) {
	if o.left <= 0 {
		return 0, false
	}
	n := min(len(samples), o.left)
	for i := 0; i < n; i++ {
		var v float64
		switch o.wave {
		case Sine:
			v = math.Sin(2 * math.Pi * o.phase)
		case Square:
			v = 1
			if o.phase >= 0.5 {
				v = -1
			}
		case Noise:
			v = rand.Float64()*2 - 1
		}
		samples[i] = [2]float64{v, v}
		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
	}
	o.left -= n
	return n, true
}

func (o *oscillator) Err() error { return nil }

// fade applies a linear attack and release over a stream of known length
type fade struct {
	s                    beep.Streamer
	pos, total, att, rel int
}

func withFade(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &fade{s: s, total: rate.N(d), att: rate.N(attack), rel: rate.N(release)}
}

func (f *fade) Stream(samples [][2]float64) (int, bool) {
	n, ok := f.s.Stream(samples)
	for i := 0; i < n; i++ {
		g := 1.0
		if f.pos < f.att {
			g = float64(f.pos) / float64(f.att)
		}
		if left := f.total - f.pos; left < f.rel {
			g = math.Max(0, float64(left)/float64(f.rel))
		}
		samples[i][0] *= g
		samples[i][1] *= g
		f.pos++
	}
	return n, ok
}

func (f *fade) Err() error { return f.s.Err() }

func note(freq float64, d time.Duration, wave Wave) beep.Streamer {
	return withFade(Tone(freq, d, wave, SampleRate), d, 5*time.Millisecond, d/2, SampleRate)
}

func volume(s beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}

// Synth builds the streamer for a sound at volume v in [0,1]
func Synth(id SoundID, v float64) beep.Streamer {
	var s beep.Streamer
	switch id {
	case SndThrow:
		s = volume(note(0, 120*time.Millisecond, Noise), 0.4)
	case SndHit:
		s = beep.Seq(note(660, 70*time.Millisecond, Sine), note(990, 110*time.Millisecond, Sine))
	case SndMiss:
		s = volume(note(140, 150*time.Millisecond, Square), 0.3)
	case SndWave:
		d := 300 * time.Millisecond
		s = beep.Mix(
			volume(note(523.25, d, Sine), 0.4),
			volume(note(659.25, d, Sine), 0.3),
			volume(note(783.99, d, Sine), 0.3),
		)
	case SndWin:
		s = beep.Seq(
			note(523.25, 120*time.Millisecond, Sine),
			note(659.25, 120*time.Millisecond, Sine),
			note(783.99, 120*time.Millisecond, Sine),
			note(1046.5, 300*time.Millisecond, Sine),
		)
	case SndLose:
		s = beep.Seq(
			note(392, 180*time.Millisecond, Square),
			note(311.13, 180*time.Millisecond, Square),
			note(261.63, 400*time.Millisecond, Square),
		)
	default:
		return nil
	}
	return volume(s, v)
}

// Render drains s into signed 16-bit little endian stereo PCM
func Render(s beep.Streamer) []byte {
	var pcm []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			for _, v := range frame {
				v = math.Max(-1, math.Min(1, v))
				pcm = binary.LittleEndian.AppendUint16(pcm, uint16(int16(v*math.MaxInt16)))
			}
		}
		if !ok {
			return pcm
		}
	}
}
