package audio

import (
	eaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// EbitenOutput plays clips through the process wide ebiten audio context
type EbitenOutput struct {
	ctx *eaudio.Context
}

// NewEbitenOutput reuses the current audio context or creates one
func NewEbitenOutput() *EbitenOutput {
	ctx := eaudio.CurrentContext()
	if ctx == nil {
		ctx = eaudio.NewContext(int(SampleRate))
	}
	return &EbitenOutput{ctx: ctx}
}

func (o *EbitenOutput) Play(pcm []byte) {
	p := o.ctx.NewPlayerFromBytes(pcm)
	p.Play()
}
