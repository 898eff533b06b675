package platform

import (
	"context"
	"errors"

	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/plus3/tickecs/game/assets"
)

// SoundPlayer plays cached sounds through an ebiten audio context. It
// satisfies audio.Player.
type SoundPlayer struct {
	context *ebaudio.Context
	sounds  *assets.Cache[[]byte]
}

// NewSoundPlayer creates the process-wide audio context. ebiten allows only
// one, so call it once.
func NewSoundPlayer(sampleRate int, sounds *assets.Cache[[]byte]) *SoundPlayer {
	return &SoundPlayer{
		context: ebaudio.NewContext(sampleRate),
		sounds:  sounds,
	}
}

// Play starts name without waiting for it to finish. Sounds that were not
// preloaded are loaded on first use.
func (p *SoundPlayer) Play(name string) error {
	pcm, err := p.sounds.Get(name)
	if errors.Is(err, assets.ErrNotLoaded) {
		if err := p.sounds.Load(context.Background(), name); err != nil {
			return err
		}
		pcm, err = p.sounds.Get(name)
	}
	if err != nil {
		return err
	}
	p.context.NewPlayerFromBytes(pcm).Play()
	return nil
}
