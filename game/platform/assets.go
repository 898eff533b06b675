package platform

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/plus3/tickecs/game/assets"
)

// NewImageCache loads sprite textures from root.
func NewImageCache(root string, workers int) *assets.Cache[*ebiten.Image] {
	return assets.NewCache(func(path string) (*ebiten.Image, error) {
		img, _, err := ebitenutil.NewImageFromFile(filepath.Join(root, path))
		if err != nil {
			return nil, err
		}
		return img, nil
	}, workers)
}

// NewSoundCache loads WAV files from root and decodes them to raw PCM at
// sampleRate.
func NewSoundCache(root string, sampleRate, workers int) *assets.Cache[[]byte] {
	return assets.NewCache(func(path string) ([]byte, error) {
		data, err := os.ReadFile(filepath.Join(root, path))
		if err != nil {
			return nil, err
		}
		return decodeWAV(data, sampleRate)
	}, workers)
}

func decodeWAV(data []byte, sampleRate int) ([]byte, error) {
	stream, err := wav.DecodeWithSampleRate(sampleRate, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}
	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}
	return pcm, nil
}
