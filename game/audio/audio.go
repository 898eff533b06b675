// Package audio plays named sound effects.
package audio

import (
	"sync"
	"sync/atomic"
)

// Player plays a sound by name. Implementations must not block on playback.
type Player interface {
	Play(name string) error
}

// Nop discards every sound.
type Nop struct{}

func (Nop) Play(string) error { return nil }

// Muteable wraps a Player with a mute switch.
type Muteable struct {
	player Player
	muted  atomic.Bool
}

func NewMuteable(player Player) *Muteable {
	return &Muteable{player: player}
}

func (m *Muteable) SetMuted(muted bool) { m.muted.Store(muted) }
func (m *Muteable) Muted() bool         { return m.muted.Load() }

// Play forwards to the wrapped player unless muted.
func (m *Muteable) Play(name string) error {
	if m.muted.Load() {
		return nil
	}
	return m.player.Play(name)
}

// Recorder remembers the sounds it was asked to play.
type Recorder struct {
	mu     sync.Mutex
	played []string
}

func (r *Recorder) Play(name string) error {
	r.mu.Lock()
	r.played = append(r.played, name)
	r.mu.Unlock()
	return nil
}

// Played returns a copy of the names played so far.
func (r *Recorder) Played() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.played...)
}
