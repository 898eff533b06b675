package platform

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/tickecs/game/geom"
	"github.com/plus3/tickecs/game/input"
)

// KeyMap translates input key names to ebiten keys.
type KeyMap map[string]ebiten.Key

// NewKeyMap resolves each name with ebiten's own key names, so "W",
// "ShiftLeft" and "Escape" all work.
func NewKeyMap(names ...string) (KeyMap, error) {
	keys := make(KeyMap, len(names))
	for _, name := range names {
		var k ebiten.Key
		if err := k.UnmarshalText([]byte(name)); err != nil {
			return nil, fmt.Errorf("unknown key %q: %w", name, err)
		}
		keys[name] = k
	}
	return keys, nil
}

// DefaultKeys is the control scheme the shooter's systems read.
func DefaultKeys() KeyMap {
	keys, err := NewKeyMap(
		input.KeyW, input.KeyA, input.KeyS, input.KeyD,
		input.KeyShiftLeft, input.KeyShiftRight, input.KeyEscape,
	)
	if err != nil {
		panic(err)
	}
	return keys
}

// Device is the part of ebiten's input API the poller reads.
type Device interface {
	IsKeyPressed(key ebiten.Key) bool
	CursorPosition() (int, int)
	IsMouseButtonPressed(button ebiten.MouseButton) bool
}

type ebitenDevice struct{}

func (ebitenDevice) IsKeyPressed(key ebiten.Key) bool { return ebiten.IsKeyPressed(key) }
func (ebitenDevice) CursorPosition() (int, int)      { return ebiten.CursorPosition() }
func (ebitenDevice) IsMouseButtonPressed(button ebiten.MouseButton) bool {
	return ebiten.IsMouseButtonPressed(button)
}

// Poller fills one input.Snapshot per frame. Systems hold the snapshot
// pointer, so the same value is updated in place.
type Poller struct {
	keys     KeyMap
	device   Device
	snapshot input.Snapshot
	polled   bool
}

func NewPoller(keys KeyMap) *Poller {
	return newPoller(keys, ebitenDevice{})
}

func newPoller(keys KeyMap, device Device) *Poller {
	return &Poller{keys: keys, device: device}
}

// State returns the snapshot systems should read.
func (p *Poller) State() *input.Snapshot {
	return &p.snapshot
}

// Poll reads the device. Input ImGui wants is withheld: keys read as
// released when the keyboard is captured, and the pointer reports no motion
// and no press when the mouse is.
func (p *Poller) Poll(captureMouse, captureKeyboard bool) {
	for name, key := range p.keys {
		if !captureKeyboard && p.device.IsKeyPressed(key) {
			p.snapshot.Press(name)
		} else {
			p.snapshot.Release(name)
		}
	}

	x, y := p.device.CursorPosition()
	pos := geom.V(float64(x), float64(y))
	if captureMouse || !p.polled {
		p.snapshot.Position = pos
		p.snapshot.Delta = geom.Vec2{}
		p.polled = true
	} else {
		p.snapshot.MovePointer(pos)
	}
	p.snapshot.Down = !captureMouse && p.device.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}
