package platform

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/tickecs/game/geom"
	"github.com/plus3/tickecs/game/input"
)

type fakeDevice struct {
	keys   map[ebiten.Key]bool
	x, y   int
	button bool
}

func (d *fakeDevice) IsKeyPressed(key ebiten.Key) bool { return d.keys[key] }
func (d *fakeDevice) CursorPosition() (int, int)      { return d.x, d.y }
func (d *fakeDevice) IsMouseButtonPressed(button ebiten.MouseButton) bool {
	return button == ebiten.MouseButtonLeft && d.button
}

func TestNewKeyMap(t *testing.T) {
	keys, err := NewKeyMap(input.KeyW, input.KeyShiftLeft, input.KeyEscape)
	require.NoError(t, err)
	assert.Equal(t, ebiten.KeyW, keys[input.KeyW])
	assert.Equal(t, ebiten.KeyShiftLeft, keys[input.KeyShiftLeft])
	assert.Equal(t, ebiten.KeyEscape, keys[input.KeyEscape])

	_, err = NewKeyMap("NotAKey")
	assert.Error(t, err)

	assert.Len(t, DefaultKeys(), 7)
}

func TestPollerKeys(t *testing.T) {
	device := &fakeDevice{keys: map[ebiten.Key]bool{ebiten.KeyW: true, ebiten.KeyShiftRight: true}}
	poller := newPoller(DefaultKeys(), device)
	state := poller.State()

	poller.Poll(false, false)
	assert.True(t, state.Pressed(input.KeyW))
	assert.True(t, input.Running(state))
	assert.False(t, state.Pressed(input.KeyS))

	device.keys[ebiten.KeyW] = false
	poller.Poll(false, false)
	assert.False(t, state.Pressed(input.KeyW))

	poller.Poll(false, true)
	assert.False(t, input.Running(state), "a captured keyboard reads as released")
}

func TestPollerPointer(t *testing.T) {
	device := &fakeDevice{x: 100, y: 50}
	poller := newPoller(KeyMap{}, device)
	state := poller.State()

	poller.Poll(false, false)
	assert.Equal(t, geom.V(100, 50), state.Pointer())
	assert.Equal(t, geom.Vec2{}, state.PointerDelta(), "the first poll has no motion")

	device.x, device.button = 110, true
	poller.Poll(false, false)
	assert.Equal(t, geom.V(10, 0), state.PointerDelta())
	assert.True(t, state.PointerDown())

	device.x = 140
	poller.Poll(true, false)
	assert.Equal(t, geom.Vec2{}, state.PointerDelta())
	assert.False(t, state.PointerDown())

	device.x = 145
	poller.Poll(false, false)
	assert.Equal(t, geom.V(5, 0), state.PointerDelta(), "motion while captured is not replayed")
}
