// Package input describes the per-frame input state systems read. The
// platform layer polls devices once per frame and hands systems a snapshot.
package input

import "github.com/plus3/tickecs/game/geom"

// Key names used by the default control scheme. Platforms translate their
// own key codes to these names.
const (
	KeyW          = "W"
	KeyA          = "A"
	KeyS          = "S"
	KeyD          = "D"
	KeyShiftLeft  = "ShiftLeft"
	KeyShiftRight = "ShiftRight"
	KeyEscape     = "Escape"
)

// State is the input visible to systems during one frame.
type State interface {
	Pressed(key string) bool
	Pointer() geom.Vec2
	PointerDelta() geom.Vec2
	PointerDown() bool
}

// Snapshot is a plain State. The zero value has nothing pressed.
type Snapshot struct {
	Keys     map[string]bool
	Position geom.Vec2
	Delta    geom.Vec2
	Down     bool
}

func (s *Snapshot) Pressed(key string) bool { return s.Keys[key] }
func (s *Snapshot) Pointer() geom.Vec2      { return s.Position }
func (s *Snapshot) PointerDelta() geom.Vec2 { return s.Delta }
func (s *Snapshot) PointerDown() bool       { return s.Down }

// Press marks keys as held.
func (s *Snapshot) Press(keys ...string) {
	if s.Keys == nil {
		s.Keys = make(map[string]bool, len(keys))
	}
	for _, k := range keys {
		s.Keys[k] = true
	}
}

// Release clears keys.
func (s *Snapshot) Release(keys ...string) {
	for _, k := range keys {
		delete(s.Keys, k)
	}
}

// MovePointer moves the pointer to p and records the delta from its last
// position.
func (s *Snapshot) MovePointer(p geom.Vec2) {
	s.Delta = p.Sub(s.Position)
	s.Position = p
}

// Running reports whether either shift key is held.
func Running(s State) bool {
	return s.Pressed(KeyShiftLeft) || s.Pressed(KeyShiftRight)
}
