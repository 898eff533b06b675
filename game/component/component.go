// Package component defines the closed set of component kinds the shooter
// attaches to entities.
package component

import (
	"image/color"
	"time"

	"github.com/plus3/tickecs/ecs"
	"github.com/plus3/tickecs/game/geom"
	"github.com/plus3/tickecs/game/physics"
	"github.com/plus3/tickecs/game/render"
)

// Transform places an entity in the world. Rotation is in radians.
type Transform struct {
	Position geom.Vec2
	Rotation float64
	Scale    geom.Vec2
}

// At returns a unit-scale transform at p.
func At(p geom.Vec2) Transform {
	return Transform{Position: p, Scale: geom.V(1, 1)}
}

type Mesh struct {
	Shape     render.Shape
	Size      geom.Vec2
	Color     color.RGBA
	Wireframe bool
	Layer     int
}

type Sprite struct {
	Texture string
	Size    geom.Vec2
	Offset  geom.Vec2
	Layer   int
}

type AmbientLight struct {
	Color     color.RGBA
	Intensity float64
}

// Collider links an entity to its body in the physics world.
type Collider struct {
	Handle physics.Handle
}

// ControlKeys names the keys bound to each movement direction.
type ControlKeys struct {
	Forward     string
	Backward    string
	RotateLeft  string
	RotateRight string
}

type PlayerControl struct {
	Keys ControlKeys
	// Speed is in world units per second. Holding a run key doubles it.
	Speed float64
}

// Shoot fires a bullet when ShouldShoot is raised and the shooter is not
// already Shooting. Shooting stays set for Duration, counted down in
// Remaining once per tick.
type Shoot struct {
	Audio            string
	Shooting         bool
	ShouldShoot      bool
	Duration         time.Duration
	Remaining        time.Duration
	BulletSeparation float64
	BulletSpeed      float64
	BulletRadius     float64
	BulletLifetime   time.Duration
}

// SpriteAnimation flips the entity's Sprite texture through Frames once each
// time ShouldBeActive is raised, then restores DefaultFrame.
type SpriteAnimation struct {
	Frames         []string
	FrameDuration  time.Duration
	DefaultFrame   string
	Active         bool
	ShouldBeActive bool
	Elapsed        time.Duration
}

// Frame returns frame i, or DefaultFrame when i is out of range.
func (a *SpriteAnimation) Frame(i int) string {
	if i < 0 || i >= len(a.Frames) {
		return a.DefaultFrame
	}
	return a.Frames[i]
}

// Alias names an entity so it can be found by string.
type Alias string

// Lifetime destroys the entity once Remaining reaches zero.
type Lifetime struct {
	Remaining time.Duration
}

// CameraTarget makes the camera follow the entity and turns the entity with
// the pointer.
type CameraTarget struct {
	Distance      float64
	RotationSpeed float64
	LerpSpeed     float64
}

// Kinds holds the typed handle of every component kind.
type Kinds struct {
	Transform       ecs.ComponentType[Transform]
	Mesh            ecs.ComponentType[Mesh]
	Sprite          ecs.ComponentType[Sprite]
	AmbientLight    ecs.ComponentType[AmbientLight]
	Collider        ecs.ComponentType[Collider]
	PlayerControl   ecs.ComponentType[PlayerControl]
	Shoot           ecs.ComponentType[Shoot]
	SpriteAnimation ecs.ComponentType[SpriteAnimation]
	Alias           ecs.ComponentType[Alias]
	Lifetime        ecs.ComponentType[Lifetime]
	CameraTarget    ecs.ComponentType[CameraTarget]
}

// Register adds every component kind to registry.
func Register(registry *ecs.ComponentRegistry) Kinds {
	return Kinds{
		Transform:       ecs.RegisterComponent[Transform](registry),
		Mesh:            ecs.RegisterComponent[Mesh](registry),
		Sprite:          ecs.RegisterComponent[Sprite](registry),
		AmbientLight:    ecs.RegisterComponent[AmbientLight](registry),
		Collider:        ecs.RegisterComponent[Collider](registry),
		PlayerControl:   ecs.RegisterComponent[PlayerControl](registry),
		Shoot:           ecs.RegisterComponent[Shoot](registry),
		SpriteAnimation: ecs.RegisterComponent[SpriteAnimation](registry),
		Alias:           ecs.RegisterComponent[Alias](registry),
		Lifetime:        ecs.RegisterComponent[Lifetime](registry),
		CameraTarget:    ecs.RegisterComponent[CameraTarget](registry),
	}
}
