// Package system holds the shooter's systems. Every system is handed the
// services it talks to when it is constructed.
package system

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/plus3/tickecs/ecs"
	"github.com/plus3/tickecs/game/audio"
	"github.com/plus3/tickecs/game/component"
	"github.com/plus3/tickecs/game/input"
	"github.com/plus3/tickecs/game/physics"
	"github.com/plus3/tickecs/game/render"
)

// Services are the collaborators systems are built against.
type Services struct {
	Scene   *render.Scene
	Physics *physics.World
	Input   input.State
	Audio   audio.Player
	Logger  *zap.Logger
}

// Systems is the installed set, kept so callers can query the stateful ones.
type Systems struct {
	Camera    *CameraSystem
	Trigger   *TriggerSystem
	Control   *PlayerControlSystem
	Shoot     *ShootSystem
	Physics   *PhysicsSystem
	Lifetime  *LifetimeSystem
	Animation *SpriteAnimationSystem
	Alias     *AliasSystem
	Mesh      *MeshSystem
	Sprite    *SpriteSystem
	Light     *LightSystem
}

// Install builds every system and registers them in frame order: input
// first, then simulation, then the scene mirrors so they draw this frame's
// placement.
func Install(world *ecs.World, kinds component.Kinds, svc Services) (*Systems, error) {
	logger := svc.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	player := svc.Audio
	if player == nil {
		player = audio.Nop{}
	}
	registry := world.Registry()

	s := &Systems{
		Camera:    NewCameraSystem(registry, svc.Input, svc.Physics, svc.Scene, logger.Named("camera")),
		Trigger:   NewTriggerSystem(registry, svc.Input),
		Control:   NewPlayerControlSystem(registry, svc.Input, svc.Physics, logger.Named("control")),
		Shoot:     NewShootSystem(registry, svc.Physics, player, logger.Named("shoot")),
		Physics:   NewPhysicsSystem(registry, svc.Physics, logger.Named("physics")),
		Lifetime:  NewLifetimeSystem(kinds.Lifetime, logger.Named("lifetime")),
		Animation: NewSpriteAnimationSystem(registry),
		Alias:     NewAliasSystem(kinds.Alias, logger.Named("alias")),
		Mesh:      NewMeshSystem(registry, svc.Scene),
		Sprite:    NewSpriteSystem(registry, svc.Scene),
		Light:     NewLightSystem(registry, svc.Scene),
	}

	for _, sys := range []ecs.System{
		s.Camera,
		s.Trigger,
		s.Control,
		s.Shoot,
		s.Physics,
		s.Lifetime,
		s.Animation,
		s.Alias,
		s.Mesh,
		s.Sprite,
		s.Light,
	} {
		if err := world.Register(sys); err != nil {
			return nil, fmt.Errorf("install systems: %w", err)
		}
	}
	return s, nil
}
