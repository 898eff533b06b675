package level

import (
	"fmt"
	"image/color"

	"github.com/plus3/tickecs/ecs"
	"github.com/plus3/tickecs/game/component"
	"github.com/plus3/tickecs/game/config"
	"github.com/plus3/tickecs/game/geom"
	"github.com/plus3/tickecs/game/input"
	"github.com/plus3/tickecs/game/physics"
	"github.com/plus3/tickecs/game/render"
)

// PlayerAlias is the alias the player entity is spawned with.
const PlayerAlias = "player"

var playerColor = color.RGBA{B: 0xff, A: 0xff}

// SpawnPlayer creates the player at the level's spawn point: a capsule body
// driven by WASD, carrying the gun sprite, its shoot animation and the
// camera.
func (l *Level) SpawnPlayer(world *ecs.World, bodies *physics.World, player config.PlayerConfig, camera config.CameraConfig) (ecs.EntityId, error) {
	position := l.Player.Position.Vec()
	h := bodies.CreateBody(physics.BodyDesc{
		Type:     physics.Dynamic,
		Shape:    physics.CircleShape(player.Radius),
		Position: position,
		Rotation: l.Player.Rotation,
		Damping:  8,
	})

	gun := geom.V(player.Radius*2, player.Radius*2)
	e, err := world.Spawn(
		component.Transform{Position: position, Rotation: l.Player.Rotation, Scale: geom.V(1, 1)},
		component.Mesh{Shape: render.ShapeCapsule, Size: geom.V(player.Radius*2, player.Radius*3), Color: playerColor, Wireframe: true},
		component.Collider{Handle: h},
		component.PlayerControl{
			Keys: component.ControlKeys{
				Forward:     input.KeyW,
				Backward:    input.KeyS,
				RotateLeft:  input.KeyA,
				RotateRight: input.KeyD,
			},
			Speed: player.Speed,
		},
		component.Sprite{Texture: player.DefaultFrame, Size: gun, Offset: geom.V(player.Radius, 0), Layer: 1},
		component.SpriteAnimation{
			Frames:        player.Frames,
			FrameDuration: player.FrameDuration,
			DefaultFrame:  player.DefaultFrame,
		},
		component.Shoot{
			Audio:            player.ShootSound,
			Duration:         player.ShootDuration,
			BulletSeparation: player.BulletSeparation,
			BulletSpeed:      player.BulletSpeed,
			BulletRadius:     player.BulletRadius,
			BulletLifetime:   player.BulletLifetime,
		},
		component.CameraTarget{
			RotationSpeed: camera.RotationSpeed,
			LerpSpeed:     camera.LerpSpeed,
		},
		component.Alias(PlayerAlias),
	)
	if err != nil {
		_ = bodies.RemoveBody(h)
		return 0, fmt.Errorf("spawn player: %w", err)
	}
	return e, nil
}
