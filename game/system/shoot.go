package system

import (
	"image/color"

	"go.uber.org/zap"

	"github.com/plus3/tickecs/ecs"
	"github.com/plus3/tickecs/game/audio"
	"github.com/plus3/tickecs/game/component"
	"github.com/plus3/tickecs/game/geom"
	"github.com/plus3/tickecs/game/physics"
	"github.com/plus3/tickecs/game/render"
)

// BulletColor is the wireframe color of spawned bullets.
var BulletColor = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

type shooterEntity struct {
	*component.Transform
	*component.Shoot
}

// ShootSystem fires one bullet each time ShouldShoot is raised on an idle
// shooter. The shooter stays busy for Shoot.Duration.
type ShootSystem struct {
	view   *ecs.View[shooterEntity]
	bodies *physics.World
	audio  audio.Player
	logger *zap.Logger
}

func NewShootSystem(registry *ecs.ComponentRegistry, bodies *physics.World, player audio.Player, logger *zap.Logger) *ShootSystem {
	return &ShootSystem{
		view:   ecs.NewView[shooterEntity](registry),
		bodies: bodies,
		audio:  player,
		logger: logger,
	}
}

func (s *ShootSystem) Requires() []ecs.Kind { return s.view.Kinds() }

func (s *ShootSystem) Update(frame *ecs.UpdateFrame, entities *ecs.EntitySet) {
	for id, item := range s.view.Iter(frame.World, entities) {
		shoot := item.Shoot
		if shoot.Shooting {
			shoot.Remaining -= frame.DeltaTime
			if shoot.Remaining <= 0 {
				shoot.Remaining = 0
				shoot.Shooting = false
			}
		}
		if !shoot.ShouldShoot || shoot.Shooting {
			continue
		}
		shoot.ShouldShoot = false
		shoot.Shooting = true
		shoot.Remaining = shoot.Duration

		if shoot.Audio != "" {
			if err := s.audio.Play(shoot.Audio); err != nil {
				s.logger.Warn("play shot", zap.String("clip", shoot.Audio), zap.Error(err))
			}
		}
		bullet, err := s.fire(frame.World, item.Transform, shoot)
		if err != nil {
			s.logger.Error("spawn bullet", zap.Uint64("shooter", uint64(id)), zap.Error(err))
			continue
		}
		s.logger.Debug("fired", zap.Uint64("shooter", uint64(id)), zap.Uint64("bullet", uint64(bullet)))
	}
}

func (s *ShootSystem) fire(w *ecs.World, from *component.Transform, shoot *component.Shoot) (ecs.EntityId, error) {
	direction := geom.Heading(from.Rotation)
	position := from.Position.Add(direction.Scale(shoot.BulletSeparation))

	h := s.bodies.CreateBody(physics.BodyDesc{
		Type:     physics.Dynamic,
		Shape:    physics.CircleShape(shoot.BulletRadius),
		Position: position,
		Rotation: from.Rotation,
		Mass:     1,
	})
	if err := s.bodies.ApplyImpulse(h, direction.Scale(shoot.BulletSpeed)); err != nil {
		return 0, err
	}

	components := []any{
		component.Transform{Position: position, Rotation: from.Rotation, Scale: geom.V(1, 1)},
		component.Mesh{
			Shape:     render.ShapeCircle,
			Size:      geom.V(shoot.BulletRadius*2, shoot.BulletRadius*2),
			Color:     BulletColor,
			Wireframe: true,
		},
		component.Collider{Handle: h},
	}
	if shoot.BulletLifetime > 0 {
		components = append(components, component.Lifetime{Remaining: shoot.BulletLifetime})
	}
	e, err := w.Spawn(components...)
	if err != nil {
		_ = s.bodies.RemoveBody(h)
		return 0, err
	}
	return e, nil
}
