package system

import (
	"math"

	"go.uber.org/zap"

	"github.com/plus3/tickecs/ecs"
	"github.com/plus3/tickecs/game/component"
	"github.com/plus3/tickecs/game/geom"
	"github.com/plus3/tickecs/game/input"
	"github.com/plus3/tickecs/game/physics"
)

type controlledEntity struct {
	*component.Transform
	*component.PlayerControl
	*component.Collider
}

// PlayerControlSystem moves player bodies from the keyboard. Forward follows
// the body's rotation; the side keys strafe. Holding shift doubles the speed.
// Movement slides along static bodies.
type PlayerControlSystem struct {
	view   *ecs.View[controlledEntity]
	input  input.State
	bodies *physics.World
	logger *zap.Logger
}

func NewPlayerControlSystem(registry *ecs.ComponentRegistry, in input.State, bodies *physics.World, logger *zap.Logger) *PlayerControlSystem {
	return &PlayerControlSystem{
		view:   ecs.NewView[controlledEntity](registry),
		input:  in,
		bodies: bodies,
		logger: logger,
	}
}

func (s *PlayerControlSystem) Requires() []ecs.Kind { return s.view.Kinds() }

func (s *PlayerControlSystem) Update(frame *ecs.UpdateFrame, entities *ecs.EntitySet) {
	dt := frame.Seconds()
	for id, item := range s.view.Iter(frame.World, entities) {
		delta := s.movement(item.PlayerControl, item.Transform.Rotation, dt)
		if delta.IsZero() {
			continue
		}
		if _, err := s.bodies.MoveAndSlide(item.Collider.Handle, delta); err != nil {
			s.logger.Warn("move player", zap.Uint64("entity", uint64(id)), zap.Error(err))
		}
	}
}

func (s *PlayerControlSystem) movement(pc *component.PlayerControl, rotation, dt float64) geom.Vec2 {
	var forward, side float64
	if s.input.Pressed(pc.Keys.Forward) {
		forward += pc.Speed
	}
	if s.input.Pressed(pc.Keys.Backward) {
		forward -= pc.Speed
	}
	if s.input.Pressed(pc.Keys.RotateLeft) {
		side -= pc.Speed
	}
	if s.input.Pressed(pc.Keys.RotateRight) {
		side += pc.Speed
	}
	if input.Running(s.input) {
		forward *= 2
		side *= 2
	}
	ahead := geom.Heading(rotation).Scale(forward * dt)
	right := geom.Heading(rotation + math.Pi/2).Scale(side * dt)
	return ahead.Add(right)
}

type triggerEntity struct {
	*component.Shoot
	Animation *component.SpriteAnimation `ecs:"optional"`
}

// TriggerSystem raises ShouldShoot while the pointer is held and the shooter
// is idle, and starts the shooter's animation with it.
type TriggerSystem struct {
	view  *ecs.View[triggerEntity]
	input input.State
}

func NewTriggerSystem(registry *ecs.ComponentRegistry, in input.State) *TriggerSystem {
	return &TriggerSystem{
		view:  ecs.NewView[triggerEntity](registry),
		input: in,
	}
}

func (s *TriggerSystem) Requires() []ecs.Kind { return s.view.Kinds() }

func (s *TriggerSystem) Update(frame *ecs.UpdateFrame, entities *ecs.EntitySet) {
	if !s.input.PointerDown() {
		return
	}
	for _, item := range s.view.Iter(frame.World, entities) {
		if item.Shoot.Shooting {
			continue
		}
		item.Shoot.ShouldShoot = true
		if item.Animation != nil {
			item.Animation.ShouldBeActive = true
		}
	}
}
