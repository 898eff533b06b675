package system

import (
	"math"

	"go.uber.org/zap"

	"github.com/plus3/tickecs/ecs"
	"github.com/plus3/tickecs/game/component"
	"github.com/plus3/tickecs/game/geom"
	"github.com/plus3/tickecs/game/input"
	"github.com/plus3/tickecs/game/physics"
	"github.com/plus3/tickecs/game/render"
)

type cameraEntity struct {
	*component.Transform
	*component.CameraTarget
	*component.Collider
}

// CameraSystem turns the followed body with horizontal pointer movement and
// keeps the scene camera on it, rotated so the body faces up the screen. Only
// the first matched entity is followed.
type CameraSystem struct {
	view   *ecs.View[cameraEntity]
	input  input.State
	bodies *physics.World
	scene  *render.Scene
	logger *zap.Logger

	yaw map[ecs.EntityId]float64
}

func NewCameraSystem(registry *ecs.ComponentRegistry, in input.State, bodies *physics.World, scene *render.Scene, logger *zap.Logger) *CameraSystem {
	return &CameraSystem{
		view:   ecs.NewView[cameraEntity](registry),
		input:  in,
		bodies: bodies,
		scene:  scene,
		logger: logger,
		yaw:    make(map[ecs.EntityId]float64),
	}
}

func (s *CameraSystem) Requires() []ecs.Kind { return s.view.Kinds() }

func (s *CameraSystem) OnEntityAdded(w *ecs.World, e ecs.EntityId) {
	if item := s.view.Get(w, e); item != nil {
		s.yaw[e] = item.Transform.Rotation
	}
}

func (s *CameraSystem) OnEntityRemoved(w *ecs.World, e ecs.EntityId) {
	delete(s.yaw, e)
}

func (s *CameraSystem) Update(frame *ecs.UpdateFrame, entities *ecs.EntitySet) {
	for id, item := range s.view.Iter(frame.World, entities) {
		body, ok := s.bodies.Body(item.Collider.Handle)
		if !ok {
			continue
		}
		target := item.CameraTarget

		yaw := s.yaw[id] + s.input.PointerDelta().X*target.RotationSpeed
		s.yaw[id] = yaw
		t := geom.Clamp(frame.Seconds()*target.LerpSpeed, 0, 1)
		rotation := geom.LerpAngle(body.Rotation(), yaw, t)

		if err := s.bodies.SetRotation(item.Collider.Handle, rotation); err != nil {
			s.logger.Warn("rotate camera target", zap.Uint64("entity", uint64(id)), zap.Error(err))
			continue
		}
		item.Transform.Rotation = rotation

		s.scene.Camera.Rotation = rotation + math.Pi/2
		s.scene.Camera.Position = body.Translation().Add(geom.Heading(rotation).Scale(target.Distance))
		return
	}
}

// Yaw returns the rotation the camera is turning e towards.
func (s *CameraSystem) Yaw(e ecs.EntityId) float64 {
	return s.yaw[e]
}
