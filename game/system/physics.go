package system

import (
	"go.uber.org/zap"

	"github.com/plus3/tickecs/ecs"
	"github.com/plus3/tickecs/game/component"
	"github.com/plus3/tickecs/game/physics"
)

// Collision is a contact between two entities that started or stopped this
// frame.
type Collision struct {
	A, B    ecs.EntityId
	Started bool
}

type bodyEntity struct {
	*component.Transform
	*component.Collider
}

// PhysicsSystem steps the physics world once per frame and copies body
// placement back onto Transform. It owns the bodies of its entities: a body is
// removed when its entity stops matching.
type PhysicsSystem struct {
	view   *ecs.View[bodyEntity]
	bodies *physics.World
	logger *zap.Logger

	handles    map[physics.Handle]ecs.EntityId
	entities   map[ecs.EntityId]physics.Handle
	collisions []Collision
}

func NewPhysicsSystem(registry *ecs.ComponentRegistry, bodies *physics.World, logger *zap.Logger) *PhysicsSystem {
	return &PhysicsSystem{
		view:     ecs.NewView[bodyEntity](registry),
		bodies:   bodies,
		logger:   logger,
		handles:  make(map[physics.Handle]ecs.EntityId),
		entities: make(map[ecs.EntityId]physics.Handle),
	}
}

func (s *PhysicsSystem) Requires() []ecs.Kind { return s.view.Kinds() }

func (s *PhysicsSystem) OnEntityAdded(w *ecs.World, e ecs.EntityId) {
	item := s.view.Get(w, e)
	if item == nil {
		return
	}
	s.handles[item.Collider.Handle] = e
	s.entities[e] = item.Collider.Handle
}

func (s *PhysicsSystem) OnEntityRemoved(w *ecs.World, e ecs.EntityId) {
	h, ok := s.entities[e]
	if !ok {
		return
	}
	delete(s.entities, e)
	delete(s.handles, h)
	if err := s.bodies.RemoveBody(h); err != nil {
		s.logger.Warn("remove body", zap.Uint64("entity", uint64(e)), zap.Error(err))
	}
}

func (s *PhysicsSystem) Update(frame *ecs.UpdateFrame, entities *ecs.EntitySet) {
	s.collisions = s.collisions[:0]
	for _, ev := range s.bodies.Step(frame.Seconds()) {
		a, okA := s.handles[ev.A]
		b, okB := s.handles[ev.B]
		if !okA || !okB {
			continue
		}
		s.collisions = append(s.collisions, Collision{A: a, B: b, Started: ev.Started})
	}

	for _, item := range s.view.Iter(frame.World, entities) {
		body, ok := s.bodies.Body(item.Collider.Handle)
		if !ok {
			continue
		}
		item.Transform.Position = body.Translation()
		item.Transform.Rotation = body.Rotation()
	}
}

// Collisions returns the contacts reported by the last step. The slice is
// reused by the next Update.
func (s *PhysicsSystem) Collisions() []Collision {
	return s.collisions
}

// Entity returns the entity owning the body h.
func (s *PhysicsSystem) Entity(h physics.Handle) (ecs.EntityId, bool) {
	e, ok := s.handles[h]
	return e, ok
}
