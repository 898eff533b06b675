package system

import (
	"go.uber.org/zap"

	"github.com/plus3/tickecs/ecs"
	"github.com/plus3/tickecs/game/component"
)

// LifetimeSystem counts down Lifetime and destroys the entity when it runs out.
type LifetimeSystem struct {
	lifetime ecs.ComponentType[component.Lifetime]
	logger   *zap.Logger
}

func NewLifetimeSystem(lifetime ecs.ComponentType[component.Lifetime], logger *zap.Logger) *LifetimeSystem {
	return &LifetimeSystem{lifetime: lifetime, logger: logger}
}

func (s *LifetimeSystem) Requires() []ecs.Kind { return []ecs.Kind{s.lifetime.Kind()} }

func (s *LifetimeSystem) Update(frame *ecs.UpdateFrame, entities *ecs.EntitySet) {
	for e := range entities.All() {
		lt, ok := s.lifetime.Get(frame.World, e)
		if !ok {
			continue
		}
		lt.Remaining -= frame.DeltaTime
		if lt.Remaining > 0 {
			continue
		}
		if err := frame.World.MarkForDestruction(e); err != nil {
			s.logger.Warn("expire entity", zap.Uint64("entity", uint64(e)), zap.Error(err))
		}
	}
}
