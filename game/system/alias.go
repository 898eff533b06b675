package system

import (
	"go.uber.org/zap"

	"github.com/plus3/tickecs/ecs"
	"github.com/plus3/tickecs/game/component"
)

// AliasSystem indexes entities by their Alias. When two entities share an
// alias the later one wins.
type AliasSystem struct {
	alias  ecs.ComponentType[component.Alias]
	logger *zap.Logger

	byAlias  map[string]ecs.EntityId
	byEntity map[ecs.EntityId]string
}

func NewAliasSystem(alias ecs.ComponentType[component.Alias], logger *zap.Logger) *AliasSystem {
	return &AliasSystem{
		alias:    alias,
		logger:   logger,
		byAlias:  make(map[string]ecs.EntityId),
		byEntity: make(map[ecs.EntityId]string),
	}
}

func (s *AliasSystem) Requires() []ecs.Kind { return []ecs.Kind{s.alias.Kind()} }

func (s *AliasSystem) OnEntityAdded(w *ecs.World, e ecs.EntityId) {
	alias, ok := s.alias.Get(w, e)
	if !ok {
		return
	}
	name := string(*alias)
	if prev, taken := s.byAlias[name]; taken && prev != e {
		s.logger.Warn("alias reassigned",
			zap.String("alias", name),
			zap.Uint64("from", uint64(prev)),
			zap.Uint64("to", uint64(e)))
	}
	s.byAlias[name] = e
	s.byEntity[e] = name
}

func (s *AliasSystem) OnEntityRemoved(w *ecs.World, e ecs.EntityId) {
	name, ok := s.byEntity[e]
	if !ok {
		return
	}
	delete(s.byEntity, e)
	if s.byAlias[name] == e {
		delete(s.byAlias, name)
	}
}

// Lookup returns the entity carrying alias.
func (s *AliasSystem) Lookup(alias string) (ecs.EntityId, bool) {
	e, ok := s.byAlias[alias]
	return e, ok
}

// Len returns the number of aliases in use.
func (s *AliasSystem) Len() int {
	return len(s.byAlias)
}
