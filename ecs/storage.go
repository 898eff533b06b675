package ecs

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/kamstrup/intmap"
)

// Storage is the keyed component container behind a World: one typed column
// per registered kind plus a row per live entity recording which kinds it
// carries. Storage knows nothing about systems.
type Storage struct {
	registry *ComponentRegistry
	columns  []iComponentStorage
	rows     *intmap.Map[EntityId, *entityRow]
	live     []EntityId
	alloc    entityAllocator
}

// NewStorage creates a new storage for the given component registry.
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry: registry,
		rows:     intmap.New[EntityId, *entityRow](1024),
		live:     make([]EntityId, 0, 1024),
	}
}

// Registry returns the registry the storage was built from.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// column returns the column for kind, creating columns for kinds registered
// after the storage was built.
func (s *Storage) column(kind Kind) iComponentStorage {
	for len(s.columns) < s.registry.Len() {
		s.columns = append(s.columns, s.registry.factories[len(s.columns)]())
	}
	return s.columns[kind]
}

func (s *Storage) allocate() EntityId {
	id := s.alloc.allocate()
	s.rows.Put(id, &entityRow{})
	// ids only grow, so appending keeps live sorted
	s.live = append(s.live, id)
	return id
}

func (s *Storage) row(id EntityId) (*entityRow, bool) {
	return s.rows.Get(id)
}

// Alive reports whether id names a live entity.
func (s *Storage) Alive(id EntityId) bool {
	return s.rows.Has(id)
}

// Mask returns the kinds the entity currently carries.
func (s *Storage) Mask(id EntityId) (Mask, bool) {
	row, ok := s.rows.Get(id)
	if !ok {
		return 0, false
	}
	return row.mask, true
}

// Len returns the number of live entities.
func (s *Storage) Len() int {
	return len(s.live)
}

// GetComponent returns the component of the given kind as a pointer, or nil.
func (s *Storage) GetComponent(id EntityId, kind Kind) any {
	if !s.registry.owns(kind) {
		return nil
	}
	row, ok := s.rows.Get(id)
	if !ok || !row.mask.Has(kind) {
		return nil
	}
	return s.column(kind).Get(id)
}

// HasComponent checks if an entity has a specific component kind.
func (s *Storage) HasComponent(id EntityId, kind Kind) bool {
	row, ok := s.rows.Get(id)
	return ok && row.mask.Has(kind)
}

// setValue installs value (a T or *T) under kind.
func (s *Storage) setValue(id EntityId, kind Kind, value any) error {
	row, ok := s.rows.Get(id)
	if !ok {
		return fmt.Errorf("set %s on entity %d: %w", s.registry.Name(kind), id, ErrNoSuchEntity)
	}
	if !s.column(kind).Set(id, value) {
		return fmt.Errorf("set %s on entity %d: value of type %s: %w",
			s.registry.Name(kind), id, reflect.TypeOf(value), ErrUnregisteredComponent)
	}
	row.mask = row.mask.With(kind)
	return nil
}

// remove deletes the value under kind, reporting whether one was present.
func (s *Storage) remove(id EntityId, kind Kind) (bool, error) {
	row, ok := s.rows.Get(id)
	if !ok {
		return false, fmt.Errorf("remove %s from entity %d: %w", s.registry.Name(kind), id, ErrNoSuchEntity)
	}
	if !row.mask.Has(kind) {
		return false, nil
	}
	s.column(kind).Delete(id)
	row.mask = row.mask.Without(kind)
	return true, nil
}

// drop deletes the entity's row and every component it carries.
func (s *Storage) drop(id EntityId) {
	row, ok := s.rows.Get(id)
	if !ok {
		return
	}
	for _, kind := range row.mask.Kinds() {
		s.column(kind).Delete(id)
	}
	s.rows.Del(id)
	if idx, found := slices.BinarySearch(s.live, id); found {
		s.live = slices.Delete(s.live, idx, idx+1)
	}
}

// Components returns pointers to every component the entity carries, in kind order.
func (s *Storage) Components(id EntityId) []any {
	row, ok := s.rows.Get(id)
	if !ok {
		return nil
	}
	kinds := row.mask.Kinds()
	components := make([]any, 0, len(kinds))
	for _, kind := range kinds {
		components = append(components, s.column(kind).Get(id))
	}
	return components
}

// ids returns a copy of the live ids in ascending order.
func (s *Storage) ids() []EntityId {
	return slices.Clone(s.live)
}

// ComponentReader is implemented by anything that can look components up by kind.
type ComponentReader interface {
	GetComponent(EntityId, Kind) any
}

// ReadComponent looks up T through a ComponentReader. It returns nil when the
// entity has no T or T is not registered.
func ReadComponent[T any](reader ComponentReader, registry *ComponentRegistry, entityId EntityId) *T {
	kind, ok := KindOf[T](registry)
	if !ok {
		return nil
	}
	component, _ := reader.GetComponent(entityId, kind).(*T)
	return component
}
