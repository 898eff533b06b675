package ecs

import (
	"iter"
	"slices"

	"github.com/kamstrup/intmap"
)

// EntitySet is a system's matched set: the live entities whose components are
// a superset of the system's requirements. The world keeps it current as
// components change; systems only read it.
type EntitySet struct {
	order []EntityId
	index *intmap.Map[EntityId, int]
}

func newEntitySet() *EntitySet {
	return &EntitySet{
		index: intmap.New[EntityId, int](64),
	}
}

func (s *EntitySet) add(e EntityId) bool {
	if s.index.Has(e) {
		return false
	}
	s.index.Put(e, len(s.order))
	s.order = append(s.order, e)
	return true
}

func (s *EntitySet) remove(e EntityId) bool {
	pos, ok := s.index.Get(e)
	if !ok {
		return false
	}
	last := len(s.order) - 1
	if pos != last {
		moved := s.order[last]
		s.order[pos] = moved
		s.index.Put(moved, pos)
	}
	s.order = s.order[:last]
	s.index.Del(e)
	return true
}

// Has reports whether e is in the set.
func (s *EntitySet) Has(e EntityId) bool {
	return s.index.Has(e)
}

// Len returns the number of entities in the set.
func (s *EntitySet) Len() int {
	return len(s.order)
}

// Slice returns a copy of the members.
func (s *EntitySet) Slice() []EntityId {
	return slices.Clone(s.order)
}

// All iterates the members present when iteration starts. Members removed
// before they are reached are skipped and members added during iteration are
// not visited, so every entity is yielded at most once per call.
func (s *EntitySet) All() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		snapshot := slices.Clone(s.order)
		for _, e := range snapshot {
			if !s.index.Has(e) {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}
