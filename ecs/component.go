package ecs

import (
	"fmt"
	"reflect"
)

// ComponentType is the typed handle for a registered component kind. It is
// returned by RegisterComponent and gives compile-time checked access to the
// values of that kind.
type ComponentType[T any] struct {
	kind     Kind
	registry *ComponentRegistry
}

// Kind returns the kind index of T.
func (c ComponentType[T]) Kind() Kind {
	return c.kind
}

// Name returns the registered name of T.
func (c ComponentType[T]) Name() string {
	if c.registry == nil {
		return reflect.TypeFor[T]().String()
	}
	return c.registry.Name(c.kind)
}

// Get returns the entity's T. The boolean is false when the entity does not
// carry T or is not alive.
func (c ComponentType[T]) Get(w *World, e EntityId) (*T, bool) {
	if c.registry != w.registry {
		return Get[T](w, e)
	}
	return column[T](w.storage, c.kind).lookup(e)
}

// Has reports whether the entity carries T.
func (c ComponentType[T]) Has(w *World, e EntityId) bool {
	_, ok := c.Get(w, e)
	return ok
}

// Set installs or overwrites the entity's T.
func (c ComponentType[T]) Set(w *World, e EntityId, value T) error {
	if c.registry != w.registry {
		return Set(w, e, value)
	}
	return w.setTyped(e, c.kind, func() { column[T](w.storage, c.kind).put(e, value) })
}

// Remove deletes the entity's T if present.
func (c ComponentType[T]) Remove(w *World, e EntityId) error {
	if c.registry != w.registry {
		return Remove[T](w, e)
	}
	return w.RemoveKind(e, c.kind)
}

// Get returns the entity's T. The boolean is false when the entity does not
// carry T, is not alive, or T was never registered.
func Get[T any](w *World, e EntityId) (*T, bool) {
	kind, ok := KindOf[T](w.registry)
	if !ok {
		return nil, false
	}
	return column[T](w.storage, kind).lookup(e)
}

// Has reports whether the entity carries T.
func Has[T any](w *World, e EntityId) bool {
	_, ok := Get[T](w, e)
	return ok
}

// Set installs or overwrites the entity's T and re-evaluates system membership.
func Set[T any](w *World, e EntityId, value T) error {
	kind, ok := KindOf[T](w.registry)
	if !ok {
		return fmt.Errorf("set %s on entity %d: %w", reflect.TypeFor[T](), e, ErrUnregisteredComponent)
	}
	return w.setTyped(e, kind, func() { column[T](w.storage, kind).put(e, value) })
}

// Remove deletes the entity's T if present and re-evaluates system membership.
// Removing a kind the entity does not carry is not an error.
func Remove[T any](w *World, e EntityId) error {
	kind, ok := KindOf[T](w.registry)
	if !ok {
		return fmt.Errorf("remove %s from entity %d: %w", reflect.TypeFor[T](), e, ErrUnregisteredComponent)
	}
	return w.RemoveKind(e, kind)
}

func column[T any](s *Storage, kind Kind) *genericComponentStorage[T] {
	return s.column(kind).(*genericComponentStorage[T])
}
