package ecs

import "errors"

var (
	// ErrNoSuchEntity is returned when an operation names an id that was never
	// allocated or has already been destroyed.
	ErrNoSuchEntity = errors.New("ecs: no such entity")

	// ErrUnregisteredComponent is returned when a component value or kind does
	// not belong to the world's ComponentRegistry.
	ErrUnregisteredComponent = errors.New("ecs: component type not registered")

	// ErrNilComponent is returned when a component is passed as a nil pointer.
	ErrNilComponent = errors.New("ecs: nil component")

	// ErrSystemRegistered is returned when the same system instance is registered twice.
	ErrSystemRegistered = errors.New("ecs: system already registered")

	// ErrSystemNotRegistered is returned when unregistering an unknown system.
	ErrSystemNotRegistered = errors.New("ecs: system not registered")

	// ErrSystemNotComparable is returned for systems whose dynamic type cannot be
	// used as an identity (use a pointer receiver).
	ErrSystemNotComparable = errors.New("ecs: system must be a comparable value")
)
