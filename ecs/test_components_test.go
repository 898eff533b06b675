package ecs_test

import (
	"fmt"

	"github.com/plus3/tickecs/ecs"
)

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Name struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

type Mesh struct {
	Shape string
}

type Collider struct {
	Radius float32
}

// Custom primitive types for testing non-struct components
type Score int32
type Tag string

type Inventory struct {
	Items []string
}

type testKinds struct {
	Position ecs.ComponentType[Position]
	Velocity ecs.ComponentType[Velocity]
	Name     ecs.ComponentType[Name]
	Health   ecs.ComponentType[Health]
	Mesh     ecs.ComponentType[Mesh]
	Collider ecs.ComponentType[Collider]
	Score    ecs.ComponentType[Score]
	Tag      ecs.ComponentType[Tag]
	Inv      ecs.ComponentType[Inventory]
}

func newTestRegistry() (*ecs.ComponentRegistry, testKinds) {
	registry := ecs.NewComponentRegistry()
	kinds := testKinds{
		Position: ecs.RegisterComponent[Position](registry),
		Velocity: ecs.RegisterComponent[Velocity](registry),
		Name:     ecs.RegisterComponent[Name](registry),
		Health:   ecs.RegisterComponent[Health](registry),
		Mesh:     ecs.RegisterComponent[Mesh](registry),
		Collider: ecs.RegisterComponent[Collider](registry),
		Score:    ecs.RegisterComponent[Score](registry),
		Tag:      ecs.RegisterComponent[Tag](registry),
		Inv:      ecs.RegisterComponent[Inventory](registry),
	}
	return registry, kinds
}

func newTestWorld() (*ecs.World, testKinds) {
	registry, kinds := newTestRegistry()
	return ecs.NewWorld(registry), kinds
}

// recordingSystem records every callback it receives into a shared log so
// tests can assert on ordering across systems.
type recordingSystem struct {
	name     string
	requires []ecs.Kind
	log      *[]string

	updates [][]ecs.EntityId
	onUpdate func(frame *ecs.UpdateFrame, entities *ecs.EntitySet)
}

func newRecordingSystem(name string, log *[]string, kinds ...ecs.Kind) *recordingSystem {
	return &recordingSystem{name: name, requires: kinds, log: log}
}

func (s *recordingSystem) Requires() []ecs.Kind {
	return s.requires
}

func (s *recordingSystem) Update(frame *ecs.UpdateFrame, entities *ecs.EntitySet) {
	*s.log = append(*s.log, s.name+".update")
	seen := make([]ecs.EntityId, 0, entities.Len())
	for e := range entities.All() {
		seen = append(seen, e)
	}
	s.updates = append(s.updates, seen)
	if s.onUpdate != nil {
		s.onUpdate(frame, entities)
	}
}

func (s *recordingSystem) OnEntityAdded(w *ecs.World, e ecs.EntityId) {
	*s.log = append(*s.log, fmt.Sprintf("%s.added(%d)", s.name, e))
}

func (s *recordingSystem) OnEntityRemoved(w *ecs.World, e ecs.EntityId) {
	*s.log = append(*s.log, fmt.Sprintf("%s.removed(%d)", s.name, e))
}

func (s *recordingSystem) lastUpdate() []ecs.EntityId {
	if len(s.updates) == 0 {
		return nil
	}
	return s.updates[len(s.updates)-1]
}
