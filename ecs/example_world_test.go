package ecs_test

import (
	"fmt"

	"github.com/plus3/tickecs/ecs"
)

// ExampleWorld demonstrates the basic API for managing entities and components.
// Kinds are registered up front and the typed handles returned by
// RegisterComponent give checked access to each kind.
func ExampleWorld() {
	registry := ecs.NewComponentRegistry()
	position := ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	health := ecs.RegisterComponent[Health](registry)
	world := ecs.NewWorld(registry)

	player, _ := world.Spawn(
		Position{X: 10, Y: 20},
		Velocity{DX: 1, DY: 0},
	)

	pos, _ := position.Get(world, player)
	fmt.Printf("Player spawned at (%.0f, %.0f)\n", pos.X, pos.Y)

	pos.X = 15
	pos.Y = 25
	pos, _ = ecs.Get[Position](world, player)
	fmt.Printf("Player moved to (%.0f, %.0f)\n", pos.X, pos.Y)

	_, ok := health.Get(world, player)
	fmt.Printf("Has health: %v\n", ok)

	health.Set(world, player, Health{Current: 50, Max: 50})
	hp, ok := health.Get(world, player)
	fmt.Printf("Has health: %v (%d/%d)\n", ok, hp.Current, hp.Max)

	ecs.Remove[Velocity](world, player)
	fmt.Printf("Has velocity: %v\n", ecs.Has[Velocity](world, player))

	// Output:
	// Player spawned at (10, 20)
	// Player moved to (15, 25)
	// Has health: false
	// Has health: true (50/50)
	// Has velocity: false
}

type announcer struct {
	health ecs.ComponentType[Health]
}

func (a *announcer) Requires() []ecs.Kind { return []ecs.Kind{a.health.Kind()} }

func (a *announcer) OnEntityAdded(w *ecs.World, e ecs.EntityId) {
	fmt.Printf("entity %d can take damage\n", e)
}

func (a *announcer) OnEntityRemoved(w *ecs.World, e ecs.EntityId) {
	fmt.Printf("entity %d can no longer take damage\n", e)
}

// ExampleWorld_Register shows the membership callbacks. Registration reports
// the entities that already qualify, and every later change to an entity's
// components is reported as soon as it happens.
func ExampleWorld_Register() {
	registry := ecs.NewComponentRegistry()
	health := ecs.RegisterComponent[Health](registry)
	ecs.RegisterComponent[Position](registry)
	world := ecs.NewWorld(registry)
	scheduler := ecs.NewScheduler(world)

	tank, _ := world.Spawn(Health{Current: 10, Max: 10})
	world.Spawn(Position{})

	world.Register(&announcer{health: health})

	crate, _ := world.Spawn(Position{})
	health.Set(world, crate, Health{Current: 1, Max: 1})

	world.MarkForDestruction(tank)
	fmt.Println("tank marked")
	scheduler.Step(0)

	health.Remove(world, crate)

	// Output:
	// entity 1 can take damage
	// entity 3 can take damage
	// tank marked
	// entity 1 can no longer take damage
	// entity 3 can no longer take damage
}
