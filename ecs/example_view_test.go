package ecs_test

import (
	"fmt"

	"github.com/plus3/tickecs/ecs"
)

// ExampleView demonstrates reading several components of one entity at once.
// A view maps a struct of component pointers onto an entity; Get returns nil
// when the entity lacks any required component.
func ExampleView() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Health](registry)
	world := ecs.NewWorld(registry)

	player, _ := world.Spawn(
		Position{X: 10, Y: 20},
		Velocity{DX: 1, DY: 0},
		Health{Current: 100, Max: 100},
	)

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](registry)

	if item := view.Get(world, player); item != nil {
		fmt.Printf("Player at (%.0f, %.0f) moving (%.0f, %.0f)\n",
			item.Position.X, item.Position.Y, item.Velocity.DX, item.Velocity.DY)
	}

	// Output:
	// Player at (10, 20) moving (1, 0)
}

type Drifter struct {
	view *ecs.View[struct {
		Id ecs.EntityId
		*Position
		*Velocity
		Health *Health `ecs:"optional"`
	}]
}

func (d *Drifter) Requires() []ecs.Kind {
	return d.view.Kinds()
}

func (d *Drifter) Update(frame *ecs.UpdateFrame, entities *ecs.EntitySet) {
	for _, item := range d.view.Iter(frame.World, entities) {
		item.Position.X += item.Velocity.DX
		item.Position.Y += item.Velocity.DY
		if item.Health != nil {
			fmt.Printf("entity %d at (%.0f, %.0f) with %d hp\n", item.Id, item.Position.X, item.Position.Y, item.Health.Current)
		} else {
			fmt.Printf("entity %d at (%.0f, %.0f)\n", item.Id, item.Position.X, item.Position.Y)
		}
	}
}

// ExampleView_Iter shows a system whose requirements come from a view. The
// view's required kinds become the system's requirement set, so every entity
// in the matched set fills the view. Optional fields are nil when absent and
// an EntityId field receives the entity's id.
func ExampleView_Iter() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Health](registry)
	world := ecs.NewWorld(registry)

	world.Spawn(Position{X: 0, Y: 0}, Velocity{DX: 1, DY: 0})
	world.Spawn(Position{X: 10, Y: 10}, Velocity{DX: 0, DY: 1}, Health{Current: 50, Max: 100})
	world.Spawn(Position{X: 100, Y: 100})

	drifter := &Drifter{}
	drifter.view = ecs.NewView[struct {
		Id ecs.EntityId
		*Position
		*Velocity
		Health *Health `ecs:"optional"`
	}](registry)
	world.Register(drifter)

	ecs.NewScheduler(world).Step(0)

	// Output:
	// entity 1 at (1, 0)
	// entity 2 at (10, 11) with 50 hp
}

// ExampleView_Spawn creates an entity from a populated view struct. Nil
// optional fields are skipped.
func ExampleView_Spawn() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Name](registry)
	world := ecs.NewWorld(registry)

	type spawnable struct {
		*Position
		Name *Name `ecs:"optional"`
	}
	view := ecs.NewView[spawnable](registry)

	named, _ := view.Spawn(world, spawnable{Position: &Position{X: 1}, Name: &Name{Value: "crate"}})
	anonymous, _ := view.Spawn(world, spawnable{Position: &Position{X: 2}})

	fmt.Println(len(world.Components(named)), len(world.Components(anonymous)))
	// Output:
	// 2 1
}
