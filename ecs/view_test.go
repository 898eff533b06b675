package ecs_test

import (
	"testing"

	"github.com/plus3/tickecs/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestView(t *testing.T) {
	world, _ := newTestWorld()
	entityId, err := world.Spawn(&Position{X: 1, Y: 2}, Score(32))
	require.NoError(t, err)

	view := ecs.NewView[struct {
		*Position
		*Score
	}](world.Registry())

	item := view.Get(world, entityId)
	require.NotNil(t, item)
	assert.Equal(t, Score(32), *item.Score)
	assert.Equal(t, float32(1), item.Position.X)
	assert.Equal(t, float32(2), item.Position.Y)
}

func TestViewMissingComponent(t *testing.T) {
	world, _ := newTestWorld()
	// Entity only has Position, not Velocity
	entityId, err := world.Spawn(&Position{X: 5, Y: 10})
	require.NoError(t, err)

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](world.Registry())

	assert.Nil(t, view.Get(world, entityId))

	var result struct {
		*Position
		*Velocity
	}
	assert.False(t, view.Fill(world, entityId, &result))
}

func TestViewComponentMutation(t *testing.T) {
	world, kinds := newTestWorld()
	entityId, err := world.Spawn(&Position{X: 1, Y: 1}, &Velocity{})
	require.NoError(t, err)

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](world.Registry())

	item := view.Get(world, entityId)
	require.NotNil(t, item)

	item.Position.X = 100
	item.Velocity.DY = 10

	pos, _ := kinds.Position.Get(world, entityId)
	assert.Equal(t, float32(100), pos.X)
	vel, _ := kinds.Velocity.Get(world, entityId)
	assert.Equal(t, float32(10), vel.DY)
}

func TestViewOptionalFields(t *testing.T) {
	world, kinds := newTestWorld()
	withName, err := world.Spawn(Position{X: 1}, Name{Value: "named"})
	require.NoError(t, err)
	withoutName, err := world.Spawn(Position{X: 2})
	require.NoError(t, err)

	view := ecs.NewView[struct {
		Id       ecs.EntityId
		Position *Position
		Name     *Name `ecs:"optional"`
	}](world.Registry())

	assert.Equal(t, []ecs.Kind{kinds.Position.Kind()}, view.Kinds(), "optional kinds are not required")
	assert.Equal(t, ecs.MaskOf(kinds.Position.Kind()), view.Mask())

	item := view.Get(world, withName)
	require.NotNil(t, item)
	assert.Equal(t, withName, item.Id)
	require.NotNil(t, item.Name)
	assert.Equal(t, "named", item.Name.Value)

	item = view.Get(world, withoutName)
	require.NotNil(t, item)
	assert.Equal(t, withoutName, item.Id)
	assert.Nil(t, item.Name)
	assert.Equal(t, float32(2), item.Position.X)
}

func TestViewFillClearsStaleOptional(t *testing.T) {
	world, _ := newTestWorld()
	a, _ := world.Spawn(Position{}, Health{Current: 3})
	b, _ := world.Spawn(Position{})

	view := ecs.NewView[struct {
		*Position
		Health *Health `ecs:"optional"`
	}](world.Registry())

	var result struct {
		*Position
		Health *Health `ecs:"optional"`
	}
	require.True(t, view.Fill(world, a, &result))
	require.NotNil(t, result.Health)
	require.True(t, view.Fill(world, b, &result))
	assert.Nil(t, result.Health, "reused structs do not keep the previous entity's optional")
}

func TestViewIter(t *testing.T) {
	world, kinds := newTestWorld()
	var log []string

	sys := newRecordingSystem("move", &log, kinds.Position.Kind())
	require.NoError(t, world.Register(sys))

	fast, _ := world.Spawn(Position{}, Velocity{DX: 2})
	_, _ = world.Spawn(Position{})
	slow, _ := world.Spawn(Position{}, Velocity{DX: 1})

	view := ecs.NewView[struct {
		Id ecs.EntityId
		*Position
		*Velocity
	}](world.Registry())

	set, _ := world.MatchedSet(sys)
	var seen []ecs.EntityId
	for id, item := range view.Iter(world, set) {
		assert.Equal(t, id, item.Id)
		item.Position.X += item.Velocity.DX
		seen = append(seen, id)
	}
	assert.Equal(t, []ecs.EntityId{fast, slow}, seen, "entities missing a view kind are skipped")

	pos, _ := kinds.Position.Get(world, fast)
	assert.Equal(t, float32(2), pos.X)
}

func TestViewSpawn(t *testing.T) {
	world, kinds := newTestWorld()

	view := ecs.NewView[struct {
		*Position
		Name *Name `ecs:"optional"`
	}](world.Registry())

	id, err := view.Spawn(world, struct {
		*Position
		Name *Name `ecs:"optional"`
	}{Position: &Position{X: 3}})
	require.NoError(t, err)

	pos, ok := kinds.Position.Get(world, id)
	require.True(t, ok)
	assert.Equal(t, float32(3), pos.X)
	assert.False(t, kinds.Name.Has(world, id))

	assert.Panics(t, func() {
		_, _ = view.Spawn(world, struct {
			*Position
			Name *Name `ecs:"optional"`
		}{})
	})
}

func TestNewViewPanics(t *testing.T) {
	registry, _ := newTestRegistry()

	assert.Panics(t, func() { ecs.NewView[int](registry) })
	assert.Panics(t, func() {
		ecs.NewView[struct{ Position Position }](registry)
	})
	assert.Panics(t, func() {
		ecs.NewView[struct{ Value *float64 }](registry)
	})
	assert.Panics(t, func() {
		ecs.NewView[struct {
			Position *Position `ecs:"sometimes"`
		}](registry)
	})
}
