package ecs_test

import (
	"testing"

	"github.com/plus3/tickecs/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDeferredDestroyMidDispatch(t *testing.T) {
	world, kinds := newTestWorld()
	scheduler := ecs.NewScheduler(world)
	var log []string

	e2, err := world.Spawn(Position{X: 4}, Collider{Radius: 1})
	require.NoError(t, err)

	physics := newRecordingSystem("physics", &log, kinds.Position.Kind(), kinds.Collider.Kind())
	render := newRecordingSystem("render", &log, kinds.Position.Kind())
	require.NoError(t, world.Register(physics))
	require.NoError(t, world.Register(render))

	var renderSaw *Position
	physics.onUpdate = func(frame *ecs.UpdateFrame, entities *ecs.EntitySet) {
		for e := range entities.All() {
			require.NoError(t, frame.World.MarkForDestruction(e))
		}
	}
	render.onUpdate = func(frame *ecs.UpdateFrame, entities *ecs.EntitySet) {
		assert.True(t, entities.Has(e2))
		renderSaw, _ = kinds.Position.Get(frame.World, e2)
	}
	log = log[:0]

	scheduler.Step(0)

	require.NotNil(t, renderSaw, "render still reads e2 in the frame it was marked")
	assert.Equal(t, float32(4), renderSaw.X)
	assert.Equal(t, []ecs.EntityId{e2}, render.lastUpdate())
	assert.Equal(t, []string{
		"physics.update",
		"render.update",
		"physics.removed(1)",
		"render.removed(1)",
	}, log)

	assert.False(t, world.Alive(e2))
	_, ok := kinds.Position.Get(world, e2)
	assert.False(t, ok)
	for _, sys := range []*recordingSystem{physics, render} {
		set, _ := world.MatchedSet(sys)
		assert.False(t, set.Has(e2))
	}

	next := world.CreateEntity()
	assert.Greater(t, next, e2, "destroyed ids are never reused")
}

func TestMarkForDestructionIdempotent(t *testing.T) {
	world, kinds := newTestWorld()
	scheduler := ecs.NewScheduler(world)
	var log []string

	e, err := world.Spawn(Position{})
	require.NoError(t, err)
	require.NoError(t, world.Register(newRecordingSystem("pos", &log, kinds.Position.Kind())))
	log = log[:0]

	require.NoError(t, world.MarkForDestruction(e))
	require.NoError(t, world.MarkForDestruction(e))
	assert.True(t, world.PendingDestruction(e))
	assert.True(t, world.Alive(e), "marking has no immediate effect")
	assert.Equal(t, 1, world.CollectStats().PendingDestroy)

	scheduler.Step(0)
	assert.Equal(t, []string{"pos.update", "pos.removed(1)"}, log)
	assert.False(t, world.PendingDestruction(e))
	assert.Equal(t, 0, world.EntityCount())
}

func TestDestroyQueuedFromRemovedCallback(t *testing.T) {
	world, kinds := newTestWorld()
	scheduler := ecs.NewScheduler(world)

	parent, err := world.Spawn(Position{}, Tag("parent"))
	require.NoError(t, err)
	child, err := world.Spawn(Position{}, Name{Value: "child"})
	require.NoError(t, err)

	require.NoError(t, world.Register(&cascadeSystem{tag: kinds.Tag, child: child}))

	require.NoError(t, world.MarkForDestruction(parent))
	scheduler.Step(0)

	assert.False(t, world.Alive(parent))
	assert.False(t, world.Alive(child), "entities queued during the destroy phase go in the same pass")
}

type cascadeSystem struct {
	tag   ecs.ComponentType[Tag]
	child ecs.EntityId
}

func (s *cascadeSystem) Requires() []ecs.Kind { return []ecs.Kind{s.tag.Kind()} }

func (s *cascadeSystem) OnEntityRemoved(w *ecs.World, e ecs.EntityId) {
	_ = w.MarkForDestruction(s.child)
}

// resurrectSystem tries to re-add components to entities as they are torn down.
type resurrectSystem struct {
	pos ecs.ComponentType[Position]
}

func (s *resurrectSystem) Requires() []ecs.Kind { return []ecs.Kind{s.pos.Kind()} }

func (s *resurrectSystem) OnEntityRemoved(w *ecs.World, e ecs.EntityId) {
	_ = s.pos.Set(w, e, Position{X: 99})
}

func TestDestroyCannotBeUndoneByCallbacks(t *testing.T) {
	world, kinds := newTestWorld()
	scheduler := ecs.NewScheduler(world)

	e, err := world.Spawn(Position{})
	require.NoError(t, err)
	sys := &resurrectSystem{pos: kinds.Position}
	require.NoError(t, world.Register(sys))

	require.NoError(t, world.MarkForDestruction(e))
	scheduler.Step(0)

	assert.False(t, world.Alive(e))
	set, _ := world.MatchedSet(sys)
	assert.Equal(t, 0, set.Len())
	assert.Zero(t, world.CollectStats().ComponentCounts[kinds.Position.Kind()].Count)
}

func TestLifecycleViolations(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	registry, kinds := newTestRegistry()
	world := ecs.NewWorld(registry, ecs.WithLogger(zap.New(core)))
	scheduler := ecs.NewScheduler(world)

	never := ecs.EntityId(42)
	assert.ErrorIs(t, kinds.Position.Set(world, never, Position{}), ecs.ErrNoSuchEntity)
	assert.ErrorIs(t, ecs.Set(world, never, Velocity{}), ecs.ErrNoSuchEntity)
	assert.ErrorIs(t, world.SetAny(never, Health{}), ecs.ErrNoSuchEntity)
	assert.ErrorIs(t, kinds.Position.Remove(world, never), ecs.ErrNoSuchEntity)
	assert.ErrorIs(t, world.MarkForDestruction(never), ecs.ErrNoSuchEntity)

	e, err := world.Spawn(Position{})
	require.NoError(t, err)
	require.NoError(t, world.MarkForDestruction(e))
	scheduler.Step(0)

	assert.ErrorIs(t, kinds.Position.Set(world, e, Position{}), ecs.ErrNoSuchEntity)
	assert.ErrorIs(t, world.MarkForDestruction(e), ecs.ErrNoSuchEntity)

	// reads of dead entities are absent, not errors
	_, ok := kinds.Position.Get(world, e)
	assert.False(t, ok)
	assert.Nil(t, world.Components(e))

	assert.Equal(t, 7, logs.FilterMessage("entity lifecycle violation").Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	assert.Equal(t, uint64(42), entry.ContextMap()["entity"])
}

func TestEntitiesAscending(t *testing.T) {
	world, _ := newTestWorld()
	scheduler := ecs.NewScheduler(world)

	for range 5 {
		world.CreateEntity()
	}
	require.NoError(t, world.MarkForDestruction(2))
	require.NoError(t, world.MarkForDestruction(4))
	scheduler.Step(0)

	var ids []ecs.EntityId
	for e := range world.Entities() {
		ids = append(ids, e)
	}
	assert.Equal(t, []ecs.EntityId{1, 3, 5}, ids)
}

func TestCollectStats(t *testing.T) {
	world, kinds := newTestWorld()
	var log []string

	_, _ = world.Spawn(Position{}, Velocity{})
	_, _ = world.Spawn(Position{})
	e, _ := world.Spawn(Health{})
	require.NoError(t, world.Register(newRecordingSystem("pos", &log, kinds.Position.Kind())))
	require.NoError(t, world.MarkForDestruction(e))

	stats := world.CollectStats()
	assert.Equal(t, 3, stats.EntityCount)
	assert.Equal(t, 1, stats.PendingDestroy)
	assert.Equal(t, ecs.EntityId(4), stats.NextEntityId)
	require.Len(t, stats.ComponentCounts, world.Registry().Len())
	assert.Equal(t, "Position", stats.ComponentCounts[kinds.Position.Kind()].Name)
	assert.Equal(t, 2, stats.ComponentCounts[kinds.Position.Kind()].Count)
	assert.Equal(t, 1, stats.ComponentCounts[kinds.Velocity.Kind()].Count)
	assert.Equal(t, 1, stats.ComponentCounts[kinds.Health.Kind()].Count)
	require.Len(t, stats.Systems, 1)
	assert.Equal(t, 2, stats.Systems[0].MatchedCount)
}
