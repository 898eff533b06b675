package physics

import (
	"testing"

	"github.com/plus3/tickecs/game/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepIntegratesDynamicBodies(t *testing.T) {
	w := NewWorld(geom.V(0, 10))
	assert.Equal(t, geom.V(0, 10), w.Gravity())

	falling := w.CreateBody(BodyDesc{Type: Dynamic, Shape: CircleShape(1)})
	wall := w.CreateBody(BodyDesc{Type: Static, Shape: BoxShape(2, 2), Position: geom.V(50, 50)})

	// positions move with the velocity from the start of the step
	w.Step(0.5)
	b, ok := w.Body(falling)
	require.True(t, ok)
	assert.InDelta(t, 5, b.Velocity().Y, 1e-9)
	assert.InDelta(t, 0, b.Translation().Y, 1e-9)

	w.Step(0.5)
	assert.InDelta(t, 10, b.Velocity().Y, 1e-9)
	assert.InDelta(t, 2.5, b.Translation().Y, 1e-9)

	s, _ := w.Body(wall)
	assert.Equal(t, geom.V(50, 50), s.Translation(), "static bodies never move")
	assert.Equal(t, Static, s.Type())
}

func TestStepZeroDoesNothing(t *testing.T) {
	w := NewWorld(geom.V(0, 10))
	a := w.CreateBody(BodyDesc{Type: Dynamic, Shape: CircleShape(2)})
	w.CreateBody(BodyDesc{Type: Dynamic, Shape: CircleShape(2), Position: geom.V(1, 0)})

	assert.Empty(t, w.Step(0))
	b, _ := w.Body(a)
	assert.Equal(t, geom.Vec2{}, b.Velocity())
}

func TestApplyImpulseUsesMass(t *testing.T) {
	w := NewWorld(geom.Vec2{})
	light := w.CreateBody(BodyDesc{Type: Dynamic, Shape: CircleShape(1)})
	heavy := w.CreateBody(BodyDesc{Type: Dynamic, Shape: CircleShape(1), Mass: 4, Position: geom.V(100, 0)})

	require.NoError(t, w.ApplyImpulse(light, geom.V(8, 0)))
	require.NoError(t, w.ApplyImpulse(heavy, geom.V(8, 0)))

	lb, _ := w.Body(light)
	hb, _ := w.Body(heavy)
	assert.InDelta(t, 8, lb.Velocity().X, 1e-9)
	assert.InDelta(t, 2, hb.Velocity().X, 1e-9)
	assert.Zero(t, hb.Rotation(), "impulses never spin a body")
}

func TestDamping(t *testing.T) {
	w := NewWorld(geom.Vec2{})
	h := w.CreateBody(BodyDesc{Type: Dynamic, Shape: CircleShape(1), Velocity: geom.V(10, 0), Damping: 1})

	w.Step(0.5)

	b, _ := w.Body(h)
	assert.InDelta(t, 5, b.Velocity().X, 1e-9)
	assert.InDelta(t, 5, b.Translation().X, 1e-9)
}

func TestCollisionEvents(t *testing.T) {
	w := NewWorld(geom.Vec2{})
	ball := w.CreateBody(BodyDesc{Type: Dynamic, Shape: CircleShape(1), Velocity: geom.V(10, 0), Restitution: 1})
	wall := w.CreateBody(BodyDesc{Type: Static, Shape: BoxShape(2, 10), Position: geom.V(3, 0), Restitution: 1})

	assert.Empty(t, w.Step(0.05), "not touching yet")

	events := w.Step(0.1)
	require.Len(t, events, 1)
	assert.Equal(t, CollisionEvent{A: ball, B: wall, Started: true}, events[0])

	b, _ := w.Body(ball)
	assert.Less(t, b.Velocity().X, 0.0, "the ball bounces off the wall")

	var stopped []CollisionEvent
	for range 10 {
		stopped = append(stopped, w.Step(0.1)...)
	}
	assert.Equal(t, []CollisionEvent{{A: ball, B: wall, Started: false}}, stopped)
}

func TestRestitutionIsAProduct(t *testing.T) {
	w := NewWorld(geom.Vec2{})
	ball := w.CreateBody(BodyDesc{Type: Dynamic, Shape: CircleShape(1), Position: geom.V(1.5, 0), Velocity: geom.V(10, 0)})
	w.CreateBody(BodyDesc{Type: Static, Shape: BoxShape(2, 10), Position: geom.V(3, 0), Restitution: 1})

	require.Len(t, w.Step(0.01), 1)

	b, _ := w.Body(ball)
	assert.InDelta(t, 0, b.Velocity().X, 1e-6, "an inelastic ball stops dead against an elastic wall")
}

func TestDynamicBodiesSeparate(t *testing.T) {
	w := NewWorld(geom.Vec2{})
	a := w.CreateBody(BodyDesc{Type: Dynamic, Shape: CircleShape(2)})
	b := w.CreateBody(BodyDesc{Type: Dynamic, Shape: CircleShape(2), Position: geom.V(3, 0)})

	events := w.Step(1.0 / 60)
	assert.Equal(t, []CollisionEvent{{A: a, B: b, Started: true}}, events)
	for range 120 {
		w.Step(1.0 / 60)
	}

	ba, _ := w.Body(a)
	bb, _ := w.Body(b)
	assert.InDelta(t, 4, bb.Translation().Sub(ba.Translation()).Len(), 0.15, "overlap is worked out down to the engine's slop")
	assert.Less(t, ba.Translation().X, 0.0)
	assert.Greater(t, bb.Translation().X, 3.0)
}

func TestEventsOrderedByHandlePair(t *testing.T) {
	w := NewWorld(geom.Vec2{})
	a := w.CreateBody(BodyDesc{Type: Dynamic, Shape: CircleShape(1), Position: geom.V(100, 0)})
	b := w.CreateBody(BodyDesc{Type: Dynamic, Shape: CircleShape(1)})
	c := w.CreateBody(BodyDesc{Type: Dynamic, Shape: CircleShape(1), Position: geom.V(1.5, 0)})
	d := w.CreateBody(BodyDesc{Type: Dynamic, Shape: CircleShape(1), Position: geom.V(101.5, 0)})

	assert.Equal(t, []CollisionEvent{
		{A: a, B: d, Started: true},
		{A: b, B: c, Started: true},
	}, w.Step(0.01))
}

func TestSensorsDoNotPush(t *testing.T) {
	w := NewWorld(geom.Vec2{})
	a := w.CreateBody(BodyDesc{Type: Dynamic, Shape: CircleShape(2), Sensor: true})
	other := w.CreateBody(BodyDesc{Type: Dynamic, Shape: CircleShape(2), Position: geom.V(3, 0)})

	for range 10 {
		w.Step(1.0 / 60)
	}

	ba, _ := w.Body(a)
	bo, _ := w.Body(other)
	assert.True(t, ba.Sensor())
	assert.Equal(t, geom.Vec2{}, ba.Translation())
	assert.Equal(t, geom.V(3, 0), bo.Translation())
}

func TestSensorReportsContact(t *testing.T) {
	w := NewWorld(geom.Vec2{})
	a := w.CreateBody(BodyDesc{Type: Dynamic, Shape: CircleShape(2), Sensor: true})
	b := w.CreateBody(BodyDesc{Type: Dynamic, Shape: CircleShape(2), Position: geom.V(3, 0)})

	assert.Equal(t, []CollisionEvent{{A: a, B: b, Started: true}}, w.Step(0.01))
}

func TestMoveAndSlide(t *testing.T) {
	w := NewWorld(geom.Vec2{})
	player := w.CreateBody(BodyDesc{Type: Kinematic, Shape: CircleShape(1)})
	w.CreateBody(BodyDesc{Type: Static, Shape: BoxShape(2, 20), Position: geom.V(4, 0)})

	moved, err := w.MoveAndSlide(player, geom.V(2.5, 1))
	require.NoError(t, err)
	assert.InDelta(t, 2, moved.X, 1e-6, "stopped at the wall")
	assert.InDelta(t, 1, moved.Y, 1e-6, "sliding along it")

	b, _ := w.Body(player)
	assert.InDelta(t, 2, b.Translation().X, 1e-6)

	moved, err = w.MoveAndSlide(player, geom.V(-1, 0))
	require.NoError(t, err)
	assert.InDelta(t, -1, moved.X, 1e-6, "free movement is untouched")
}

func TestMoveAndSlideIntoCorner(t *testing.T) {
	w := NewWorld(geom.Vec2{})
	player := w.CreateBody(BodyDesc{Type: Dynamic, Shape: CircleShape(1)})
	w.CreateBody(BodyDesc{Type: Static, Shape: BoxShape(2, 20), Position: geom.V(4, 0)})
	w.CreateBody(BodyDesc{Type: Static, Shape: BoxShape(20, 2), Position: geom.V(0, 4)})

	moved, err := w.MoveAndSlide(player, geom.V(2.5, 2.5))
	require.NoError(t, err)
	assert.InDelta(t, 2, moved.X, 1e-6)
	assert.InDelta(t, 2, moved.Y, 1e-6)
}

func TestSetTranslationMovesStaticColliders(t *testing.T) {
	w := NewWorld(geom.Vec2{})
	ball := w.CreateBody(BodyDesc{Type: Dynamic, Shape: CircleShape(1)})
	wall := w.CreateBody(BodyDesc{Type: Static, Shape: BoxShape(2, 2), Position: geom.V(50, 0)})

	assert.Empty(t, w.Step(0.01))

	require.NoError(t, w.SetTranslation(wall, geom.V(1.5, 0)))
	assert.Equal(t, []CollisionEvent{{A: ball, B: wall, Started: true}}, w.Step(0.01))
}

func TestRemoveBody(t *testing.T) {
	w := NewWorld(geom.Vec2{})
	a := w.CreateBody(BodyDesc{Type: Dynamic, Shape: CircleShape(2)})
	b := w.CreateBody(BodyDesc{Type: Static, Shape: CircleShape(2), Position: geom.V(1, 0)})
	require.Len(t, w.Step(0.01), 1)

	require.NoError(t, w.RemoveBody(b))
	assert.Empty(t, w.Step(0.01), "removed bodies do not report a stop event")
	assert.Equal(t, 1, w.Len())

	assert.ErrorIs(t, w.RemoveBody(b), ErrNoSuchBody)
	assert.ErrorIs(t, w.SetTranslation(b, geom.Vec2{}), ErrNoSuchBody)
	_, err := w.MoveAndSlide(b, geom.V(1, 0))
	assert.ErrorIs(t, err, ErrNoSuchBody)

	next := w.CreateBody(BodyDesc{})
	assert.Greater(t, next, b)
	_, ok := w.Body(a)
	assert.True(t, ok)
}
