package component

import (
	"testing"

	"github.com/plus3/tickecs/ecs"
	"github.com/plus3/tickecs/game/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	kinds := Register(registry)

	assert.Equal(t, 11, registry.Len())
	assert.Equal(t, "Transform", kinds.Transform.Name())
	assert.Equal(t, "CameraTarget", kinds.CameraTarget.Name())

	again := Register(registry)
	assert.Equal(t, kinds, again, "registering twice returns the same handles")
}

func TestAt(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	kinds := Register(registry)
	world := ecs.NewWorld(registry)

	e, err := world.Spawn(At(geom.V(1, 2)), Alias("crate"))
	require.NoError(t, err)

	tr, ok := kinds.Transform.Get(world, e)
	require.True(t, ok)
	assert.Equal(t, geom.V(1, 1), tr.Scale)
	assert.Equal(t, geom.V(1, 2), tr.Position)
}
