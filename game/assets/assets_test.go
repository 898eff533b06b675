package assets

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheLoad(t *testing.T) {
	var calls atomic.Int32
	cache := NewCache(func(path string) (string, error) {
		calls.Add(1)
		return strings.ToUpper(path), nil
	}, 2)

	require.NoError(t, cache.Load(context.Background(), "a.png", "b.png", "a.png"))
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, 2, cache.Len())

	got, err := cache.Get("b.png")
	require.NoError(t, err)
	assert.Equal(t, "B.PNG", got)

	// cached paths are not decoded again
	require.NoError(t, cache.Load(context.Background(), "a.png", "c.png"))
	assert.Equal(t, int32(3), calls.Load())
}

func TestCacheGetMissing(t *testing.T) {
	cache := NewCache(func(path string) (int, error) { return len(path), nil }, 0)

	_, err := cache.Get("nope.png")
	assert.ErrorIs(t, err, ErrNotLoaded)
	assert.False(t, cache.Has("nope.png"))
}

func TestCacheLoadError(t *testing.T) {
	broken := errors.New("corrupt")
	cache := NewCache(func(path string) (int, error) {
		if path == "bad.png" {
			return 0, broken
		}
		return 1, nil
	}, 1)

	err := cache.Load(context.Background(), "bad.png")
	require.ErrorIs(t, err, broken)
	assert.Contains(t, err.Error(), "bad.png")
	assert.False(t, cache.Has("bad.png"))
}

func TestCacheLoadCanceled(t *testing.T) {
	cache := NewCache(func(path string) (int, error) { return 1, nil }, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := cache.Load(ctx, "a.png")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, cache.Len())
}
