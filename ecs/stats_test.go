package ecs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSystemStatsRecord(t *testing.T) {
	stats := systemStatsInternal{minDuration: time.Duration(1<<63 - 1)}

	empty := stats.snapshot("idle")
	assert.Equal(t, "idle", empty.Name)
	assert.Zero(t, empty.MinDuration, "no executions reports zero rather than the sentinel")
	assert.Zero(t, empty.AvgDuration)

	stats.record(3 * time.Millisecond)
	stats.record(1 * time.Millisecond)
	stats.record(5 * time.Millisecond)

	snap := stats.snapshot("busy")
	assert.Equal(t, int64(3), snap.ExecutionCount)
	assert.Equal(t, time.Millisecond, snap.MinDuration)
	assert.Equal(t, 5*time.Millisecond, snap.MaxDuration)
	assert.Equal(t, 3*time.Millisecond, snap.AvgDuration)
	assert.Equal(t, 5*time.Millisecond, snap.LastDuration)
	assert.Equal(t, 9*time.Millisecond, snap.TotalDuration)
}

func TestEntityAllocator(t *testing.T) {
	var alloc entityAllocator

	assert.Equal(t, EntityId(1), alloc.peek())
	assert.Equal(t, EntityId(1), alloc.allocate())
	assert.Equal(t, EntityId(2), alloc.allocate())
	assert.Equal(t, EntityId(3), alloc.peek())
	assert.Equal(t, "2", EntityId(2).String())
}

func TestStorageColumnsGrowWithRegistry(t *testing.T) {
	registry := NewComponentRegistry()
	RegisterComponent[int32](registry)
	storage := NewStorage(registry)

	id := storage.allocate()
	late := RegisterComponent[string](registry)

	assert.NoError(t, storage.setValue(id, late.Kind(), "late"))
	assert.Equal(t, "late", *storage.GetComponent(id, late.Kind()).(*string))
	assert.Nil(t, storage.GetComponent(id, Kind(9)))
}
