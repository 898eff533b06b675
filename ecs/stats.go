package ecs

// WorldStats is a point-in-time summary of a World.
type WorldStats struct {
	EntityCount     int
	PendingDestroy  int
	NextEntityId    EntityId
	ComponentCounts []ComponentStats
	Systems         []SystemInfo
}

// ComponentStats counts the live values of one component kind.
type ComponentStats struct {
	Kind  Kind
	Name  string
	Count int
}

// CollectStats summarises the world's entities, components and systems.
func (w *World) CollectStats() WorldStats {
	stats := WorldStats{
		EntityCount:     w.storage.Len(),
		PendingDestroy:  w.destroy.len(),
		NextEntityId:    w.storage.alloc.peek(),
		ComponentCounts: make([]ComponentStats, 0, w.registry.Len()),
		Systems:         w.Systems(),
	}

	for i := 0; i < w.registry.Len(); i++ {
		kind := Kind(i)
		stats.ComponentCounts = append(stats.ComponentCounts, ComponentStats{
			Kind:  kind,
			Name:  w.registry.Name(kind),
			Count: w.storage.column(kind).Len(),
		})
	}

	return stats
}
