package ecs

import (
	"fmt"
	"reflect"
	"slices"
	"time"

	"go.uber.org/zap"
)

// systemEntry is a registered system together with its matched set.
type systemEntry struct {
	system    System
	name      string
	required  Mask
	entities  *EntitySet
	updater   Updater
	onAdded   EntityAddedHandler
	onRemoved EntityRemovedHandler
	stats     systemStatsInternal

	// removed is set as soon as Unregister starts so that callbacks fired
	// during teardown cannot put entities back into the set.
	removed bool
}

// SystemInfo describes a registered system.
type SystemInfo struct {
	Name         string
	Required     Mask
	Requires     []string
	MatchedCount int
	Stats        SystemStats
}

// Register adds the system with an empty matched set and then evaluates every
// live entity against its requirements, firing OnEntityAdded for each one that
// already qualifies. Systems run in registration order. Registering the same
// instance twice returns ErrSystemRegistered and changes nothing.
func (w *World) Register(sys System) error {
	if sys == nil {
		return fmt.Errorf("register nil system: %w", ErrSystemNotComparable)
	}
	if !reflect.TypeOf(sys).Comparable() {
		return fmt.Errorf("register %T: %w", sys, ErrSystemNotComparable)
	}
	if w.findSystem(sys) >= 0 {
		return fmt.Errorf("register %s: %w", systemName(sys), ErrSystemRegistered)
	}

	var required Mask
	for _, kind := range sys.Requires() {
		if !w.registry.owns(kind) {
			return fmt.Errorf("register %s: kind %d: %w", systemName(sys), kind, ErrUnregisteredComponent)
		}
		required = required.With(kind)
	}

	entry := &systemEntry{
		system:   sys,
		name:     systemName(sys),
		required: required,
		entities: newEntitySet(),
		stats:    systemStatsInternal{minDuration: time.Duration(1<<63 - 1)},
	}
	entry.updater, _ = sys.(Updater)
	entry.onAdded, _ = sys.(EntityAddedHandler)
	entry.onRemoved, _ = sys.(EntityRemovedHandler)

	w.systems = append(w.systems, entry)
	w.logger.Debug("registered system",
		zap.String("system", entry.name),
		zap.Strings("requires", w.registry.Names(required)),
	)

	for _, e := range w.storage.ids() {
		if entry.removed {
			break
		}
		w.evaluate(entry, e)
	}
	return nil
}

// Unregister fires OnEntityRemoved for every entity in the system's matched set
// and then drops the system. Other systems are unaffected.
func (w *World) Unregister(sys System) error {
	idx := w.findSystem(sys)
	if idx < 0 {
		return fmt.Errorf("unregister %s: %w", systemName(sys), ErrSystemNotRegistered)
	}
	entry := w.systems[idx]
	entry.removed = true

	for e := range entry.entities.All() {
		entry.entities.remove(e)
		if entry.onRemoved != nil {
			entry.onRemoved.OnEntityRemoved(w, e)
		}
	}

	// callbacks may have registered or unregistered other systems
	if idx = slices.Index(w.systems, entry); idx >= 0 {
		w.systems = slices.Delete(w.systems, idx, idx+1)
	}
	w.logger.Debug("unregistered system", zap.String("system", entry.name))
	return nil
}

// Registered reports whether sys is currently registered.
func (w *World) Registered(sys System) bool {
	return w.findSystem(sys) >= 0
}

// MatchedSet returns the live matched set of a registered system.
func (w *World) MatchedSet(sys System) (*EntitySet, bool) {
	idx := w.findSystem(sys)
	if idx < 0 {
		return nil, false
	}
	return w.systems[idx].entities, true
}

// Systems describes the registered systems in registration order.
func (w *World) Systems() []SystemInfo {
	infos := make([]SystemInfo, 0, len(w.systems))
	for _, entry := range w.systems {
		infos = append(infos, SystemInfo{
			Name:         entry.name,
			Required:     entry.required,
			Requires:     w.registry.Names(entry.required),
			MatchedCount: entry.entities.Len(),
			Stats:        entry.stats.snapshot(entry.name),
		})
	}
	return infos
}

// reevaluate brings every system's matched set in line with e's current
// components. The entity's mask is re-read for each system because callbacks
// may mutate it.
func (w *World) reevaluate(e EntityId) {
	for _, entry := range slices.Clone(w.systems) {
		if entry.removed {
			continue
		}
		w.evaluate(entry, e)
	}
}

func (w *World) evaluate(entry *systemEntry, e EntityId) {
	row, ok := w.storage.row(e)
	if !ok || row.dying {
		return
	}

	matches := row.mask.Contains(entry.required)
	member := entry.entities.Has(e)

	switch {
	case matches && !member:
		entry.entities.add(e)
		if entry.onAdded != nil {
			entry.onAdded.OnEntityAdded(w, e)
		}
	case !matches && member:
		entry.entities.remove(e)
		if entry.onRemoved != nil {
			entry.onRemoved.OnEntityRemoved(w, e)
		}
	}
}

func (w *World) findSystem(sys System) int {
	if sys == nil || !reflect.TypeOf(sys).Comparable() {
		return -1
	}
	for i, entry := range w.systems {
		if entry.system == sys {
			return i
		}
	}
	return -1
}

func systemName(sys System) string {
	systemType := reflect.TypeOf(sys)
	if systemType == nil {
		return "<nil>"
	}
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	if systemType.Name() == "" {
		return systemType.String()
	}
	return systemType.Name()
}
