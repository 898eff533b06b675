package ecs

import (
	"fmt"
	"iter"
	"slices"

	"go.uber.org/zap"
)

// World owns the entities, their components, the registered systems with their
// matched sets, and the queue of entities awaiting destruction. It is not safe
// for concurrent use; all calls must come from the goroutine driving the frames.
type World struct {
	registry *ComponentRegistry
	storage  *Storage
	systems  []*systemEntry
	destroy  *destroyQueue
	logger   *zap.Logger
}

// WorldOption configures a World.
type WorldOption func(*World)

// WithLogger sets the logger used for lifecycle diagnostics.
func WithLogger(logger *zap.Logger) WorldOption {
	return func(w *World) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWorld creates an empty world whose component kinds come from registry.
func NewWorld(registry *ComponentRegistry, opts ...WorldOption) *World {
	w := &World{
		registry: registry,
		storage:  NewStorage(registry),
		destroy:  newDestroyQueue(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Registry returns the component registry.
func (w *World) Registry() *ComponentRegistry {
	return w.registry
}

// Storage returns the underlying component storage for read-only inspection.
func (w *World) Storage() *Storage {
	return w.storage
}

// Logger returns the world's logger.
func (w *World) Logger() *zap.Logger {
	return w.logger
}

// CreateEntity allocates a new entity with no components. Systems with an
// empty requirement set match it immediately.
func (w *World) CreateEntity() EntityId {
	e := w.storage.allocate()
	w.reevaluate(e)
	return e
}

// Spawn allocates an entity and installs each component in argument order,
// re-evaluating system membership after each one. Components may be passed as
// values or pointers. Every value is checked before anything is allocated, so
// a bundle with an unregistered type or a nil pointer leaves no entity.
func (w *World) Spawn(components ...any) (EntityId, error) {
	kinds := make([]Kind, len(components))
	for i, component := range components {
		kind, err := w.registry.resolveValue(component)
		if err != nil {
			return 0, fmt.Errorf("spawn: %w", err)
		}
		kinds[i] = kind
	}

	e := w.CreateEntity()
	for i, component := range components {
		if err := w.storage.setValue(e, kinds[i], component); err != nil {
			// the half-built entity goes with the frame's destroy phase
			_ = w.MarkForDestruction(e)
			return 0, fmt.Errorf("spawn: %w", err)
		}
		w.reevaluate(e)
	}
	return e, nil
}

// Alive reports whether e names a live entity. Entities queued for destruction
// stay alive until the end of the frame.
func (w *World) Alive(e EntityId) bool {
	return w.storage.Alive(e)
}

// EntityCount returns the number of live entities.
func (w *World) EntityCount() int {
	return w.storage.Len()
}

// Entities iterates the live entities in ascending id order.
func (w *World) Entities() iter.Seq[EntityId] {
	return slices.Values(w.storage.ids())
}

// Components returns pointers to every component e carries, in kind order.
func (w *World) Components(e EntityId) []any {
	return w.storage.Components(e)
}

// Mask returns the kinds e carries.
func (w *World) Mask(e EntityId) (Mask, bool) {
	return w.storage.Mask(e)
}

// GetKind returns a pointer to the component of the given kind, or nil.
func (w *World) GetKind(e EntityId, kind Kind) any {
	return w.storage.GetComponent(e, kind)
}

// SetAny installs a component passed as a value or pointer of a registered type.
func (w *World) SetAny(e EntityId, component any) error {
	kind, err := w.registry.resolveValue(component)
	if err != nil {
		return fmt.Errorf("set on entity %d: %w", e, err)
	}
	if err = w.storage.setValue(e, kind, component); err != nil {
		w.logViolation("set", e, err)
		return err
	}
	w.reevaluate(e)
	return nil
}

// RemoveKind deletes the component of the given kind if present.
func (w *World) RemoveKind(e EntityId, kind Kind) error {
	if !w.registry.owns(kind) {
		return fmt.Errorf("remove kind %d from entity %d: %w", kind, e, ErrUnregisteredComponent)
	}
	removed, err := w.storage.remove(e, kind)
	if err != nil {
		w.logViolation("remove", e, err)
		return err
	}
	if removed {
		w.reevaluate(e)
	}
	return nil
}

// MarkForDestruction queues e for destruction at the end of the current frame.
// The entity stays fully readable and matched until then. Marking the same
// entity more than once per frame has no further effect.
func (w *World) MarkForDestruction(e EntityId) error {
	if !w.storage.Alive(e) {
		err := fmt.Errorf("mark entity %d for destruction: %w", e, ErrNoSuchEntity)
		w.logViolation("destroy", e, err)
		return err
	}
	w.destroy.push(e)
	return nil
}

// PendingDestruction reports whether e is queued for destruction.
func (w *World) PendingDestruction(e EntityId) bool {
	return w.destroy.has(e)
}

// setTyped runs a typed column write for e and then re-evaluates membership.
func (w *World) setTyped(e EntityId, kind Kind, write func()) error {
	row, ok := w.storage.row(e)
	if !ok {
		err := fmt.Errorf("set %s on entity %d: %w", w.registry.Name(kind), e, ErrNoSuchEntity)
		w.logViolation("set", e, err)
		return err
	}
	write()
	row.mask = row.mask.With(kind)
	w.reevaluate(e)
	return nil
}

// flushDestroyQueue runs the destroy phase: every queued entity leaves the
// matched sets that still hold it, with OnEntityRemoved fired, and then its
// components are dropped and its id retired. Entities queued by callbacks
// during the flush are destroyed in the same pass.
func (w *World) flushDestroyQueue() int {
	destroyed := 0
	for {
		e, ok := w.destroy.pop()
		if !ok {
			break
		}
		row, alive := w.storage.row(e)
		if !alive {
			continue
		}
		row.dying = true
		for _, entry := range slices.Clone(w.systems) {
			if entry.removed || !entry.entities.remove(e) {
				continue
			}
			if entry.onRemoved != nil {
				entry.onRemoved.OnEntityRemoved(w, e)
			}
		}
		w.storage.drop(e)
		destroyed++
	}
	w.destroy.reset()
	if destroyed > 0 {
		w.logger.Debug("destroyed entities", zap.Int("count", destroyed))
	}
	return destroyed
}

func (w *World) logViolation(op string, e EntityId, err error) {
	w.logger.Warn("entity lifecycle violation",
		zap.String("op", op),
		zap.Uint64("entity", uint64(e)),
		zap.Error(err),
	)
}
