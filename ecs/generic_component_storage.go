package ecs

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/kamstrup/intmap"
)

// ComponentRegistry manages component type registration for an ECS instance.
// Each World is built from one registry; the set of kinds is fixed by the
// registrations made before the world starts using them.
type ComponentRegistry struct {
	types     []reflect.Type
	kinds     map[reflect.Type]Kind
	factories []func() iComponentStorage
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		kinds: make(map[reflect.Type]Kind),
	}
}

// RegisterComponent registers T with the registry and returns its typed handle.
// Registering the same type again returns the existing handle.
// It panics when T is a pointer, map, channel or function type, or when the
// registry already holds MaxKinds types.
func RegisterComponent[T any](r *ComponentRegistry) ComponentType[T] {
	t := reflect.TypeFor[T]()
	if kind, ok := r.kinds[t]; ok {
		return ComponentType[T]{kind: kind, registry: r}
	}

	switch t.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
		panic("components cannot be pointers, maps, channels, or functions: " + t.String())
	}

	if len(r.types) >= MaxKinds {
		panic("component registry is full (" + strconv.Itoa(MaxKinds) + " kinds): cannot register " + t.String())
	}

	kind := Kind(len(r.types))
	r.types = append(r.types, t)
	r.kinds[t] = kind
	r.factories = append(r.factories, func() iComponentStorage {
		return &genericComponentStorage[T]{
			data: intmap.New[EntityId, *T](256),
		}
	})

	return ComponentType[T]{kind: kind, registry: r}
}

// KindOf returns the kind assigned to T, if T is registered.
func KindOf[T any](r *ComponentRegistry) (Kind, bool) {
	kind, ok := r.kinds[reflect.TypeFor[T]()]
	return kind, ok
}

// Len returns the number of registered kinds.
func (r *ComponentRegistry) Len() int {
	return len(r.types)
}

// Type returns the Go type registered under kind.
func (r *ComponentRegistry) Type(kind Kind) reflect.Type {
	if int(kind) >= len(r.types) {
		return nil
	}
	return r.types[kind]
}

// Name returns a readable name for kind.
func (r *ComponentRegistry) Name(kind Kind) string {
	t := r.Type(kind)
	if t == nil {
		return "Kind(" + strconv.Itoa(int(kind)) + ")"
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}

// Names returns the names of every kind in mask, in kind order.
func (r *ComponentRegistry) Names(mask Mask) []string {
	kinds := mask.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = r.Name(k)
	}
	return names
}

// kindOfValue resolves the kind of a component value passed as T or *T.
func (r *ComponentRegistry) kindOfValue(value any) (Kind, bool) {
	t := reflect.TypeOf(value)
	if t == nil {
		return 0, false
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	kind, ok := r.kinds[t]
	return kind, ok
}

// resolveValue is kindOfValue for values about to be stored: a nil pointer of
// a registered type is rejected too.
func (r *ComponentRegistry) resolveValue(value any) (Kind, error) {
	kind, ok := r.kindOfValue(value)
	if !ok {
		return 0, fmt.Errorf("value of type %s: %w", reflect.TypeOf(value), ErrUnregisteredComponent)
	}
	if v := reflect.ValueOf(value); v.Kind() == reflect.Ptr && v.IsNil() {
		return 0, fmt.Errorf("value of type %s: %w", v.Type(), ErrNilComponent)
	}
	return kind, nil
}

func (r *ComponentRegistry) owns(kind Kind) bool {
	return int(kind) < len(r.types)
}

// genericComponentStorage is a generic implementation of iComponentStorage.
// Values live behind pointers so callers can mutate them in place.
type genericComponentStorage[T any] struct {
	data *intmap.Map[EntityId, *T]
}

func (cs *genericComponentStorage[T]) Set(id EntityId, item any) bool {
	var concreteItem T
	if ptr, ok := item.(*T); ok {
		if ptr == nil {
			return false
		}
		concreteItem = *ptr
	} else if val, ok := item.(T); ok {
		concreteItem = val
	} else {
		return false
	}

	cs.data.Put(id, &concreteItem)
	return true
}

func (cs *genericComponentStorage[T]) put(id EntityId, value T) {
	cs.data.Put(id, &value)
}

func (cs *genericComponentStorage[T]) lookup(id EntityId) (*T, bool) {
	return cs.data.Get(id)
}

func (cs *genericComponentStorage[T]) Delete(id EntityId) bool {
	if !cs.data.Has(id) {
		return false
	}
	cs.data.Del(id)
	return true
}

func (cs *genericComponentStorage[T]) Get(id EntityId) any {
	ptr, ok := cs.data.Get(id)
	if !ok {
		return nil
	}
	return ptr
}

func (cs *genericComponentStorage[T]) Has(id EntityId) bool {
	return cs.data.Has(id)
}

func (cs *genericComponentStorage[T]) Len() int {
	return cs.data.Len()
}

func (cs *genericComponentStorage[T]) Type() reflect.Type {
	return reflect.TypeFor[T]()
}
