package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// View maps a struct of component pointers onto single entities.
// The type T should be a struct with embedded or named pointer fields for each
// component type. Named fields can be marked as optional using the
// `ecs:"optional"` struct tag. A field of type EntityId receives the entity's id.
//
// A view's required kinds double as a system's requirement set:
//
//	func (s *MoveSystem) Requires() []ecs.Kind { return s.view.Kinds() }
type View[T any] struct {
	registry    *ComponentRegistry
	kinds       []Kind
	types       []reflect.Type
	optional    []bool
	fieldOffset []uintptr
	idOffsets   []uintptr
	required    Mask
}

var entityIdType = reflect.TypeFor[EntityId]()

// iface represents the internal memory layout of an interface{}.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

// NewView creates a new view for the given struct type. It panics if T is not a
// struct, has a field that is neither an EntityId nor a pointer, or points at a
// type that is not registered.
func NewView[T any](registry *ComponentRegistry) *View[T] {
	structType := reflect.TypeFor[T]()

	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{registry: registry}

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		fieldType := field.Type

		if fieldType == entityIdType {
			v.idOffsets = append(v.idOffsets, field.Offset)
			continue
		}

		if fieldType.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types or EntityId")
		}

		componentType := fieldType.Elem()
		kind, ok := registry.kinds[componentType]
		if !ok {
			panic("component type " + componentType.String() + " not registered")
		}

		// Embedded fields (field.Anonymous) are always required
		isOptional := false
		if !field.Anonymous {
			tag := field.Tag.Get("ecs")
			if tag != "" {
				if tag == "optional" {
					isOptional = true
				} else {
					panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
				}
			}
		}

		v.kinds = append(v.kinds, kind)
		v.types = append(v.types, componentType)
		v.optional = append(v.optional, isOptional)
		v.fieldOffset = append(v.fieldOffset, field.Offset)
		if !isOptional {
			v.required = v.required.With(kind)
		}
	}

	return v
}

// Kinds returns the required component kinds of the view.
func (v *View[T]) Kinds() []Kind {
	return v.required.Kinds()
}

// Mask returns the required component kinds as a mask.
func (v *View[T]) Mask() Mask {
	return v.required
}

// Fill populates the provided struct pointer with component data for the given entity.
// Returns false if the entity is missing any required components.
// Optional components are set to nil if not present.
func (v *View[T]) Fill(w *World, id EntityId, ptr *T) bool {
	mask, ok := w.storage.Mask(id)
	if !ok || !mask.Contains(v.required) {
		return false
	}

	// Use unsafe.Pointer to directly access the struct's memory
	// This avoids reflection overhead in the hot path
	structPtr := unsafe.Pointer(ptr)

	for _, offset := range v.idOffsets {
		*(*EntityId)(unsafe.Pointer(uintptr(structPtr) + offset)) = id
	}

	for i, kind := range v.kinds {
		fieldPtr := unsafe.Pointer(uintptr(structPtr) + v.fieldOffset[i])

		component := w.storage.GetComponent(id, kind)
		if component == nil {
			// required kinds were checked against the mask above
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}

		// Extract the *T held by the interface value
		componentPtr := (*iface)(unsafe.Pointer(&component)).data
		*(*unsafe.Pointer)(fieldPtr) = componentPtr
	}

	return true
}

// Get returns a populated view struct for the given entity, or nil if the entity
// doesn't have all the required components.
func (v *View[T]) Get(w *World, id EntityId) *T {
	var result T
	if !v.Fill(w, id, &result) {
		return nil
	}
	return &result
}

// Iter iterates the entities of a matched set, yielding a populated view for
// each. Entities that no longer satisfy the view are skipped.
func (v *View[T]) Iter(w *World, entities *EntitySet) iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		var result T
		for id := range entities.All() {
			if !v.Fill(w, id, &result) {
				continue
			}
			if !yield(id, result) {
				return
			}
		}
	}
}

// Spawn creates a new entity from the non-nil component fields of data, in
// field order. It panics if a required component is nil.
func (v *View[T]) Spawn(w *World, data T) (EntityId, error) {
	structPtr := unsafe.Pointer(&data)

	components := make([]any, 0, len(v.types))
	for i, componentType := range v.types {
		fieldPtr := unsafe.Pointer(uintptr(structPtr) + v.fieldOffset[i])
		componentPtr := *(*unsafe.Pointer)(fieldPtr)

		if componentPtr == nil {
			if !v.optional[i] {
				panic("required component is nil in View.Spawn")
			}
			continue
		}

		components = append(components, reflect.NewAt(componentType, componentPtr).Interface())
	}

	return w.Spawn(components...)
}
