package ecs

import "reflect"

// iComponentStorage is a type-erased column holding every value of one component kind.
type iComponentStorage interface {
	// Set stores item (a T or *T) for the entity, replacing any previous value.
	// It returns false if item is not of the column's type.
	Set(id EntityId, item any) bool
	Delete(id EntityId) bool
	// Get returns a *T, or nil when the entity has no value.
	Get(id EntityId) any
	Has(id EntityId) bool
	Len() int
	Type() reflect.Type
}
