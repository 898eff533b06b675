package ecs

import "strconv"

// EntityId is an opaque entity identifier. Ids are handed out in strictly
// increasing order starting at 1 and are never reused; the zero value never
// names an entity.
type EntityId uint64

// String returns the decimal form of the id.
func (e EntityId) String() string {
	return strconv.FormatUint(uint64(e), 10)
}

// IsZero reports whether the id is the zero "no entity" value.
func (e EntityId) IsZero() bool {
	return e == 0
}

// entityRow is the per-entity record kept by the storage: the set of kinds the
// entity currently carries. dying is set once the destroy phase has started
// tearing the entity down, after which membership is no longer re-evaluated.
type entityRow struct {
	mask  Mask
	dying bool
}

// entityAllocator hands out monotonically increasing ids.
type entityAllocator struct {
	next EntityId
}

func (a *entityAllocator) allocate() EntityId {
	a.next++
	return a.next
}

// peek returns the id the next allocation will produce.
func (a *entityAllocator) peek() EntityId {
	return a.next + 1
}
