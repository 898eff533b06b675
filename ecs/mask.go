package ecs

import (
	"math/bits"
	"strconv"
	"strings"
)

// Kind is the index of a component type within its ComponentRegistry.
type Kind uint8

// MaxKinds is the number of component types a single registry can hold.
const MaxKinds = 64

// Mask is a set of component kinds.
type Mask uint64

// MaskOf builds a mask from the given kinds. Duplicates collapse.
func MaskOf(kinds ...Kind) Mask {
	var m Mask
	for _, k := range kinds {
		m = m.With(k)
	}
	return m
}

// With returns m with k added.
func (m Mask) With(k Kind) Mask {
	return m | 1<<k
}

// Without returns m with k removed.
func (m Mask) Without(k Kind) Mask {
	return m &^ (1 << k)
}

// Has reports whether k is in the mask.
func (m Mask) Has(k Kind) bool {
	return m&(1<<k) != 0
}

// Contains reports whether m is a superset of other.
func (m Mask) Contains(other Mask) bool {
	return m&other == other
}

// Len returns the number of kinds in the mask.
func (m Mask) Len() int {
	return bits.OnesCount64(uint64(m))
}

// Kinds returns the kinds in ascending order.
func (m Mask) Kinds() []Kind {
	kinds := make([]Kind, 0, m.Len())
	for rest := uint64(m); rest != 0; rest &= rest - 1 {
		kinds = append(kinds, Kind(bits.TrailingZeros64(rest)))
	}
	return kinds
}

func (m Mask) String() string {
	kinds := m.Kinds()
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = strconv.Itoa(int(k))
	}
	return "{" + strings.Join(parts, ",") + "}"
}
