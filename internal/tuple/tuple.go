// Package tuple provides an immutable two-element container with value semantics.
package tuple

import (
	"fmt"
	"hash/maphash"
)

// Pair holds two items. The zero value is a pair of zero items.
//
// Equality follows a strict rule: two pairs are equal only when every item is
// present (not its zero value) on both sides and the items match pairwise. A
// pair with an absent item is therefore not equal to anything, itself included.
type Pair[T, U comparable] struct {
	item1 T
	item2 U
}

// Of creates a pair of two items.
func Of[T, U comparable](item1 T, item2 U) Pair[T, U] {
	return Pair[T, U]{item1: item1, item2: item2}
}

// Item1 returns the first item in the pair.
func (p Pair[T, U]) Item1() T {
	return p.item1
}

// Item2 returns the second item in the pair.
func (p Pair[T, U]) Item2() U {
	return p.item2
}

// Equal reports whether both pairs hold present, pairwise equal items.
func (p Pair[T, U]) Equal(other Pair[T, U]) bool {
	var zeroT T
	var zeroU U

	if p.item1 == zeroT || other.item1 == zeroT {
		return false
	}
	if p.item2 == zeroU || other.item2 == zeroU {
		return false
	}
	return p.item1 == other.item1 && p.item2 == other.item2
}

// Hash combines the hashes of both items under the given seed.
// Pairs that are Equal always hash to the same value for the same seed.
func (p Pair[T, U]) Hash(seed maphash.Seed) uint64 {
	return maphash.Comparable(seed, p.item1) + 29*maphash.Comparable(seed, p.item2)
}

// String renders the pair as "(item1, item2)".
func (p Pair[T, U]) String() string {
	return fmt.Sprintf("(%v, %v)", p.item1, p.item2)
}
