// Package set implements a set on top of a densemap.Map.
package set

import (
	"src.elv.sh/adt/pkg/densemap"
	"src.elv.sh/adt/pkg/seq"
)

// Set is a mutable set of elements of type E. It is not safe for concurrent
// use. Like densemap.Map, it ignores the nil value of E when E has one.
type Set[E comparable] struct {
	m *densemap.Map[E, struct{}]
}

// New creates an empty Set.
func New[E comparable]() *Set[E] {
	return &Set[E]{densemap.New[E, struct{}]()}
}

// NewWithCapacity creates an empty Set that can hold capacity elements before
// growing.
func NewWithCapacity[E comparable](capacity int) *Set[E] {
	return &Set[E]{densemap.NewWithCapacity[E, struct{}](capacity)}
}

// Add adds an element to the set. It does nothing if the element is already in
// the set.
func (s *Set[E]) Add(e E) {
	s.m.Put(e, struct{}{})
}

// Contains reports whether the element is in the set.
func (s *Set[E]) Contains(e E) bool {
	return s.m.HasKey(e)
}

// Remove removes an element from the set, if it is there.
func (s *Set[E]) Remove(e E) {
	s.m.Remove(e)
}

// Len returns the number of elements in the set.
func (s *Set[E]) Len() int { return s.m.Len() }

// Cap returns the number of elements the set can hold before it grows.
func (s *Set[E]) Cap() int { return s.m.Cap() }

// IsEmpty reports whether the set has no elements.
func (s *Set[E]) IsEmpty() bool { return s.m.Len() == 0 }

// Iterator returns an iterator over the elements of the set. The order is
// that of the underlying map, and changes when elements are removed.
func (s *Set[E]) Iterator() seq.Iterator[E] {
	return s.m.Iterator()
}

// String renders the set like "[a, b, c]".
func (s *Set[E]) String() string { return seq.Format(s.Iterator()) }

// MarshalJSON encodes the set as a JSON array.
func (s *Set[E]) MarshalJSON() ([]byte, error) { return seq.MarshalJSON(s.Iterator()) }
