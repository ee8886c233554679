// Package bag implements a multiset on top of an indexedlist.List.
package bag

import (
	"src.elv.sh/adt/pkg/indexedlist"
	"src.elv.sh/adt/pkg/must"
	"src.elv.sh/adt/pkg/seq"
)

// Bag is a mutable multiset of elements of type E. Equal elements are kept
// next to each other in the underlying list. It is not safe for concurrent
// use.
type Bag[E comparable] struct {
	l *indexedlist.List[E]
}

// New creates an empty Bag.
func New[E comparable]() *Bag[E] {
	return &Bag[E]{indexedlist.New[E]()}
}

// NewWithCapacity creates an empty Bag that can hold capacity occurrences
// before growing.
func NewWithCapacity[E comparable](capacity int) *Bag[E] {
	return &Bag[E]{indexedlist.NewWithCapacity[E](capacity)}
}

// Add adds one occurrence of an element.
func (b *Bag[E]) Add(e E) {
	for i := 0; i < b.l.Len(); i++ {
		if b.at(i) == e {
			must.OK(b.l.Insert(i, e))
			return
		}
	}
	b.l.Add(e)
}

// Count returns the number of occurrences of an element.
func (b *Bag[E]) Count(e E) int {
	count := 0
	for it := b.l.Iterator(); it.HasElem(); it.Next() {
		if it.Elem() == e {
			count++
		}
	}
	return count
}

// Remove removes all occurrences of an element, if there are any.
func (b *Bag[E]) Remove(e E) {
	for i := 0; i < b.l.Len(); {
		if b.at(i) == e {
			must.OK1(b.l.Remove(i))
		} else {
			i++
		}
	}
}

// Len returns the number of elements in the bag, counting every occurrence.
func (b *Bag[E]) Len() int { return b.l.Len() }

// Cap returns the number of occurrences the bag can hold before it grows.
func (b *Bag[E]) Cap() int { return b.l.Cap() }

// IsEmpty reports whether the bag has no elements.
func (b *Bag[E]) IsEmpty() bool { return b.l.Len() == 0 }

// Iterator returns an iterator over the elements of the bag. Each element is
// produced as many times as it occurs, and occurrences are adjacent.
func (b *Bag[E]) Iterator() seq.Iterator[E] { return b.l.Iterator() }

// String renders the bag like "[a, a, b]".
func (b *Bag[E]) String() string { return b.l.String() }

// MarshalJSON encodes the bag as a JSON array.
func (b *Bag[E]) MarshalJSON() ([]byte, error) { return b.l.MarshalJSON() }

func (b *Bag[E]) at(i int) E { return must.OK1(b.l.Get(i)) }
