// Package indexedlist implements a positional list on top of a densemap.Map.
//
// Positions are the keys of the underlying map and elements are its values.
// The list keeps the key set of the map exactly {0, ..., Len()-1}: since the
// map removes by swapping with its last pair, the list does its own shifting
// on Insert and Remove, and only ever asks the map to remove the last key.
package indexedlist

import (
	"fmt"

	"src.elv.sh/adt/pkg/densemap"
	"src.elv.sh/adt/pkg/seq"
)

// List is a mutable sequence of elements of type E. It is not safe for
// concurrent use.
type List[E any] struct {
	m *densemap.Map[int, E]
	n int
}

// New creates an empty List.
func New[E any]() *List[E] {
	return &List[E]{m: densemap.New[int, E]()}
}

// NewWithCapacity creates an empty List whose underlying map can hold
// capacity elements before growing.
func NewWithCapacity[E any](capacity int) *List[E] {
	return &List[E]{m: densemap.NewWithCapacity[int, E](capacity)}
}

// OutOfBoundsError is returned when an index is outside the range accepted by
// an operation.
type OutOfBoundsError struct {
	// Name of the operation, like "get".
	Op string
	// The offending index.
	Index int
	// Length of the list at the time of the operation.
	Len int
}

func (e *OutOfBoundsError) Error() string {
	high := e.Len - 1
	if e.Op == "insert" {
		high = e.Len
	}
	if high < 0 {
		return fmt.Sprintf("%s: index out of range: list is empty, but index is %d",
			e.Op, e.Index)
	}
	return fmt.Sprintf("%s: index out of range: must be from 0 to %d, but is %d",
		e.Op, high, e.Index)
}

func (l *List[E]) checkIndex(op string, i, high int) error {
	if i < 0 || i > high {
		return &OutOfBoundsError{op, i, l.n}
	}
	return nil
}

// Len returns the number of elements in the list.
func (l *List[E]) Len() int { return l.n }

// Cap returns the number of elements the list can hold before its underlying
// map grows.
func (l *List[E]) Cap() int { return l.m.Cap() }

// Add appends an element to the end of the list.
func (l *List[E]) Add(e E) {
	l.m.Put(l.n, e)
	l.n++
}

// Set replaces the element at index i.
func (l *List[E]) Set(i int, e E) error {
	if err := l.checkIndex("set", i, l.n-1); err != nil {
		return err
	}
	l.m.Put(i, e)
	return nil
}

// Get returns the element at index i.
func (l *List[E]) Get(i int) (E, error) {
	if err := l.checkIndex("get", i, l.n-1); err != nil {
		var zero E
		return zero, err
	}
	return l.get(i), nil
}

// get returns the element at an index known to be in range.
func (l *List[E]) get(i int) E {
	e, ok := l.m.Get(i)
	if !ok {
		panic(fmt.Sprintf("indexedlist: key %d missing from map with length %d", i, l.n))
	}
	return e
}

// Insert inserts an element at index i, shifting the elements at i and after
// it one position towards the end. Inserting at Len() is the same as Add.
func (l *List[E]) Insert(i int, e E) error {
	if err := l.checkIndex("insert", i, l.n); err != nil {
		return err
	}
	// Shift from the end, so that no element is overwritten before it has
	// been moved.
	for p := l.n - 1; p >= i; p-- {
		l.m.Put(p+1, l.get(p))
	}
	l.m.Put(i, e)
	l.n++
	return nil
}

// Remove removes and returns the element at index i, shifting the elements
// after it one position towards the start.
func (l *List[E]) Remove(i int) (E, error) {
	if err := l.checkIndex("remove", i, l.n-1); err != nil {
		var zero E
		return zero, err
	}
	removed := l.get(i)
	for p := i + 1; p < l.n; p++ {
		l.m.Put(p-1, l.get(p))
	}
	// The last key now holds a duplicate. It is also the last pair in the
	// storage of the map, so removing it moves nothing.
	l.m.Remove(l.n - 1)
	l.n--
	return removed, nil
}

// Iterator returns an iterator over the elements of the list, in index order.
func (l *List[E]) Iterator() *Iterator[E] {
	return &Iterator[E]{l, 0}
}

// Iterator is an iterator over the elements of a List. It implements
// seq.Iterator[E].
type Iterator[E any] struct {
	l     *List[E]
	index int
}

// Elem returns the element at the current position.
func (it *Iterator[E]) Elem() E { return it.l.get(it.index) }

// HasElem returns whether the iterator is pointing to an element.
func (it *Iterator[E]) HasElem() bool { return it.index < it.l.n }

// Next moves the iterator to the next element.
func (it *Iterator[E]) Next() { it.index++ }

// String renders the list like "[a, b, c]".
func (l *List[E]) String() string {
	return seq.Format[E](l.Iterator())
}

// MarshalJSON encodes the list as a JSON array.
func (l *List[E]) MarshalJSON() ([]byte, error) {
	return seq.MarshalJSON[E](l.Iterator())
}
