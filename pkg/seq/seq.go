// Package seq defines the iteration protocol shared by the containers in this
// module, and helpers for rendering any container through it.
package seq

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Iterator is a forward-only cursor over the elements of a container. It can
// be used like this:
//
//	for it := c.Iterator(); it.HasElem(); it.Next() {
//	    elem := it.Elem()
//	    // do something with elem...
//	}
//
// An Iterator observes the live state of its container. The result of
// iterating a container that is modified during the iteration is undefined.
type Iterator[T any] interface {
	// Elem returns the element at the current position.
	Elem() T
	// HasElem returns whether the iterator is pointing to an element.
	HasElem() bool
	// Next moves the iterator to the next position.
	Next()
}

// Collect drains an iterator into a slice. It returns nil if the iterator has
// no elements.
func Collect[T any](it Iterator[T]) []T {
	var elems []T
	for ; it.HasElem(); it.Next() {
		elems = append(elems, it.Elem())
	}
	return elems
}

// Format renders the elements of an iterator like "[a, b, c]".
func Format[T any](it Iterator[T]) string {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i := 0; it.HasElem(); it.Next() {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprint(&buf, it.Elem())
		i++
	}
	buf.WriteByte(']')
	return buf.String()
}

// MarshalJSON encodes the elements of an iterator as a JSON array.
func MarshalJSON[T any](it Iterator[T]) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	index := 0
	for ; it.HasElem(); it.Next() {
		if index > 0 {
			buf.WriteByte(',')
		}
		elemBytes, err := json.Marshal(it.Elem())
		if err != nil {
			return nil, &MarshalError{index, err}
		}
		buf.Write(elemBytes)
		index++
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// MarshalError is returned by MarshalJSON when an element cannot be encoded.
type MarshalError struct {
	Index int
	Err   error
}

func (err *MarshalError) Error() string {
	return fmt.Sprintf("element %d: %s", err.Index, err.Err)
}

func (err *MarshalError) Unwrap() error { return err.Err }
