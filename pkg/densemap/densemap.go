// Package densemap implements an associative map backed by a dense,
// dynamically growing array of key-value pairs.
//
// Live pairs always occupy positions [0, Len()) of the backing array, with no
// gaps. Lookup is a linear scan, insertion of a new key is amortized O(1) on
// top of that scan, and removal fills the hole with the last live pair.
package densemap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"

	"src.elv.sh/adt/pkg/logutil"
)

// DefaultCapacity is the capacity of maps created without an explicit
// capacity, or with a non-positive one.
const DefaultCapacity = 100

var logger = logutil.GetLogger("[densemap] ")

// Map is a mutable map from keys of type K to values of type V. It is not safe
// for concurrent use.
//
// If K has a nil value (pointer, interface, channel, function, map or slice
// types), the nil value is the absent key: Put ignores it, Get and HasKey never
// find it, and Remove does nothing with it. When K is an interface type, only
// the nil interface is absent; a typed nil such as (*T)(nil) is an ordinary
// key.
//
// Maps created by New and NewWithCapacity compare keys with ==. When K is an
// interface type, a key whose dynamic type is not comparable (a slice, say)
// makes the comparison panic once the map holds another key to compare it
// with. Use NewFunc for such keys.
type Map[K, V any] struct {
	pairs []pair[K, V]
	n     int
	equal func(a, b K) bool
	// Whether K has a nil value.
	nilable bool
}

type pair[K, V any] struct {
	key K
	val V
}

// New creates an empty Map with DefaultCapacity, comparing keys with ==.
func New[K comparable, V any]() *Map[K, V] {
	return NewWithCapacity[K, V](DefaultCapacity)
}

// NewWithCapacity creates an empty Map that can hold capacity pairs before
// growing, comparing keys with ==.
func NewWithCapacity[K comparable, V any](capacity int) *Map[K, V] {
	return NewFunc[K, V](capacity, func(a, b K) bool { return a == b })
}

// NewFunc creates an empty Map that can hold capacity pairs before growing,
// comparing keys with the given equality function. The function must be an
// equivalence relation.
func NewFunc[K, V any](capacity int, equal func(a, b K) bool) *Map[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Map[K, V]{
		pairs:   make([]pair[K, V], capacity),
		equal:   equal,
		nilable: isNilable(reflect.TypeOf((*K)(nil)).Elem()),
	}
}

func isNilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Chan, reflect.Func,
		reflect.Map, reflect.Slice, reflect.UnsafePointer:
		return true
	}
	return false
}

func (m *Map[K, V]) isAbsent(k K) bool {
	return m.nilable && reflect.ValueOf(&k).Elem().IsNil()
}

// find returns the position of the live pair with key k, or -1.
func (m *Map[K, V]) find(k K) int {
	if m.isAbsent(k) {
		return -1
	}
	for i := 0; i < m.n; i++ {
		if m.equal(m.pairs[i].key, k) {
			return i
		}
	}
	return -1
}

// Len returns the number of pairs in the map.
func (m *Map[K, V]) Len() int { return m.n }

// Cap returns the number of pairs the map can hold before it grows.
func (m *Map[K, V]) Cap() int { return len(m.pairs) }

// Put associates k with v, overwriting any existing value of k.
func (m *Map[K, V]) Put(k K, v V) {
	if m.isAbsent(k) {
		return
	}
	if i := m.find(k); i != -1 {
		m.pairs[i].val = v
		return
	}
	if m.n == len(m.pairs) {
		m.grow()
	}
	m.pairs[m.n] = pair[K, V]{k, v}
	m.n++
}

// grow doubles the capacity of the backing array.
func (m *Map[K, V]) grow() {
	pairs := make([]pair[K, V], 2*len(m.pairs))
	copy(pairs, m.pairs[:m.n])
	logger.Printf("growing from %d to %d", len(m.pairs), len(pairs))
	m.pairs = pairs
}

// Get returns the value associated with k and true, or the zero value and
// false if there is no such value.
func (m *Map[K, V]) Get(k K) (V, bool) {
	if i := m.find(k); i != -1 {
		return m.pairs[i].val, true
	}
	var zero V
	return zero, false
}

// HasKey reports whether the map has a value associated with k.
func (m *Map[K, V]) HasKey(k K) bool {
	return m.find(k) != -1
}

// Remove removes the pair with key k if it exists. The last pair in storage
// order takes the place of the removed pair, so Remove changes the iteration
// order of the remaining keys.
func (m *Map[K, V]) Remove(k K) {
	i := m.find(k)
	if i == -1 {
		return
	}
	last := m.n - 1
	if i != last {
		m.pairs[i] = m.pairs[last]
	}
	m.pairs[last] = pair[K, V]{}
	m.n--
}

// Iterator returns an iterator over the keys of the map, in storage order.
func (m *Map[K, V]) Iterator() *Iterator[K, V] {
	return &Iterator[K, V]{m, 0}
}

// Iterator is an iterator over the pairs of a Map. It implements
// seq.Iterator[K].
type Iterator[K, V any] struct {
	m     *Map[K, V]
	index int
}

// Elem returns the key at the current position.
func (it *Iterator[K, V]) Elem() K { return it.m.pairs[it.index].key }

// Value returns the value at the current position.
func (it *Iterator[K, V]) Value() V { return it.m.pairs[it.index].val }

// HasElem returns whether the iterator is pointing to a pair.
func (it *Iterator[K, V]) HasElem() bool { return it.index < it.m.n }

// Next moves the iterator to the next pair.
func (it *Iterator[K, V]) Next() { it.index++ }

// String renders the map like "[k1=v1, k2=v2]", in storage order.
func (m *Map[K, V]) String() string {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i := 0; i < m.n; i++ {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(&buf, "%v=%v", m.pairs[i].key, m.pairs[i].val)
	}
	buf.WriteByte(']')
	return buf.String()
}

// MarshalJSON encodes the map as a JSON object, in storage order. String keys
// are used as is; other keys are replaced by their JSON encoding. It is an
// error for two keys to encode to the same object key, like the string "1"
// and the number 1 in a map with interface keys.
func (m *Map[K, V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	seen := make(map[string]int, m.n)
	for i := 0; i < m.n; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		p := &m.pairs[i]
		keyString, err := jsonKey(p.key)
		if err != nil {
			return nil, fmt.Errorf("key %v: %w", p.key, err)
		}
		if j, ok := seen[keyString]; ok {
			return nil, fmt.Errorf("keys %v and %v both encode as %q",
				m.pairs[j].key, p.key, keyString)
		}
		seen[keyString] = i
		keyBytes, err := json.Marshal(keyString)
		if err != nil {
			return nil, err
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')
		valBytes, err := json.Marshal(p.val)
		if err != nil {
			return nil, fmt.Errorf("value of key %v: %w", p.key, err)
		}
		buf.Write(valBytes)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func jsonKey(k any) (string, error) {
	if s, ok := k.(string); ok {
		return s, nil
	}
	bs, err := json.Marshal(k)
	if err != nil {
		return "", err
	}
	return string(bs), nil
}
