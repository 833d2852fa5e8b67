package definition

import (
	"fmt"
	"iter"
)

// lifecycle is shared by every collection of one build and freezes them
// together when the build completes.
type lifecycle struct {
	frozen bool
}

func (l *lifecycle) freeze() {
	l.frozen = true
}

// Guardian reports whether added conflicts with an existing value even though
// their keys differ.
type Guardian[V any] func(existing, added V) bool

// UniqueCollection is an insertion-ordered collection with one value per key.
type UniqueCollection[K comparable, V any] struct {
	lc       *lifecycle
	guardian Guardian[V]
	keys     []K
	values   []V
	index    map[K]int
}

// NewUniqueCollection creates an empty collection. guardian may be nil.
func NewUniqueCollection[K comparable, V any](guardian Guardian[V]) *UniqueCollection[K, V] {
	return newUnique[K, V](&lifecycle{}, guardian)
}

func newUnique[K comparable, V any](lc *lifecycle, guardian Guardian[V]) *UniqueCollection[K, V] {
	return &UniqueCollection[K, V]{lc: lc, guardian: guardian, index: make(map[K]int)}
}

// Add inserts v under key. It fails when the key exists, when the guardian
// matches an existing value, or when the collection is frozen.
func (c *UniqueCollection[K, V]) Add(key K, v V) error {
	if c.lc.frozen {
		return ErrFrozen
	}

	if _, ok := c.index[key]; ok {
		return fmt.Errorf("%w: %v", ErrDuplicateKey, key)
	}

	if c.guardian != nil {
		for _, existing := range c.values {
			if c.guardian(existing, v) {
				return fmt.Errorf("%w: %v conflicts with an existing entry", ErrDuplicateKey, key)
			}
		}
	}

	c.index[key] = len(c.values)
	c.keys = append(c.keys, key)
	c.values = append(c.values, v)

	return nil
}

// Get returns the value for key.
func (c *UniqueCollection[K, V]) Get(key K) (V, bool) {
	i, ok := c.index[key]
	if !ok {
		var zero V
		return zero, false
	}

	return c.values[i], true
}

// Contains reports whether key is present.
func (c *UniqueCollection[K, V]) Contains(key K) bool {
	_, ok := c.index[key]
	return ok
}

// At returns the i-th value in insertion order.
func (c *UniqueCollection[K, V]) At(i int) V {
	return c.values[i]
}

// Len returns the number of values.
func (c *UniqueCollection[K, V]) Len() int {
	return len(c.values)
}

// Keys returns the keys in insertion order.
func (c *UniqueCollection[K, V]) Keys() []K {
	return append([]K(nil), c.keys...)
}

// Values returns the values in insertion order.
func (c *UniqueCollection[K, V]) Values() []V {
	return append([]V(nil), c.values...)
}

// All iterates values in insertion order.
func (c *UniqueCollection[K, V]) All() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range c.values {
			if !yield(v) {
				return
			}
		}
	}
}

// Frozen reports whether the collection rejects further additions.
func (c *UniqueCollection[K, V]) Frozen() bool {
	return c.lc.frozen
}

// reorder rearranges values by perm, where perm[i] is the old position of the
// new i-th value.
func (c *UniqueCollection[K, V]) reorder(perm []int) {
	keys := make([]K, len(perm))
	values := make([]V, len(perm))

	for i, old := range perm {
		keys[i] = c.keys[old]
		values[i] = c.values[old]
		c.index[keys[i]] = i
	}

	c.keys, c.values = keys, values
}

// Accept passes every value that is a graph node to v in insertion order and
// stops at the first error.
func (c *UniqueCollection[K, V]) Accept(v Visitor) error {
	return acceptValues(c.values, v)
}

// MultiCollection is an insertion-ordered collection where several values may
// share a key.
type MultiCollection[K comparable, V any] struct {
	lc     *lifecycle
	keys   []K
	values []V
	byKey  map[K][]V
}

// NewMultiCollection creates an empty collection.
func NewMultiCollection[K comparable, V any]() *MultiCollection[K, V] {
	return newMulti[K, V](&lifecycle{})
}

func newMulti[K comparable, V any](lc *lifecycle) *MultiCollection[K, V] {
	return &MultiCollection[K, V]{lc: lc, byKey: make(map[K][]V)}
}

// Add appends v under key.
func (c *MultiCollection[K, V]) Add(key K, v V) error {
	if c.lc.frozen {
		return ErrFrozen
	}

	if _, ok := c.byKey[key]; !ok {
		c.keys = append(c.keys, key)
	}

	c.byKey[key] = append(c.byKey[key], v)
	c.values = append(c.values, v)

	return nil
}

// Get returns all values for key in insertion order.
func (c *MultiCollection[K, V]) Get(key K) []V {
	return append([]V(nil), c.byKey[key]...)
}

// Contains reports whether any value is stored under key.
func (c *MultiCollection[K, V]) Contains(key K) bool {
	return len(c.byKey[key]) > 0
}

// Len returns the total number of values.
func (c *MultiCollection[K, V]) Len() int {
	return len(c.values)
}

// Keys returns the distinct keys in first-insertion order.
func (c *MultiCollection[K, V]) Keys() []K {
	return append([]K(nil), c.keys...)
}

// Values returns all values in insertion order.
func (c *MultiCollection[K, V]) Values() []V {
	return append([]V(nil), c.values...)
}

// All iterates values in insertion order.
func (c *MultiCollection[K, V]) All() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range c.values {
			if !yield(v) {
				return
			}
		}
	}
}

// Frozen reports whether the collection rejects further additions.
func (c *MultiCollection[K, V]) Frozen() bool {
	return c.lc.frozen
}

// Accept passes every value that is a graph node to v in insertion order and
// stops at the first error.
func (c *MultiCollection[K, V]) Accept(v Visitor) error {
	return acceptValues(c.values, v)
}

// acceptValues skips values that are not nodes.
func acceptValues[V any](values []V, v Visitor) error {
	for _, val := range values {
		n, ok := any(val).(Node)
		if !ok {
			continue
		}

		if err := n.accept(v); err != nil {
			return err
		}
	}

	return nil
}

// Covariant is a read-only view of a collection of a derived type as a
// collection of B. It does not copy.
type Covariant[B any] struct {
	n  func() int
	at func(int) B
}

// CovariantOf views a unique collection of D as a collection of B. D must
// implement B.
func CovariantOf[B any, K comparable, D any](c *UniqueCollection[K, D]) Covariant[B] {
	return Covariant[B]{
		n: c.Len,
		at: func(i int) B {
			return any(c.At(i)).(B)
		},
	}
}

// Len returns the number of values.
func (c Covariant[B]) Len() int {
	if c.n == nil {
		return 0
	}

	return c.n()
}

// At returns the i-th value.
func (c Covariant[B]) At(i int) B {
	return c.at(i)
}

// All iterates values in the order of the underlying collection.
func (c Covariant[B]) All() iter.Seq[B] {
	return func(yield func(B) bool) {
		for i := range c.Len() {
			if !yield(c.at(i)) {
				return
			}
		}
	}
}

// Concat chains several iterators.
func Concat[V any](seqs ...iter.Seq[V]) iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, seq := range seqs {
			for v := range seq {
				if !yield(v) {
					return
				}
			}
		}
	}
}
