package pqueue

import "iter"

// Iterator walks a snapshot of a queue's contents taken when the iterator
// was created. It is weakly consistent: later changes to the queue are never
// reflected and never cause it to fail. An Iterator is one-shot and is not
// safe for concurrent use by multiple goroutines; call the queue's Iterator
// method again for a fresh traversal.
type Iterator[E any] struct {
	items  []E
	cursor int
}

func newIterator[E any](items []E) *Iterator[E] {
	return &Iterator[E]{items: items}
}

// HasNext reports whether Next will return another element.
func (it *Iterator[E]) HasNext() bool {
	return it.cursor < len(it.items)
}

// Next returns the next element of the snapshot. Once the snapshot is
// exhausted it returns the zero value and false.
func (it *Iterator[E]) Next() (E, bool) {
	if it.cursor >= len(it.items) {
		var zero E
		return zero, false
	}
	e := it.items[it.cursor]
	// release the reference, the slot is never visited again
	var zero E
	it.items[it.cursor] = zero
	it.cursor++
	return e, true
}

// Remaining returns the number of elements Next has yet to return.
func (it *Iterator[E]) Remaining() int {
	return len(it.items) - it.cursor
}

// All returns the remaining elements as a sequence for use with range.
// It shares the cursor with Next, so elements consumed by one are not
// produced by the other.
func (it *Iterator[E]) All() iter.Seq[E] {
	return func(yield func(E) bool) {
		for {
			e, ok := it.Next()
			if !ok || !yield(e) {
				return
			}
		}
	}
}
