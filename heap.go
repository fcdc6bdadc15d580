package pqueue

import (
	"cmp"
	"log/slog"
	"sync"
)

// HeapQueue is an unbounded priority queue backed by a binary max-heap.
// The element that compares highest is served first; the order among
// elements that compare equal is unspecified.
//
// All methods are safe for concurrent use.
type HeapQueue[E comparable] struct {
	mu sync.Mutex

	// heap is 1-indexed: heap[0] is unused and heap[1:size+1] holds the
	// elements, with no element ordering above its parent.
	heap    []E
	size    int
	compare func(a, b E) int

	logger *slog.Logger
}

// NewHeapQueue returns an empty queue for naturally ordered element types,
// compared with cmp.Compare.
func NewHeapQueue[E cmp.Ordered](opts ...Option) *HeapQueue[E] {
	return NewHeapQueueFunc(cmp.Compare[E], opts...)
}

// NewComparerHeapQueue returns an empty queue for element types that
// implement Comparer.
func NewComparerHeapQueue[E Comparer[E]](opts ...Option) *HeapQueue[E] {
	return NewHeapQueueFunc(func(a, b E) int { return a.Compare(b) }, opts...)
}

// NewHeapQueueFunc returns an empty queue ordered by compare, which must
// define a total order and return a negative number when a orders below b,
// zero when they are equivalent and a positive number otherwise.
func NewHeapQueueFunc[E comparable](compare func(a, b E) int, opts ...Option) *HeapQueue[E] {
	o := newOptions(defaultHeapCapacity, opts)
	return &HeapQueue[E]{
		heap:    make([]E, o.capacity+1),
		compare: compare,
		logger:  o.logger,
	}
}

// Len returns the number of queued elements.
func (q *HeapQueue[E]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.size
}

// Add queues e in amortized O(log n) time.
func (q *HeapQueue[E]) Add(e E) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.addLocked(e)
}

// Poll removes and returns the highest element in O(log n) time. It returns
// the zero value and false if the queue is empty.
func (q *HeapQueue[E]) Poll() (E, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.size == 0 {
		var zero E
		return zero, false
	}
	e := q.heap[1]
	q.removeAtLocked(1)
	return e, true
}

// Peek returns the element Poll would return without removing it.
func (q *HeapQueue[E]) Peek() (E, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.size == 0 {
		var zero E
		return zero, false
	}
	return q.heap[1], true
}

// Update replaces the first queued element equal to existing with updated.
// Finding existing is a linear scan, so Update runs in O(n). It returns
// ErrNotFound, leaving the queue unchanged, if existing is not queued.
func (q *HeapQueue[E]) Update(existing, updated E) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	i := q.indexLocked(existing)
	if i < 0 {
		return ErrNotFound
	}
	q.removeAtLocked(i)
	q.addLocked(updated)
	return nil
}

// Iterator returns an iterator over a snapshot of the queue in heap storage
// order, which is not priority order. Building the snapshot takes O(n).
func (q *HeapQueue[E]) Iterator() *Iterator[E] {
	q.mu.Lock()
	defer q.mu.Unlock()

	items := make([]E, q.size)
	copy(items, q.heap[1:q.size+1])
	return newIterator(items)
}

// addLocked must be called with mu held.
func (q *HeapQueue[E]) addLocked(e E) {
	if q.size >= len(q.heap)-1 {
		q.growLocked()
	}
	q.size++
	q.heap[q.size] = e
	q.siftUpLocked(q.size)
}

// growLocked doubles the backing array.
// Must be called with mu held.
func (q *HeapQueue[E]) growLocked() {
	grown := make([]E, 2*(len(q.heap)-1)+1)
	copy(grown, q.heap[:q.size+1])
	q.logger.Debug("heap grown", "old_capacity", len(q.heap)-1, "capacity", len(grown)-1)
	q.heap = grown
}

// indexLocked returns the slot holding e or -1.
// Must be called with mu held.
func (q *HeapQueue[E]) indexLocked(e E) int {
	for i := 1; i <= q.size; i++ {
		if q.heap[i] == e {
			return i
		}
	}
	return -1
}

// removeAtLocked removes the element in slot i by moving the last element
// into the hole and sifting it whichever way restores the heap.
// Must be called with mu held.
func (q *HeapQueue[E]) removeAtLocked(i int) {
	var zero E
	last := q.heap[q.size]
	q.heap[q.size] = zero
	q.size--
	if i > q.size {
		return
	}
	q.heap[i] = last
	if i > 1 && q.less(i/2, i) {
		q.siftUpLocked(i)
	} else {
		q.siftDownLocked(i)
	}
}

// Must be called with mu held.
func (q *HeapQueue[E]) siftUpLocked(i int) {
	for i > 1 && q.less(i/2, i) {
		q.swap(i, i/2)
		i /= 2
	}
}

// Must be called with mu held.
func (q *HeapQueue[E]) siftDownLocked(i int) {
	for {
		larger := 2 * i
		if larger > q.size {
			return
		}
		if right := larger + 1; right <= q.size && q.less(larger, right) {
			larger = right
		}
		if !q.less(i, larger) {
			return
		}
		q.swap(i, larger)
		i = larger
	}
}

// less reports whether slot i orders strictly below slot j.
// Must be called with mu held.
func (q *HeapQueue[E]) less(i, j int) bool {
	return q.compare(q.heap[i], q.heap[j]) < 0
}

// Must be called with mu held.
func (q *HeapQueue[E]) swap(i, j int) {
	q.heap[i], q.heap[j] = q.heap[j], q.heap[i]
}
