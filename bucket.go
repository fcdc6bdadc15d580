package pqueue

import (
	"fmt"
	"log/slog"
	"sync"
)

// bucket holds every queued element of one priority. elements is used as
// fixed storage, size is the number of occupied slots at its front.
type bucket[E Prioritizable] struct {
	elements []E
	size     int
}

func (b *bucket[E]) push(e E) (grew bool) {
	if b.size == len(b.elements) {
		grown := make([]E, len(b.elements)*2)
		copy(grown, b.elements[:b.size])
		b.elements = grown
		grew = true
	}
	b.elements[b.size] = e
	b.size++
	return grew
}

func (b *bucket[E]) pop() E {
	var zero E
	b.size--
	e := b.elements[b.size]
	b.elements[b.size] = zero
	return e
}

func (b *bucket[E]) last() E {
	return b.elements[b.size-1]
}

func (b *bucket[E]) indexOf(e E) int {
	for i := 0; i < b.size; i++ {
		if b.elements[i] == e {
			return i
		}
	}
	return -1
}

// removeAt deletes the element at i and shifts the tail down so the
// bucket stays compact.
func (b *bucket[E]) removeAt(i int) {
	var zero E
	copy(b.elements[i:b.size-1], b.elements[i+1:b.size])
	b.size--
	b.elements[b.size] = zero
}

// BucketQueue is a priority queue for elements whose priority is an integer
// in [1, maxPriority]. Elements of each priority share a bucket and the queue
// tracks the highest non-empty one, so Add and Peek take constant time and
// Poll only walks down past buckets that have just emptied. Elements of equal
// priority are served last-in first-out, which callers must not rely on.
//
// All methods are safe for concurrent use.
type BucketQueue[E Prioritizable] struct {
	mu sync.Mutex

	buckets     []bucket[E]
	maxPriority int
	top         int // index of the highest non-empty bucket, -1 when empty
	count       int

	logger *slog.Logger
}

// NewBucketQueue returns an empty queue accepting priorities 1 through
// maxPriority. Construction allocates every bucket up front and so takes
// O(maxPriority) time.
func NewBucketQueue[E Prioritizable](maxPriority int, opts ...Option) (*BucketQueue[E], error) {
	if maxPriority < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMaxPriority, maxPriority)
	}
	o := newOptions(defaultBucketCapacity, opts)
	q := &BucketQueue[E]{
		buckets:     make([]bucket[E], maxPriority),
		maxPriority: maxPriority,
		top:         -1,
		logger:      o.logger,
	}
	for i := range q.buckets {
		q.buckets[i].elements = make([]E, o.capacity)
	}
	return q, nil
}

// MaxPriority returns the highest priority the queue accepts.
func (q *BucketQueue[E]) MaxPriority() int {
	return q.maxPriority
}

// Len returns the number of queued elements.
func (q *BucketQueue[E]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// Add queues e at its current priority. It returns an error wrapping
// ErrInvalidPriority, and leaves the queue unchanged, if that priority is
// outside [1, MaxPriority()].
func (q *BucketQueue[E]) Add(e E) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	p := e.Priority()
	if err := q.validatePriorityLocked(p); err != nil {
		q.logger.Debug("add rejected", "priority", p, "max_priority", q.maxPriority)
		return err
	}
	q.addLocked(e, p)
	return nil
}

// Poll removes and returns the highest priority element. It returns the
// zero value and false if the queue is empty.
func (q *BucketQueue[E]) Poll() (E, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.top < 0 {
		var zero E
		return zero, false
	}
	e := q.buckets[q.top].pop()
	q.count--
	q.lowerTopLocked()
	return e, true
}

// Peek returns the element Poll would return without removing it.
func (q *BucketQueue[E]) Peek() (E, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.top < 0 {
		var zero E
		return zero, false
	}
	return q.buckets[q.top].last(), true
}

// Update moves e to newPriority. e is looked up only in the bucket matching
// its current Priority(), in time linear in that bucket's size, so the
// priority of a queued element must not be changed other than through
// Update. If e is not found Update returns ErrNotFound; if newPriority is out
// of range it returns an error wrapping ErrInvalidPriority. In both cases the
// queue is left unchanged.
func (q *BucketQueue[E]) Update(e E, newPriority int) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	old := e.Priority()
	if old < 1 || old > q.maxPriority {
		return ErrNotFound
	}
	idx := old - 1
	b := &q.buckets[idx]
	i := b.indexOf(e)
	if i < 0 {
		return ErrNotFound
	}
	if err := q.validatePriorityLocked(newPriority); err != nil {
		q.logger.Debug("update rejected", "priority", newPriority, "max_priority", q.maxPriority)
		return err
	}

	b.removeAt(i)
	q.count--
	if idx == q.top && b.size == 0 {
		q.lowerTopLocked()
	}

	e.SetPriority(newPriority)
	q.addLocked(e, newPriority)
	return nil
}

// Iterator returns an iterator over a snapshot of the queue, ordered from
// the highest priority bucket to the lowest. Order within a bucket is
// unspecified. Building the snapshot takes O(n).
func (q *BucketQueue[E]) Iterator() *Iterator[E] {
	q.mu.Lock()
	defer q.mu.Unlock()

	items := make([]E, 0, q.count)
	for i := q.top; i >= 0; i-- {
		b := &q.buckets[i]
		items = append(items, b.elements[:b.size]...)
	}
	return newIterator(items)
}

func (q *BucketQueue[E]) validatePriorityLocked(p int) error {
	if p < 1 || p > q.maxPriority {
		return fmt.Errorf("%w: %d is not between 1 and %d", ErrInvalidPriority, p, q.maxPriority)
	}
	return nil
}

// addLocked appends e to the bucket for priority p, which must be valid.
// Must be called with mu held.
func (q *BucketQueue[E]) addLocked(e E, p int) {
	idx := p - 1
	b := &q.buckets[idx]
	if b.push(e) {
		q.logger.Debug("bucket grown", "priority", p, "capacity", len(b.elements))
	}
	q.count++
	if idx > q.top {
		q.top = idx
	}
}

// lowerTopLocked walks top down past empty buckets.
// Must be called with mu held.
func (q *BucketQueue[E]) lowerTopLocked() {
	for q.top >= 0 && q.buckets[q.top].size == 0 {
		q.top--
	}
}
