// Package pqueue provides two thread-safe priority queues that serve the
// highest priority element first.
//
// BucketQueue keeps one growable bucket per integer priority in
// [1, maxPriority] and suits small priority domains known in advance: Add
// and Peek run in constant time and Poll only scans empty buckets.
//
// HeapQueue keeps a binary max-heap ordered by a caller-supplied comparison
// and accepts any totally ordered element type, with O(log n) Add and Poll.
//
// Both queues guard every operation with a single per-instance mutex and
// hand out weakly consistent snapshot iterators that never observe later
// mutation of the live queue. Neither queue guarantees any order among
// elements of equal priority.
package pqueue

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPriority is returned when a priority falls outside the range
	// accepted by a BucketQueue.
	ErrInvalidPriority = errors.New("pqueue: invalid priority")
	// ErrInvalidMaxPriority is returned when a BucketQueue is constructed
	// with a maximum priority below 1.
	ErrInvalidMaxPriority = fmt.Errorf("%w: max priority must be at least 1", ErrInvalidPriority)
	// ErrNotFound is returned by Update when the target element is not queued.
	ErrNotFound = errors.New("pqueue: element not found")
)

// Prioritizable is the capability required of BucketQueue elements. The
// priority is read when an element is added and is only changed by the
// queue itself, through SetPriority, during Update. Elements are matched
// with ==, so pointer elements are matched by identity.
type Prioritizable interface {
	comparable
	Priority() int
	SetPriority(p int)
}

// Comparer is the capability required by NewComparerHeapQueue. Compare
// returns a negative number when the receiver orders below x, zero when they
// are equivalent and a positive number when it orders above x, in the manner
// of cmp.Compare.
type Comparer[T any] interface {
	comparable
	Compare(x T) int
}
