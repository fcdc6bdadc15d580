package pqueue

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDebugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestOptions_Defaults(t *testing.T) {
	bq := newTestBucketQueue(t, 3)
	for _, b := range bq.buckets {
		assert.Len(t, b.elements, defaultBucketCapacity)
	}
	hq := NewHeapQueue[int]()
	assert.Len(t, hq.heap, defaultHeapCapacity+1)

	// non-positive capacities and nil loggers are ignored
	hq = NewHeapQueue[int](WithInitialCapacity(0), WithLogger(nil))
	assert.Len(t, hq.heap, defaultHeapCapacity+1)
	assert.NotNil(t, hq.logger)
}

func TestOptions_Logger(t *testing.T) {
	t.Run("bucket", func(t *testing.T) {
		var buf bytes.Buffer
		q := newTestBucketQueue(t, 4, WithInitialCapacity(1), WithLogger(newDebugLogger(&buf)))

		require.NoError(t, q.Add(&task{priority: 2}))
		assert.Empty(t, buf.String())

		require.NoError(t, q.Add(&task{priority: 2}))
		assert.Contains(t, buf.String(), "bucket grown")

		assert.ErrorIs(t, q.Add(&task{priority: 5}), ErrInvalidPriority)
		assert.Contains(t, buf.String(), "add rejected")
		assert.Contains(t, buf.String(), "priority=5")

		e, _ := q.Peek()
		assert.ErrorIs(t, q.Update(e, 0), ErrInvalidPriority)
		assert.Contains(t, buf.String(), "update rejected")
	})

	t.Run("heap", func(t *testing.T) {
		var buf bytes.Buffer
		q := NewHeapQueue[int](WithInitialCapacity(2), WithLogger(newDebugLogger(&buf)))
		q.Add(1)
		q.Add(2)
		assert.Empty(t, buf.String())
		q.Add(3)
		assert.Contains(t, buf.String(), "heap grown")
		assert.Contains(t, buf.String(), "capacity=4")
	})
}
