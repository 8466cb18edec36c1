package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/crawlkit/crawlkit/internal/crawler"
	"github.com/crawlkit/crawlkit/internal/policy/traversal"
)

func TestEnqueueDequeueRoundTrip(t *testing.T) {
	t.Parallel()

	q := NewQueue(4)
	defer q.Close()

	policy, ok := traversal.Lookup("refresh")
	require.True(t, ok)

	item := crawler.QueueItem{
		JobID:  "job-1",
		URL:    "https://example.com",
		Kind:   crawler.ResourceKindRoot,
		Policy: policy,
	}
	require.NoError(t, q.Enqueue(context.Background(), item))

	got, err := q.Dequeue(context.Background())
	require.NoError(t, err)
	require.Equal(t, item, got)
}

func TestEnqueueRespectsContext(t *testing.T) {
	t.Parallel()

	q := NewQueue(1)
	defer q.Close()

	require.NoError(t, q.Enqueue(context.Background(), crawler.QueueItem{JobID: "fill"}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := q.Enqueue(ctx, crawler.QueueItem{JobID: "blocked"})
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDequeueRespectsContext(t *testing.T) {
	t.Parallel()

	q := NewQueue(1)
	defer q.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := q.Dequeue(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCloseIsIdempotent(t *testing.T) {
	t.Parallel()

	q := NewQueue(1)
	q.Close()
	q.Close()

	_, err := q.Dequeue(context.Background())
	require.Error(t, err)
}
