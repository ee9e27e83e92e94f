// Package queue defines the contract for enqueuing and consuming
// batch matchup requests.
//
// Implementations may use channels or more advanced structures; the
// in-memory bounded queue below backs the batch prediction endpoint.
package queue

import (
	"context"
	"sync"

	"github.com/okian/rivers/internal/domain/model"
	"github.com/okian/rivers/internal/domain/types"
	"github.com/okian/rivers/pkg/metrics"
)

// Default queue configuration constants.
const (
	defaultCapacity = 1024
)

// Matchup is the payload type flowing through the queue. Seq keys the
// result back to its slot in the batch.
type Matchup struct {
	Seq     int
	Home    types.TeamID
	Away    types.TeamID
	Week    int
	Season  int
	Weather *model.WeatherContext
}

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a matchup to the queue.
	// Returns false if the queue is full and the matchup was not enqueued.
	Enqueue(ctx context.Context, m Matchup) bool

	// Dequeue returns a channel that receives matchups as they become
	// available. The channel is closed when the queue is closed.
	Dequeue(ctx context.Context) <-chan Matchup

	// Len returns the current number of queued matchups.
	Len(ctx context.Context) int

	// Close gracefully shuts down the queue. After closing, no new
	// matchups can be enqueued and the dequeue channel is closed.
	Close() error

	// IsClosed returns true if the queue has been closed.
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	matchups chan Matchup
	capacity int

	mu     sync.RWMutex
	closed bool
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity: defaultCapacity,
	}

	// Apply all options
	for _, opt := range opts {
		opt(q)
	}

	q.matchups = make(chan Matchup, q.capacity)

	metrics.UpdateBatchQueueCapacity(q.capacity)
	metrics.UpdateBatchQueueSize(0)

	return q
}

// Enqueue adds a matchup to the queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, m Matchup) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return false
	}

	select {
	case q.matchups <- m:
		metrics.UpdateBatchQueueSize(len(q.matchups))
		return true
	case <-ctx.Done():
		return false
	default:
		return false // queue is full
	}
}

// Dequeue returns a channel that receives matchups as they become available.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Matchup {
	out := make(chan Matchup)
	go func() {
		defer close(out)
		for m := range q.matchups {
			select {
			case out <- m:
				metrics.UpdateBatchQueueSize(len(q.matchups))
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Len returns the current number of queued matchups.
func (q *InMemoryQueue) Len(_ context.Context) int {
	return len(q.matchups)
}

// Close gracefully shuts down the queue.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil // already closed
	}

	close(q.matchups)
	q.closed = true

	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
