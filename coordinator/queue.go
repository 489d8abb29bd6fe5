package coordinator

import (
	"context"
	"errors"
	"sync"

	"github.com/0xPolygon/zero-coordinator/metrics"
)

// ErrQueueClosed is returned by Enqueue once the queue is closed, and by Next
// once it is closed and drained
var ErrQueueClosed = errors.New("intake queue closed")

// Queue is the bounded FIFO between the intake server and the dispatcher.
// Enqueue blocks while the queue is full. After Close no request is accepted
// but the ones already queued are still handed out by Next.
type Queue struct {
	items  chan *ProveRequest
	closed chan struct{}

	mu        sync.Mutex
	isClosed  bool
	producers sync.WaitGroup
}

// NewQueue builds a queue holding up to capacity requests
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultQueueCapacity
	}
	return &Queue{
		items:  make(chan *ProveRequest, capacity),
		closed: make(chan struct{}),
	}
}

// Enqueue adds req to the queue, waiting for room. It fails with
// ErrQueueClosed when the queue is closed and with the context error when ctx
// ends first.
func (q *Queue) Enqueue(ctx context.Context, req *ProveRequest) error {
	q.mu.Lock()
	if q.isClosed {
		q.mu.Unlock()
		return ErrQueueClosed
	}
	q.producers.Add(1)
	q.mu.Unlock()
	defer q.producers.Done()

	select {
	case q.items <- req:
		metrics.QueueDepth.Set(float64(len(q.items)))
		return nil
	case <-q.closed:
		return ErrQueueClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Next returns the oldest queued request. It blocks while the queue is empty
// and open, and returns ErrQueueClosed once it is closed and empty.
func (q *Queue) Next(ctx context.Context) (*ProveRequest, error) {
	select {
	case req := <-q.items:
		metrics.QueueDepth.Set(float64(len(q.items)))
		return req, nil
	case <-q.closed:
		// producers racing with Close may still land a request
		q.producers.Wait()
		select {
		case req := <-q.items:
			metrics.QueueDepth.Set(float64(len(q.items)))
			return req, nil
		default:
			return nil, ErrQueueClosed
		}
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close stops accepting requests. It can be called more than once.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.isClosed {
		q.isClosed = true
		close(q.closed)
	}
}

// Len is the number of queued requests
func (q *Queue) Len() int {
	return len(q.items)
}

// Cap is the capacity of the queue
func (q *Queue) Cap() int {
	return cap(q.items)
}
