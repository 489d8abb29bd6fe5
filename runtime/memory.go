package runtime

import (
	"context"
	"fmt"
	"sync"

	"github.com/0xPolygon/zero-coordinator/log"
	"github.com/0xPolygon/zero-coordinator/prover"
	"golang.org/x/sync/errgroup"
)

type memoryTask struct {
	ctx     context.Context
	payload []byte
	reply   chan<- []byte
}

// MemoryRuntime proves the tasks with a pool of goroutines of this process.
// Tasks still go through the codec, as they would over a broker.
type MemoryRuntime struct {
	prover prover.Prover
	codec  Codec
	tasks  chan memoryTask
	group  *errgroup.Group

	mu     sync.RWMutex
	closed bool

	logger *log.Logger
}

// NewMemoryRuntime starts numWorkers workers
func NewMemoryRuntime(logger *log.Logger, p prover.Prover, codec Codec, numWorkers int) *MemoryRuntime {
	if numWorkers < 1 {
		numWorkers = DefaultNumWorkers
	}
	r := &MemoryRuntime{
		prover: p,
		codec:  codec,
		tasks:  make(chan memoryTask),
		group:  &errgroup.Group{},
		logger: logger,
	}
	for i := 0; i < numWorkers; i++ {
		r.group.Go(r.work)
	}
	logger.Infof("in-memory runtime started with %d workers, serializer %s", numWorkers, codec.Name())
	return r
}

func (r *MemoryRuntime) work() error {
	for t := range r.tasks {
		res, _, err := handleTask(t.ctx, r.logger, r.prover, r.codec, t.payload)
		if err != nil {
			r.logger.Errorf("dropping task: %v", err)
			res = nil
		}
		t.reply <- res
	}
	return nil
}

// Prove implements Runtime
func (r *MemoryRuntime) Prove(ctx context.Context, job Job) ([]prover.Proof, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return nil, ErrRuntimeClosed
	}

	tasks, err := newTasks(job)
	if err != nil {
		return nil, err
	}
	replies := make(chan []byte, len(tasks))
	sent := 0
	for _, task := range tasks {
		payload, err := r.codec.Marshal(task)
		if err != nil {
			return nil, fmt.Errorf("error encoding task: %w", err)
		}
		select {
		case r.tasks <- memoryTask{ctx: ctx, payload: payload, reply: replies}:
			sent++
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	c := newCollector(job.ID, len(tasks))
	for i := 0; i < sent; i++ {
		select {
		case res := <-replies:
			if res == nil {
				return nil, fmt.Errorf("%w: worker could not encode its result", ErrTaskFailed)
			}
			if err := c.add(r.codec, res); err != nil {
				return nil, err
			}
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return c.result()
}

// Close stops the workers once the running tasks are done
func (r *MemoryRuntime) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	close(r.tasks)
	r.mu.Unlock()
	return r.group.Wait()
}
