package coordinator

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/0xPolygon/zero-coordinator/coordinator/db"
	"github.com/0xPolygon/zero-coordinator/log"
	"github.com/0xPolygon/zero-coordinator/metrics"
	"github.com/0xPolygon/zero-coordinator/prover"
	"github.com/0xPolygon/zero-coordinator/runtime"
)

var (
	// ErrNoBlocks is returned for a request whose source yields no block
	ErrNoBlocks = errors.New("no blocks to prove")
	// ErrRequestPanicked is returned for a request whose processing panicked
	ErrRequestPanicked = errors.New("request processing panicked")
)

// Dispatcher is the single consumer of the queue. Requests are fetched and
// proved one at a time, in the order they were queued.
type Dispatcher struct {
	logger  *log.Logger
	queue   *Queue
	fetcher Fetcher
	runtime ProofRuntime
	writer  ProofWriter
	ledger  RequestStorer
}

// NewDispatcher builds a dispatcher. writer may be nil to discard proofs.
func NewDispatcher(logger *log.Logger, queue *Queue, fetcher Fetcher, rt ProofRuntime,
	writer ProofWriter, ledger RequestStorer) *Dispatcher {
	return &Dispatcher{
		logger:  logger,
		queue:   queue,
		fetcher: fetcher,
		runtime: rt,
		writer:  writer,
		ledger:  ledger,
	}
}

// Run processes requests until the queue is closed and drained. A failed
// request doesn't stop the loop.
func (d *Dispatcher) Run(ctx context.Context) error {
	for run := 1; ; run++ {
		d.logger.Debugf("awaiting request for run %d", run)
		req, err := d.queue.Next(ctx)
		if errors.Is(err, ErrQueueClosed) {
			d.logger.Infof("queue closed, dispatched %d requests", run-1)
			return nil
		}
		if err != nil {
			return err
		}

		// a request that started runs to completion even if the process is stopping
		if err := d.processRecovering(context.WithoutCancel(ctx), req); err != nil {
			metrics.RequestsCompleted.WithLabelValues(metrics.StatusError).Inc()
			d.logger.Errorf("%s failed: %v", req, err)
			d.finish(req, nil, err)
			continue
		}
		metrics.RequestsCompleted.WithLabelValues(metrics.StatusOK).Inc()
	}
}

// processRecovering turns a panic of one request into its error, so the
// requests behind it are still served.
func (d *Dispatcher) processRecovering(ctx context.Context, req *ProveRequest) (err error) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Errorf("%s panicked: %v\n%s", req, r, debug.Stack())
			err = fmt.Errorf("%w: %v", ErrRequestPanicked, r)
		}
	}()
	return d.process(ctx, req)
}

func (d *Dispatcher) process(ctx context.Context, req *ProveRequest) error {
	d.logger.Infof("processing %s", req)
	d.setStatus(ctx, req, db.StatusFetching)

	inputs := req.ProverInput
	var fetchTime time.Duration
	if req.Source != nil {
		start := time.Now()
		res, err := d.fetcher.Fetch(ctx, req.Source)
		if err != nil {
			return err
		}
		inputs = res.ProverInput
		fetchTime = time.Since(start)
		metrics.FetchDuration.WithLabelValues(req.SourceName()).Observe(fetchTime.Seconds())
		d.logger.Infof("%s fetched %d blocks in %s (rpc time %s)", req, len(inputs), fetchTime, res.TotalFetchTime())
	}
	if len(inputs) == 0 {
		return ErrNoBlocks
	}

	first, last := inputs[0].BlockNumber(), inputs[len(inputs)-1].BlockNumber()
	d.update(ctx, req, func(r *db.Request) {
		r.Status = db.StatusSubmitting
		r.BlockCount = len(inputs)
		r.FirstBlock = &first
		r.LastBlock = &last
		r.FetchDuration = fetchTime
	})

	start := time.Now()
	proofs, err := d.runtime.Prove(ctx, runtime.Job{
		ID:      req.ID.String(),
		RunName: req.RunName,
		Inputs:  inputs,
		Config:  req.ProverConfig,
	})
	proveTime := time.Since(start)
	metrics.ProveDuration.Observe(proveTime.Seconds())
	if err != nil {
		d.saveInputs(ctx, req, inputs)
		return fmt.Errorf("error proving blocks %d..=%d: %w", first, last, err)
	}
	metrics.BlocksProved.Add(float64(len(proofs)))

	if d.writer != nil {
		if err := d.writer.WriteProofs(ctx, req.RunName, proofs); err != nil {
			return fmt.Errorf("error writing proofs: %w", err)
		}
	}
	d.logger.Infof("%s proved blocks %d..=%d in %s", req, first, last, proveTime)
	d.finish(req, &proveTime, nil)
	return nil
}

func (d *Dispatcher) saveInputs(ctx context.Context, req *ProveRequest, inputs []prover.BlockProverInput) {
	if !req.ProverConfig.SaveInputsOnError || d.writer == nil {
		return
	}
	if err := d.writer.WriteInputs(ctx, req.RunName, inputs); err != nil {
		d.logger.Warnf("%s: error saving inputs: %v", req, err)
		return
	}
	d.logger.Infof("%s: saved %d block inputs", req, len(inputs))
}

func (d *Dispatcher) finish(req *ProveRequest, proveTime *time.Duration, cause error) {
	d.update(context.Background(), req, func(r *db.Request) {
		if proveTime != nil {
			r.ProveDuration = *proveTime
		}
		if cause != nil {
			msg := cause.Error()
			r.Status = db.StatusFailed
			r.Error = &msg
			return
		}
		r.Status = db.StatusCompleted
	})
}

func (d *Dispatcher) setStatus(ctx context.Context, req *ProveRequest, status db.Status) {
	if d.ledger == nil {
		return
	}
	if err := d.ledger.SetStatus(ctx, req.ID, status); err != nil {
		d.logger.Warnf("error moving %s to %s: %v", req, status, err)
	}
}

func (d *Dispatcher) update(ctx context.Context, req *ProveRequest, fn func(r *db.Request)) {
	if d.ledger == nil {
		return
	}
	if err := d.ledger.Update(ctx, req.ID, fn); err != nil {
		d.logger.Warnf("error updating ledger of %s: %v", req, err)
	}
}
