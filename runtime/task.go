package runtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/0xPolygon/zero-coordinator/log"
	"github.com/0xPolygon/zero-coordinator/metrics"
	"github.com/0xPolygon/zero-coordinator/prover"
)

// Job is the proving work of one request: one task per block.
type Job struct {
	ID      string
	RunName string
	Inputs  []prover.BlockProverInput
	Config  prover.Config
}

// Task is the unit shipped to a worker. The block input travels as JSON so
// its hex encoded quantities survive any serializer.
type Task struct {
	JobID  string          `json:"job_id"`
	Index  int             `json:"index"`
	Input  json.RawMessage `json:"input"`
	Config prover.Config   `json:"config"`
}

// TaskResult is the answer of a worker to a Task.
type TaskResult struct {
	JobID string        `json:"job_id"`
	Index int           `json:"index"`
	Proof *prover.Proof `json:"proof,omitempty"`
	Error string        `json:"error,omitempty"`
}

// ErrTaskFailed is returned by Prove when a worker failed to prove a block
var ErrTaskFailed = errors.New("proving task failed")

func newTasks(job Job) ([]Task, error) {
	tasks := make([]Task, 0, len(job.Inputs))
	for i := range job.Inputs {
		input, err := json.Marshal(job.Inputs[i])
		if err != nil {
			return nil, fmt.Errorf("error encoding block input %d: %w", i, err)
		}
		tasks = append(tasks, Task{JobID: job.ID, Index: i, Input: input, Config: job.Config})
	}
	return tasks, nil
}

// handleTask proves the block of an encoded task and returns the encoded result
func handleTask(ctx context.Context, logger *log.Logger, p prover.Prover, codec Codec, payload []byte) ([]byte, string, error) {
	var task Task
	if err := codec.Unmarshal(payload, &task); err != nil {
		return nil, "", fmt.Errorf("error decoding task: %w", err)
	}
	res := TaskResult{JobID: task.JobID, Index: task.Index}

	start := time.Now()
	var input prover.BlockProverInput
	if err := json.Unmarshal(task.Input, &input); err != nil {
		res.Error = fmt.Sprintf("error decoding block input: %v", err)
	} else if proof, err := p.Prove(ctx, input, task.Config); err != nil {
		res.Error = err.Error()
	} else {
		res.Proof = proof
	}
	metrics.TaskDuration.Observe(time.Since(start).Seconds())

	if res.Error != "" {
		metrics.TasksProcessed.WithLabelValues(metrics.StatusError).Inc()
		logger.Warnf("job %s task %d failed: %s", task.JobID, task.Index, res.Error)
	} else {
		metrics.TasksProcessed.WithLabelValues(metrics.StatusOK).Inc()
		logger.Debugf("job %s task %d proved block %d in %s", task.JobID, task.Index, res.Proof.BlockNumber, time.Since(start))
	}

	encoded, err := codec.Marshal(res)
	if err != nil {
		return nil, task.JobID, fmt.Errorf("error encoding result: %w", err)
	}
	return encoded, task.JobID, nil
}

// collector gathers the results of a job in task order
type collector struct {
	jobID  string
	proofs []prover.Proof
	seen   []bool
	left   int
	errs   []error
}

func newCollector(jobID string, n int) *collector {
	return &collector{jobID: jobID, proofs: make([]prover.Proof, n), seen: make([]bool, n), left: n}
}

func (c *collector) add(codec Codec, payload []byte) error {
	var res TaskResult
	if err := codec.Unmarshal(payload, &res); err != nil {
		return fmt.Errorf("error decoding task result: %w", err)
	}
	if res.JobID != c.jobID || res.Index < 0 || res.Index >= len(c.seen) {
		return fmt.Errorf("unexpected result for job %s task %d", res.JobID, res.Index)
	}
	if c.seen[res.Index] {
		return nil
	}
	c.seen[res.Index] = true
	c.left--
	if res.Error != "" || res.Proof == nil {
		c.errs = append(c.errs, fmt.Errorf("%w: task %d: %s", ErrTaskFailed, res.Index, res.Error))
		return nil
	}
	c.proofs[res.Index] = *res.Proof
	return nil
}

func (c *collector) done() bool {
	return c.left == 0
}

func (c *collector) result() ([]prover.Proof, error) {
	if len(c.errs) > 0 {
		return nil, errors.Join(c.errs...)
	}
	return c.proofs, nil
}
