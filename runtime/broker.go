package runtime

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/0xPolygon/zero-coordinator/log"
	"github.com/0xPolygon/zero-coordinator/prover"
	"github.com/redis/go-redis/v9"
)

const (
	// DefaultTaskQueue is the broker list the tasks are pushed to
	DefaultTaskQueue = "zero:tasks"
	resultKeyPrefix  = "zero:results:"

	defaultPollTimeout = time.Second
	defaultResultTTL   = 24 * time.Hour
)

// ResultKey is the broker list the results of job are pushed to
func ResultKey(jobID string) string {
	return resultKeyPrefix + jobID
}

func (c BrokerConfig) taskQueue() string {
	if c.TaskQueue == "" {
		return DefaultTaskQueue
	}
	return c.TaskQueue
}

func (c BrokerConfig) pollTimeout() time.Duration {
	if c.PollTimeout.Duration <= 0 {
		return defaultPollTimeout
	}
	return c.PollTimeout.Duration
}

func (c BrokerConfig) resultTTL() time.Duration {
	if c.ResultTTL.Duration <= 0 {
		return defaultResultTTL
	}
	return c.ResultTTL.Duration
}

// NewRedisClient connects to the broker at uri
func NewRedisClient(ctx context.Context, uri string) (*redis.Client, error) {
	opts, err := redis.ParseURL(uri)
	if err != nil {
		return nil, fmt.Errorf("parse broker url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping broker: %w", err)
	}
	return client, nil
}

// BrokerRuntime pushes the tasks to a redis list consumed by `zero worker`
// processes and waits for their results on a list per job.
type BrokerRuntime struct {
	client *redis.Client
	cfg    BrokerConfig
	codec  Codec
	logger *log.Logger
}

// NewBrokerRuntime connects to the broker at uri
func NewBrokerRuntime(logger *log.Logger, uri string, cfg BrokerConfig, codec Codec) (*BrokerRuntime, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second) //nolint:mnd
	defer cancel()
	client, err := NewRedisClient(ctx, uri)
	if err != nil {
		return nil, err
	}
	return NewBrokerRuntimeWithClient(logger, client, cfg, codec), nil
}

// NewBrokerRuntimeWithClient uses an already connected client
func NewBrokerRuntimeWithClient(logger *log.Logger, client *redis.Client, cfg BrokerConfig, codec Codec) *BrokerRuntime {
	logger.Infof("broker runtime using queue %s, serializer %s", cfg.taskQueue(), codec.Name())
	return &BrokerRuntime{client: client, cfg: cfg, codec: codec, logger: logger}
}

// Prove implements Runtime
func (r *BrokerRuntime) Prove(ctx context.Context, job Job) ([]prover.Proof, error) {
	tasks, err := newTasks(job)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return []prover.Proof{}, nil
	}
	payloads := make([]interface{}, 0, len(tasks))
	for _, task := range tasks {
		payload, err := r.codec.Marshal(task)
		if err != nil {
			return nil, fmt.Errorf("error encoding task: %w", err)
		}
		payloads = append(payloads, payload)
	}

	resultKey := ResultKey(job.ID)
	defer func() {
		if err := r.client.Del(context.WithoutCancel(ctx), resultKey).Err(); err != nil {
			r.logger.Warnf("error deleting %s: %v", resultKey, err)
		}
	}()

	if err := r.client.RPush(ctx, r.cfg.taskQueue(), payloads...).Err(); err != nil {
		return nil, fmt.Errorf("error submitting job %s: %w", job.ID, err)
	}
	r.logger.Debugf("job %s: %d tasks submitted to %s", job.ID, len(tasks), r.cfg.taskQueue())

	c := newCollector(job.ID, len(tasks))
	for !c.done() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := r.client.BLPop(ctx, r.cfg.pollTimeout(), resultKey).Result()
		switch {
		case errors.Is(err, redis.Nil):
			continue
		case err != nil:
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, fmt.Errorf("error waiting for results of job %s: %w", job.ID, err)
		}
		// res is [key, value]
		if err := c.add(r.codec, []byte(res[1])); err != nil {
			return nil, err
		}
	}
	return c.result()
}

// Close closes the broker connection
func (r *BrokerRuntime) Close() error {
	return r.client.Close()
}
