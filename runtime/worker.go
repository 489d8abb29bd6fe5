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

// WorkerRuntime is the worker side of the broker transport: it pops tasks,
// proves them and pushes the results back.
type WorkerRuntime struct {
	client *redis.Client
	cfg    BrokerConfig
	codec  Codec
	prover prover.Prover
	logger *log.Logger
}

// NewWorkerRuntime connects to the broker. The worker only exists with the broker transport.
func NewWorkerRuntime(cfg Config, brokerCfg BrokerConfig, p prover.Prover) (*WorkerRuntime, error) {
	if cfg.Transport != TransportBroker || cfg.BrokerURI == nil {
		return nil, fmt.Errorf("the worker needs the broker transport, got %s", cfg.Transport)
	}
	codec, err := NewCodec(cfg.Serializer)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second) //nolint:mnd
	defer cancel()
	client, err := NewRedisClient(ctx, *cfg.BrokerURI)
	if err != nil {
		return nil, err
	}
	return NewWorkerRuntimeWithClient(log.WithFields("module", "worker-runtime"), client, brokerCfg, codec, p), nil
}

// NewWorkerRuntimeWithClient uses an already connected client
func NewWorkerRuntimeWithClient(logger *log.Logger, client *redis.Client, cfg BrokerConfig,
	codec Codec, p prover.Prover) *WorkerRuntime {
	return &WorkerRuntime{client: client, cfg: cfg, codec: codec, prover: p, logger: logger}
}

// MainLoop processes tasks until ctx is cancelled. Cancellation is checked
// between tasks: a task being proved always runs to completion.
func (w *WorkerRuntime) MainLoop(ctx context.Context) error {
	w.logger.Infof("waiting for tasks on %s", w.cfg.taskQueue())
	for {
		if ctx.Err() != nil {
			w.logger.Info("worker loop stopped")
			return nil
		}
		res, err := w.client.BLPop(ctx, w.cfg.pollTimeout(), w.cfg.taskQueue()).Result()
		switch {
		case errors.Is(err, redis.Nil):
			continue
		case err != nil:
			if ctx.Err() != nil {
				continue
			}
			return fmt.Errorf("error reading tasks: %w", err)
		}
		if err := w.process(context.WithoutCancel(ctx), []byte(res[1])); err != nil {
			w.logger.Errorf("error processing task: %v", err)
		}
	}
}

func (w *WorkerRuntime) process(ctx context.Context, payload []byte) error {
	encoded, jobID, err := handleTask(ctx, w.logger, w.prover, w.codec, payload)
	if err != nil {
		return err
	}
	key := ResultKey(jobID)
	_, err = w.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, encoded)
		pipe.Expire(ctx, key, w.cfg.resultTTL())
		return nil
	})
	return err
}

// Close closes the broker connection
func (w *WorkerRuntime) Close() error {
	return w.client.Close()
}
