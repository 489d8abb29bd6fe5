package runtime

import (
	"context"
	"errors"
	"fmt"

	"github.com/0xPolygon/zero-coordinator/log"
	"github.com/0xPolygon/zero-coordinator/prover"
)

// ErrRuntimeClosed is returned by Prove once the runtime is closed
var ErrRuntimeClosed = errors.New("runtime closed")

// Runtime distributes the proving work of a job to the workers.
type Runtime interface {
	// Prove blocks until every block of job is proved, returning the proofs in block order
	Prove(ctx context.Context, job Job) ([]prover.Proof, error)
	// Close releases the runtime. It must be called once, after the last Prove returned
	Close() error
}

// New builds the coordinator side runtime selected by cfg. p is only used by
// the in-memory transport.
func New(cfg Config, brokerCfg BrokerConfig, p prover.Prover) (Runtime, error) {
	codec, err := NewCodec(cfg.Serializer)
	if err != nil {
		return nil, err
	}
	logger := log.WithFields("module", "runtime")
	logger.Infof("building runtime: %s", cfg)

	switch cfg.Transport {
	case TransportInMemory:
		if p == nil {
			return nil, errors.New("the in-memory runtime needs a prover")
		}
		return NewMemoryRuntime(logger, p, codec, cfg.Workers()), nil
	case TransportBroker:
		if cfg.BrokerURI == nil {
			return nil, errors.New("the broker runtime needs a broker uri")
		}
		return NewBrokerRuntime(logger, *cfg.BrokerURI, brokerCfg, codec)
	default:
		return nil, fmt.Errorf("unsupported transport %s", cfg.Transport)
	}
}
