package runtime

import (
	"fmt"

	"github.com/0xPolygon/zero-coordinator/config/types"
)

// Serializer is the wire format used to encode tasks and results.
type Serializer int

const (
	// SerializerCBOR encodes with CBOR, the default
	SerializerCBOR Serializer = iota
	// SerializerJSON encodes with JSON
	SerializerJSON
)

func (s Serializer) String() string {
	switch s {
	case SerializerCBOR:
		return "cbor"
	case SerializerJSON:
		return "json"
	default:
		return fmt.Sprintf("serializer(%d)", int(s))
	}
}

// Transport selects how tasks reach the workers.
type Transport int

const (
	// TransportInMemory runs a worker pool inside the coordinator process, the default
	TransportInMemory Transport = iota
	// TransportBroker ships tasks to worker processes through a message broker
	TransportBroker
)

func (t Transport) String() string {
	switch t {
	case TransportInMemory:
		return "in-memory"
	case TransportBroker:
		return "broker"
	default:
		return fmt.Sprintf("transport(%d)", int(t))
	}
}

// DefaultNumWorkers is used by the in-memory transport when no count is given.
const DefaultNumWorkers = 1

// Config is the runtime configuration resolved from the environment.
// BrokerURI is set iff Transport is TransportBroker and NumWorkers is only
// set with TransportInMemory.
type Config struct {
	Serializer Serializer
	Transport  Transport
	NumWorkers *uint
	BrokerURI  *string
}

// Workers returns the size of the in-memory pool.
func (c Config) Workers() int {
	if c.NumWorkers == nil || *c.NumWorkers == 0 {
		return DefaultNumWorkers
	}
	return int(*c.NumWorkers)
}

func (c Config) String() string {
	res := fmt.Sprintf("serializer=%s transport=%s", c.Serializer, c.Transport)
	if c.NumWorkers != nil {
		res += fmt.Sprintf(" workers=%d", *c.NumWorkers)
	}
	if c.BrokerURI != nil {
		// the uri may carry credentials
		res += " broker=<set>"
	}
	return res
}

// BrokerConfig tunes the broker transport. It comes from the service config file.
type BrokerConfig struct {
	// TaskQueue is the name of the broker list tasks are pushed to
	TaskQueue string `mapstructure:"TaskQueue"`
	// PollTimeout is how long a blocking pop waits before checking for cancellation
	PollTimeout types.Duration `mapstructure:"PollTimeout"`
	// ResultTTL is how long results of an abandoned job are kept in the broker
	ResultTTL types.Duration `mapstructure:"ResultTTL"`
}
