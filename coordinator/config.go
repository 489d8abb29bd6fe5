package coordinator

import "github.com/0xPolygon/zero-coordinator/config/types"

// DefaultQueueCapacity is the number of requests waiting for the dispatcher before intake blocks
const DefaultQueueCapacity = 50

// Config is the intake server and dispatcher configuration
type Config struct {
	// Addr is the listen address of the intake server, overridden by SERVER_ADDR
	Addr string `mapstructure:"Addr"`
	// QueueCapacity is the number of accepted requests waiting for the dispatcher
	QueueCapacity int `mapstructure:"QueueCapacity"`
	// MaxRequestBodyBytes limits the size of a prove request
	MaxRequestBodyBytes int64 `mapstructure:"MaxRequestBodyBytes"`
	// ReadHeaderTimeout is the time allowed to read the headers of a request
	ReadHeaderTimeout types.Duration `mapstructure:"ReadHeaderTimeout"`
	// ShutdownTimeout bounds the wait for in-flight HTTP requests on shutdown
	ShutdownTimeout types.Duration `mapstructure:"ShutdownTimeout"`
	// DBPath is the sqlite file of the request ledger
	DBPath string `mapstructure:"DBPath"`
}
