package prover

import (
	"encoding/json"
	"fmt"
)

const (
	// DefaultMaxCPULenLog is the log2 of the max number of CPU cycles per segment
	DefaultMaxCPULenLog = 20
	// DefaultBatchSize is the number of transactions processed at once
	DefaultBatchSize = 1

	// upper bound of the CPU table degree
	maxCPULenLog = 32
)

// Config are the per request prover options.
type Config struct {
	// MaxCPULenLog is the log of the max number of CPU cycles per proof
	MaxCPULenLog uint `json:"max_cpu_len_log" mapstructure:"MaxCPULenLog"`
	// BatchSize is the number of transactions in a batch to process at once
	BatchSize uint `json:"batch_size" mapstructure:"BatchSize"`
	// SaveInputsOnError keeps the block inputs when proving fails
	SaveInputsOnError bool `json:"save_inputs_on_error" mapstructure:"SaveInputsOnError"`
}

// DefaultConfig returns the prover options used when a request doesn't specify them
func DefaultConfig() Config {
	return Config{
		MaxCPULenLog:      DefaultMaxCPULenLog,
		BatchSize:         DefaultBatchSize,
		SaveInputsOnError: false,
	}
}

// UnmarshalJSON fills the fields missing from data with their defaults
func (c *Config) UnmarshalJSON(data []byte) error {
	type plain Config
	cfg := plain(DefaultConfig())
	if err := json.Unmarshal(data, &cfg); err != nil {
		return err
	}
	*c = Config(cfg)
	return nil
}

// Validate checks the options are usable
func (c Config) Validate() error {
	if c.MaxCPULenLog == 0 || c.MaxCPULenLog > maxCPULenLog {
		return fmt.Errorf("%w: max_cpu_len_log must be in [1, %d], got %d", ErrInvalidConfig, maxCPULenLog, c.MaxCPULenLog)
	}
	if c.BatchSize == 0 {
		return fmt.Errorf("%w: batch_size must be positive", ErrInvalidConfig)
	}
	return nil
}
