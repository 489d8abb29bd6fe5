package proverstate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Circuit identifies one of the STARK tables the prover builds circuits for.
type Circuit int

const (
	Arithmetic Circuit = iota
	BytePacking
	CPU
	Keccak
	KeccakSponge
	Logic
	Memory
	MemoryBefore
	MemoryAfter

	// NumTables is the number of circuit tables known to the prover.
	NumTables = int(MemoryAfter) + 1
)

const (
	circuitEnvKeySuffix = "_CIRCUIT_SIZE"
	// maxDegreeBits is the largest table degree the prover accepts
	maxDegreeBits = 32
)

var (
	// ErrInvalidCircuitSize is returned when a circuit size range can't be parsed or is out of bounds
	ErrInvalidCircuitSize = errors.New("invalid circuit size")

	circuitNames = [NumTables]string{
		"arithmetic",
		"byte_packing",
		"cpu",
		"keccak",
		"keccak_sponge",
		"logic",
		"memory",
		"memory_before",
		"memory_after",
	}

	defaultCircuitSizes = [NumTables]CircuitSize{
		{Min: 16, Max: 23},
		{Min: 9, Max: 21},
		{Min: 12, Max: 25},
		{Min: 14, Max: 20},
		{Min: 9, Max: 15},
		{Min: 12, Max: 18},
		{Min: 17, Max: 28},
		{Min: 7, Max: 20},
		{Min: 7, Max: 20},
	}
)

// Circuits returns every known circuit table in table order.
func Circuits() []Circuit {
	res := make([]Circuit, 0, NumTables)
	for i := 0; i < NumTables; i++ {
		res = append(res, Circuit(i))
	}
	return res
}

func (c Circuit) String() string {
	if c < 0 || int(c) >= NumTables {
		return fmt.Sprintf("circuit(%d)", int(c))
	}
	return circuitNames[c]
}

// EnvKey returns the environment key used to override the size of this table,
// for instance ARITHMETIC_CIRCUIT_SIZE.
func (c Circuit) EnvKey() string {
	return strings.ToUpper(c.String()) + circuitEnvKeySuffix
}

// CircuitSize is the half-open range [Min, Max) of degree bits supported by a table circuit.
type CircuitSize struct {
	Min uint8 `json:"min"`
	Max uint8 `json:"max"`
}

// ParseCircuitSize parses a range written as "min..max".
func ParseCircuitSize(s string) (CircuitSize, error) {
	parts := strings.Split(strings.TrimSpace(s), "..")
	if len(parts) != 2 { //nolint:mnd
		return CircuitSize{}, fmt.Errorf("%w: %q is not a min..max range", ErrInvalidCircuitSize, s)
	}
	bounds := [2]uint8{}
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return CircuitSize{}, fmt.Errorf("%w: %q: %w", ErrInvalidCircuitSize, s, err)
		}
		bounds[i] = uint8(v)
	}
	size := CircuitSize{Min: bounds[0], Max: bounds[1]}
	if err := size.Validate(); err != nil {
		return CircuitSize{}, err
	}
	return size, nil
}

// Validate checks the range is not empty and within the prover limits
func (s CircuitSize) Validate() error {
	if s.Min >= s.Max {
		return fmt.Errorf("%w: empty range %s", ErrInvalidCircuitSize, s)
	}
	if s.Max > maxDegreeBits {
		return fmt.Errorf("%w: %s exceeds %d degree bits", ErrInvalidCircuitSize, s, maxDegreeBits)
	}
	return nil
}

func (s CircuitSize) String() string {
	return fmt.Sprintf("%d..%d", s.Min, s.Max)
}

// CircuitConfig holds the size of every circuit table.
type CircuitConfig [NumTables]CircuitSize

// DefaultCircuitConfig returns the sizes used when no override is configured.
func DefaultCircuitConfig() CircuitConfig {
	return CircuitConfig(defaultCircuitSizes)
}

// Set overrides the size of a single table.
func (c *CircuitConfig) Set(circuit Circuit, size CircuitSize) {
	c[circuit] = size
}

// Get returns the size of a single table.
func (c CircuitConfig) Get(circuit Circuit) CircuitSize {
	return c[circuit]
}
