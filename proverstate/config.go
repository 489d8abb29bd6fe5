package proverstate

import "fmt"

// TableLoadStrategy is how circuit tables persisted on disk are brought into memory.
type TableLoadStrategy int

const (
	// OnDemand loads each table when a proof first needs it
	OnDemand TableLoadStrategy = iota
	// Monolithic loads every table at start up
	Monolithic
)

func (s TableLoadStrategy) String() string {
	switch s {
	case OnDemand:
		return "on_demand"
	case Monolithic:
		return "monolithic"
	default:
		return fmt.Sprintf("table_load_strategy(%d)", int(s))
	}
}

// PersistenceKind tells whether circuits are kept on disk between runs.
type PersistenceKind int

const (
	PersistenceNone PersistenceKind = iota
	PersistenceDisk
)

// Persistence is the circuit persistence policy. A Disk policy always
// carries the table load strategy.
type Persistence struct {
	Kind     PersistenceKind
	Strategy TableLoadStrategy
}

// NoPersistence keeps circuits in memory only.
func NoPersistence() Persistence {
	return Persistence{Kind: PersistenceNone}
}

// DiskPersistence stores circuits on disk and loads them with strategy.
func DiskPersistence(strategy TableLoadStrategy) Persistence {
	return Persistence{Kind: PersistenceDisk, Strategy: strategy}
}

// DefaultPersistence is Disk with the default (OnDemand) load strategy.
func DefaultPersistence() Persistence {
	return DiskPersistence(OnDemand)
}

func (p Persistence) String() string {
	if p.Kind == PersistenceDisk {
		return fmt.Sprintf("disk(%s)", p.Strategy)
	}
	return "none"
}

// Config is the prover state configuration resolved at start up.
type Config struct {
	// TableLoadStrategy is the strategy explicitly requested, nil when none was given
	TableLoadStrategy *TableLoadStrategy
	Persistence       Persistence
	CircuitSizes      CircuitConfig
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Persistence:  DefaultPersistence(),
		CircuitSizes: DefaultCircuitConfig(),
	}
}
