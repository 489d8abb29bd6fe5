package config

import (
	"github.com/0xPolygon/zero-coordinator/log"
	"github.com/0xPolygon/zero-coordinator/proverstate"
)

const (
	// ProverStateTableLoadStrategyEnvKey selects how persisted tables are loaded (ON_DEMAND or MONOLITHIC)
	ProverStateTableLoadStrategyEnvKey = "PSM_TABLE_LOAD_STRAT"
	// ProverStatePersistenceEnvKey selects the circuit persistence (NONE or DISK)
	ProverStatePersistenceEnvKey = "PSM_CIRCUIT_PERSISTENCE"
)

type persistenceKind int

const (
	persistNone persistenceKind = iota
	persistDisk
)

var (
	tableLoadStrategyTokens = tokenTable[proverstate.TableLoadStrategy]{
		key: ProverStateTableLoadStrategyEnvKey,
		tokens: []token[proverstate.TableLoadStrategy]{
			{match: "ON_DEMAND", value: proverstate.OnDemand},
			{match: "MONOLITHIC", value: proverstate.Monolithic},
		},
	}

	persistenceTokens = tokenTable[persistenceKind]{
		key: ProverStatePersistenceEnvKey,
		tokens: []token[persistenceKind]{
			{match: "NONE", value: persistNone},
			{match: "DISK", value: persistDisk},
		},
	}
)

// ResolveProverStateConfig builds the prover state configuration from env.
// Missing values fall back to defaults with a warning; malformed values are a *Error.
func ResolveProverStateConfig(logger *log.Logger, env Environment) (proverstate.Config, error) {
	cfg := proverstate.DefaultConfig()

	strategy, found, err := tableLoadStrategyTokens.resolve(env)
	if err != nil {
		return cfg, err
	}
	if found {
		logger.Infof("loaded table load strategy %s", strategy)
		cfg.TableLoadStrategy = &strategy
	} else {
		logger.Infof("%s not specified", ProverStateTableLoadStrategyEnvKey)
	}

	kind, found, err := persistenceTokens.resolve(env)
	if err != nil {
		return cfg, err
	}
	switch {
	case !found:
		logger.Warnf("no circuit persistence specified, using default: %s", proverstate.DefaultPersistence())
		cfg.Persistence = proverstate.DefaultPersistence()
	case kind == persistNone:
		cfg.Persistence = proverstate.NoPersistence()
	case cfg.TableLoadStrategy != nil:
		cfg.Persistence = proverstate.DiskPersistence(*cfg.TableLoadStrategy)
	default:
		logger.Warnf("table load strategy not specified, using default: %s", proverstate.OnDemand)
		cfg.Persistence = proverstate.DiskPersistence(proverstate.OnDemand)
	}
	logger.Infof("circuit persistence: %s", cfg.Persistence)

	for _, circuit := range proverstate.Circuits() {
		key := circuit.EnvKey()
		raw, found, err := lookupText(env, key)
		if err != nil {
			return cfg, err
		}
		if !found {
			logger.Warnf("missing circuit size %s, keeping default %s", key, cfg.CircuitSizes.Get(circuit))
			continue
		}
		size, err := proverstate.ParseCircuitSize(raw)
		if err != nil {
			return cfg, newConfigError(key, raw, err.Error())
		}
		logger.Infof("modifying %s circuit to %s", circuit, size)
		cfg.CircuitSizes.Set(circuit, size)
	}

	return cfg, nil
}
