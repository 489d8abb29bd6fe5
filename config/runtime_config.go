package config

import (
	"strconv"
	"strings"

	"github.com/0xPolygon/zero-coordinator/log"
	"github.com/0xPolygon/zero-coordinator/runtime"
)

const (
	// RuntimeSerializerEnvKey selects the task serializer (CBOR or JSON)
	RuntimeSerializerEnvKey = "RUNTIME_SERIALIZER"
	// RuntimeTransportEnvKey selects the runtime transport (MEMORY or REDIS/BROKER)
	RuntimeTransportEnvKey = "RUNTIME_TRANSPORT"
	// RuntimeNumWorkersEnvKey is the size of the worker pool, only used in memory
	RuntimeNumWorkersEnvKey = "RUNTIME_NUM_WORKERS"
	// RuntimeBrokerURIEnvKey is the broker address, required with the broker transport
	RuntimeBrokerURIEnvKey = "RUNTIME_BROKER_URI"
)

var (
	serializerTokens = tokenTable[runtime.Serializer]{
		key: RuntimeSerializerEnvKey,
		tokens: []token[runtime.Serializer]{
			{match: "CBOR", value: runtime.SerializerCBOR},
			{match: "JSON", value: runtime.SerializerJSON},
		},
	}

	transportTokens = tokenTable[runtime.Transport]{
		key: RuntimeTransportEnvKey,
		tokens: []token[runtime.Transport]{
			{match: "MEMORY", value: runtime.TransportInMemory},
			{match: "REDIS", value: runtime.TransportBroker},
			{match: "BROKER", value: runtime.TransportBroker},
		},
	}
)

// ResolveRuntimeConfig builds the runtime configuration from env. It never
// retries and returns a *Error (ErrInvalidConfig) on any malformed value.
func ResolveRuntimeConfig(logger *log.Logger, env Environment) (runtime.Config, error) {
	var cfg runtime.Config

	serializer, found, err := serializerTokens.resolve(env)
	if err != nil {
		return cfg, err
	}
	if !found {
		logger.Infof("%s not specified, using default: %s", RuntimeSerializerEnvKey, runtime.SerializerCBOR)
		serializer = runtime.SerializerCBOR
	}
	cfg.Serializer = serializer

	transport, found, err := transportTokens.resolve(env)
	if err != nil {
		return cfg, err
	}
	if !found {
		logger.Infof("%s not specified, using default: %s", RuntimeTransportEnvKey, runtime.TransportInMemory)
		transport = runtime.TransportInMemory
	}
	cfg.Transport = transport

	numWorkers, found, err := lookupText(env, RuntimeNumWorkersEnvKey)
	if err != nil {
		return cfg, err
	}
	switch {
	case found && transport == runtime.TransportInMemory:
		n, err := strconv.ParseUint(strings.TrimSpace(numWorkers), 10, 0)
		if err != nil {
			return cfg, newConfigError(RuntimeNumWorkersEnvKey, numWorkers, "not a non-negative integer")
		}
		workers := uint(n)
		cfg.NumWorkers = &workers
	case found:
		logger.Infof("not running in memory, disregarding %s=%s", RuntimeNumWorkersEnvKey, numWorkers)
	case transport == runtime.TransportInMemory:
		logger.Infof("%s not specified, the runtime uses its default (%d)",
			RuntimeNumWorkersEnvKey, runtime.DefaultNumWorkers)
	}

	brokerURI, found, err := lookupText(env, RuntimeBrokerURIEnvKey)
	if err != nil {
		return cfg, err
	}
	switch {
	case transport == runtime.TransportBroker && (!found || strings.TrimSpace(brokerURI) == ""):
		return cfg, newConfigError(RuntimeBrokerURIEnvKey, "", "required with the broker transport")
	case transport == runtime.TransportBroker:
		cfg.BrokerURI = &brokerURI
	case found:
		logger.Infof("running in memory, ignoring %s", RuntimeBrokerURIEnvKey)
	}

	return cfg, nil
}
