package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/0xPolygon/zero-coordinator/log"
	"github.com/0xPolygon/zero-coordinator/proverstate"
	"github.com/0xPolygon/zero-coordinator/runtime"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoadDefaultValues(t *testing.T) {
	cfg, err := LoadFile(MapEnvironment{})
	require.NoError(t, err)
	require.NotNil(t, cfg)
	require.Equal(t, "0.0.0.0:8080", cfg.Coordinator.Addr)
	require.Equal(t, 50, cfg.Coordinator.QueueCapacity)
	require.Equal(t, "/tmp/zero/coordinator.sqlite", cfg.Coordinator.DBPath)
	require.Equal(t, "/tmp/zero/proofs", cfg.ProofOutput.Dir)
	require.Equal(t, 30*time.Second, cfg.Coordinator.ShutdownTimeout.Duration)
	require.Equal(t, "zero:tasks", cfg.Broker.TaskQueue)
	require.Equal(t, []string{"stderr"}, cfg.Log.Outputs)
}

func TestLoadFileOverridesAndVars(t *testing.T) {
	custom := `
PathRWData = "/data"
QueueSize = 7
[Coordinator]
QueueCapacity = {{QueueSize}}
`
	env := MapEnvironment{"ZERO_PathRWData": "/from-env"}
	cfg, err := LoadFile(env, FileData{Name: "custom", Content: custom})
	require.NoError(t, err)
	require.Equal(t, 7, cfg.Coordinator.QueueCapacity)
	require.Equal(t, "/from-env/coordinator.sqlite", cfg.Coordinator.DBPath)
}

func TestLoadFileServerAddrOverride(t *testing.T) {
	cfg, err := LoadFile(MapEnvironment{ServerAddrEnvKey: "127.0.0.1:9999"})
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:9999", cfg.Coordinator.Addr)
}

func TestLoadFileMissingVar(t *testing.T) {
	_, err := LoadFile(MapEnvironment{}, FileData{Name: "bad", Content: `PathRWData = "{{Nowhere}}"`})
	require.ErrorIs(t, err, ErrMissingVars)
}

func TestRenderCycle(t *testing.T) {
	data := `A = "{{B}}"
B = "{{A}}"
`
	_, err := NewRender(nil, MapEnvironment{}, EnvVarPrefix).ResolveVars(data)
	require.ErrorIs(t, err, ErrCycleVars)
}

func TestReadFilesJSON(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "cfg.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"Coordinator":{"QueueCapacity":3}}`), 0o600))

	files, err := readFiles([]string{file})
	require.NoError(t, err)
	cfg, err := LoadFile(MapEnvironment{}, files...)
	require.NoError(t, err)
	require.Equal(t, 3, cfg.Coordinator.QueueCapacity)
}

func TestReadFilesUnsupported(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(file, []byte("a: 1"), 0o600))
	_, err := readFiles([]string{file})
	require.ErrorIs(t, err, ErrUnsupportedConfigFileType)
}

func TestResolveRuntimeConfig(t *testing.T) {
	logger := log.GetDefaultLogger()
	uint3 := uint(3)
	uri := "redis://localhost:6379"

	tcs := []struct {
		name     string
		env      MapEnvironment
		expected runtime.Config
		errKey   string
	}{
		{
			name:     "defaults",
			env:      MapEnvironment{},
			expected: runtime.Config{Serializer: runtime.SerializerCBOR, Transport: runtime.TransportInMemory},
		},
		{
			name: "json in memory with workers",
			env: MapEnvironment{
				RuntimeSerializerEnvKey: "json",
				RuntimeTransportEnvKey:  "in-memory",
				RuntimeNumWorkersEnvKey: "3",
			},
			expected: runtime.Config{Serializer: runtime.SerializerJSON, Transport: runtime.TransportInMemory, NumWorkers: &uint3},
		},
		{
			name: "broker discards workers",
			env: MapEnvironment{
				RuntimeTransportEnvKey:  "redis",
				RuntimeNumWorkersEnvKey: "3",
				RuntimeBrokerURIEnvKey:  uri,
			},
			expected: runtime.Config{Serializer: runtime.SerializerCBOR, Transport: runtime.TransportBroker, BrokerURI: &uri},
		},
		{
			name: "in memory ignores broker uri",
			env: MapEnvironment{
				RuntimeTransportEnvKey: "MEMORY",
				RuntimeBrokerURIEnvKey: uri,
			},
			expected: runtime.Config{Serializer: runtime.SerializerCBOR, Transport: runtime.TransportInMemory},
		},
		{
			name:   "broker without uri",
			env:    MapEnvironment{RuntimeTransportEnvKey: "BROKER"},
			errKey: RuntimeBrokerURIEnvKey,
		},
		{
			name:   "broker with empty uri",
			env:    MapEnvironment{RuntimeTransportEnvKey: "BROKER", RuntimeBrokerURIEnvKey: " "},
			errKey: RuntimeBrokerURIEnvKey,
		},
		{
			name:   "unknown serializer",
			env:    MapEnvironment{RuntimeSerializerEnvKey: "protobuf"},
			errKey: RuntimeSerializerEnvKey,
		},
		{
			name:   "unknown transport",
			env:    MapEnvironment{RuntimeTransportEnvKey: "carrier-pigeon"},
			errKey: RuntimeTransportEnvKey,
		},
		{
			name:   "negative workers",
			env:    MapEnvironment{RuntimeNumWorkersEnvKey: "-1"},
			errKey: RuntimeNumWorkersEnvKey,
		},
		{
			name:   "not a number",
			env:    MapEnvironment{RuntimeNumWorkersEnvKey: "many"},
			errKey: RuntimeNumWorkersEnvKey,
		},
		{
			name:   "invalid utf8",
			env:    MapEnvironment{RuntimeSerializerEnvKey: string([]byte{0xff, 0xfe})},
			errKey: RuntimeSerializerEnvKey,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := ResolveRuntimeConfig(logger, tc.env)
			if tc.errKey != "" {
				require.ErrorIs(t, err, ErrInvalidConfig)
				var cfgErr *Error
				require.ErrorAs(t, err, &cfgErr)
				require.Equal(t, tc.errKey, cfgErr.Key)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, cfg)
		})
	}
}

func TestResolveRuntimeConfigLogsDiscardedValues(t *testing.T) {
	uri := "redis://localhost:6379"

	t.Run("workers under the broker", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		cfg, err := ResolveRuntimeConfig(log.NewFromCore(core), MapEnvironment{
			RuntimeTransportEnvKey:  "BROKER",
			RuntimeNumWorkersEnvKey: "3",
			RuntimeBrokerURIEnvKey:  uri,
		})
		require.NoError(t, err)
		require.Nil(t, cfg.NumWorkers)
		discarded := logs.FilterMessageSnippet(RuntimeNumWorkersEnvKey + "=3").All()
		require.Len(t, discarded, 1)
		require.Equal(t, zapcore.InfoLevel, discarded[0].Level)
	})

	t.Run("broker uri in memory", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		cfg, err := ResolveRuntimeConfig(log.NewFromCore(core), MapEnvironment{
			RuntimeTransportEnvKey: "MEMORY",
			RuntimeBrokerURIEnvKey: uri,
		})
		require.NoError(t, err)
		require.Nil(t, cfg.BrokerURI)
		ignored := logs.FilterMessageSnippet("ignoring " + RuntimeBrokerURIEnvKey).All()
		require.Len(t, ignored, 1)
		require.Equal(t, zapcore.InfoLevel, ignored[0].Level)
		require.NotContains(t, ignored[0].Message, uri)
	})
}

func TestResolveRuntimeConfigIsDeterministic(t *testing.T) {
	env := MapEnvironment{RuntimeSerializerEnvKey: "Json", RuntimeNumWorkersEnvKey: "8"}
	first, err := ResolveRuntimeConfig(log.GetDefaultLogger(), env)
	require.NoError(t, err)
	second, err := ResolveRuntimeConfig(log.GetDefaultLogger(), env)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 8, first.Workers())
}

func TestResolveProverStateConfig(t *testing.T) {
	logger := log.GetDefaultLogger()

	t.Run("defaults", func(t *testing.T) {
		cfg, err := ResolveProverStateConfig(logger, MapEnvironment{})
		require.NoError(t, err)
		require.Nil(t, cfg.TableLoadStrategy)
		require.Equal(t, proverstate.DefaultPersistence(), cfg.Persistence)
		require.Equal(t, proverstate.DefaultCircuitConfig(), cfg.CircuitSizes)
	})

	t.Run("disk without strategy", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		cfg, err := ResolveProverStateConfig(log.NewFromCore(core), MapEnvironment{ProverStatePersistenceEnvKey: "disk"})
		require.NoError(t, err)
		require.Equal(t, proverstate.DiskPersistence(proverstate.OnDemand), cfg.Persistence)

		warnings := logs.FilterLevelExact(zapcore.WarnLevel).FilterMessageSnippet("table load strategy not specified").All()
		require.Len(t, warnings, 1)
		require.Contains(t, warnings[0].Message, proverstate.OnDemand.String())
		require.Empty(t, logs.FilterLevelExact(zapcore.ErrorLevel).All())
	})

	t.Run("disk with monolithic", func(t *testing.T) {
		cfg, err := ResolveProverStateConfig(logger, MapEnvironment{
			ProverStatePersistenceEnvKey:       "DISK",
			ProverStateTableLoadStrategyEnvKey: "MONOLITHIC",
		})
		require.NoError(t, err)
		require.NotNil(t, cfg.TableLoadStrategy)
		require.Equal(t, proverstate.Monolithic, *cfg.TableLoadStrategy)
		require.Equal(t, proverstate.DiskPersistence(proverstate.Monolithic), cfg.Persistence)
	})

	t.Run("none", func(t *testing.T) {
		cfg, err := ResolveProverStateConfig(logger, MapEnvironment{ProverStatePersistenceEnvKey: "NONE"})
		require.NoError(t, err)
		require.Equal(t, proverstate.NoPersistence(), cfg.Persistence)
	})

	t.Run("circuit override", func(t *testing.T) {
		cfg, err := ResolveProverStateConfig(logger, MapEnvironment{"CPU_CIRCUIT_SIZE": "10..22"})
		require.NoError(t, err)
		require.Equal(t, proverstate.CircuitSize{Min: 10, Max: 22}, cfg.CircuitSizes.Get(proverstate.CPU))
		require.Equal(t, proverstate.DefaultCircuitConfig().Get(proverstate.Logic), cfg.CircuitSizes.Get(proverstate.Logic))
	})

	tcs := map[string]MapEnvironment{
		"unknown strategy":    {ProverStateTableLoadStrategyEnvKey: "LAZY"},
		"unknown persistence": {ProverStatePersistenceEnvKey: "CLOUD"},
		"bad circuit size":    {"KECCAK_CIRCUIT_SIZE": "fourteen..twenty"},
	}
	for name, env := range tcs {
		t.Run(name, func(t *testing.T) {
			_, err := ResolveProverStateConfig(logger, env)
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestSchema(t *testing.T) {
	data, err := Schema()
	require.NoError(t, err)

	var schema map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &schema))
	props, ok := schema["properties"].(map[string]interface{})
	require.True(t, ok)
	for _, key := range []string{"PathRWData", "Log", "Coordinator", "ObjectStore", "ProofOutput", "Prover", "Broker"} {
		require.Contains(t, props, key)
	}
	require.NotContains(t, props, "Runtime")
	require.NotContains(t, props, "ProverState")
}
