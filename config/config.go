package config

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/0xPolygon/zero-coordinator/coordinator"
	"github.com/0xPolygon/zero-coordinator/log"
	"github.com/0xPolygon/zero-coordinator/objectstore"
	"github.com/0xPolygon/zero-coordinator/proofout"
	"github.com/0xPolygon/zero-coordinator/proverstate"
	"github.com/0xPolygon/zero-coordinator/runtime"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"
)

const (
	// FlagCfg is the flag for cfg.
	FlagCfg = "cfg"
	// FlagEnvFile is the flag for the dotenv file loaded at start up.
	FlagEnvFile = "env-file"
	// FlagSchema is the flag to print the JSON schema of the configuration.
	FlagSchema = "schema"

	// EnvVarPrefix prefixes every environment override of the service config
	EnvVarPrefix = "ZERO"
	// ConfigType is the format every config file is converted to
	ConfigType = "toml"

	// ServerAddrEnvKey overrides Coordinator.Addr
	ServerAddrEnvKey = "SERVER_ADDR"
)

// ProverConfig configures the local prover state.
type ProverConfig struct {
	// CircuitDir is where circuits are persisted when PSM_CIRCUIT_PERSISTENCE is DISK
	CircuitDir string `mapstructure:"CircuitDir"`
}

/*
Config represents the configuration of the coordinator and worker processes.
The file is [TOML format]. Runtime and ProverState are not read from the file:
they come from the strict environment resolvers (RUNTIME_*, PSM_* and
*_CIRCUIT_SIZE keys) because a misconfigured value there must stop the process.

[TOML format]: https://en.wikipedia.org/wiki/TOML
*/
type Config struct {
	// PathRWData is the base directory for the data written by the process
	PathRWData string `mapstructure:"PathRWData"`
	// Configure Log level for all the services, allow also to store the logs in a file
	Log log.Config `mapstructure:"Log"`
	// Coordinator is the intake server and dispatcher configuration
	Coordinator coordinator.Config `mapstructure:"Coordinator"`
	// ObjectStore is the S3/GCS compatible storage used by object sources and proof output
	ObjectStore objectstore.Config `mapstructure:"ObjectStore"`
	// ProofOutput is where generated proofs are written
	ProofOutput proofout.Config `mapstructure:"ProofOutput"`
	// Prover is the local prover state configuration
	Prover ProverConfig `mapstructure:"Prover"`
	// Broker tunes the broker transport of the runtime
	Broker runtime.BrokerConfig `mapstructure:"Broker"`

	// Runtime is resolved from the environment by ResolveRuntimeConfig
	Runtime runtime.Config `mapstructure:"-" json:"-"`
	// ProverState is resolved from the environment by ResolveProverStateConfig
	ProverState proverstate.Config `mapstructure:"-" json:"-"`
}

// Load loads the service configuration from the files given in the cli context
func Load(ctx *cli.Context) (*Config, error) {
	filesData, err := readFiles(ctx.StringSlice(FlagCfg))
	if err != nil {
		return nil, fmt.Errorf("error reading files:  Err:%w", err)
	}
	return LoadFile(OSEnvironment, filesData...)
}

// LoadFile merges files onto DefaultValues, renders the result and decodes it
func LoadFile(env Environment, files ...FileData) (*Config, error) {
	fileData := make([]FileData, 0, len(files)+1)
	fileData = append(fileData, FileData{Name: "default_values", Content: DefaultValues})
	fileData = append(fileData, files...)

	rendered, err := NewRender(fileData, env, EnvVarPrefix).Render()
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := loadString(cfg, rendered, ConfigType); err != nil {
		return nil, err
	}

	if addr, ok, err := lookupText(env, ServerAddrEnvKey); err != nil {
		return nil, err
	} else if ok {
		log.Infof("using server address from %s: %s", ServerAddrEnvKey, addr)
		cfg.Coordinator.Addr = addr
	}
	return cfg, nil
}

func loadString(cfg *Config, configData string, configType string) error {
	v := viper.New()
	v.SetConfigType(configType)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix(EnvVarPrefix)
	v.AutomaticEnv()

	if err := v.ReadConfig(bytes.NewBufferString(configData)); err != nil {
		return err
	}
	decodeHooks := []viper.DecoderConfigOption{
		// this allows arrays to be decoded from env var separated by ",", example: MY_VAR="value1,value2,value3"
		viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(), mapstructure.StringToSliceHookFunc(","))),
	}
	return v.Unmarshal(cfg, decodeHooks...)
}
