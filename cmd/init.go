package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	zero "github.com/0xPolygon/zero-coordinator"
	"github.com/subosito/gotenv"
)

// EvmArithmetizationPkgVerEnvKey is read by the proving layer to tag its circuits
const EvmArithmetizationPkgVerEnvKey = "EVM_ARITHMETIZATION_PKG_VER"

// initProcess is the single place the process environment is mutated, once at
// start up: the dotenv file is loaded without overriding variables already set
// and the circuit version tag defaults to the build version.
func initProcess(envFile string) error {
	if envFile != "" {
		if err := gotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("error loading %s: %w", envFile, err)
		}
	}
	if _, ok := os.LookupEnv(EvmArithmetizationPkgVerEnvKey); !ok {
		if err := os.Setenv(EvmArithmetizationPkgVerEnvKey, zero.Version); err != nil {
			return err
		}
	}
	return nil
}
