package main

import (
	"os"
	"path/filepath"
	"testing"

	zero "github.com/0xPolygon/zero-coordinator"
	"github.com/stretchr/testify/require"
)

// unsetEnv clears key for the test and restores it afterwards
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestInitProcessLoadsEnvFile(t *testing.T) {
	unsetEnv(t, EvmArithmetizationPkgVerEnvKey)
	unsetEnv(t, "ZERO_TEST_FROM_FILE")
	t.Setenv("ZERO_TEST_ALREADY_SET", "from-process")

	envFile := writeEnvFile(t, "ZERO_TEST_FROM_FILE=from-file\nZERO_TEST_ALREADY_SET=from-file\n")
	require.NoError(t, initProcess(envFile))

	require.Equal(t, "from-file", os.Getenv("ZERO_TEST_FROM_FILE"))
	require.Equal(t, "from-process", os.Getenv("ZERO_TEST_ALREADY_SET"))
	require.Equal(t, zero.Version, os.Getenv(EvmArithmetizationPkgVerEnvKey))
}

func TestInitProcessKeepsPkgVersion(t *testing.T) {
	t.Setenv(EvmArithmetizationPkgVerEnvKey, "v9.9.9")

	envFile := writeEnvFile(t, EvmArithmetizationPkgVerEnvKey+"=v1.0.0\n")
	require.NoError(t, initProcess(envFile))
	require.Equal(t, "v9.9.9", os.Getenv(EvmArithmetizationPkgVerEnvKey))
}

func TestInitProcessPkgVersionFromFile(t *testing.T) {
	unsetEnv(t, EvmArithmetizationPkgVerEnvKey)

	envFile := writeEnvFile(t, EvmArithmetizationPkgVerEnvKey+"=v1.0.0\n")
	require.NoError(t, initProcess(envFile))
	require.Equal(t, "v1.0.0", os.Getenv(EvmArithmetizationPkgVerEnvKey))
}

func TestInitProcessMissingEnvFile(t *testing.T) {
	unsetEnv(t, EvmArithmetizationPkgVerEnvKey)

	require.NoError(t, initProcess(filepath.Join(t.TempDir(), "missing.env")))
	require.Equal(t, zero.Version, os.Getenv(EvmArithmetizationPkgVerEnvKey))

	unsetEnv(t, EvmArithmetizationPkgVerEnvKey)
	require.NoError(t, initProcess(""))
	require.Equal(t, zero.Version, os.Getenv(EvmArithmetizationPkgVerEnvKey))
}

func TestInitProcessMalformedEnvFile(t *testing.T) {
	unsetEnv(t, EvmArithmetizationPkgVerEnvKey)

	envFile := writeEnvFile(t, "this line is not an assignment\n")
	require.Error(t, initProcess(envFile))
}
