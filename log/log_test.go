package log

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogNotInitialized(t *testing.T) {
	Info("Test log.Info value is ", 10)
	Infof("Test log.Infof %d", 10)
	Infow("Test log.Infow", "value", 10)
	Debugf("Test log.Debugf %d", 10)
	Error("Test log.Error value is ", 10)
	Errorf("Test log.Errorf %d", 10)
	Errorw("Test log.Errorw", "value", 10)
	Warnf("Test log.Warnf %d", 10)
	Warnw("Test log.Warnw", "value", 10)
}

func TestLog(t *testing.T) {
	cfg := Config{
		Environment: EnvironmentDevelopment,
		Level:       "debug",
		Outputs:     []string{"stderr"},
	}

	Init(cfg)

	Info("Test log.Info value is ", 10)
	Infof("Test log.Infof %d", 10)
	Infow("Test log.Infow", "value", 10)
	Debugf("Test log.Debugf %d", 10)
	Error("Test log.Error value is ", errors.New("boom"))
	Errorf("Test log.Errorf %d", 10)
	Errorw("Test log.Errorw", "err", errors.New("boom"))
	Warnf("Test log.Warnf %d", 10)
	Warnw("Test log.Warnw", "value", 10)
}

func TestNewLoggerInvalidLevel(t *testing.T) {
	_, _, err := NewLogger(Config{Environment: EnvironmentProduction, Level: "loud", Outputs: []string{"stderr"}})
	require.Error(t, err)
}

func TestWithFieldsDoesNotAffectRoot(t *testing.T) {
	root := GetDefaultLogger()
	child := WithFields("module", "test")
	require.NotSame(t, root, child)
	require.NotNil(t, child.GetSugaredLogger())
	child.Infof("child logger %s", "works")
}

func TestNewFromCore(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := NewFromCore(core).WithFields("module", "test")

	logger.Debugf("dropped %d", 1)
	logger.Infof("kept %d", 2)
	logger.Warnf("warned %d", 3)

	require.Equal(t, 2, logs.Len())
	entries := logs.All()
	require.Equal(t, "kept 2", entries[0].Message)
	require.Equal(t, zapcore.WarnLevel, entries[1].Level)
	require.Equal(t, "test", entries[1].ContextMap()["module"])
}
