package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apnerr "apncat/pkg/errors"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, "~/.apncat", cfg.Home)
	assert.Equal(t, 0, cfg.Interpolation.Workers)
	assert.Equal(t, DefaultMaxDimension, cfg.Interpolation.MaxDimension)
	assert.Equal(t, "auto", cfg.Output.DefaultFormat)
	assert.False(t, cfg.Output.Verbose)
	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := Path(dir)

	cfg := Defaults()
	cfg.Interpolation.Workers = 4
	cfg.Output.DefaultFormat = "json"
	require.NoError(t, Save(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  verbose: true\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Output.Verbose)
	assert.Equal(t, DefaultMaxDimension, cfg.Interpolation.MaxDimension, "unset keys keep defaults")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{{not yaml"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, apnerr.Is(err, apnerr.ErrConfigInvalid), "got %v", err)
}

func TestApplyEnvironment(t *testing.T) {
	t.Setenv(EnvHome, "/tmp/apncat-test")
	t.Setenv(EnvOutputFormat, "JSON")
	t.Setenv(EnvVerbose, "yes")
	t.Setenv(EnvLogLevel, "DEBUG")
	t.Setenv(EnvWorkers, "8")

	cfg := Defaults()
	ApplyEnvironment(cfg)

	assert.Equal(t, "/tmp/apncat-test", cfg.Home)
	assert.Equal(t, "json", cfg.Output.DefaultFormat)
	assert.True(t, cfg.Output.Verbose)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 8, cfg.Interpolation.Workers)
}

func TestApplyEnvironmentIgnoresBadWorkers(t *testing.T) {
	t.Setenv(EnvWorkers, "-3")

	cfg := Defaults()
	ApplyEnvironment(cfg)
	assert.Equal(t, 0, cfg.Interpolation.Workers)

	t.Setenv(EnvWorkers, "lots")
	ApplyEnvironment(cfg)
	assert.Equal(t, 0, cfg.Interpolation.Workers)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LogLevelOff, ParseLogLevel("off"))
	assert.Equal(t, LogLevelOff, ParseLogLevel("none"))
	assert.Equal(t, LogLevelError, ParseLogLevel("error"))
	assert.Equal(t, LogLevelDebug, ParseLogLevel("DEBUG"))
	assert.Equal(t, LogLevelError, ParseLogLevel("gibberish"))
}

func TestLoggerWritesAtLevel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.log")

	logger, err := NewLogger(LogLevelError, path)
	require.NoError(t, err)

	logger.Error("catalog failure: %s", "disk full")
	logger.Debug("this should be filtered")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path) // #nosec G304 -- test temp file
	require.NoError(t, err)
	assert.Contains(t, string(data), "[ERROR] catalog failure: disk full")
	assert.NotContains(t, string(data), "filtered")
}

func TestLoggerDebugLevelWritesBoth(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")

	logger, err := NewLogger(LogLevelDebug, path)
	require.NoError(t, err)
	logger.Error("went wrong")
	logger.Debug("went fine")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path) // #nosec G304 -- test temp file
	require.NoError(t, err)
	assert.Contains(t, string(data), "[ERROR] went wrong")
	assert.Contains(t, string(data), "[DEBUG] went fine")
}

func TestLoggerOffNeverTouchesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "off.log")

	logger, err := NewLogger(LogLevelOff, path)
	require.NoError(t, err)
	logger.Error("dropped")
	require.NoError(t, logger.Close())

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestNullLogger(t *testing.T) {
	logger := NullLogger()
	logger.Error("goes nowhere")
	logger.Debug("also nowhere")
	assert.NoError(t, logger.Close())
}
