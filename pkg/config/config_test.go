package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0666))
	return path
}

func TestLoadDefaults(t *testing.T) {
	config, err := Load("", "")

	require.NoError(t, err)
	assert.Equal(t, Default(), config)
}

func TestLoadFile(t *testing.T) {
	//** Arrange
	path := writeFile(t, "config.json", `{"solver": "exhaustive", "timeout": "1m30s", "probe": false}`)

	//** Act
	config, err := Load(path, "")

	//** Assert
	require.NoError(t, err)
	assert.Equal(t, Config{Solver: "exhaustive", Timeout: 90 * time.Second, Probe: false, LogLevel: "info"}, config)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	//** Arrange
	path := writeFile(t, "config.json", `{"solver": "exhaustive", "log_level": "warn"}`)
	envPath := writeFile(t, ".env", "TIMETABLE_TIMEOUT=5s\nTIMETABLE_LOG_LEVEL=error\n")
	t.Setenv("TIMETABLE_SOLVER", "backtracking")
	t.Setenv("TIMETABLE_PROBE", "false")
	t.Setenv("TIMETABLE_LOG_LEVEL", "debug")
	t.Setenv("TIMETABLE_TIMEOUT", "")
	os.Unsetenv("TIMETABLE_TIMEOUT")

	//** Act
	config, err := Load(path, envPath)

	//** Assert
	require.NoError(t, err)
	assert.Equal(t, "backtracking", config.Solver)
	assert.False(t, config.Probe)
	assert.Equal(t, 5*time.Second, config.Timeout)
	assert.Equal(t, "debug", config.LogLevel) // Set in the process, so the env file does not replace it
}

func TestLoadMissingEnvFile(t *testing.T) {
	_, err := Load("", filepath.Join(t.TempDir(), ".env"))
	assert.NoError(t, err)
}

func TestLoadRejects(t *testing.T) {
	scenarios := map[string]string{
		"unknown solver":  `{"solver": "kissat"}`,
		"unknown level":   `{"log_level": "verbose"}`,
		"negative time":   `{"timeout": "-1s"}`,
		"unknown setting": `{"strategy": "pure"}`,
		"malformed json":  `{"solver": `,
	}

	for name, content := range scenarios {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, "config.json", content), "")
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingConfigFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "config.json"), "")
	assert.Error(t, err)
}

func TestLogger(t *testing.T) {
	logger, err := Default().Logger(false)
	require.NoError(t, err)
	assert.NotNil(t, logger)

	_, err = Config{LogLevel: "loud"}.Logger(false)
	assert.Error(t, err)
}
