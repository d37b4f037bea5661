package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbdelazizMoustafa10m/spectrum/internal/config"
)

// clearSpectrumEnv unsets every variable read by config.Resolve for the
// duration of the test.
func clearSpectrumEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		config.EnvIncludeTags,
		config.EnvExcludeTags,
		config.EnvTimeout,
		config.EnvRandomSeed,
		config.EnvReportFile,
		config.EnvReportConsole,
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

// writeTOML writes content to spectrum.toml in a fresh directory and returns
// its path.
func writeTOML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConfigDebug_ShowsSources(t *testing.T) {
	resetRootCmd(t)
	clearSpectrumEnv(t)
	t.Setenv(config.EnvTimeout, "5s")

	path := writeTOML(t, "[tags]\ninclude = [\"fast\"]\n\n[run]\nrandom_seed = 9\n")
	out, _, err := executeCmd(t, "config", "debug", "--config", path)
	require.NoError(t, err)

	assert.Contains(t, out, "Configuration Debug")
	assert.Contains(t, out, "Config file: "+path)
	assert.Contains(t, out, "[tags]")
	assert.Contains(t, out, "[run]")
	assert.Contains(t, out, "[report]")
	assert.Regexp(t, `include\s+= \["fast"\]\s+\(source: file\)`, out)
	assert.Regexp(t, `exclude\s+= \[\]\s+\(source: default\)`, out)
	assert.Regexp(t, `timeout\s+= "5s"\s+\(source: env\)`, out)
	assert.Regexp(t, `random_seed\s+= 9\s+\(source: file\)`, out)
	assert.Regexp(t, `console\s+= false\s+\(source: default\)`, out)
}

func TestConfigDebug_NoFile(t *testing.T) {
	resetRootCmd(t)
	clearSpectrumEnv(t)
	t.Chdir(t.TempDir())

	out, _, err := executeCmd(t, "config", "debug")
	require.NoError(t, err)
	// A spectrum.toml above the temp dir would be picked up; only assert
	// the sections are rendered.
	assert.Contains(t, out, "[run]")
}

func TestConfigDebug_BadFile(t *testing.T) {
	resetRootCmd(t)
	clearSpectrumEnv(t)

	_, _, err := executeCmd(t, "config", "debug", "--config", writeTOML(t, "[run\n"))
	require.Error(t, err)
}

func TestConfigValidate_Clean(t *testing.T) {
	resetRootCmd(t)
	clearSpectrumEnv(t)

	path := writeTOML(t, "[run]\ntimeout = \"2s\"\n")
	out, _, err := executeCmd(t, "config", "validate", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "No issues found.")
}

func TestConfigValidate_Errors(t *testing.T) {
	resetRootCmd(t)
	clearSpectrumEnv(t)

	path := writeTOML(t, "[run]\ntimeout = \"soon\"\nparallel = true\n")
	out, _, err := executeCmd(t, "config", "validate", "--config", path)
	require.Error(t, err)
	assert.Equal(t, "configuration has 1 error(s)", err.Error())

	assert.Contains(t, out, "Errors:")
	assert.Contains(t, out, "[run.timeout]")
	assert.Contains(t, out, "Warnings:")
	assert.Contains(t, out, "[run.parallel] unknown configuration key")
	assert.Contains(t, out, "1 error(s), 1 warning(s)")
}

func TestConfigValidate_EnvIssues(t *testing.T) {
	resetRootCmd(t)
	clearSpectrumEnv(t)
	t.Setenv(config.EnvRandomSeed, "lucky")

	out, _, err := executeCmd(t, "config", "validate", "--config", writeTOML(t, ""))
	require.Error(t, err)
	assert.Contains(t, out, "[run.random_seed]")
}

func TestFmtSlice(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "[]", fmtSlice(nil))
	assert.Equal(t, `["a", "b"]`, fmtSlice([]string{"a", "b"}))
}
