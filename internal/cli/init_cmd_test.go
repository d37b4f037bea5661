package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbdelazizMoustafa10m/spectrum/internal/config"
	"github.com/AbdelazizMoustafa10m/spectrum/internal/tui"
)

func TestInitCmd_YesWritesDefaults(t *testing.T) {
	resetRootCmd(t)
	dir := t.TempDir()
	t.Chdir(dir)

	_, stderr, err := executeCmd(t, "init", "--yes")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Wrote ")
	assert.Contains(t, stderr, "spectrum config validate")

	var cfg config.Config
	_, err = toml.DecodeFile(filepath.Join(dir, config.ConfigFileName), &cfg)
	require.NoError(t, err)
	assert.Equal(t, tui.DefaultReportFile, cfg.Report.File)
	assert.Zero(t, cfg.Run.RandomSeed)
	assert.Empty(t, cfg.Run.Timeout)
}

func TestInitCmd_RefusesOverwrite(t *testing.T) {
	resetRootCmd(t)
	dir := t.TempDir()
	t.Chdir(dir)
	target := filepath.Join(dir, config.ConfigFileName)
	require.NoError(t, os.WriteFile(target, []byte("[run]\n"), 0o644))

	_, _, err := executeCmd(t, "init", "--yes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "[run]\n", string(data), "existing file must be preserved")
}

func TestInitCmd_Force(t *testing.T) {
	resetRootCmd(t)
	dir := t.TempDir()
	t.Chdir(dir)
	target := filepath.Join(dir, config.ConfigFileName)
	require.NoError(t, os.WriteFile(target, []byte("[run]\n"), 0o644))

	_, _, err := executeCmd(t, "init", "--yes", "--force")
	require.NoError(t, err)

	var cfg config.Config
	_, err = toml.DecodeFile(target, &cfg)
	require.NoError(t, err)
	assert.Equal(t, tui.DefaultReportFile, cfg.Report.File)
}

func TestInitCmd_WrittenFileValidates(t *testing.T) {
	resetRootCmd(t)
	clearSpectrumEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)

	_, _, err := executeCmd(t, "init", "--yes")
	require.NoError(t, err)

	resetRootCmd(t)
	out, _, err := executeCmd(t, "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "No issues found.")
}

func TestWriteConfigFile_BadPath(t *testing.T) {
	t.Parallel()
	err := writeConfigFile(filepath.Join(t.TempDir(), "missing", "spectrum.toml"), config.NewDefaults())
	require.Error(t, err)
}
