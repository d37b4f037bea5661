package main_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// projectRoot returns the absolute path to the project root directory.
func projectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err, "failed to get working directory")

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (no go.mod found in any parent directory)")
		}
		dir = parent
	}
}

// buildBinary compiles the spectrum command into a temp dir.
func buildBinary(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping binary build in short mode")
	}

	binPath := filepath.Join(t.TempDir(), "spectrum")
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/spectrum/")
	cmd.Dir = projectRoot(t)
	cmd.Env = append(os.Environ(), "CGO_ENABLED=0")

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "go build failed: %s", string(output))
	return binPath
}

func TestBuild_Compiles(t *testing.T) {
	binPath := buildBinary(t)

	info, err := os.Stat(binPath)
	require.NoError(t, err, "binary was not created at %s", binPath)
	assert.Greater(t, info.Size(), int64(0), "binary must not be empty")
}

func TestBuild_VersionOutput(t *testing.T) {
	binPath := buildBinary(t)

	output, err := exec.Command(binPath, "version").CombinedOutput()
	require.NoError(t, err, "binary execution failed with output: %s", string(output))
	assert.True(t, strings.HasPrefix(strings.TrimSpace(string(output)), "spectrum v"),
		"unexpected version output %q", string(output))
}

func TestBuild_UnknownCommandExitsNonZero(t *testing.T) {
	binPath := buildBinary(t)

	output, err := exec.Command(binPath, "frobnicate").CombinedOutput()
	require.Error(t, err)
	assert.Contains(t, string(output), "unknown command")
}
