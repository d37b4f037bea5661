package cli

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbdelazizMoustafa10m/spectrum/internal/report"
)

// writeReport writes an NDJSON report with the given number of passing and
// failing specs into dir/name and returns its path.
func writeReport(t *testing.T, dir, name string, passed, failed int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := report.NewJSONWriter(f)
	root := report.NewRoot(name)
	for i := range passed {
		spec := root.Child("pass"+string(rune('a'+i)), report.KindSpec)
		w.Started(spec)
		w.Finished(spec)
	}
	for i := range failed {
		spec := root.Child("fail"+string(rune('a'+i)), report.KindSpec)
		w.Started(spec)
		w.Failed(spec, errors.New("boom"))
		w.Finished(spec)
	}
	require.NoError(t, w.Err())
	return path
}

func TestReportSummary_Table(t *testing.T) {
	resetRootCmd(t)
	dir := t.TempDir()
	path := writeReport(t, dir, "unit.ndjson", 2, 0)

	out, _, err := executeCmd(t, "report", "summary", path)
	require.NoError(t, err)
	assert.Contains(t, out, "REPORT")
	assert.Contains(t, out, "ASSUMPTIONS")
	assert.Contains(t, out, path)
	assert.Contains(t, out, "total")
}

func TestReportSummary_JSONAndGlob(t *testing.T) {
	resetRootCmd(t)
	dir := t.TempDir()
	writeReport(t, dir, "a.ndjson", 2, 0)
	writeReport(t, dir, filepath.Join("nested", "b.ndjson"), 1, 1)

	out, _, err := executeCmd(t, "report", "summary", "--json", filepath.Join(dir, "**", "*.ndjson"))
	require.ErrorIs(t, err, errReportFailures)

	var got summaryOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Files, 2)
	assert.Equal(t, report.Summary{Passed: 3, Failed: 1}, got.Total)

	byFile := map[string]report.Summary{}
	for _, f := range got.Files {
		byFile[filepath.Base(f.File)] = f.Summary
	}
	assert.Equal(t, report.Summary{Passed: 2}, byFile["a.ndjson"])
	assert.Equal(t, report.Summary{Passed: 1, Failed: 1}, byFile["b.ndjson"])
}

func TestReportSummary_MissingFile(t *testing.T) {
	resetRootCmd(t)

	_, _, err := executeCmd(t, "report", "summary", filepath.Join(t.TempDir(), "nope.ndjson"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening report")
}

func TestReportSummary_GlobWithoutMatches(t *testing.T) {
	resetRootCmd(t)

	_, _, err := executeCmd(t, "report", "summary", filepath.Join(t.TempDir(), "*.ndjson"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no reports match")
}

func TestReportSummary_CorruptReport(t *testing.T) {
	resetRootCmd(t)
	path := filepath.Join(t.TempDir(), "bad.ndjson")
	require.NoError(t, os.WriteFile(path, []byte("{not json}\n"), 0o644))

	_, _, err := executeCmd(t, "report", "summary", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestExpandReportArgs_Dedups(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeReport(t, dir, "x.ndjson", 1, 0)

	files, err := expandReportArgs([]string{path, filepath.Join(dir, "*.ndjson"), path})
	require.NoError(t, err)
	assert.Equal(t, []string{path}, files)
}

func TestHasGlobMeta(t *testing.T) {
	t.Parallel()
	assert.False(t, hasGlobMeta("reports/unit.ndjson"))
	assert.True(t, hasGlobMeta("reports/*.ndjson"))
	assert.True(t, hasGlobMeta("reports/{a,b}.ndjson"))
}
