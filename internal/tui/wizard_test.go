package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitAnswers_Config(t *testing.T) {
	t.Parallel()

	a := InitAnswers{
		IncludeTags: "fast, unit",
		ExcludeTags: "slow",
		Timeout:     " 30s ",
		RandomSeed:  "42",
		ReportFile:  "out/{name}.ndjson",
		Console:     true,
		Confirm:     true,
	}
	cfg, err := a.Config()
	require.NoError(t, err)
	assert.Equal(t, []string{"fast", "unit"}, cfg.Tags.Include)
	assert.Equal(t, []string{"slow"}, cfg.Tags.Exclude)
	assert.Equal(t, "30s", cfg.Run.Timeout)
	assert.Equal(t, uint64(42), cfg.Run.RandomSeed)
	assert.Equal(t, "out/{name}.ndjson", cfg.Report.File)
	assert.True(t, cfg.Report.Console)
}

func TestInitAnswers_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := DefaultInitAnswers().Config()
	require.NoError(t, err)
	assert.Empty(t, cfg.Tags.Include)
	assert.Empty(t, cfg.Run.Timeout)
	assert.Zero(t, cfg.Run.RandomSeed)
	assert.Equal(t, DefaultReportFile, cfg.Report.File)
}

func TestInitAnswers_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*InitAnswers)
		wantErr string
	}{
		{name: "cancelled", mutate: func(a *InitAnswers) { a.Confirm = false }, wantErr: "init cancelled"},
		{name: "bad seed", mutate: func(a *InitAnswers) { a.RandomSeed = "-1" }, wantErr: "random seed"},
		{name: "bad timeout", mutate: func(a *InitAnswers) { a.Timeout = "soon" }, wantErr: "run.timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a := DefaultInitAnswers()
			tt.mutate(&a)
			_, err := a.Config()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidators(t *testing.T) {
	t.Parallel()

	assert.NoError(t, durationValidator(""))
	assert.NoError(t, durationValidator("1m30s"))
	assert.Error(t, durationValidator("later"))
	assert.Error(t, durationValidator("-1s"))

	seed := unsignedValidator("seed")
	assert.NoError(t, seed(""))
	assert.NoError(t, seed("7"))
	assert.Error(t, seed("x"))

	assert.NoError(t, tagListValidator("a, b,,c"))
	assert.Error(t, tagListValidator("two words"))
}

func TestNewInitForm(t *testing.T) {
	t.Parallel()

	a := DefaultInitAnswers()
	form := NewInitForm(&a)
	require.NotNil(t, form)
	assert.NotNil(t, buildHuhTheme())
}
