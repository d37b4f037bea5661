package spectrum_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbdelazizMoustafa10m/spectrum"
	"github.com/AbdelazizMoustafa10m/spectrum/internal/logging"
	"github.com/AbdelazizMoustafa10m/spectrum/internal/report"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func taggedSpecs(s *spectrum.DSL) {
	s.With(spectrum.Tags("env")).It("env spec", func(*spectrum.T) {})
	s.With(spectrum.Tags("opt")).It("opt spec", func(*spectrum.T) {})
}

func TestBuild_MissingName(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"", "   "} {
		_, err := spectrum.Build(name, func(*spectrum.DSL) {}, spectrum.Isolated())
		assert.ErrorIs(t, err, spectrum.ErrMissingName)
	}
}

func TestBuild_NilDeclarationIsEmpty(t *testing.T) {
	t.Parallel()

	rec, summary := run(t, nil)
	assert.Equal(t, []string{"ignored:root"}, rec.Trace())
	assert.Equal(t, 1, summary.Ignored)
}

func TestBuild_EnvSelectsTags(t *testing.T) {
	t.Parallel()

	rec, _ := run(t, taggedSpecs,
		spectrum.WithEnv(envMap(map[string]string{"SPECTRUM_INCLUDE_TAGS": "env"})))

	assert.Equal(t, []string{"root/env spec"}, rec.IDs(report.EventStarted))
}

func TestBuild_OptionsOverrideEnv(t *testing.T) {
	t.Parallel()

	rec, _ := run(t, taggedSpecs,
		spectrum.WithEnv(envMap(map[string]string{"SPECTRUM_INCLUDE_TAGS": "env"})),
		spectrum.WithIncludeTags("opt"))

	assert.Equal(t, []string{"root/opt spec"}, rec.IDs(report.EventStarted))
	assert.Equal(t, []string{"root/env spec"}, rec.IDs(report.EventIgnored))
}

func TestBuild_ConfigFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "spectrum.toml")
	require.NoError(t, os.WriteFile(path, []byte("[tags]\nexclude = [\"opt\"]\n"), 0o644))

	runner, err := spectrum.Build("root", taggedSpecs,
		spectrum.WithConfigFile(path),
		spectrum.WithEnv(envMap(nil)),
		spectrum.WithLogger(logging.Discard()))
	require.NoError(t, err)

	rec := spectrum.NewRecorder()
	_, err = runner.Run(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, []string{"root/env spec"}, rec.IDs(report.EventStarted))
}

func TestBuild_InvalidConfiguration(t *testing.T) {
	t.Parallel()

	_, err := spectrum.Build("root", taggedSpecs,
		spectrum.Isolated(),
		spectrum.WithEnv(envMap(map[string]string{"SPECTRUM_TIMEOUT": "soon"})),
		spectrum.WithLogger(logging.Discard()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestRun_RunsOnce(t *testing.T) {
	t.Parallel()

	runner, err := spectrum.Build("root", func(s *spectrum.DSL) {
		s.It("a", func(*spectrum.T) {})
	}, spectrum.Isolated(), spectrum.WithLogger(logging.Discard()))
	require.NoError(t, err)

	_, err = runner.Run(context.Background(), nil)
	require.NoError(t, err)
	_, err = runner.Run(context.Background(), nil)
	assert.ErrorIs(t, err, spectrum.ErrAlreadyRun)
}

func TestRun_ExtraReporters(t *testing.T) {
	t.Parallel()

	extra := spectrum.NewRecorder()
	rec, _ := run(t, func(s *spectrum.DSL) {
		s.It("a", func(*spectrum.T) {})
	}, spectrum.WithReporter(extra))

	assert.Equal(t, rec.Trace(), extra.Trace())
}

func TestRun_Timeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	rec, summary := run(t, func(s *spectrum.DSL) {
		s.With(spectrum.Timeout(20 * time.Millisecond)).It("hangs", func(*spectrum.T) { <-release })
		s.It("next", func(*spectrum.T) {})
	})

	got := causes(rec, "root/hangs")
	require.Len(t, got, 1)
	var te *spectrum.TimeoutError
	require.ErrorAs(t, got[0], &te)
	assert.Equal(t, 20*time.Millisecond, te.Limit)
	assert.Equal(t, spectrum.Summary{Passed: 1, Failed: 1}, summary)
}

type tracker struct {
	released chan struct{}
}

func (tr *tracker) Close() error {
	close(tr.released)
	return nil
}

func TestRun_TimedOutSpecLeavesSiblingIntact(t *testing.T) {
	t.Parallel()

	unblock := make(chan struct{})
	slowFixture := make(chan *tracker, 1)
	var own *tracker
	var ownReleased bool

	rec, summary := run(t, func(s *spectrum.DSL) {
		fx := spectrum.Fixture(s, func() (*tracker, error) {
			return &tracker{released: make(chan struct{})}, nil
		})
		s.With(spectrum.Timeout(20*time.Millisecond)).It("slow", func(t *spectrum.T) {
			slowFixture <- fx.Get()
			<-unblock
			t.Error("late failure")
		})
		s.It("sibling", func(t *spectrum.T) {
			own = fx.Get()
			close(unblock)
			select {
			case <-(<-slowFixture).released:
			case <-time.After(5 * time.Second):
				t.Fatal("abandoned spec never released its fixture")
			}
			got, err := fx.Lookup()
			require.NoError(t, err)
			assert.Same(t, own, got)
			select {
			case <-own.released:
				ownReleased = true
			default:
			}
		})
	})

	assert.False(t, ownReleased)
	got := causes(rec, "root/slow")
	require.Len(t, got, 1)
	var te *spectrum.TimeoutError
	assert.ErrorAs(t, got[0], &te)
	assert.Empty(t, causes(rec, "root/sibling"))
	assert.Equal(t, spectrum.Summary{Passed: 1, Failed: 1}, summary)
}

func TestRun_DefaultTimeoutOption(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	rec, _ := run(t, func(s *spectrum.DSL) {
		s.It("hangs", func(*spectrum.T) { <-release })
	}, spectrum.WithTimeout(20*time.Millisecond))

	got := causes(rec, "root/hangs")
	require.Len(t, got, 1)
	var te *spectrum.TimeoutError
	assert.ErrorAs(t, got[0], &te)
}

func TestRun_ReportFilePerRoot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pattern := filepath.Join(dir, "reports", "{name}.ndjson")
	declare := func(s *spectrum.DSL) {
		s.It("a", func(*spectrum.T) {})
		s.It("b", func(t *spectrum.T) { t.Error("nope") })
	}

	for range 2 {
		run(t, declare, spectrum.WithReportFile(pattern))
	}

	f, err := os.Open(filepath.Join(dir, "reports", "root.ndjson"))
	require.NoError(t, err)
	defer f.Close()
	events, err := report.ReadEvents(f)
	require.NoError(t, err)
	assert.Equal(t, spectrum.Summary{Passed: 1, Failed: 1}, report.Summarize(events),
		"a per-root file holds only the latest run")
}

func TestRun_SharedReportFileAppends(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "all.ndjson")
	declare := func(s *spectrum.DSL) {
		s.It("a", func(*spectrum.T) {})
	}
	runner, err := spectrum.Build("first", declare,
		spectrum.Isolated(), spectrum.WithLogger(logging.Discard()), spectrum.WithReportFile(path))
	require.NoError(t, err)
	_, err = runner.Run(context.Background(), nil)
	require.NoError(t, err)

	runner, err = spectrum.Build("second", declare,
		spectrum.Isolated(), spectrum.WithLogger(logging.Discard()), spectrum.WithReportFile(path))
	require.NoError(t, err)
	_, err = runner.Run(context.Background(), nil)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	events, err := report.ReadEvents(f)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Summarize(events).Passed)
}

func TestItExpecting(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	rec, _ := run(t, func(s *spectrum.DSL) {
		s.ItExpecting("matches", spectrum.ErrorIs(errBoom), func(*spectrum.T) { panic(errBoom) })
		s.ItExpecting("matches type", spectrum.ErrorAs[*spectrum.FailureError](), func(t *spectrum.T) { t.Error("bad") })
		s.ItExpecting("missing", spectrum.ErrorIs(errBoom), func(*spectrum.T) {})
		s.ItExpecting("wrong message", spectrum.AnyError().WithMessage("x"), func(t *spectrum.T) { t.Error("y") })
		s.With(spectrum.Tags("t")).ItExpecting("configured", spectrum.AnyError(), func(t *spectrum.T) { t.Fail() })
		s.ItExpecting("assumption passes through", spectrum.AnyError(), func(t *spectrum.T) { t.Skip("later") })
	})

	assert.ElementsMatch(t, []string{"root/matches", "root/matches type", "root/configured"}, finishedWithoutFailure(rec))
	assert.Equal(t, []string{`expected error "boom" but none was returned`}, messages(rec, "root/missing"))
	assert.Equal(t, []string{`expected error message containing "x" but was "y"`}, messages(rec, "root/wrong message"))
	assert.Equal(t, []string{"root/assumption passes through"}, rec.IDs(report.EventAssumptionFailed))
}

func finishedWithoutFailure(rec *spectrum.Recorder) []string {
	failed := map[string]bool{}
	for _, ev := range rec.Events() {
		if ev.Type == report.EventFailed || ev.Type == report.EventAssumptionFailed {
			failed[ev.ID] = true
		}
	}
	var out []string
	for _, id := range rec.IDs(report.EventFinished) {
		if !failed[id] {
			out = append(out, id)
		}
	}
	return out
}

func messages(rec *spectrum.Recorder, id string) []string {
	var out []string
	for _, err := range causes(rec, id) {
		out = append(out, err.Error())
	}
	return out
}
