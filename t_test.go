package spectrum_test

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbdelazizMoustafa10m/spectrum"
	"github.com/AbdelazizMoustafa10m/spectrum/internal/report"
)

func TestT_Outcomes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		body      func(*spectrum.T)
		wantType  report.EventType
		wantError string
	}{
		{
			name:     "pass",
			body:     func(*spectrum.T) {},
			wantType: report.EventFinished,
		},
		{
			name:      "error continues",
			body:      func(t *spectrum.T) { t.Error("first"); t.Errorf("second %d", 2) },
			wantType:  report.EventFailed,
			wantError: "first\nsecond 2",
		},
		{
			name:      "fatal stops",
			body:      func(t *spectrum.T) { t.Fatal("stop"); t.Error("unreachable") },
			wantType:  report.EventFailed,
			wantError: "stop",
		},
		{
			name:      "fail without message",
			body:      func(t *spectrum.T) { t.Fail() },
			wantType:  report.EventFailed,
			wantError: "marked as failed",
		},
		{
			name:      "skip is an assumption failure",
			body:      func(t *spectrum.T) { t.Skipf("needs %s", "docker") },
			wantType:  report.EventAssumptionFailed,
			wantError: "needs docker",
		},
		{
			name:      "skip after failure stays failed",
			body:      func(t *spectrum.T) { t.Error("broken"); t.Skip("late") },
			wantType:  report.EventFailed,
			wantError: "broken",
		},
		{
			name:      "panic",
			body:      func(*spectrum.T) { panic("kaboom") },
			wantType:  report.EventFailed,
			wantError: "panic: kaboom",
		},
		{
			name: "fatal on a goroutine started with Go",
			body: func(t *spectrum.T) {
				t.Go(func() { t.Fatal("worker stopped"); t.Error("unreachable") })
			},
			wantType:  report.EventFailed,
			wantError: "worker stopped",
		},
		{
			name:      "skip on a goroutine started with Go",
			body:      func(t *spectrum.T) { t.Go(func() { t.Skip("no gpu") }) },
			wantType:  report.EventAssumptionFailed,
			wantError: "no gpu",
		},
		{
			name:      "panic on a goroutine started with Go",
			body:      func(t *spectrum.T) { t.Go(func() { panic("worker kaboom") }) },
			wantType:  report.EventFailed,
			wantError: "panic: worker kaboom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec, _ := run(t, func(s *spectrum.DSL) {
				s.It("spec", tt.body)
			})

			events := rec.Of(tt.wantType)
			require.Len(t, events, 1)
			assert.Equal(t, "root/spec", events[0].ID)
			assert.Contains(t, events[0].Error, tt.wantError)
		})
	}
}

func TestT_WorksWithRequire(t *testing.T) {
	t.Parallel()

	rec, _ := run(t, func(s *spectrum.DSL) {
		s.It("asserts", func(t *spectrum.T) {
			require.Equal(t, 1, 2)
			t.Error("unreachable")
		})
	})

	got := causes(rec, "root/asserts")
	require.Len(t, got, 1)
	var fe *spectrum.FailureError
	require.ErrorAs(t, got[0], &fe)
	require.Len(t, fe.Messages, 1)
	assert.Contains(t, fe.Messages[0], "Not equal")
}

func TestT_Name(t *testing.T) {
	t.Parallel()

	var specName, afterAllName string
	run(t, func(s *spectrum.DSL) {
		s.Describe("suite", func() {
			s.AfterAll(func(t *spectrum.T) { afterAllName = t.Name() })
			s.It("spec", func(t *spectrum.T) { specName = t.Name() })
		})
	})

	assert.Equal(t, "root/suite/spec", specName)
	assert.Equal(t, "root/suite", afterAllName)
}

func TestT_SkipInBeforeEachSkipsSpec(t *testing.T) {
	t.Parallel()

	ran := false
	rec, summary := run(t, func(s *spectrum.DSL) {
		s.BeforeEach(func(t *spectrum.T) { t.Skip("no network") })
		s.It("spec", func(*spectrum.T) { ran = true })
	})

	assert.False(t, ran)
	events := rec.Of(report.EventAssumptionFailed)
	require.Len(t, events, 1)
	var ae *spectrum.AssumptionError
	assert.True(t, errors.As(events[0].Cause, &ae))
	assert.Equal(t, 1, summary.Assumptions)
}

func TestT_GoWaitsForGoroutines(t *testing.T) {
	t.Parallel()

	var done atomic.Int32
	rec, summary := run(t, func(s *spectrum.DSL) {
		s.It("fans out", func(t *spectrum.T) {
			for range 3 {
				t.Go(func() {
					time.Sleep(10 * time.Millisecond)
					done.Add(1)
				})
			}
		})
	})

	assert.Equal(t, int32(3), done.Load())
	assert.Equal(t, []string{"root/fans out"}, rec.IDs(report.EventFinished))
	assert.Equal(t, 1, summary.Passed)
}
