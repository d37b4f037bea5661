package spectrum_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AbdelazizMoustafa10m/spectrum"
	"github.com/AbdelazizMoustafa10m/spectrum/internal/logging"
	"github.com/AbdelazizMoustafa10m/spectrum/internal/report"
)

// run builds and runs an isolated tree named "root" and returns what it
// reported.
func run(t *testing.T, declare func(s *spectrum.DSL), opts ...spectrum.Option) (*spectrum.Recorder, spectrum.Summary) {
	t.Helper()
	base := []spectrum.Option{spectrum.Isolated(), spectrum.WithLogger(logging.Discard())}
	runner, err := spectrum.Build("root", declare, append(base, opts...)...)
	require.NoError(t, err)

	rec := spectrum.NewRecorder()
	summary, err := runner.Run(context.Background(), rec)
	require.NoError(t, err)
	return rec, summary
}

// causes returns the errors reported as failures against id.
func causes(rec *spectrum.Recorder, id string) []error {
	var out []error
	for _, ev := range rec.Of(report.EventFailed) {
		if ev.ID == id {
			out = append(out, ev.Cause)
		}
	}
	return out
}

// calls collects an ordered trace of named events.
type calls []string

func (c *calls) add(name string) func(*spectrum.T) {
	return func(*spectrum.T) { *c = append(*c, name) }
}
