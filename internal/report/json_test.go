package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestJSONWriter_RoundTrip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewJSONWriter(&buf)
	w.Started(spec)
	w.Failed(spec, errors.New("boom"))
	w.Finished(spec)
	w.Ignored(NewRoot("r").Child("b", KindSpec))
	require.NoError(t, w.Err())
	assert.Equal(t, 4, strings.Count(buf.String(), "\n"))

	events, err := ReadEvents(&buf)
	require.NoError(t, err)
	require.Len(t, events, 4)
	assert.Equal(t, EventFailed, events[1].Type)
	assert.Equal(t, "boom", events[1].Error)
	assert.Nil(t, events[1].Cause, "causes are not serialized")
	assert.Equal(t, spec, events[0].Description())
	assert.Equal(t, "r/b", events[3].ID)
	assert.Equal(t, Summary{Failed: 1, Ignored: 1}, Summarize(events))
}

func TestReadEvents_SkipsBlankLinesAndFillsID(t *testing.T) {
	t.Parallel()

	in := "\n" + `{"type":"finished","path":["r"],"name":"a","kind":"spec"}` + "\n\n"
	events, err := ReadEvents(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "r/a", events[0].ID)
}

func TestReadEvents_BadLine(t *testing.T) {
	t.Parallel()

	in := `{"type":"started","id":"r/a"}` + "\nnot json\n"
	events, err := ReadEvents(strings.NewReader(in))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
	assert.Len(t, events, 1)
}

func TestJSONWriter_StickyError(t *testing.T) {
	t.Parallel()

	w := NewJSONWriter(failingWriter{})
	w.Started(spec)
	w.Finished(spec)
	require.Error(t, w.Err())
	assert.Contains(t, w.Err().Error(), "disk full")
}
