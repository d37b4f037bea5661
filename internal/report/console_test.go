package report

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsole(t *testing.T) {
	t.Parallel()

	root := NewRoot("r")
	suite := root.Child("suite", KindSuite)
	ok := suite.Child("passes", KindSpec)
	bad := suite.Child("fails", KindSpec)

	var buf bytes.Buffer
	c := NewConsole(&buf)
	c.Started(ok)
	c.Finished(ok)
	c.Started(bad)
	c.Failed(bad, errors.New("line one\nline two"))
	c.Finished(bad)
	c.Ignored(suite.Child("skipped", KindSpec))
	c.Failed(suite, errors.New("cleanup"))

	out := buf.String()
	assert.Contains(t, out, "    ✓ passes")
	assert.Contains(t, out, "    ✗ fails")
	assert.Contains(t, out, "line one")
	assert.Contains(t, out, "line two")
	assert.Contains(t, out, "skipped (ignored)")
	assert.Contains(t, out, "  ✗ suite")
	assert.Contains(t, out, "cleanup")
}
