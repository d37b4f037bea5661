package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameSanitizer_Sanitize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{name: "plain", input: []string{"adds"}, want: []string{"adds"}},
		{name: "slash", input: []string{"a/b"}, want: []string{"a-b"}},
		{name: "control whitespace", input: []string{"a\nb\tc\rd"}, want: []string{"a b c d"}},
		{name: "duplicates", input: []string{"x", "x", "x"}, want: []string{"x", "x_1", "x_2"}},
		{name: "collision with generated", input: []string{"x_1", "x", "x"}, want: []string{"x_1", "x", "x_2"}},
		{name: "sanitized duplicates", input: []string{"a/b", "a-b"}, want: []string{"a-b", "a-b_1"}},
		{name: "empty", input: []string{"", " "}, want: []string{"unnamed", "unnamed_1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			n := NewNameSanitizer()
			var got []string
			for _, in := range tt.input {
				got = append(got, n.Sanitize(in))
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
