package notes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain text passes through",
			input:    "just some text",
			expected: "just some text",
		},
		{
			name:     "tags removed",
			input:    "<p>Hello <b>world</b></p>",
			expected: "Hello world",
		},
		{
			name:     "script contents dropped",
			input:    "<p>before</p><script>alert('x')</script><p>after</p>",
			expected: "before after",
		},
		{
			name:     "style contents dropped",
			input:    "<style>.a { color: red }</style>visible",
			expected: "visible",
		},
		{
			name:     "whitespace collapsed",
			input:    "<div>one</div>\n\n<div>  two  </div>",
			expected: "one two",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripHTML(tt.input))
		})
	}
}
