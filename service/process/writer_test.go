package process

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineWriter(t *testing.T) {
	var testCases = []struct {
		description string
		prefix      string
		chunks      []string
		expect      string
	}{
		{
			description: "whole lines",
			prefix:      "a │ ",
			chunks:      []string{"one\ntwo\n"},
			expect:      "a │ one\na │ two\n",
		},
		{
			description: "line split across writes",
			prefix:      "a │ ",
			chunks:      []string{"o", "ne\ntw", "o\n"},
			expect:      "a │ one\na │ two\n",
		},
		{
			description: "trailing partial line terminated",
			prefix:      "a │ ",
			chunks:      []string{"one\npartial"},
			expect:      "a │ one\na │ partial\n",
		},
		{
			description: "unprefixed output unmodified",
			chunks:      []string{"one\n", "partial"},
			expect:      "one\npartial",
		},
		{
			description: "empty lines keep prefix",
			prefix:      "b │ ",
			chunks:      []string{"\n\n"},
			expect:      "b │ \nb │ \n",
		},
	}

	for _, testCase := range testCases {
		out := &bytes.Buffer{}
		w := newLineWriter(out, testCase.prefix)
		for _, chunk := range testCase.chunks {
			n, err := w.Write([]byte(chunk))
			require.NoError(t, err, testCase.description)
			assert.Equal(t, len(chunk), n, testCase.description)
		}
		require.NoError(t, w.Flush(), testCase.description)
		assert.Equal(t, testCase.expect, out.String(), testCase.description)
	}
}

func TestPrefix(t *testing.T) {
	assert.Equal(t, "a    │ ", Prefix("a", 4))
	assert.Equal(t, "long │ ", Prefix("long", 4))
	assert.Equal(t, "a │ ", Prefix("a", 0))
	assert.Equal(t, "echo a b", CommandLine("echo", []string{"a", "b"}))
	assert.Equal(t, "ls", CommandLine("ls", nil))
}
