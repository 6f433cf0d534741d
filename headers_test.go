package cvfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlogandavison/mypandocfilters/pandoc"
)

func header(text string) *pandoc.Header {
	return &pandoc.Header{Level: 3, Inlines: pandoc.Text(text)}
}

func stringifyAll(segments [][]pandoc.Inline) []string {
	out := make([]string, 0, len(segments))
	for _, s := range segments {
		out = append(out, pandoc.Stringify(s))
	}
	return out
}

func TestSplitHeadersNoDelimiter(t *testing.T) {
	headers := []*pandoc.Header{header("BSc Engineering"), header("Cambridge")}
	segments := SplitHeaders(headers)
	require.Len(t, segments, 2)
	assert.Equal(t, []string{"BSc Engineering", "Cambridge"}, stringifyAll(segments))
}

func TestSplitHeadersCountsPipes(t *testing.T) {
	// Two headings, three pipes total: 2 + 3 segments, heading order then
	// left to right.
	headers := []*pandoc.Header{
		header("BSc | 2020 | Cambridge"),
		header("UK | First"),
	}
	segments := SplitHeaders(headers)
	require.Len(t, segments, 5)
	assert.Equal(t, []string{"BSc", "2020", "Cambridge", "UK", "First"}, stringifyAll(segments))
}

func TestSplitHeadersEmpty(t *testing.T) {
	assert.Empty(t, SplitHeaders(nil))
}

func TestSplitInlinesRequiresSpacedPipe(t *testing.T) {
	// "a|b" has no [Space, Str("|"), Space] window.
	inlines := pandoc.Inlines(&pandoc.Str{Text: "a|b"})
	segments := splitInlines(inlines)
	require.Len(t, segments, 1)
	assert.Equal(t, "a|b", pandoc.Stringify(segments[0]))
}

func TestSplitInlinesLeadingDelimiter(t *testing.T) {
	// [Space, Str("|"), Space, Str("x")]: first segment empty.
	inlines := pandoc.Inlines(pandoc.SP, &pandoc.Str{Text: "|"}, pandoc.SP, &pandoc.Str{Text: "x"})
	segments := splitInlines(inlines)
	require.Len(t, segments, 2)
	assert.Empty(t, segments[0])
	assert.Equal(t, "x", pandoc.Stringify(segments[1]))
}

func TestSplitInlinesRestartsOnResidual(t *testing.T) {
	segments := splitInlines(pandoc.Text("a | b | c"))
	require.Len(t, segments, 3)
	assert.Equal(t, []string{"a", "b", "c"}, stringifyAll(segments))
}
