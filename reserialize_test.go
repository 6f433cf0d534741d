package cvfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripBlankLines(t *testing.T) {
	in := "first\n\n  \t \n  kept with margins  \n\nlast\n"
	assert.Equal(t, "first\n  kept with margins  \nlast", StripBlankLines(in))
}

func TestStripBlankLinesPreservesOrder(t *testing.T) {
	assert.Equal(t, "a\nb\nc", StripBlankLines("a\nb\n\nc"))
}

func TestStripBlankLinesAllBlank(t *testing.T) {
	assert.Equal(t, "", StripBlankLines("\n \n\t\n"))
	assert.Equal(t, "", StripBlankLines(""))
}
