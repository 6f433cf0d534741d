package cvfilter

import (
	"strings"

	"github.com/jlogandavison/mypandocfilters/pandoc"
)

// BlockSerializer renders a block subtree to backend-native markup text.
// The print renderer uses it to embed rendered content inside command
// arguments.
type BlockSerializer interface {
	Serialize(blocks []pandoc.Block) (string, error)
}

// LaTeXSerializer renders blocks to LaTeX through the pandoc executable and
// strips blank lines from the result, so the text can sit inside a moderncv
// command argument without opening a new paragraph.
type LaTeXSerializer struct {
	conf pandoc.Conf
}

// NewLaTeXSerializer builds a serializer running pandoc per conf; the output
// format is forced to latex.
func NewLaTeXSerializer(conf pandoc.Conf) *LaTeXSerializer {
	conf.Format = "latex"
	return &LaTeXSerializer{conf: conf}
}

func (s *LaTeXSerializer) Serialize(blocks []pandoc.Block) (string, error) {
	out, err := pandoc.ConvertBlocks(blocks, s.conf)
	if err != nil {
		return "", err
	}
	return StripBlankLines(out), nil
}

// StripBlankLines removes every line containing only whitespace. Non-blank
// lines keep their content, including leading and trailing whitespace, and
// their relative order.
func StripBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	kept := make([]string, 0, len(lines))
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			kept = append(kept, l)
		}
	}
	return strings.Join(kept, "\n")
}
