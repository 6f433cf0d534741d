package cvfilter

import "github.com/jlogandavison/mypandocfilters/pandoc"

// SplitHeaders tokenizes a sequence of headings into field segments. Each
// heading's inline content is split on every ` | ` delimiter (the exact
// window [Space, Str("|"), Space]); segments from all headings concatenate
// in heading order. A heading without a delimiter contributes one segment.
func SplitHeaders(headers []*pandoc.Header) [][]pandoc.Inline {
	var segments [][]pandoc.Inline
	for _, h := range headers {
		segments = append(segments, splitInlines(h.Inlines)...)
	}
	return segments
}

// splitInlines splits one inline run on delimiter windows, restarting the
// scan on the residual content after each match.
func splitInlines(inlines []pandoc.Inline) [][]pandoc.Inline {
	var out [][]pandoc.Inline
	rest := inlines
	for {
		i := findDelimiter(rest)
		if i < 0 {
			break
		}
		out = append(out, rest[:i])
		rest = rest[i+3:]
	}
	return append(out, rest)
}

// findDelimiter locates the start of the first [Space, Str("|"), Space]
// window, or -1.
func findDelimiter(inlines []pandoc.Inline) int {
	for i := 0; i+2 < len(inlines); i++ {
		if !isSpace(inlines[i]) || !isSpace(inlines[i+2]) {
			continue
		}
		if s, ok := inlines[i+1].(*pandoc.Str); ok && s.Text == "|" {
			return i
		}
	}
	return -1
}

func isSpace(i pandoc.Inline) bool {
	_, ok := i.(*pandoc.Space)
	return ok
}
