package pandoc

import "strings"

// Convenience constructors for building replacement subtrees.

func Inlines(i ...Inline) []Inline {
	return i
}

func Blocks(b ...Block) []Block {
	return b
}

// Text converts a plain string into Str runs separated by Space elements,
// the tokenization pandoc itself produces for inline text.
func Text(s string) []Inline {
	fields := strings.Fields(s)
	out := make([]Inline, 0, 2*len(fields))
	for i, f := range fields {
		if i > 0 {
			out = append(out, SP)
		}
		out = append(out, &Str{f})
	}
	return out
}
