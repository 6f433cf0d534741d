package pandoc

import "strings"

// Stringify flattens a list of inlines to plain text, the way pandoc's own
// stringify does: spaces and breaks become single characters, formatting is
// dropped, raw fragments are skipped.
func Stringify(inlines []Inline) string {
	var sb strings.Builder
	stringify(&sb, inlines)
	return sb.String()
}

func stringify(sb *strings.Builder, inlines []Inline) {
	for _, inl := range inlines {
		switch inl := inl.(type) {
		case *Str:
			sb.WriteString(inl.Text)
		case *Space:
			sb.WriteByte(' ')
		case *SoftBreak, *LineBreak:
			sb.WriteByte('\n')
		case *Code:
			sb.WriteString(inl.Text)
		case *Emph:
			stringify(sb, inl.Inlines)
		case *Strong:
			stringify(sb, inl.Inlines)
		case *Link:
			stringify(sb, inl.Inlines)
		case *Span:
			stringify(sb, inl.Inlines)
		}
	}
}
