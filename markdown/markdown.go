// Package markdown reads markdown sources into the pandoc document tree
// using goldmark, so the filter can run on plain documents without a pandoc
// installation. It covers the block and inline vocabulary the CV patterns
// consume; anything pandoc-specific (fenced divs, citations) still requires
// the pandoc reader.
package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/jlogandavison/mypandocfilters/pandoc"
)

// Parse converts markdown source into a pandoc document.
func Parse(src []byte) (*pandoc.Doc, error) {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(src))
	blocks := convertChildren(root, src)
	return &pandoc.Doc{Blocks: blocks}, nil
}

func convertChildren(n ast.Node, src []byte) []pandoc.Block {
	var out []pandoc.Block
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if b := convertBlock(c, src); b != nil {
			out = append(out, b)
		}
	}
	return out
}

func convertBlock(n ast.Node, src []byte) pandoc.Block {
	switch n := n.(type) {
	case *ast.Heading:
		return &pandoc.Header{Level: n.Level, Inlines: convertInlines(n, src)}
	case *ast.Paragraph:
		return &pandoc.Para{Inlines: convertInlines(n, src)}
	case *ast.TextBlock:
		return &pandoc.Plain{Inlines: convertInlines(n, src)}
	case *ast.List:
		items := make([][]pandoc.Block, 0, n.ChildCount())
		for item := n.FirstChild(); item != nil; item = item.NextSibling() {
			items = append(items, convertChildren(item, src))
		}
		if n.IsOrdered() {
			return &pandoc.OrderedList{
				ListAttrs: pandoc.ListAttrs{Start: n.Start, Style: "Decimal", Delimiter: "Period"},
				Items:     items,
			}
		}
		return &pandoc.BulletList{Items: items}
	case *ast.Blockquote:
		return &pandoc.BlockQuote{Blocks: convertChildren(n, src)}
	case *ast.FencedCodeBlock:
		attr := pandoc.Attr{}
		if lang := n.Language(src); lang != nil {
			attr.Classes = []string{string(lang)}
		}
		return &pandoc.CodeBlock{Attr: attr, Text: linesText(n, src)}
	case *ast.CodeBlock:
		return &pandoc.CodeBlock{Text: linesText(n, src)}
	case *ast.ThematicBreak:
		return pandoc.HR
	case *ast.HTMLBlock:
		return &pandoc.RawBlock{Format: "html", Text: linesText(n, src)}
	default:
		return nil
	}
}

func convertInlines(n ast.Node, src []byte) []pandoc.Inline {
	out := []pandoc.Inline{}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		out = convertInline(out, c, src)
	}
	return out
}

func convertInline(out []pandoc.Inline, n ast.Node, src []byte) []pandoc.Inline {
	switch n := n.(type) {
	case *ast.Text:
		out = appendText(out, string(n.Segment.Value(src)))
		if n.HardLineBreak() {
			out = append(out, pandoc.LB)
		} else if n.SoftLineBreak() {
			out = append(out, pandoc.SB)
		}
	case *ast.String:
		out = appendText(out, string(n.Value))
	case *ast.Emphasis:
		inner := convertInlines(n, src)
		if n.Level >= 2 {
			out = append(out, &pandoc.Strong{Inlines: inner})
		} else {
			out = append(out, &pandoc.Emph{Inlines: inner})
		}
	case *ast.CodeSpan:
		out = append(out, &pandoc.Code{Text: codeSpanText(n, src)})
	case *ast.Link:
		out = append(out, &pandoc.Link{
			Inlines: convertInlines(n, src),
			Target:  pandoc.Target{Url: string(n.Destination), Title: string(n.Title)},
		})
	case *ast.AutoLink:
		url := string(n.URL(src))
		out = append(out, &pandoc.Link{
			Inlines: pandoc.Inlines(&pandoc.Str{Text: string(n.Label(src))}),
			Target:  pandoc.Target{Url: url},
		})
	case *ast.RawHTML:
		var buf bytes.Buffer
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			buf.Write(seg.Value(src))
		}
		out = append(out, &pandoc.RawInline{Format: "html", Text: buf.String()})
	case *ast.Image:
		// No Image element in the modeled subset; keep the alt text.
		out = append(out, convertInlines(n, src)...)
	default:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			out = convertInline(out, c, src)
		}
	}
	return out
}

// appendText splits a text run into Str and Space elements, matching the
// tokenization the pandoc reader produces. Runs of whitespace collapse to a
// single Space; a space is never emitted twice in a row.
func appendText(out []pandoc.Inline, s string) []pandoc.Inline {
	if s == "" {
		return out
	}
	appendSpace := func() {
		if len(out) > 0 {
			if _, ok := out[len(out)-1].(*pandoc.Space); ok {
				return
			}
		}
		out = append(out, pandoc.SP)
	}
	fields := strings.Fields(s)
	if strings.IndexByte(" \t", s[0]) >= 0 {
		appendSpace()
	}
	for i, f := range fields {
		if i > 0 {
			out = append(out, pandoc.SP)
		}
		out = append(out, &pandoc.Str{Text: f})
	}
	if len(fields) > 0 && strings.IndexByte(" \t", s[len(s)-1]) >= 0 {
		appendSpace()
	}
	return out
}

func linesText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
	return buf.String()
}

func codeSpanText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Segment.Value(src))
		}
	}
	return buf.String()
}
