package cvfilter

import "github.com/jlogandavison/mypandocfilters/pandoc"

// Presentation backend: beamer two-column layouts built from the
// columns/column divs pandoc's beamer writer understands. Content is placed
// verbatim; nothing is re-rendered for this backend.
type presentRenderer struct{}

const (
	columnsClass = "columns"
	columnClass  = "column"
	twoColClass  = "twocol"

	leftColumnWidth  = "20%"
	rightColumnWidth = "75%"
)

func column(width string, blocks []pandoc.Block) pandoc.Block {
	return &pandoc.Div{
		Attr: pandoc.Attr{
			Classes: []string{columnClass},
			KVs:     []pandoc.KV{{Key: "width", Value: width}},
		},
		Blocks: blocks,
	}
}

func twoColumns(left, right []pandoc.Block) []pandoc.Block {
	return pandoc.Blocks(&pandoc.Div{
		Attr: pandoc.Attr{Classes: []string{columnsClass}},
		Blocks: pandoc.Blocks(
			column(leftColumnWidth, left),
			column(rightColumnWidth, right),
		),
	})
}

// joinNonEmpty concatenates the non-empty runs, separating each adjacent
// pair with a literal ", ".
func joinNonEmpty(runs ...[]pandoc.Inline) []pandoc.Inline {
	out := []pandoc.Inline{}
	for _, r := range runs {
		if len(r) == 0 {
			continue
		}
		if len(out) > 0 {
			out = append(out, &pandoc.Str{Text: ", "})
		}
		out = append(out, r...)
	}
	return out
}

// renderEntry places the year in the left column and a combined title
// heading plus the body, unmodified, in the right column.
func (r *presentRenderer) renderEntry(fields EntryFields, body []pandoc.Block, _ []bool) ([]pandoc.Block, error) {
	left := pandoc.Blocks(&pandoc.Header{Level: 3, Inlines: fields.Year})
	title := joinNonEmpty(fields.Degree, fields.Institution, fields.City, fields.Grade)
	right := append(pandoc.Blocks(&pandoc.Header{Level: 3, Inlines: title}), body...)
	return twoColumns(left, right), nil
}

func (r *presentRenderer) renderItem(fields ItemFields) ([]pandoc.Block, error) {
	left := pandoc.Blocks(&pandoc.Header{Level: 3, Inlines: fields.Year})
	right := pandoc.Blocks(&pandoc.Para{Inlines: fields.Description})
	return twoColumns(left, right), nil
}

// renderList keeps the original bullet list intact inside a twocol wrapper;
// the left column stays empty.
func (r *presentRenderer) renderList(_ [][]pandoc.Block, original *pandoc.BulletList) ([]pandoc.Block, error) {
	left := pandoc.Blocks(&pandoc.Para{Inlines: []pandoc.Inline{}})
	right := pandoc.Blocks(&pandoc.Div{
		Attr:   pandoc.Attr{Classes: []string{twoColClass}},
		Blocks: pandoc.Blocks(original),
	})
	return twoColumns(left, right), nil
}
