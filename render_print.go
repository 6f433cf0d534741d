package cvfilter

import "github.com/jlogandavison/mypandocfilters/pandoc"

// Print backend: moderncv command invocations, carried as latex raw inlines
// so the pandoc LaTeX writer passes them through verbatim. Field content is
// interleaved as live inlines between the raw braces, keeping inline
// formatting intact; body content is pre-rendered text.
type printRenderer struct {
	ser BlockSerializer
}

const rawLaTeX = "latex"

// lineBreak separates consecutive body paragraphs inside a command
// argument, where an empty line would end the argument's paragraph.
const lineBreak = `\newline`

func raw(text string) pandoc.Inline {
	return &pandoc.RawInline{Format: rawLaTeX, Text: text}
}

// renderEntry emits \cventry{year}{degree}{institution}{city}{grade}{body}.
// breakAfter[i] reports whether body block i was followed by a paragraph in
// the original container.
func (r *printRenderer) renderEntry(fields EntryFields, body []pandoc.Block, breakAfter []bool) ([]pandoc.Block, error) {
	inlines := make([]pandoc.Inline, 0, 16+len(body))
	inlines = append(inlines, raw(`\cventry{`))
	inlines = append(inlines, fields.Year...)
	inlines = append(inlines, raw(`}{`))
	inlines = append(inlines, fields.Degree...)
	inlines = append(inlines, raw(`}{`))
	inlines = append(inlines, fields.Institution...)
	inlines = append(inlines, raw(`}{`))
	inlines = append(inlines, fields.City...)
	inlines = append(inlines, raw(`}{`))
	inlines = append(inlines, fields.Grade...)
	inlines = append(inlines, raw(`}{`))
	for i, b := range body {
		text, err := r.ser.Serialize(pandoc.Blocks(b))
		if err != nil {
			return nil, err
		}
		inlines = append(inlines, raw(text))
		if breakAfter[i] {
			inlines = append(inlines, raw(lineBreak))
		}
	}
	inlines = append(inlines, raw(`}`))
	return pandoc.Blocks(&pandoc.Para{Inlines: inlines}), nil
}

// renderItem emits \cvitem{year}{description}.
func (r *printRenderer) renderItem(fields ItemFields) ([]pandoc.Block, error) {
	inlines := make([]pandoc.Inline, 0, 4+len(fields.Year)+len(fields.Description))
	inlines = append(inlines, raw(`\cvitem{`))
	inlines = append(inlines, fields.Year...)
	inlines = append(inlines, raw(`}{`))
	inlines = append(inlines, fields.Description...)
	inlines = append(inlines, raw(`}`))
	return pandoc.Blocks(&pandoc.Para{Inlines: inlines}), nil
}

// renderList emits one \cvlistdoubleitem{left}{right} per cell pair, all in
// a single paragraph. cells arrives with an even count.
func (r *printRenderer) renderList(cells [][]pandoc.Block, _ *pandoc.BulletList) ([]pandoc.Block, error) {
	inlines := make([]pandoc.Inline, 0, len(cells)/2)
	for i := 0; i+1 < len(cells); i += 2 {
		left, err := r.renderCell(cells[i])
		if err != nil {
			return nil, err
		}
		right, err := r.renderCell(cells[i+1])
		if err != nil {
			return nil, err
		}
		inlines = append(inlines, raw(`\cvlistdoubleitem{`+left+`}{`+right+`}`))
	}
	return pandoc.Blocks(&pandoc.Para{Inlines: inlines}), nil
}

// renderCell concatenates a cell's blocks, each rendered and stripped
// individually.
func (r *printRenderer) renderCell(cell []pandoc.Block) (string, error) {
	var out string
	for _, b := range cell {
		text, err := r.ser.Serialize(pandoc.Blocks(b))
		if err != nil {
			return "", err
		}
		out += text
	}
	return out, nil
}
