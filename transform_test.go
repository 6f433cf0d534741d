package cvfilter

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlogandavison/mypandocfilters/pandoc"
)

// fakeSerializer renders blocks to their plain text, one line per block,
// standing in for the pandoc executable.
type fakeSerializer struct {
	err error
}

func (f fakeSerializer) Serialize(blocks []pandoc.Block) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	var parts []string
	for _, b := range blocks {
		switch b := b.(type) {
		case *pandoc.Para:
			parts = append(parts, pandoc.Stringify(b.Inlines))
		case *pandoc.Plain:
			parts = append(parts, pandoc.Stringify(b.Inlines))
		case *pandoc.Header:
			parts = append(parts, pandoc.Stringify(b.Inlines))
		}
	}
	return StripBlankLines(strings.Join(parts, "\n")), nil
}

func newPrint(t *testing.T) *Transform {
	t.Helper()
	tr, err := New(Print, WithSerializer(fakeSerializer{}))
	require.NoError(t, err)
	return tr
}

func newPresent(t *testing.T) *Transform {
	t.Helper()
	tr, err := New(Present)
	require.NoError(t, err)
	return tr
}

// flatten renders a command paragraph to comparable text: raw fragments
// verbatim, live inlines stringified.
func flatten(t *testing.T, b pandoc.Block) string {
	t.Helper()
	p, ok := b.(*pandoc.Para)
	require.True(t, ok, "expected *Para, got %T", b)
	var sb strings.Builder
	for _, inl := range p.Inlines {
		if r, ok := inl.(*pandoc.RawInline); ok {
			sb.WriteString(r.Text)
		} else {
			sb.WriteString(pandoc.Stringify(pandoc.Inlines(inl)))
		}
	}
	return sb.String()
}

func entryDiv(blocks ...pandoc.Block) *pandoc.Div {
	return &pandoc.Div{
		Attr:   pandoc.Attr{Classes: []string{EntryClass}},
		Blocks: blocks,
	}
}

func plainItem(text string) []pandoc.Block {
	return pandoc.Blocks(&pandoc.Plain{Inlines: pandoc.Text(text)})
}

func requireColumns(t *testing.T, b pandoc.Block) (left, right *pandoc.Div) {
	t.Helper()
	cols, ok := b.(*pandoc.Div)
	require.True(t, ok, "expected *Div, got %T", b)
	require.True(t, cols.HasClass(columnsClass))
	require.Len(t, cols.Blocks, 2)
	left = cols.Blocks[0].(*pandoc.Div)
	right = cols.Blocks[1].(*pandoc.Div)
	require.True(t, left.HasClass(columnClass))
	require.True(t, right.HasClass(columnClass))
	return left, right
}

func TestEntryPresent(t *testing.T) {
	body := &pandoc.Para{Inlines: pandoc.Text("Thesis work.")}
	doc := &pandoc.Doc{Blocks: pandoc.Blocks(entryDiv(
		header("BSc | 2020"),
		header("Engineering"),
		body,
	))}

	out, err := newPresent(t).Apply(doc)
	require.NoError(t, err)
	require.Len(t, out.Blocks, 1)

	left, right := requireColumns(t, out.Blocks[0])

	lh := left.Blocks[0].(*pandoc.Header)
	assert.Equal(t, 3, lh.Level)
	assert.Equal(t, "2020", pandoc.Stringify(lh.Inlines))

	require.Len(t, right.Blocks, 2)
	rh := right.Blocks[0].(*pandoc.Header)
	assert.Equal(t, 3, rh.Level)
	assert.Equal(t, "BSc, Engineering", pandoc.Stringify(rh.Inlines))

	// Body blocks pass through verbatim, not re-rendered.
	assert.Same(t, body, right.Blocks[1])
}

func TestEntryPrint(t *testing.T) {
	doc := &pandoc.Doc{Blocks: pandoc.Blocks(entryDiv(
		header("BSc | 2020 | Cambridge | UK | First"),
		&pandoc.Para{Inlines: pandoc.Text("Thesis work.")},
		&pandoc.Para{Inlines: pandoc.Text("Published twice.")},
	))}

	out, err := newPrint(t).Apply(doc)
	require.NoError(t, err)
	require.Len(t, out.Blocks, 1)

	// Slot order is year, degree, institution, city, grade, body; the first
	// body paragraph is followed by a paragraph sibling, so it gets a forced
	// break.
	want := `\cventry{2020}{BSc}{Cambridge}{UK}{First}{Thesis work.\newlinePublished twice.}`
	assert.Equal(t, want, flatten(t, out.Blocks[0]))
}

func TestEntryPrintNoBreakBeforeNonPara(t *testing.T) {
	doc := &pandoc.Doc{Blocks: pandoc.Blocks(entryDiv(
		header("BSc | 2020"),
		&pandoc.Para{Inlines: pandoc.Text("Thesis.")},
		&pandoc.CodeBlock{Text: "x"},
	))}

	out, err := newPrint(t).Apply(doc)
	require.NoError(t, err)
	got := flatten(t, out.Blocks[0])
	assert.NotContains(t, got, `\newline`)
	assert.True(t, strings.HasPrefix(got, `\cventry{2020}{BSc}{}{}{}{`), "got %q", got)
}

func TestBareParaPrint(t *testing.T) {
	doc := &pandoc.Doc{Blocks: pandoc.Blocks(
		&pandoc.Para{Inlines: pandoc.Text("2019 | Worked at X.")},
	)}

	out, err := newPrint(t).Apply(doc)
	require.NoError(t, err)
	require.Len(t, out.Blocks, 1)
	assert.Equal(t, `\cvitem{2019}{Worked at X.}`, flatten(t, out.Blocks[0]))
}

func TestBareParaNoPipePresent(t *testing.T) {
	doc := &pandoc.Doc{Blocks: pandoc.Blocks(
		&pandoc.Para{Inlines: pandoc.Text("Just text.")},
	)}

	out, err := newPresent(t).Apply(doc)
	require.NoError(t, err)
	left, right := requireColumns(t, out.Blocks[0])

	lh := left.Blocks[0].(*pandoc.Header)
	assert.Empty(t, lh.Inlines)

	rp := right.Blocks[0].(*pandoc.Para)
	assert.Equal(t, "Just text.", pandoc.Stringify(rp.Inlines))
}

func TestBulletListPrint(t *testing.T) {
	doc := &pandoc.Doc{Blocks: pandoc.Blocks(&pandoc.BulletList{
		Items: [][]pandoc.Block{plainItem("A"), plainItem("B"), plainItem("C")},
	})}

	out, err := newPrint(t).Apply(doc)
	require.NoError(t, err)
	require.Len(t, out.Blocks, 1)

	p := out.Blocks[0].(*pandoc.Para)
	require.Len(t, p.Inlines, 2)
	assert.Equal(t, `\cvlistdoubleitem{A}{B}`, p.Inlines[0].(*pandoc.RawInline).Text)
	assert.Equal(t, `\cvlistdoubleitem{C}{}`, p.Inlines[1].(*pandoc.RawInline).Text)
}

func TestBulletListPresent(t *testing.T) {
	list := &pandoc.BulletList{
		Items: [][]pandoc.Block{plainItem("A"), plainItem("B")},
	}
	doc := &pandoc.Doc{Blocks: pandoc.Blocks(list)}

	out, err := newPresent(t).Apply(doc)
	require.NoError(t, err)
	left, right := requireColumns(t, out.Blocks[0])

	lp := left.Blocks[0].(*pandoc.Para)
	assert.Empty(t, lp.Inlines)

	wrap := right.Blocks[0].(*pandoc.Div)
	require.True(t, wrap.HasClass(twoColClass))
	assert.Same(t, list, wrap.Blocks[0])
}

func TestPassThroughUnmatched(t *testing.T) {
	blocks := pandoc.Blocks(
		&pandoc.Header{Level: 1, Inlines: pandoc.Text("Education")},
		&pandoc.CodeBlock{Text: "verbatim"},
		pandoc.HR,
		&pandoc.RawBlock{Format: "latex", Text: `\bigskip`},
	)
	doc := &pandoc.Doc{Blocks: blocks}

	out, err := newPrint(t).Apply(doc)
	require.NoError(t, err)
	require.Len(t, out.Blocks, len(blocks))
	for i := range blocks {
		assert.Same(t, blocks[i], out.Blocks[i], "block %d", i)
	}
}

func TestParaInsideEntryIsNotBare(t *testing.T) {
	// The classification must see entry containment: a paragraph inside an
	// entry div is body content, never a \cvitem.
	doc := &pandoc.Doc{Blocks: pandoc.Blocks(entryDiv(
		header("BSc"),
		&pandoc.Para{Inlines: pandoc.Text("body")},
	))}

	out, err := newPrint(t).Apply(doc)
	require.NoError(t, err)
	got := flatten(t, out.Blocks[0])
	assert.NotContains(t, got, `\cvitem`)
	assert.Contains(t, got, `\cventry`)
}

func TestParaInsidePlainDivIsBare(t *testing.T) {
	inner := &pandoc.Para{Inlines: pandoc.Text("2019 | Worked at X.")}
	doc := &pandoc.Doc{Blocks: pandoc.Blocks(&pandoc.Div{
		Attr:   pandoc.Attr{Classes: []string{"wrapper"}},
		Blocks: pandoc.Blocks(inner),
	})}

	out, err := newPrint(t).Apply(doc)
	require.NoError(t, err)
	div := out.Blocks[0].(*pandoc.Div)
	assert.Equal(t, `\cvitem{2019}{Worked at X.}`, flatten(t, div.Blocks[0]))
}

func TestBareParaInsideOrderedList(t *testing.T) {
	doc := &pandoc.Doc{Blocks: pandoc.Blocks(&pandoc.OrderedList{
		ListAttrs: pandoc.ListAttrs{Start: 3, Style: "Decimal", Delimiter: "Period"},
		Items: [][]pandoc.Block{
			{&pandoc.Para{Inlines: pandoc.Text("2019 | Worked at X.")}},
		},
	})}

	out, err := newPrint(t).Apply(doc)
	require.NoError(t, err)
	require.Len(t, out.Blocks, 1)

	list := out.Blocks[0].(*pandoc.OrderedList)
	assert.Equal(t, 3, list.ListAttrs.Start)
	require.Len(t, list.Items, 1)
	assert.Equal(t, `\cvitem{2019}{Worked at X.}`, flatten(t, list.Items[0][0]))
}

func TestEntryDivInsideOrderedList(t *testing.T) {
	doc := &pandoc.Doc{Blocks: pandoc.Blocks(&pandoc.OrderedList{
		Items: [][]pandoc.Block{
			{entryDiv(header("BSc | 2020"))},
		},
	})}

	out, err := newPrint(t).Apply(doc)
	require.NoError(t, err)
	list := out.Blocks[0].(*pandoc.OrderedList)
	got := flatten(t, list.Items[0][0])
	assert.Equal(t, `\cventry{2020}{BSc}{}{}{}{}`, got)
}

func TestUnknownBackend(t *testing.T) {
	_, err := New(Backend(42))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestSerializerErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	tr, err := New(Print, WithSerializer(fakeSerializer{err: boom}))
	require.NoError(t, err)

	doc := &pandoc.Doc{Blocks: pandoc.Blocks(entryDiv(
		header("BSc"),
		&pandoc.Para{Inlines: pandoc.Text("body")},
	))}
	_, err = tr.Apply(doc)
	assert.ErrorIs(t, err, boom)
}

func TestParseBackend(t *testing.T) {
	for name, want := range map[string]Backend{
		"latex":  Print,
		"print":  Print,
		"beamer": Present,
	} {
		got, err := ParseBackend(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
	_, err := ParseBackend("docx")
	assert.ErrorIs(t, err, ErrUnknownBackend)
}
