package cvfilter

import (
	"fmt"

	"github.com/jlogandavison/mypandocfilters/pandoc"
)

// renderer builds the replacement subtree for each recognized pattern. One
// implementation per backend; handlers never branch on a format flag.
type renderer interface {
	renderEntry(fields EntryFields, body []pandoc.Block, breakAfter []bool) ([]pandoc.Block, error)
	renderItem(fields ItemFields) ([]pandoc.Block, error)
	renderList(cells [][]pandoc.Block, original *pandoc.BulletList) ([]pandoc.Block, error)
}

// Transform rewrites CV patterns in a document for one backend. It holds no
// state across applications and is safe to reuse.
type Transform struct {
	backend  Backend
	renderer renderer
}

// Option adjusts a Transform at construction.
type Option func(*Transform)

// WithSerializer replaces the print backend's block serializer. It has no
// effect on the presentation backend, which never re-renders content.
func WithSerializer(s BlockSerializer) Option {
	return func(t *Transform) {
		if pr, ok := t.renderer.(*printRenderer); ok {
			pr.ser = s
		}
	}
}

// New builds a Transform for the given backend. A backend outside the
// defined set is a configuration error and fails here rather than silently
// passing documents through.
func New(backend Backend, opts ...Option) (*Transform, error) {
	t := &Transform{backend: backend}
	switch backend {
	case Print:
		t.renderer = &printRenderer{ser: NewLaTeXSerializer(pandoc.Conf{})}
	case Present:
		t.renderer = &presentRenderer{}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownBackend, int(backend))
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Apply returns a copy of the document with every matched pattern replaced.
// The input document is not mutated; untouched blocks are shared.
func (t *Transform) Apply(doc *pandoc.Doc) (*pandoc.Doc, error) {
	blocks, err := t.transformBlocks(doc.Blocks, false)
	if err != nil {
		return nil, err
	}
	out := *doc
	out.Blocks = blocks
	return &out, nil
}

// transformBlocks rewrites a child sequence, splicing each block's
// replacement list into its position. An empty replacement deletes the
// block.
func (t *Transform) transformBlocks(blocks []pandoc.Block, inEntry bool) ([]pandoc.Block, error) {
	out := make([]pandoc.Block, 0, len(blocks))
	for _, b := range blocks {
		repl, err := t.transformBlock(b, inEntry)
		if err != nil {
			return nil, err
		}
		out = append(out, repl...)
	}
	return out, nil
}

func (t *Transform) transformBlock(b pandoc.Block, inEntry bool) ([]pandoc.Block, error) {
	switch classify(b, inEntry) {
	case KindEntry:
		return t.handleEntry(b.(*pandoc.Div))
	case KindBarePara:
		return t.handleBarePara(b.(*pandoc.Para))
	case KindBareList:
		return t.handleBareList(b.(*pandoc.BulletList))
	}
	// Pass-through. Generic containers still get their children visited so
	// patterns nested in plain divs, quotes, or list items are found. The
	// bullet list case is only reachable inside an entry container; outside
	// one the list itself is the pattern.
	switch b := b.(type) {
	case *pandoc.Div:
		inner, err := t.transformBlocks(b.Blocks, inEntry)
		if err != nil {
			return nil, err
		}
		d := *b
		d.Blocks = inner
		return pandoc.Blocks(&d), nil
	case *pandoc.BlockQuote:
		inner, err := t.transformBlocks(b.Blocks, inEntry)
		if err != nil {
			return nil, err
		}
		return pandoc.Blocks(&pandoc.BlockQuote{Blocks: inner}), nil
	case *pandoc.OrderedList:
		items, err := t.transformItems(b.Items, inEntry)
		if err != nil {
			return nil, err
		}
		l := *b
		l.Items = items
		return pandoc.Blocks(&l), nil
	case *pandoc.BulletList:
		items, err := t.transformItems(b.Items, inEntry)
		if err != nil {
			return nil, err
		}
		return pandoc.Blocks(&pandoc.BulletList{Items: items}), nil
	}
	return pandoc.Blocks(b), nil
}

// transformItems rewrites each list item's block sequence in place order.
func (t *Transform) transformItems(items [][]pandoc.Block, inEntry bool) ([][]pandoc.Block, error) {
	out := make([][]pandoc.Block, len(items))
	for i, item := range items {
		blocks, err := t.transformBlocks(item, inEntry)
		if err != nil {
			return nil, err
		}
		out[i] = blocks
	}
	return out, nil
}

func isPara(b pandoc.Block) bool {
	_, ok := b.(*pandoc.Para)
	return ok
}

// handleEntry splits the container's direct headings into entry fields and
// hands the remaining children over as body content. breakAfter records,
// per body block, whether the block's successor in the original child list
// is a paragraph; the peek happens before any rewriting.
func (t *Transform) handleEntry(div *pandoc.Div) ([]pandoc.Block, error) {
	var (
		headers    []*pandoc.Header
		body       []pandoc.Block
		breakAfter []bool
	)
	for i, b := range div.Blocks {
		if h, ok := b.(*pandoc.Header); ok {
			headers = append(headers, h)
			continue
		}
		body = append(body, b)
		breakAfter = append(breakAfter, i+1 < len(div.Blocks) && isPara(div.Blocks[i+1]))
	}
	fields := newEntryFields(SplitHeaders(headers))
	return t.renderer.renderEntry(fields, body, breakAfter)
}

// handleBarePara splits the paragraph as a single heading into year and
// description.
func (t *Transform) handleBarePara(p *pandoc.Para) ([]pandoc.Block, error) {
	fields := newItemFields(splitInlines(p.Inlines))
	return t.renderer.renderItem(fields)
}

// handleBareList pairs up the list items as column cells, padding an odd
// count with one empty cell.
func (t *Transform) handleBareList(list *pandoc.BulletList) ([]pandoc.Block, error) {
	cells := append([][]pandoc.Block{}, list.Items...)
	if len(cells)%2 == 1 {
		cells = append(cells, []pandoc.Block{})
	}
	return t.renderer.renderList(cells, list)
}
