package pandoc

import (
	"encoding/json"
	"fmt"
	"io"
)

// Wire form of a tagged element: {"t": Tag, "c": contents}. Elements
// without contents (Space, HorizontalRule, ...) omit "c" entirely.
type envelope struct {
	T Tag             `json:"t"`
	C json.RawMessage `json:"c,omitempty"`
}

type docWire struct {
	Version []int           `json:"pandoc-api-version"`
	Meta    json.RawMessage `json:"meta"`
	Blocks  []envelope      `json:"blocks"`
}

// ReadFrom decodes a pandoc JSON document from r.
func ReadFrom(r io.Reader) (*Doc, error) {
	var w docWire
	if err := json.NewDecoder(r).Decode(&w); err != nil {
		return nil, fmt.Errorf("pandoc: decode document: %w", err)
	}
	blocks := make([]Block, 0, len(w.Blocks))
	for i := range w.Blocks {
		b, err := decodeBlock(&w.Blocks[i])
		if err != nil {
			return nil, fmt.Errorf("pandoc: block %d: %w", i, err)
		}
		blocks = append(blocks, b)
	}
	version := w.Version
	if len(version) == 0 {
		version = apiVersion
	}
	return &Doc{Version: version, Meta: w.Meta, Blocks: blocks}, nil
}

// Write encodes the document as pandoc JSON.
func (d *Doc) Write(w io.Writer) error {
	blocks, err := encodeBlocks(d.Blocks)
	if err != nil {
		return err
	}
	version := d.Version
	if len(version) == 0 {
		version = apiVersion
	}
	meta := d.Meta
	if len(meta) == 0 {
		meta = json.RawMessage("{}")
	}
	out := struct {
		Version []int           `json:"pandoc-api-version"`
		Meta    json.RawMessage `json:"meta"`
		Blocks  []any           `json:"blocks"`
	}{version, meta, blocks}
	return json.NewEncoder(w).Encode(&out)
}

// ----------- decoding -------------

func tuple(c json.RawMessage, n int) ([]json.RawMessage, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(c, &items); err != nil {
		return nil, err
	}
	if len(items) != n {
		return nil, fmt.Errorf("expected %d-tuple, got %d elements", n, len(items))
	}
	return items, nil
}

func decodeAttr(c json.RawMessage) (Attr, error) {
	items, err := tuple(c, 3)
	if err != nil {
		return Attr{}, err
	}
	var a Attr
	if err := json.Unmarshal(items[0], &a.Id); err != nil {
		return Attr{}, err
	}
	if err := json.Unmarshal(items[1], &a.Classes); err != nil {
		return Attr{}, err
	}
	var kvs [][2]string
	if err := json.Unmarshal(items[2], &kvs); err != nil {
		return Attr{}, err
	}
	for _, kv := range kvs {
		a.KVs = append(a.KVs, KV{kv[0], kv[1]})
	}
	return a, nil
}

func decodeInlineList(c json.RawMessage) ([]Inline, error) {
	var envs []envelope
	if err := json.Unmarshal(c, &envs); err != nil {
		return nil, err
	}
	out := make([]Inline, 0, len(envs))
	for i := range envs {
		inl, err := decodeInline(&envs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, inl)
	}
	return out, nil
}

func decodeBlockList(c json.RawMessage) ([]Block, error) {
	var envs []envelope
	if err := json.Unmarshal(c, &envs); err != nil {
		return nil, err
	}
	out := make([]Block, 0, len(envs))
	for i := range envs {
		b, err := decodeBlock(&envs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func decodeItems(c json.RawMessage) ([][]Block, error) {
	var lists []json.RawMessage
	if err := json.Unmarshal(c, &lists); err != nil {
		return nil, err
	}
	out := make([][]Block, 0, len(lists))
	for _, l := range lists {
		blocks, err := decodeBlockList(l)
		if err != nil {
			return nil, err
		}
		out = append(out, blocks)
	}
	return out, nil
}

func decodeFormatted(c json.RawMessage) (format, text string, err error) {
	items, err := tuple(c, 2)
	if err != nil {
		return "", "", err
	}
	if err := json.Unmarshal(items[0], &format); err != nil {
		return "", "", err
	}
	if err := json.Unmarshal(items[1], &text); err != nil {
		return "", "", err
	}
	return format, text, nil
}

func opaque(e *envelope) *Opaque {
	raw, _ := json.Marshal(e)
	return &Opaque{T: e.T, Raw: raw}
}

func decodeInline(e *envelope) (Inline, error) {
	switch e.T {
	case StrTag:
		var s string
		if err := json.Unmarshal(e.C, &s); err != nil {
			return nil, fmt.Errorf("%s: %w", e.T, err)
		}
		return &Str{s}, nil
	case SpaceTag:
		return SP, nil
	case SoftBreakTag:
		return SB, nil
	case LineBreakTag:
		return LB, nil
	case EmphTag:
		inlines, err := decodeInlineList(e.C)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.T, err)
		}
		return &Emph{inlines}, nil
	case StrongTag:
		inlines, err := decodeInlineList(e.C)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.T, err)
		}
		return &Strong{inlines}, nil
	case CodeTag:
		items, err := tuple(e.C, 2)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.T, err)
		}
		attr, err := decodeAttr(items[0])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.T, err)
		}
		var text string
		if err := json.Unmarshal(items[1], &text); err != nil {
			return nil, fmt.Errorf("%s: %w", e.T, err)
		}
		return &Code{Attr: attr, Text: text}, nil
	case RawInlineTag:
		format, text, err := decodeFormatted(e.C)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.T, err)
		}
		return &RawInline{Format: format, Text: text}, nil
	case LinkTag:
		items, err := tuple(e.C, 3)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.T, err)
		}
		attr, err := decodeAttr(items[0])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.T, err)
		}
		inlines, err := decodeInlineList(items[1])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.T, err)
		}
		var target [2]string
		if err := json.Unmarshal(items[2], &target); err != nil {
			return nil, fmt.Errorf("%s: %w", e.T, err)
		}
		return &Link{Attr: attr, Inlines: inlines, Target: Target{target[0], target[1]}}, nil
	case SpanTag:
		items, err := tuple(e.C, 2)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.T, err)
		}
		attr, err := decodeAttr(items[0])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.T, err)
		}
		inlines, err := decodeInlineList(items[1])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.T, err)
		}
		return &Span{Attr: attr, Inlines: inlines}, nil
	default:
		return opaque(e), nil
	}
}

func decodeBlock(e *envelope) (Block, error) {
	switch e.T {
	case PlainTag:
		inlines, err := decodeInlineList(e.C)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.T, err)
		}
		return &Plain{inlines}, nil
	case ParaTag:
		inlines, err := decodeInlineList(e.C)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.T, err)
		}
		return &Para{inlines}, nil
	case HeaderTag:
		items, err := tuple(e.C, 3)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.T, err)
		}
		var level int
		if err := json.Unmarshal(items[0], &level); err != nil {
			return nil, fmt.Errorf("%s: %w", e.T, err)
		}
		attr, err := decodeAttr(items[1])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.T, err)
		}
		inlines, err := decodeInlineList(items[2])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.T, err)
		}
		return &Header{Attr: attr, Level: level, Inlines: inlines}, nil
	case CodeBlockTag:
		items, err := tuple(e.C, 2)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.T, err)
		}
		attr, err := decodeAttr(items[0])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.T, err)
		}
		var text string
		if err := json.Unmarshal(items[1], &text); err != nil {
			return nil, fmt.Errorf("%s: %w", e.T, err)
		}
		return &CodeBlock{Attr: attr, Text: text}, nil
	case RawBlockTag:
		format, text, err := decodeFormatted(e.C)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.T, err)
		}
		return &RawBlock{Format: format, Text: text}, nil
	case BlockQuoteTag:
		blocks, err := decodeBlockList(e.C)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.T, err)
		}
		return &BlockQuote{blocks}, nil
	case BulletListTag:
		items, err := decodeItems(e.C)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.T, err)
		}
		return &BulletList{items}, nil
	case OrderedListTag:
		items, err := tuple(e.C, 2)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.T, err)
		}
		attrs, err := decodeListAttrs(items[0])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.T, err)
		}
		lists, err := decodeItems(items[1])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.T, err)
		}
		return &OrderedList{ListAttrs: attrs, Items: lists}, nil
	case HorizontalRuleTag:
		return HR, nil
	case DivTag:
		items, err := tuple(e.C, 2)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.T, err)
		}
		attr, err := decodeAttr(items[0])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.T, err)
		}
		blocks, err := decodeBlockList(items[1])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.T, err)
		}
		return &Div{Attr: attr, Blocks: blocks}, nil
	default:
		return opaque(e), nil
	}
}

func decodeListAttrs(c json.RawMessage) (ListAttrs, error) {
	items, err := tuple(c, 3)
	if err != nil {
		return ListAttrs{}, err
	}
	var a ListAttrs
	if err := json.Unmarshal(items[0], &a.Start); err != nil {
		return ListAttrs{}, err
	}
	var style, delim envelope
	if err := json.Unmarshal(items[1], &style); err != nil {
		return ListAttrs{}, err
	}
	if err := json.Unmarshal(items[2], &delim); err != nil {
		return ListAttrs{}, err
	}
	a.Style, a.Delimiter = string(style.T), string(delim.T)
	return a, nil
}

// ----------- encoding -------------

// Tagged value with contents. C is always set by the encoder, so no
// omitempty here; tagOnly covers the contents-free case.
type tagged struct {
	T Tag `json:"t"`
	C any `json:"c"`
}

type tagOnly struct {
	T Tag `json:"t"`
}

func encodeAttr(a *Attr) []any {
	classes := a.Classes
	if classes == nil {
		classes = []string{}
	}
	kvs := make([][2]string, 0, len(a.KVs))
	for _, kv := range a.KVs {
		kvs = append(kvs, [2]string{kv.Key, kv.Value})
	}
	return []any{a.Id, classes, kvs}
}

func encodeInlines(inlines []Inline) ([]any, error) {
	out := make([]any, 0, len(inlines))
	for _, inl := range inlines {
		v, err := encodeElement(inl)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func encodeBlocks(blocks []Block) ([]any, error) {
	out := make([]any, 0, len(blocks))
	for _, b := range blocks {
		v, err := encodeElement(b)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func encodeItems(items [][]Block) ([]any, error) {
	out := make([]any, 0, len(items))
	for _, item := range items {
		blocks, err := encodeBlocks(item)
		if err != nil {
			return nil, err
		}
		out = append(out, blocks)
	}
	return out, nil
}

func encodeElement(e Element) (any, error) {
	switch e := e.(type) {
	case *Opaque:
		return e.Raw, nil
	case *Str:
		return tagged{StrTag, e.Text}, nil
	case *Space:
		return tagOnly{SpaceTag}, nil
	case *SoftBreak:
		return tagOnly{SoftBreakTag}, nil
	case *LineBreak:
		return tagOnly{LineBreakTag}, nil
	case *Emph:
		c, err := encodeInlines(e.Inlines)
		if err != nil {
			return nil, err
		}
		return tagged{EmphTag, c}, nil
	case *Strong:
		c, err := encodeInlines(e.Inlines)
		if err != nil {
			return nil, err
		}
		return tagged{StrongTag, c}, nil
	case *Code:
		return tagged{CodeTag, []any{encodeAttr(&e.Attr), e.Text}}, nil
	case *RawInline:
		return tagged{RawInlineTag, []any{e.Format, e.Text}}, nil
	case *Link:
		c, err := encodeInlines(e.Inlines)
		if err != nil {
			return nil, err
		}
		return tagged{LinkTag, []any{encodeAttr(&e.Attr), c, []any{e.Target.Url, e.Target.Title}}}, nil
	case *Span:
		c, err := encodeInlines(e.Inlines)
		if err != nil {
			return nil, err
		}
		return tagged{SpanTag, []any{encodeAttr(&e.Attr), c}}, nil
	case *Plain:
		c, err := encodeInlines(e.Inlines)
		if err != nil {
			return nil, err
		}
		return tagged{PlainTag, c}, nil
	case *Para:
		c, err := encodeInlines(e.Inlines)
		if err != nil {
			return nil, err
		}
		return tagged{ParaTag, c}, nil
	case *Header:
		c, err := encodeInlines(e.Inlines)
		if err != nil {
			return nil, err
		}
		return tagged{HeaderTag, []any{e.Level, encodeAttr(&e.Attr), c}}, nil
	case *CodeBlock:
		return tagged{CodeBlockTag, []any{encodeAttr(&e.Attr), e.Text}}, nil
	case *RawBlock:
		return tagged{RawBlockTag, []any{e.Format, e.Text}}, nil
	case *BlockQuote:
		c, err := encodeBlocks(e.Blocks)
		if err != nil {
			return nil, err
		}
		return tagged{BlockQuoteTag, c}, nil
	case *BulletList:
		c, err := encodeItems(e.Items)
		if err != nil {
			return nil, err
		}
		return tagged{BulletListTag, c}, nil
	case *OrderedList:
		items, err := encodeItems(e.Items)
		if err != nil {
			return nil, err
		}
		attrs := []any{e.ListAttrs.Start, tagOnly{Tag(e.ListAttrs.Style)}, tagOnly{Tag(e.ListAttrs.Delimiter)}}
		return tagged{OrderedListTag, []any{attrs, items}}, nil
	case *HorizontalRule:
		return tagOnly{HorizontalRuleTag}, nil
	case *Div:
		c, err := encodeBlocks(e.Blocks)
		if err != nil {
			return nil, err
		}
		return tagged{DivTag, []any{encodeAttr(&e.Attr), c}}, nil
	default:
		return nil, fmt.Errorf("pandoc: cannot encode element %q", e.Tag())
	}
}
