// Package pandoc implements the subset of the [Pandoc] AST this module
// transforms, together with the pandoc JSON wire format and a thin wrapper
// around the pandoc executable.
//
// Elements the filter never touches (tables, citations, math, metadata
// values, ...) are carried through as Opaque and re-encoded verbatim.
//
// [Pandoc]: https://pandoc.org/
package pandoc

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Implemented Pandoc protocol version.
const Version = "1.23.1"

var apiVersion = func() []int {
	c := strings.Split(Version, ".")
	v := make([]int, len(c))
	for i, s := range c {
		n, _ := strconv.ParseInt(s, 10, 64)
		v[i] = int(n)
	}
	return v
}()

// Pandoc AST object tag
type Tag string

func (t Tag) String() string { return string(t) }

// Pandoc AST element
type Element interface {
	Tag() Tag
}

// Pandoc AST inline element
type Inline interface {
	Element
	inline()
}

// Pandoc AST block element
type Block interface {
	Element
	block()
}

// Pandoc document. Meta is kept in wire form: the filter rewrites blocks
// only and metadata must survive untouched.
type Doc struct {
	Version []int
	Meta    json.RawMessage
	Blocks  []Block
}

// Pandoc elements attribute's key-value pair.
type KV struct {
	Key   string
	Value string
}

// Pandoc elements attribute.
type Attr struct {
	Id      string // Element ID
	Classes []string
	KVs     []KV
}

// Returns true if attribute has the given class.
func (a *Attr) HasClass(c string) bool {
	for _, cl := range a.Classes {
		if cl == c {
			return true
		}
	}
	return false
}

// Returns a value of the given key or false if the key is not present.
func (a *Attr) Get(key string) (string, bool) {
	for _, kv := range a.KVs {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

// Text (string)
type Str struct {
	Text string
}

const StrTag = Tag("Str")

func (s *Str) Tag() Tag { return StrTag }
func (s *Str) inline()  {}

// Emphasized text (list of inlines)
type Emph struct {
	Inlines []Inline
}

const EmphTag = Tag("Emph")

func (e *Emph) Tag() Tag { return EmphTag }
func (e *Emph) inline()  {}

// Strongly emphasized text (list of inlines)
type Strong struct {
	Inlines []Inline
}

const StrongTag = Tag("Strong")

func (s *Strong) Tag() Tag { return StrongTag }
func (s *Strong) inline()  {}

// Inline code (literal)
type Code struct {
	Attr
	Text string
}

const CodeTag = Tag("Code")

func (c *Code) Tag() Tag { return CodeTag }
func (c *Code) inline()  {}

var SP = &Space{}

// Inter-word space
type Space struct{}

const SpaceTag = Tag("Space")

func (*Space) Tag() Tag { return SpaceTag }
func (*Space) inline()  {}

var SB = &SoftBreak{}

// Soft line break
type SoftBreak struct{}

const SoftBreakTag = Tag("SoftBreak")

func (*SoftBreak) Tag() Tag { return SoftBreakTag }
func (*SoftBreak) inline()  {}

var LB = &LineBreak{}

// Hard line break
type LineBreak struct{}

const LineBreakTag = Tag("LineBreak")

func (*LineBreak) Tag() Tag { return LineBreakTag }
func (*LineBreak) inline()  {}

// Raw inline, opaque to the printer of any other format
type RawInline struct {
	Format string
	Text   string
}

const RawInlineTag = Tag("RawInline")

func (r *RawInline) Tag() Tag { return RawInlineTag }
func (r *RawInline) inline()  {}

type Target struct {
	Url   string
	Title string
}

// Hyperlink: alt text (list of inlines), target
type Link struct {
	Attr
	Inlines []Inline
	Target  Target
}

const LinkTag = Tag("Link")

func (l *Link) Tag() Tag { return LinkTag }
func (l *Link) inline()  {}

// Generic inline container with attributes
type Span struct {
	Attr
	Inlines []Inline
}

const SpanTag = Tag("Span")

func (s *Span) Tag() Tag { return SpanTag }
func (s *Span) inline()  {}

// Plain text, not a paragraph
type Plain struct {
	Inlines []Inline
}

const PlainTag = Tag("Plain")

func (p *Plain) Tag() Tag { return PlainTag }
func (p *Plain) block()   {}

// Paragraph (list of inlines)
type Para struct {
	Inlines []Inline
}

const ParaTag = Tag("Para")

func (p *Para) Tag() Tag { return ParaTag }
func (p *Para) block()   {}

// Header - level (integer) and text (inlines)
type Header struct {
	Attr
	Level   int
	Inlines []Inline
}

const HeaderTag = Tag("Header")

func (h *Header) Tag() Tag { return HeaderTag }
func (h *Header) block()   {}

// Code block (literal)
type CodeBlock struct {
	Attr
	Text string
}

const CodeBlockTag = Tag("CodeBlock")

func (b *CodeBlock) Tag() Tag { return CodeBlockTag }
func (b *CodeBlock) block()   {}

// Raw block, opaque to the printer of any other format
type RawBlock struct {
	Format string
	Text   string
}

const RawBlockTag = Tag("RawBlock")

func (b *RawBlock) Tag() Tag { return RawBlockTag }
func (b *RawBlock) block()   {}

// Block quote (list of blocks)
type BlockQuote struct {
	Blocks []Block
}

const BlockQuoteTag = Tag("BlockQuote")

func (b *BlockQuote) Tag() Tag { return BlockQuoteTag }
func (b *BlockQuote) block()   {}

// Bullet list (list of items, each a list of blocks)
type BulletList struct {
	Items [][]Block
}

const BulletListTag = Tag("BulletList")

func (l *BulletList) Tag() Tag { return BulletListTag }
func (l *BulletList) block()   {}

type ListAttrs struct {
	Start     int
	Style     string
	Delimiter string
}

// Ordered list (attributes and a list of items, each a list of blocks)
type OrderedList struct {
	ListAttrs ListAttrs
	Items     [][]Block
}

const OrderedListTag = Tag("OrderedList")

func (l *OrderedList) Tag() Tag { return OrderedListTag }
func (l *OrderedList) block()   {}

var HR = &HorizontalRule{}

// Horizontal rule
type HorizontalRule struct{}

const HorizontalRuleTag = Tag("HorizontalRule")

func (*HorizontalRule) Tag() Tag { return HorizontalRuleTag }
func (*HorizontalRule) block()   {}

// Generic block container with attributes
type Div struct {
	Attr
	Blocks []Block
}

const DivTag = Tag("Div")

func (d *Div) Tag() Tag { return DivTag }
func (d *Div) block()   {}

// Opaque is an element this package does not model. Raw holds the original
// {"t":...,"c":...} wire object, which re-encodes byte-identically. It
// satisfies both Inline and Block so it can sit in either child list.
type Opaque struct {
	T   Tag
	Raw json.RawMessage
}

func (o *Opaque) Tag() Tag { return o.T }
func (o *Opaque) inline()  {}
func (o *Opaque) block()   {}
