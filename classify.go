package cvfilter

import "github.com/jlogandavison/mypandocfilters/pandoc"

// EntryClass is the div class marking a structured CV entry.
const EntryClass = "entry"

// Kind is the single pattern a block belongs to. The variants are mutually
// exclusive: classification happens once per block and returns exactly one.
type Kind int

const (
	KindPassThrough Kind = iota
	KindEntry
	KindBarePara
	KindBareList
)

func isEntryContainer(b pandoc.Block) bool {
	d, ok := b.(*pandoc.Div)
	return ok && d.HasClass(EntryClass)
}

// classify determines the pattern for a block. inEntry reports whether an
// ancestor of the block is an entry container; the traversal computes it on
// the way down instead of re-walking parent chains per node.
func classify(b pandoc.Block, inEntry bool) Kind {
	switch b.(type) {
	case *pandoc.Div:
		if isEntryContainer(b) {
			return KindEntry
		}
	case *pandoc.Para:
		if !inEntry {
			return KindBarePara
		}
	case *pandoc.BulletList:
		if !inEntry {
			return KindBareList
		}
	}
	return KindPassThrough
}
