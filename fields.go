package cvfilter

import "github.com/jlogandavison/mypandocfilters/pandoc"

// EntryFields are the named positions of an entry container's split
// headings: "degree | year | institution | city | grade". Missing trailing
// fields are empty inline runs, never nil.
type EntryFields struct {
	Degree      []pandoc.Inline
	Year        []pandoc.Inline
	Institution []pandoc.Inline
	City        []pandoc.Inline
	Grade       []pandoc.Inline
}

// ItemFields are the named positions of a bare paragraph: "year |
// description", with the year optional and always first when present. A
// single segment is the description.
type ItemFields struct {
	Year        []pandoc.Inline
	Description []pandoc.Inline
}

const (
	entryArity = 5
	itemArity  = 2
)

// padInlines grows segments to at least arity entries, filling with empty
// runs on the leading or trailing side. It never truncates: segments beyond
// the named positions stay in the slice and are simply not destructured.
func padInlines(segments [][]pandoc.Inline, arity int, leading bool) [][]pandoc.Inline {
	if len(segments) >= arity {
		return segments
	}
	pad := make([][]pandoc.Inline, arity-len(segments))
	for i := range pad {
		pad[i] = []pandoc.Inline{}
	}
	if leading {
		return append(pad, segments...)
	}
	return append(append([][]pandoc.Inline{}, segments...), pad...)
}

func newEntryFields(segments [][]pandoc.Inline) EntryFields {
	s := padInlines(segments, entryArity, false)
	return EntryFields{
		Degree:      s[0],
		Year:        s[1],
		Institution: s[2],
		City:        s[3],
		Grade:       s[4],
	}
}

func newItemFields(segments [][]pandoc.Inline) ItemFields {
	s := padInlines(segments, itemArity, true)
	return ItemFields{
		Year:        s[0],
		Description: s[1],
	}
}
