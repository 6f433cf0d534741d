// Package cvfilter rewrites CV structures in a pandoc document tree into
// backend-specific fragments: moderncv commands for print output, two-column
// layouts for beamer presentations.
//
// Three patterns are recognized: a div tagged with the "entry" class, a
// paragraph outside any entry div, and a bullet list outside any entry div.
// Everything else passes through untouched.
package cvfilter

import (
	"errors"
	"fmt"
)

// Backend selects the target output encoding.
type Backend int

const (
	// Print emits moderncv (LaTeX) command invocations.
	Print Backend = iota
	// Present emits beamer two-column layouts.
	Present
)

// ErrUnknownBackend is returned for a backend outside the defined set.
var ErrUnknownBackend = errors.New("unknown backend")

func (b Backend) String() string {
	switch b {
	case Print:
		return "latex"
	case Present:
		return "beamer"
	default:
		return fmt.Sprintf("Backend(%d)", int(b))
	}
}

// ParseBackend maps an output format name, as pandoc passes it to filters,
// to a backend.
func ParseBackend(format string) (Backend, error) {
	switch format {
	case "latex", "print":
		return Print, nil
	case "beamer", "present", "presentation":
		return Present, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownBackend, format)
	}
}
