package script

import (
	"fmt"
	"strconv"

	"github.com/praetorian-inc/lsed/pkg/regex"
	"github.com/praetorian-inc/lsed/pkg/types"
)

// LocationKind selects the variant of a Location.
type LocationKind int

const (
	LocationGlobal     LocationKind = iota // every line
	LocationRegex                          // pattern matches somewhere in the text
	LocationLineNumber                     // line number equals Line
	LocationLastLine                       // final line of the stream
	LocationRange                          // from Range.Start to Range.End, inclusive
)

func (k LocationKind) String() string {
	switch k {
	case LocationGlobal:
		return "global"
	case LocationRegex:
		return "regex"
	case LocationLineNumber:
		return "line"
	case LocationLastLine:
		return "last-line"
	case LocationRange:
		return "range"
	default:
		return fmt.Sprintf("LocationKind(%d)", int(k))
	}
}

// Location decides whether a command applies to a line. Only the field that
// belongs to Kind is set.
type Location struct {
	Kind    LocationKind
	Pattern regex.Regex // LocationRegex
	Line    int         // LocationLineNumber
	Range   *Range      // LocationRange
}

// Range is the stateful part of a range location.
type Range struct {
	Start  Location
	End    Location
	Active bool
}

// Global returns a location matching every line.
func Global() Location {
	return Location{Kind: LocationGlobal}
}

// Matching returns a location matching lines in which re finds a match.
func Matching(re regex.Regex) Location {
	return Location{Kind: LocationRegex, Pattern: re}
}

// LineNumber returns a location matching line n.
func LineNumber(n int) Location {
	return Location{Kind: LocationLineNumber, Line: n}
}

// LastLine returns a location matching the final line of the stream.
func LastLine() Location {
	return Location{Kind: LocationLastLine}
}

// NewRange returns an inactive range location from start to end.
func NewRange(start, end Location) Location {
	return Location{Kind: LocationRange, Range: &Range{Start: start, End: end}}
}

// Matches reports whether the location selects line. For ranges it also
// advances the activation state, so it must be called exactly once per line.
func (l *Location) Matches(line *types.Line) bool {
	switch l.Kind {
	case LocationGlobal:
		return true
	case LocationRegex:
		return l.Pattern.MatchString(line.Text)
	case LocationLineNumber:
		return line.Number == l.Line
	case LocationLastLine:
		return line.IsLast
	case LocationRange:
		return l.Range.matches(line)
	default:
		panic(fmt.Sprintf("script: unhandled location kind %v", l.Kind))
	}
}

func (r *Range) matches(line *types.Line) bool {
	if r.Active {
		if r.End.Matches(line) {
			r.Active = false
		}
		return true
	}

	if !r.Start.Matches(line) {
		return false
	}

	// A numeric end at or before the opening line closes the range at once.
	r.Active = r.End.Kind != LocationLineNumber || r.End.Line > line.Number
	return true
}

// Reset clears range activation, recursively.
func (l *Location) Reset() {
	if l.Kind != LocationRange {
		return
	}
	l.Range.Active = false
	l.Range.Start.Reset()
	l.Range.End.Reset()
}

// String renders the location in script syntax; Global renders empty.
func (l *Location) String() string {
	switch l.Kind {
	case LocationGlobal:
		return ""
	case LocationRegex:
		return "/" + escapeDelimiter(l.Pattern.String()) + "/"
	case LocationLineNumber:
		return strconv.Itoa(l.Line)
	case LocationLastLine:
		return "$"
	case LocationRange:
		return l.Range.Start.String() + "," + l.Range.End.String()
	default:
		return fmt.Sprintf("LocationKind(%d)", int(l.Kind))
	}
}

// Locations calls fn for the location and, for ranges, its endpoints.
func (l *Location) Locations(fn func(*Location)) {
	fn(l)
	if l.Kind == LocationRange {
		l.Range.Start.Locations(fn)
		l.Range.End.Locations(fn)
	}
}
