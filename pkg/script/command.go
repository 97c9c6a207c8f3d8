package script

import (
	"io"
	"strings"

	"github.com/praetorian-inc/lsed/pkg/types"
)

// Command binds a Location to the Transformer it guards.
type Command struct {
	Location    Location
	Transformer Transformer

	// Source is the script text the command was compiled from, and
	// Position where it starts. Both are zero for hand-built commands.
	Source   string
	Position types.SourcePoint
}

// NewCommand builds a command from its parts.
func NewCommand(loc Location, t Transformer) *Command {
	return &Command{Location: loc, Transformer: t}
}

// Selects reports whether the command applies to line, advancing range state.
func (c *Command) Selects(line *types.Line) bool {
	return c.Location.Matches(line)
}

// Apply runs the command's transformer on text.
func (c *Command) Apply(text *string, side io.Writer) error {
	return c.Transformer.Apply(text, side)
}

// String renders the command in canonical script syntax.
func (c *Command) String() string {
	return c.Location.String() + c.Transformer.String()
}

// Script is the ordered command list of one run. Apart from range activation
// it is read-only once compiled.
type Script struct {
	// Name and Description are informational; script files set them.
	Name        string
	Description string
	Commands    []*Command
}

// Len returns the number of commands.
func (s *Script) Len() int {
	return len(s.Commands)
}

// Append adds the commands of other after those of s.
func (s *Script) Append(other *Script) {
	s.Commands = append(s.Commands, other.Commands...)
}

// Reset deactivates every range so the script can run over a fresh stream.
func (s *Script) Reset() {
	for _, c := range s.Commands {
		c.Location.Reset()
	}
}

// String renders the script as canonical commands separated by ';'.
func (s *Script) String() string {
	parts := make([]string, len(s.Commands))
	for i, c := range s.Commands {
		parts[i] = c.String()
	}
	return strings.Join(parts, ";")
}
