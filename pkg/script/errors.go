package script

import (
	"fmt"

	"github.com/praetorian-inc/lsed/pkg/types"
)

// ParseError reports why a script could not be compiled.
type ParseError struct {
	// Offset is the byte offset into the script text.
	Offset int
	// Position is the 1-based line:column of Offset.
	Position types.SourcePoint
	Msg      string
	// Err is the underlying cause, e.g. a regex compile error.
	Err error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse error at %s: %s: %v", e.Position, e.Msg, e.Err)
	}
	return fmt.Sprintf("parse error at %s: %s", e.Position, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
