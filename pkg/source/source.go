// Package source produces the numbered raw lines the editing engine consumes:
// from a reader (stdin), in-memory strings, a list of files, or files at a git
// revision.
package source

import "errors"

// ErrInputUnavailable is returned, wrapped with the offending name, when a
// named input does not exist or cannot be read. It is detected before any
// line is produced.
var ErrInputUnavailable = errors.New("input unavailable")

// Source yields raw lines in order.
type Source interface {
	// Next returns the next line and its 1-based number. ok is false once
	// the source is exhausted or a read error ended it early.
	Next() (number int, text string, ok bool)

	// Err returns the read error that ended the stream, if any.
	Err() error

	// Close releases any open files.
	Close() error
}
