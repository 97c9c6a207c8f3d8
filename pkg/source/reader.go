package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// ReaderSource reads lines from an io.Reader, keeping each line's newline.
type ReaderSource struct {
	name   string
	r      *bufio.Reader
	closer io.Closer
	line   int
	done   bool
	err    error
}

// NewReader returns a source reading from r. name is used in error messages.
func NewReader(r io.Reader, name string) *ReaderSource {
	return &ReaderSource{name: name, r: bufio.NewReader(r)}
}

// Stdin returns a source reading standard input.
func Stdin() *ReaderSource {
	return NewReader(os.Stdin, "<stdin>")
}

// newReadCloser is like NewReader but closes rc when exhausted or closed.
func newReadCloser(rc io.ReadCloser, name string) *ReaderSource {
	s := NewReader(rc, name)
	s.closer = rc
	return s
}

// Next returns the next line. A final line without a newline is returned
// as is; a read error ends the stream and discards the partial line.
func (s *ReaderSource) Next() (int, string, bool) {
	if s.done {
		return 0, "", false
	}

	text, err := s.r.ReadString('\n')
	if err != nil {
		s.done = true
		if !errors.Is(err, io.EOF) {
			s.err = fmt.Errorf("reading %s: %w", s.name, err)
			return 0, "", false
		}
		if text == "" {
			return 0, "", false
		}
	}

	s.line++
	return s.line, text, true
}

// Err returns the read error that ended the stream, if any.
func (s *ReaderSource) Err() error {
	return s.err
}

// Close closes the underlying reader if the source owns it.
func (s *ReaderSource) Close() error {
	s.done = true
	if s.closer == nil {
		return nil
	}
	c := s.closer
	s.closer = nil
	return c.Close()
}
