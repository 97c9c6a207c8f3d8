package source

import (
	"fmt"
	"io"
	"os"
)

// input is a named input opened on first use.
type input struct {
	name string
	open func() (io.ReadCloser, error)
}

// MultiSource concatenates several inputs into one stream. Line numbers
// restart at 1 for each input; an input is opened only when the previous one
// is exhausted and closed as soon as it is.
type MultiSource struct {
	pending []input
	cur     *ReaderSource
	err     error
}

// OpenFiles validates that every path names a readable regular file and
// returns a source over their concatenated lines. Missing, non-regular or
// unopenable inputs fail with ErrInputUnavailable before anything is read.
// Each file is opened again when the stream reaches it.
func OpenFiles(paths []string) (*MultiSource, error) {
	inputs := make([]input, 0, len(paths))
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("%w: no such file %s", ErrInputUnavailable, path)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("%w: %s is a directory", ErrInputUnavailable, path)
		}
		if !info.Mode().IsRegular() {
			return nil, fmt.Errorf("%w: %s is not a regular file", ErrInputUnavailable, path)
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("%w: cannot read %s: %v", ErrInputUnavailable, path, err)
		}
		f.Close()
		inputs = append(inputs, input{
			name: path,
			open: func() (io.ReadCloser, error) { return os.Open(path) },
		})
	}
	return &MultiSource{pending: inputs}, nil
}

func (m *MultiSource) Next() (int, string, bool) {
	for m.err == nil {
		if m.cur == nil {
			if len(m.pending) == 0 {
				return 0, "", false
			}
			in := m.pending[0]
			m.pending = m.pending[1:]

			rc, err := in.open()
			if err != nil {
				m.err = fmt.Errorf("opening %s: %w", in.name, err)
				return 0, "", false
			}
			m.cur = newReadCloser(rc, in.name)
		}

		if n, text, ok := m.cur.Next(); ok {
			return n, text, true
		}

		// Current input exhausted: move on unless it failed.
		m.err = m.cur.Err()
		if err := m.cur.Close(); err != nil && m.err == nil {
			m.err = fmt.Errorf("closing input: %w", err)
		}
		m.cur = nil
	}
	return 0, "", false
}

func (m *MultiSource) Err() error {
	return m.err
}

// Close closes the input being read and drops the rest.
func (m *MultiSource) Close() error {
	m.pending = nil
	if m.cur == nil {
		return nil
	}
	err := m.cur.Close()
	m.cur = nil
	return err
}
