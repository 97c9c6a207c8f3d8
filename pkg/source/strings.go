package source

import "strings"

// StringsSource yields in-memory lines, appending a newline to any entry
// that lacks one.
type StringsSource struct {
	lines []string
	next  int
}

// FromStrings returns a source over lines.
func FromStrings(lines []string) *StringsSource {
	return &StringsSource{lines: lines}
}

func (s *StringsSource) Next() (int, string, bool) {
	if s.next >= len(s.lines) {
		return 0, "", false
	}
	text := s.lines[s.next]
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	s.next++
	return s.next, text, true
}

func (s *StringsSource) Err() error {
	return nil
}

func (s *StringsSource) Close() error {
	return nil
}
