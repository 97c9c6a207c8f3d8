package source

import "github.com/praetorian-inc/lsed/pkg/types"

// phase is the state of the lookahead buffer.
type phase int

const (
	notStarted phase = iota // nothing read yet
	buffered                // pending holds the next line to hand out
	exhausted               // source drained; pending is empty
)

type rawLine struct {
	number int
	text   string
}

// Lookahead turns a Source into types.Line records, reading one line ahead
// so that each line knows whether it is the last one.
type Lookahead struct {
	src     Source
	phase   phase
	pending rawLine
}

// NewLookahead wraps src.
func NewLookahead(src Source) *Lookahead {
	return &Lookahead{src: src}
}

// Next returns the next line. ok is false once the source is exhausted.
func (l *Lookahead) Next() (types.Line, bool) {
	if l.phase == notStarted {
		l.fill()
	}
	if l.phase == exhausted {
		return types.Line{}, false
	}

	cur := l.pending
	l.fill()

	return types.Line{
		Number: cur.number,
		Text:   cur.text,
		IsLast: l.phase == exhausted,
	}, true
}

// fill reads the following line into pending, or marks the buffer exhausted.
func (l *Lookahead) fill() {
	n, text, ok := l.src.Next()
	if !ok {
		l.phase = exhausted
		l.pending = rawLine{}
		return
	}
	l.phase = buffered
	l.pending = rawLine{number: n, text: text}
}
