package main

import (
	"fmt"
	"strings"

	"github.com/praetorian-inc/lsed"
	"github.com/praetorian-inc/lsed/pkg/types"
)

// renderParseError renders a parse error against the script text:
//
//	error: unknown command 'x'
//	 --> script:1:2
//	  |
//	1 | 1x
//	  |  ^
func renderParseError(text string, pe *lsed.ParseError, withColor bool) string {
	s := newStyles(withColor)

	lineNum := fmt.Sprintf("%d", pe.Position.Line)
	pad := strings.Repeat(" ", len(lineNum))
	line := types.LineAt(text, pe.Offset)

	col := pe.Position.Column - 1
	if col > len(line) {
		col = len(line)
	}
	// Keep tabs so the caret lines up under them.
	indent := strings.Map(func(r rune) rune {
		if r == '\t' {
			return r
		}
		return ' '
	}, line[:col])

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", s.errLabel.Sprint("error:"), pe.Msg)
	fmt.Fprintf(&b, "%s%s script:%s\n", pad, s.gutter.Sprint("-->"), pe.Position)
	fmt.Fprintf(&b, "%s %s\n", pad, s.gutter.Sprint("|"))
	fmt.Fprintf(&b, "%s %s %s\n", s.gutter.Sprint(lineNum), s.gutter.Sprint("|"), line)
	fmt.Fprintf(&b, "%s %s %s%s\n", pad, s.gutter.Sprint("|"), indent, s.caret.Sprint("^"))
	return b.String()
}
