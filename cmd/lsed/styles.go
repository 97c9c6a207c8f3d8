package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// styles holds the color formatters used by explain and parse diagnostics.
type styles struct {
	heading  *color.Color
	location *color.Color
	command  *color.Color
	keyword  *color.Color
	errLabel *color.Color
	gutter   *color.Color
	caret    *color.Color
}

// newStyles creates color formatters, all disabled unless enabled is set.
func newStyles(enabled bool) *styles {
	s := &styles{
		heading:  color.New(color.Bold),
		location: color.New(color.FgHiBlue),
		command:  color.New(color.Bold, color.FgHiGreen),
		keyword:  color.New(color.FgYellow),
		errLabel: color.New(color.Bold, color.FgRed),
		gutter:   color.New(color.FgBlue),
		caret:    color.New(color.Bold, color.FgRed),
	}

	for _, c := range []*color.Color{s.heading, s.location, s.command, s.keyword, s.errLabel, s.gutter, s.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return s
}

// colorEnabled resolves a --color value. "auto" enables color only on a
// terminal and when NO_COLOR is unset.
func colorEnabled(mode string) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		// Check if stdout is a TTY and NO_COLOR is not set
		return term.IsTerminal(int(os.Stdout.Fd())) && os.Getenv("NO_COLOR") == "", nil
	default:
		return false, fmt.Errorf("invalid --color value %q: want auto, always or never", mode)
	}
}
