// Package engine runs a compiled script over a line source.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/praetorian-inc/lsed/pkg/script"
	"github.com/praetorian-inc/lsed/pkg/source"
	"github.com/praetorian-inc/lsed/pkg/types"
)

// Options configures a run.
type Options struct {
	// Quiet suppresses the automatic print of every line; only the print
	// command produces output.
	Quiet bool

	// Warn receives "[warn]" diagnostics, such as a read error that ended
	// the input early. Nil discards them.
	Warn io.Writer
}

// DefaultOptions returns the default run options.
func DefaultOptions() Options {
	return Options{}
}

// Result summarizes a finished run.
type Result struct {
	// Lines is the number of input lines processed, including the line a
	// quit command stopped on.
	Lines int

	// Quit is set when a quit command ended the run.
	Quit bool

	// ReadErr is the read error that ended the input early, if any. The run
	// itself still counts as successful.
	ReadErr error
}

// Engine executes scripts. It holds no per-run state and may be reused,
// but a Script carries range state and must not be shared between
// concurrent runs.
type Engine struct {
	opts Options
}

// New creates an engine.
func New(opts Options) *Engine {
	return &Engine{opts: opts}
}

// Run applies s to every line of src. Surviving text goes to out, print
// commands write to side. The context is checked between lines.
//
// For each line the commands run in order; a command whose location does not
// select the line is skipped. Delete empties the text but later commands
// still run. Quit stops at once: the current line is not auto-printed and no
// further line is processed.
func (e *Engine) Run(ctx context.Context, s *script.Script, src source.Source, out, side io.Writer) (Result, error) {
	var res Result
	lines := source.NewLookahead(src)

	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		line, ok := lines.Next()
		if !ok {
			break
		}
		res.Lines++

		quit, err := e.process(s, &line, side)
		if err != nil {
			return res, fmt.Errorf("line %d: %w", line.Number, err)
		}
		if quit {
			res.Quit = true
			return res, nil
		}

		if !e.opts.Quiet && line.Text != "" {
			if _, err := io.WriteString(out, line.Text); err != nil {
				return res, fmt.Errorf("writing output: %w", err)
			}
		}
	}

	if err := src.Err(); err != nil {
		res.ReadErr = err
		e.warnf("%v (treating as end of input)", err)
	}

	return res, nil
}

// process evaluates the commands of s against line in order.
func (e *Engine) process(s *script.Script, line *types.Line, side io.Writer) (bool, error) {
	for _, cmd := range s.Commands {
		if !cmd.Selects(line) {
			continue
		}
		if err := cmd.Apply(&line.Text, side); err != nil {
			if errors.Is(err, script.ErrQuit) {
				return true, nil
			}
			return false, fmt.Errorf("command %s: %w", cmd, err)
		}
	}
	return false, nil
}

func (e *Engine) warnf(format string, args ...any) {
	if e.opts.Warn == nil {
		return
	}
	fmt.Fprintf(e.opts.Warn, "[warn] "+format+"\n", args...)
}
