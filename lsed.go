// Package lsed provides a streaming line editor.
//
// An Editor compiles a small script of addressable commands (print, delete,
// substitute, quit) and applies it to every line of its input, writing the
// surviving text to an output.
//
// # Basic Usage
//
//	editor, err := lsed.New(`/^#/d; s/foo/bar/g`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	out, err := editor.RunString("# comment\nfoo foo\n")
//	// out == "bar bar\n"
//
// # Script Language
//
// Each command is an optional location followed by a command letter.
// Locations are a line number, '$' for the last line, a /regex/, or two of
// those joined by ',' for an inclusive range. Commands are p (print),
// d (delete), q (quit) and s/find/replace/ with an optional g flag.
// Commands are separated by ';' or whitespace.
package lsed

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/praetorian-inc/lsed/pkg/engine"
	"github.com/praetorian-inc/lsed/pkg/prefilter"
	"github.com/praetorian-inc/lsed/pkg/regex"
	"github.com/praetorian-inc/lsed/pkg/script"
	"github.com/praetorian-inc/lsed/pkg/source"
)

// Re-export commonly used types for convenience.
// Users can import just "github.com/praetorian-inc/lsed" without subpackages.
type (
	// Script is a compiled, ordered command list.
	Script = script.Script

	// Command is one location/transformer pair of a script.
	Command = script.Command

	// ParseError reports where and why a script failed to compile.
	ParseError = script.ParseError

	// Result summarizes a run.
	Result = engine.Result

	// Engine names a regex implementation.
	Engine = regex.Engine
)

// Re-export regex engine names.
const (
	EngineRE2     = regex.EngineRE2
	EngineRegexp2 = regex.EngineRegexp2
)

// ErrInputUnavailable is returned when a named input file does not exist.
var ErrInputUnavailable = source.ErrInputUnavailable

// Editor applies a compiled script to input streams.
type Editor struct {
	script    *script.Script
	engine    *engine.Engine
	prefilter *prefilter.Prefilter
	config    *editorConfig
	mu        sync.Mutex
}

// editorConfig holds editor configuration.
type editorConfig struct {
	regex     regex.Options
	quiet     bool
	prefilter bool
	warn      io.Writer
}

// Option configures an Editor.
type Option func(*editorConfig)

// WithQuiet disables the automatic print of every line.
func WithQuiet() Option {
	return func(c *editorConfig) {
		c.quiet = true
	}
}

// WithEngine selects the regex engine. Default is EngineRE2.
func WithEngine(e Engine) Option {
	return func(c *editorConfig) {
		c.regex.Engine = e
	}
}

// WithMatchTimeout bounds a single regexp2 match. Default is 5 seconds.
func WithMatchTimeout(d time.Duration) Option {
	return func(c *editorConfig) {
		c.regex.MatchTimeout = d
	}
}

// WithoutPrefilter evaluates literal locations with the regex engine instead
// of the shared keyword scan.
func WithoutPrefilter() Option {
	return func(c *editorConfig) {
		c.prefilter = false
	}
}

// WithWarnings sends "[warn]" diagnostics to w: read errors that ended the
// input early and regexp2 location matches that failed or timed out. Without
// it they are discarded.
func WithWarnings(w io.Writer) Option {
	return func(c *editorConfig) {
		c.warn = w
	}
}

func newConfig(opts []Option) *editorConfig {
	config := &editorConfig{
		regex:     regex.DefaultOptions(),
		prefilter: true,
	}
	for _, opt := range opts {
		opt(config)
	}
	config.regex.Warn = config.warn
	return config
}

// New compiles script text into an Editor.
//
// Example:
//
//	editor, err := lsed.New("3,5d", lsed.WithQuiet())
func New(text string, opts ...Option) (*Editor, error) {
	config := newConfig(opts)
	s, err := script.Compile(text, script.WithRegexOptions(config.regex))
	if err != nil {
		return nil, err
	}
	return newEditor(s, config), nil
}

// NewFromFile compiles a script file (plain text, or YAML for .yml/.yaml).
func NewFromFile(path string, opts ...Option) (*Editor, error) {
	config := newConfig(opts)
	s, err := script.LoadFile(path, script.WithRegexOptions(config.regex))
	if err != nil {
		return nil, err
	}
	return newEditor(s, config), nil
}

func newEditor(s *script.Script, config *editorConfig) *Editor {
	e := &Editor{
		script: s,
		engine: engine.New(engine.Options{Quiet: config.quiet, Warn: config.warn}),
		config: config,
	}
	if config.prefilter {
		e.prefilter = prefilter.Apply(s)
	}
	return e
}

// Run applies the script to src, writing surviving lines and print output
// to out in order. Range state starts fresh for every run; runs on the same
// Editor are serialized.
func (e *Editor) Run(ctx context.Context, src source.Source, out io.Writer) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.script.Reset()
	return e.engine.Run(ctx, e.script, src, out, out)
}

// RunString applies the script to input and returns the output.
func (e *Editor) RunString(input string) (string, error) {
	var out strings.Builder
	if _, err := e.Run(context.Background(), source.NewReader(strings.NewReader(input), "<string>"), &out); err != nil {
		return out.String(), err
	}
	return out.String(), nil
}

// RunFiles applies the script to the concatenated lines of paths. Every path
// is checked before anything is read.
//
// Example:
//
//	res, err := editor.RunFiles(ctx, []string{"a.txt", "b.txt"}, os.Stdout)
func (e *Editor) RunFiles(ctx context.Context, paths []string, out io.Writer) (Result, error) {
	src, err := source.OpenFiles(paths)
	if err != nil {
		return Result{}, err
	}
	defer src.Close()
	return e.Run(ctx, src, out)
}

// Script returns the compiled script.
func (e *Editor) Script() *Script {
	return e.script
}

// PrefilterKeywords returns the literals answered by the keyword scan.
func (e *Editor) PrefilterKeywords() []string {
	if e.prefilter == nil {
		return nil
	}
	return e.prefilter.Keywords()
}

// Quiet reports whether automatic printing is disabled.
func (e *Editor) Quiet() bool {
	return e.config.quiet
}

// String renders the compiled script.
func (e *Editor) String() string {
	return fmt.Sprintf("lsed(%s)", e.script)
}
