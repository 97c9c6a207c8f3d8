// Package regex hides the regular expression engines behind the small
// surface the editing commands need: match anywhere, replace first or all,
// and literal detection for the prefilter.
package regex

import (
	"fmt"
	"io"
	"regexp/syntax"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Engine names a regular expression implementation.
type Engine string

const (
	// EngineRE2 uses the standard library's linear-time RE2 engine.
	EngineRE2 Engine = "re2"

	// EngineRegexp2 uses github.com/dlclark/regexp2, which adds lookaround
	// and backreferences at the cost of backtracking.
	EngineRegexp2 Engine = "regexp2"
)

// Engines lists the accepted engine names.
var Engines = []Engine{EngineRE2, EngineRegexp2}

// Regex is a compiled pattern.
type Regex interface {
	// String returns the source pattern.
	String() string

	// MatchString reports whether the pattern matches anywhere in s.
	MatchString(s string) bool

	// Replace substitutes template for the first match in s, or for every
	// non-overlapping match when global is set. Template expansion ($1,
	// ${name}, $$) follows the engine's own rules.
	Replace(s, template string, global bool) (string, error)

	// Literal returns the text the pattern matches when it is a plain
	// case-sensitive literal.
	Literal() (string, bool)
}

// Options configures pattern compilation.
type Options struct {
	Engine Engine `validate:"oneof=re2 regexp2"`

	// MatchTimeout bounds a single regexp2 match (0 = no timeout).
	// Ignored by the RE2 engine, which cannot backtrack.
	MatchTimeout time.Duration `validate:"gte=0"`

	// Warn receives "[warn]" lines when a regexp2 location match fails or
	// times out. Nil discards them.
	Warn io.Writer `validate:"-"`
}

// DefaultOptions returns the default compile options.
func DefaultOptions() Options {
	return Options{
		Engine:       EngineRE2,
		MatchTimeout: 5 * time.Second,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that the options name a known engine and a sane timeout.
func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("invalid regex options: %w", err)
	}
	return nil
}

// Compile compiles pattern with the engine selected in opts.
func Compile(pattern string, opts Options) (Regex, error) {
	switch opts.Engine {
	case EngineRE2, "":
		return compileRE2(pattern)
	case EngineRegexp2:
		return compileRegexp2(pattern, opts.MatchTimeout, opts.Warn)
	default:
		return nil, fmt.Errorf("unknown regex engine %q", opts.Engine)
	}
}

// MustCompile is like Compile but panics on error. Intended for tests and
// package-level patterns.
func MustCompile(pattern string, opts Options) Regex {
	re, err := Compile(pattern, opts)
	if err != nil {
		panic(err)
	}
	return re
}

// literalOf reports the literal text an RE2-syntax pattern is equivalent to.
func literalOf(pattern string) (string, bool) {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return "", false
	}
	re = re.Simplify()
	if re.Op != syntax.OpLiteral || re.Flags&syntax.FoldCase != 0 || len(re.Rune) == 0 {
		return "", false
	}
	lit := string(re.Rune)
	// Invalid UTF-8 in the input matches U+FFFD in a regex but not as bytes.
	for _, r := range re.Rune {
		if r == utf8.RuneError {
			return "", false
		}
	}
	return lit, true
}
