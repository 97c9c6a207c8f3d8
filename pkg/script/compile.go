package script

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/praetorian-inc/lsed/pkg/regex"
	"github.com/praetorian-inc/lsed/pkg/types"
)

// CompileOption configures Compile.
type CompileOption func(*compileConfig)

type compileConfig struct {
	regex regex.Options
}

// WithEngine selects the regex engine for every pattern in the script.
func WithEngine(engine regex.Engine) CompileOption {
	return func(c *compileConfig) {
		c.regex.Engine = engine
	}
}

// WithMatchTimeout bounds a single regexp2 match. Default is 5 seconds.
func WithMatchTimeout(d time.Duration) CompileOption {
	return func(c *compileConfig) {
		c.regex.MatchTimeout = d
	}
}

// WithRegexOptions replaces all regex options at once.
func WithRegexOptions(opts regex.Options) CompileOption {
	return func(c *compileConfig) {
		c.regex = opts
	}
}

// Compile parses script text into an ordered command list.
//
// Grammar, commands separated by ';' or whitespace:
//
//	command  := location? cmd
//	location := addr (',' addr)?
//	addr     := '$' | digits | '/' regex '/'
//	cmd      := 'q' | 'p' | 'd' | 's' '/' find '/' replace '/' 'g'?
//
// A '#' outside a command starts a comment running to the end of the line.
// Failures are reported as *ParseError.
func Compile(text string, opts ...CompileOption) (*Script, error) {
	cfg := compileConfig{regex: regex.DefaultOptions()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.regex.Validate(); err != nil {
		return nil, err
	}

	p := &parser{src: text, cfg: cfg}
	return p.parse()
}

// MustCompile is like Compile but panics on error.
func MustCompile(text string, opts ...CompileOption) *Script {
	s, err := Compile(text, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

type parser struct {
	src string
	pos int
	cfg compileConfig
}

func (p *parser) parse() (*Script, error) {
	s := &Script{}

	p.skipSeparators()
	for !p.eof() {
		start := p.pos
		cmd, err := p.command()
		if err != nil {
			return nil, err
		}
		cmd.Source = p.src[start:p.pos]
		cmd.Position = p.point(start)
		s.Commands = append(s.Commands, cmd)

		p.skipSeparators()
	}

	return s, nil
}

func (p *parser) command() (*Command, error) {
	loc, err := p.location()
	if err != nil {
		return nil, err
	}

	p.skipBlanks()
	if p.eof() {
		return nil, p.errorf(p.pos, "missing command")
	}

	at := p.pos
	r, size := utf8.DecodeRuneInString(p.src[p.pos:])
	p.pos += size

	var t Transformer
	switch r {
	case 'q':
		t = Quit()
	case 'p':
		t = Print()
	case 'd':
		t = Delete()
	case 's':
		t, err = p.substitute(at)
		if err != nil {
			return nil, err
		}
	default:
		return nil, p.errorf(at, "unknown command %q", r)
	}

	return NewCommand(loc, t), nil
}

func (p *parser) location() (Location, error) {
	start, ok, err := p.address()
	if err != nil {
		return Location{}, err
	}
	if !ok {
		return Global(), nil
	}

	if !p.consume(',') {
		return start, nil
	}

	end, ok, err := p.address()
	if err != nil {
		return Location{}, err
	}
	if !ok {
		return Location{}, p.errorf(p.pos, "missing range end after ','")
	}

	return NewRange(start, end), nil
}

// address parses a single '$', line number or /regex/. ok is false when the
// input does not start with one.
func (p *parser) address() (Location, bool, error) {
	if p.eof() {
		return Location{}, false, nil
	}

	start := p.pos
	switch c := p.src[p.pos]; {
	case c == '$':
		p.pos++
		return LastLine(), true, nil

	case isDigit(c):
		for !p.eof() && isDigit(p.src[p.pos]) {
			p.pos++
		}
		digits := p.src[start:p.pos]
		n, err := strconv.Atoi(digits)
		if err != nil {
			return Location{}, false, p.wrap(start, err, "invalid line number %s", digits)
		}
		if n == 0 {
			return Location{}, false, p.errorf(start, "invalid line number 0: lines are numbered from 1")
		}
		return LineNumber(n), true, nil

	case c == '/':
		p.pos++
		pattern, err := p.delimited("regex location", start)
		if err != nil {
			return Location{}, false, err
		}
		re, err := p.compileRegex(pattern, start+1)
		if err != nil {
			return Location{}, false, err
		}
		return Matching(re), true, nil
	}

	return Location{}, false, nil
}

// substitute parses the /find/replace/g group following an 's' at offset at.
func (p *parser) substitute(at int) (Transformer, error) {
	if !p.consume('/') {
		return Transformer{}, p.errorf(p.pos, "expected '/' after 's'")
	}

	findAt := p.pos
	find, err := p.delimited("substitute pattern", at)
	if err != nil {
		return Transformer{}, err
	}
	replace, err := p.delimited("substitute replacement", at)
	if err != nil {
		return Transformer{}, err
	}
	global := p.consume('g')

	re, err := p.compileRegex(find, findAt)
	if err != nil {
		return Transformer{}, err
	}

	return Substitute(re, replace, global), nil
}

// delimited reads up to the next unescaped '/', which it consumes. "\/"
// yields a literal '/'; other escapes are kept for the regex engine.
func (p *parser) delimited(what string, start int) (string, error) {
	var b strings.Builder
	for !p.eof() {
		c := p.src[p.pos]
		switch {
		case c == '/':
			p.pos++
			return b.String(), nil
		case c == '\\' && p.pos+1 < len(p.src):
			if p.src[p.pos+1] == '/' {
				b.WriteByte('/')
			} else {
				b.WriteString(p.src[p.pos : p.pos+2])
			}
			p.pos += 2
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	return "", p.errorf(start, "unterminated %s", what)
}

func (p *parser) compileRegex(pattern string, at int) (regex.Regex, error) {
	re, err := regex.Compile(pattern, p.cfg.regex)
	if err != nil {
		return nil, p.wrap(at, err, "invalid regex")
	}
	return re, nil
}

func (p *parser) skipSeparators() {
	for !p.eof() {
		switch c := p.src[p.pos]; {
		case c == ';' || isSpace(c):
			p.pos++
		case c == '#':
			for !p.eof() && p.src[p.pos] != '\n' {
				p.pos++
			}
		default:
			return
		}
	}
}

func (p *parser) skipBlanks() {
	for !p.eof() && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *parser) consume(c byte) bool {
	if !p.eof() && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) point(offset int) types.SourcePoint {
	return types.PointAt(p.src, offset)
}

func (p *parser) errorf(offset int, format string, args ...any) *ParseError {
	return &ParseError{
		Offset:   offset,
		Position: p.point(offset),
		Msg:      fmt.Sprintf(format, args...),
	}
}

func (p *parser) wrap(offset int, err error, format string, args ...any) *ParseError {
	pe := p.errorf(offset, format, args...)
	pe.Err = err
	return pe
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}
