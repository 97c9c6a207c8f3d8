package regex

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// regexp2Regex wraps github.com/dlclark/regexp2 for Perl/.NET style patterns.
type regexp2Regex struct {
	re      *regexp2.Regexp
	pattern string
	warn    io.Writer
}

func compileRegexp2(pattern string, timeout time.Duration, warn io.Writer) (*regexp2Regex, error) {
	// Try RE2 mode first (safer, no backtracking)
	re, err := regexp2.Compile(pattern, regexp2.RE2)
	if err != nil {
		// Fallback to default Perl-compatible mode for lookaround and friends
		re, err = regexp2.Compile(pattern, regexp2.None)
		if err != nil {
			return nil, fmt.Errorf("failed to compile pattern %q: %w", pattern, err)
		}
	}
	if timeout > 0 {
		re.MatchTimeout = timeout
	}
	return &regexp2Regex{re: re, pattern: pattern, warn: warn}, nil
}

func (r *regexp2Regex) String() string {
	return r.pattern
}

// MatchString treats an engine error (match timeout) as no match.
func (r *regexp2Regex) MatchString(s string) bool {
	ok, err := r.re.MatchString(s)
	if err != nil {
		if r.warn == nil {
			return false
		}
		if strings.Contains(err.Error(), "match timeout") {
			fmt.Fprintf(r.warn, "[warn] pattern %q regex timeout (treating line as not matching)\n", r.pattern)
		} else {
			fmt.Fprintf(r.warn, "[warn] pattern %q regex error (treating line as not matching): %v\n", r.pattern, err)
		}
		return false
	}
	return ok
}

func (r *regexp2Regex) Replace(s, template string, global bool) (string, error) {
	count := 1
	if global {
		count = -1
	}
	out, err := r.re.Replace(s, template, -1, count)
	if err != nil {
		return s, fmt.Errorf("substituting pattern %q: %w", r.pattern, err)
	}
	return out, nil
}

// Literal is never reported for regexp2 patterns; their syntax is not RE2's.
func (r *regexp2Regex) Literal() (string, bool) {
	return "", false
}
