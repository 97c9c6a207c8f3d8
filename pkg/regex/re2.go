package regex

import (
	"fmt"
	"regexp"
)

// re2Regex wraps the standard library engine.
type re2Regex struct {
	re      *regexp.Regexp
	literal string
	isLit   bool
}

func compileRE2(pattern string) (*re2Regex, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to compile pattern %q: %w", pattern, err)
	}
	lit, ok := literalOf(pattern)
	return &re2Regex{re: re, literal: lit, isLit: ok}, nil
}

func (r *re2Regex) String() string {
	return r.re.String()
}

func (r *re2Regex) MatchString(s string) bool {
	return r.re.MatchString(s)
}

func (r *re2Regex) Replace(s, template string, global bool) (string, error) {
	if global {
		return r.re.ReplaceAllString(s, template), nil
	}

	m := r.re.FindStringSubmatchIndex(s)
	if m == nil {
		return s, nil
	}

	dst := make([]byte, 0, len(s)+len(template))
	dst = append(dst, s[:m[0]]...)
	dst = r.re.ExpandString(dst, template, s, m)
	dst = append(dst, s[m[1]:]...)
	return string(dst), nil
}

func (r *re2Regex) Literal() (string, bool) {
	return r.literal, r.isLit
}
