// Package prefilter replaces literal regex locations with keyword lookups
// answered by a single Aho-Corasick scan per line.
package prefilter

import (
	"github.com/cloudflare/ahocorasick"
	"github.com/praetorian-inc/lsed/pkg/regex"
	"github.com/praetorian-inc/lsed/pkg/script"
)

// Prefilter uses Aho-Corasick for efficient keyword matching.
//
// Hits are cached for the last text scanned. Transformers may rewrite a
// line between two lookups, so a lookup against different text rescans.
type Prefilter struct {
	matcher  *ahocorasick.Matcher
	keywords []string // keyword at each index

	scanned bool
	text    string
	hits    []bool
}

// New creates a prefilter for keywords. Duplicates are the caller's concern.
func New(keywords []string) *Prefilter {
	pf := &Prefilter{
		keywords: keywords,
		hits:     make([]bool, len(keywords)),
	}
	if len(keywords) > 0 {
		pf.matcher = ahocorasick.NewStringMatcher(keywords)
	}
	return pf
}

// Contains reports whether keyword i occurs in text.
func (pf *Prefilter) Contains(i int, text string) bool {
	if !pf.scanned || text != pf.text {
		pf.scan(text)
	}
	return pf.hits[i]
}

// Keywords returns the keywords in index order.
func (pf *Prefilter) Keywords() []string {
	return pf.keywords
}

func (pf *Prefilter) scan(text string) {
	clear(pf.hits)
	if pf.matcher != nil {
		for _, hit := range pf.matcher.Match([]byte(text)) {
			pf.hits[hit] = true
		}
	}
	pf.text = text
	pf.scanned = true
}

// Apply rewrites every location of s whose pattern is a plain literal to use
// a shared prefilter, including range endpoints. Substitute patterns are left
// alone since they need match positions. It returns the prefilter, or nil when
// no location qualified.
func Apply(s *script.Script) *Prefilter {
	index := make(map[string]int)
	var keywords []string
	var targets []*script.Location

	for _, cmd := range s.Commands {
		cmd.Location.Locations(func(loc *script.Location) {
			if loc.Kind != script.LocationRegex {
				return
			}
			lit, ok := loc.Pattern.Literal()
			if !ok {
				return
			}
			if _, seen := index[lit]; !seen {
				index[lit] = len(keywords)
				keywords = append(keywords, lit)
			}
			targets = append(targets, loc)
		})
	}

	if len(targets) == 0 {
		return nil
	}

	pf := New(keywords)
	for _, loc := range targets {
		lit, _ := loc.Pattern.Literal()
		loc.Pattern = &keyword{pf: pf, index: index[lit], Regex: loc.Pattern}
	}
	return pf
}

// keyword answers MatchString from the prefilter and defers everything else
// to the regex it replaced.
type keyword struct {
	regex.Regex
	pf    *Prefilter
	index int
}

func (k *keyword) MatchString(s string) bool {
	return k.pf.Contains(k.index, s)
}
