package classify

import (
	"regexp"
)

// Matcher matches canonicalized keywords as whole words against
// canonical text. Patterns are compiled once at construction, so a
// Matcher is read-only afterwards and safe for concurrent use.
type Matcher struct {
	patterns map[string]*regexp.Regexp
}

// NewMatcher compiles boundary-anchored patterns for every keyword.
// Keywords are canonicalized with the same rules as the matched text, so
// matching is case- and accent-insensitive by construction. Multi-word
// keywords become a single anchored phrase, not independent word hits.
// Keywords that canonicalize to nothing are ignored.
func NewMatcher(keywordLists ...[]string) *Matcher {
	m := &Matcher{patterns: make(map[string]*regexp.Regexp)}
	for _, list := range keywordLists {
		for _, kw := range list {
			if _, ok := m.patterns[kw]; ok {
				continue
			}
			canon := Canonical(kw)
			if canon == "" {
				continue
			}
			m.patterns[kw] = regexp.MustCompile(`\b` + regexp.QuoteMeta(canon) + `\b`)
		}
	}
	return m
}

// Count returns the number of non-overlapping whole-word occurrences of
// keyword in the canonical text. A keyword like "pan" does not match
// inside "panorama".
func (m *Matcher) Count(canonical, keyword string) int {
	re, ok := m.patterns[keyword]
	if !ok {
		return 0
	}
	return len(re.FindAllStringIndex(canonical, -1))
}

// Present reports whether keyword occurs at least once, short-circuiting
// without counting.
func (m *Matcher) Present(canonical, keyword string) bool {
	re, ok := m.patterns[keyword]
	if !ok {
		return false
	}
	return re.MatchString(canonical)
}
