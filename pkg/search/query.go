package search

import "strings"

// QueryMatcher is a case-insensitive substring match against a product name.
type QueryMatcher struct {
	needle string
}

func NewQueryMatcher(query string) QueryMatcher {
	return QueryMatcher{needle: strings.ToLower(query)}
}

// IsEmpty reports whether the matcher accepts every name.
func (m QueryMatcher) IsEmpty() bool {
	return m.needle == ""
}

func (m QueryMatcher) Matches(name string) bool {
	if m.needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), m.needle)
}
