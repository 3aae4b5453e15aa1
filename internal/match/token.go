// Package match reconciles ship archetypes with hull macros. The two
// record sets share no foreign key, so the join is lexical: identifiers
// are tokenized, normalized onto a shared vocabulary, and compared
// through a fixed gate pipeline plus an overlap score.
package match

import (
	"sort"
	"strings"
)

// Set is a token set keyed by the normalized token text.
type Set map[string]struct{}

// NewSet builds a Set from the given tokens.
func NewSet(tokens ...string) Set {
	s := make(Set, len(tokens))
	for _, t := range tokens {
		s[t] = struct{}{}
	}
	return s
}

// Has reports membership.
func (s Set) Has(token string) bool {
	_, ok := s[token]
	return ok
}

// Add inserts a token. Adding an existing token is a no-op.
func (s Set) Add(token string) {
	s[token] = struct{}{}
}

// Clone returns an independent copy.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for t := range s {
		out[t] = struct{}{}
	}
	return out
}

// Sorted returns the tokens in lexical order, for diagnostics and
// deterministic output.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// stopwords are structural noise carried by every identifier.
var stopwords = NewSet("ship", "macro")

// Tokenize splits an identifier into its normalized token set:
// underscore-delimited segments, lowercased, with empty segments,
// pure-digit segments, and stopwords removed. Pure function; identical
// input always yields an identical set.
func Tokenize(identifier string) Set {
	out := make(Set)
	for _, seg := range strings.Split(strings.ToLower(identifier), "_") {
		if seg == "" || isDigits(seg) || stopwords.Has(seg) {
			continue
		}
		out.Add(seg)
	}
	return out
}

// RawSegments splits an identifier into its lowercased underscore
// segments without any filtering. Used by the buildability filter,
// which needs to see numeric-only segments Tokenize strips.
func RawSegments(identifier string) []string {
	var out []string
	for _, seg := range strings.Split(strings.ToLower(identifier), "_") {
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
