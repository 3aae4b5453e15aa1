// Package translation loads localized-text tables from t-files and
// resolves {page,id} display-name references.
package translation

import (
	"html"
	"regexp"
	"strconv"
	"strings"
)

// Ref identifies one localized string as a (page, id) pair.
type Ref struct {
	Page int
	ID   int
}

// Table maps text references to resolved display strings.
type Table map[Ref]string

// textRefRE matches exactly the "{page,id}" micro-grammar, with
// whitespace around the digits tolerated.
var textRefRE = regexp.MustCompile(`^\{\s*(\d+)\s*,\s*(\d+)\s*\}$`)

// ParseRef parses a string of the form "{page,id}" into a Ref.
// Returns false for anything that is not exactly a text reference.
func ParseRef(raw string) (Ref, bool) {
	m := textRefRE.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return Ref{}, false
	}
	page, err := strconv.Atoi(m[1])
	if err != nil {
		return Ref{}, false
	}
	id, err := strconv.Atoi(m[2])
	if err != nil {
		return Ref{}, false
	}
	return Ref{Page: page, ID: id}, true
}

// CleanDisplayName normalizes a literal display string.
//
// Handles the known quirks of the asset files: XML/HTML entities,
// backslash-escaped parentheses, trailing {page,id} fragments, and one
// layer of redundant surrounding parentheses.
//
//	`(Tethys \(Mineral\)){20101,32501}` -> `Tethys (Mineral)`
func CleanDisplayName(text string) string {
	if text == "" {
		return ""
	}

	text = html.UnescapeString(text)
	text = strings.ReplaceAll(text, `\(`, "(")
	text = strings.ReplaceAll(text, `\)`, ")")

	if i := strings.Index(text, "{"); i >= 0 {
		text = text[:i]
	}
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "(") && strings.HasSuffix(text, ")") {
		text = strings.TrimSpace(text[1 : len(text)-1])
	}
	return text
}

// Resolve turns a raw name string into a display name.
//
// Resolution order:
//  1. "{page,id}" reference with a table entry: the table value.
//  2. Non-reference literal: cleaned.
//  3. Anything else: the fallback.
//
// Resolve is total; it never fails, only degrades to the fallback.
func Resolve(raw string, table Table, fallback string) string {
	if ref, ok := ParseRef(raw); ok {
		if v, found := table[ref]; found {
			return v
		}
		return fallback
	}
	if raw != "" && !strings.HasPrefix(strings.TrimSpace(raw), "{") {
		return CleanDisplayName(raw)
	}
	return fallback
}

// IsUnresolvedRef reports whether a value still looks like a raw
// "{page,id}" reference after resolution. Used by the end-of-run
// warning summary.
func IsUnresolvedRef(value string) bool {
	_, ok := ParseRef(value)
	return ok
}
