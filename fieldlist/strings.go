package fieldlist

import (
	"strings"
	"unicode"
)

// RStripMin trims trailing characters in cutset from s, but never returns
// fewer than the first minLen bytes of s. An empty cutset trims Unicode
// whitespace.
//
// It is used to clear the trailing content of a field line while keeping the
// tag-width prefix that continuation parsing depends on.
func RStripMin(s string, minLen int, cutset string) string {
	var trimmed string
	if cutset == "" {
		trimmed = strings.TrimRightFunc(s, unicode.IsSpace)
	} else {
		trimmed = strings.TrimRight(s, cutset)
	}

	if len(trimmed) >= minLen {
		return trimmed
	}

	return s[:min(minLen, len(s))]
}
