// Package stringtest provides helpers for building multi-line test fixtures,
// such as docstrings, from indented Go raw strings.
package stringtest

import (
	"strings"
	"unicode"
)

// Input dedents a raw string literal so fixtures can be indented along with
// the surrounding test code.
//
// One leading and one trailing newline are removed, then the whitespace
// prefix shared by all non-blank lines is cut. Whitespace-only lines become
// empty.
//
// Example:
//
//	doc := stringtest.Input(`
//		:param x: foo
//		:type x: int
//	`) // -> ":param x: foo\n:type x: int"
func Input(s string) string {
	s = strings.TrimPrefix(s, "\n")
	s = strings.TrimSuffix(s, "\n")

	lines := strings.Split(s, "\n")
	prefix := commonIndent(lines)

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""

			continue
		}

		lines[i] = line[len(prefix):]
	}

	return strings.Join(lines, "\n")
}

// Lines returns [Input] split into lines.
func Lines(s string) []string {
	return strings.Split(Input(s), "\n")
}

// JoinLF joins multiple strings with LF line endings.
// Use this to construct expected test output with explicit line endings.
//
// Example:
//
//	want := stringtest.JoinLF(
//		"line1",
//		"line2",
//		"line3",
//	) // -> "line1\nline2\nline3"
func JoinLF(ss ...string) string {
	return strings.Join(ss, "\n")
}

func commonIndent(lines []string) string {
	var (
		prefix string
		seen   bool
	)

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		indent := line[:len(line)-len(strings.TrimLeftFunc(line, unicode.IsSpace))]
		if !seen {
			prefix, seen = indent, true

			continue
		}

		n := 0
		for n < len(prefix) && n < len(indent) && prefix[n] == indent[n] {
			n++
		}

		prefix = prefix[:n]
	}

	return prefix
}
