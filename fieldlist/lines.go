package fieldlist

import (
	"slices"
	"strings"
)

// Lines is an edit session over the lines of one docstring.
//
// Indices obtained from [Lines.Slice], [FindField] or any other lookup are
// only valid until the next mutating call ([Lines.Set], [Lines.Insert],
// [Lines.Delete], [Lines.Append]). A mutation at index i shifts or removes
// every line at or after i, so callers must either re-run their lookups or
// offset previously computed indices themselves.
//
// A Lines is not safe for concurrent use.
type Lines struct {
	lines []string
	edits int
}

// NewLines creates a [Lines] that owns a copy of lines.
func NewLines(lines []string) *Lines {
	return &Lines{lines: slices.Clone(lines)}
}

// SplitLines creates a [Lines] from LF-separated text.
func SplitLines(text string) *Lines {
	return &Lines{lines: strings.Split(text, "\n")}
}

// Len returns the number of lines.
func (l *Lines) Len() int {
	return len(l.lines)
}

// At returns line i.
func (l *Lines) At(i int) string {
	return l.lines[i]
}

// Slice returns a read-only view of the current lines. The view is
// invalidated by the next mutating call.
func (l *Lines) Slice() []string {
	return l.lines[:len(l.lines):len(l.lines)]
}

// Strings returns a copy of the current lines.
func (l *Lines) Strings() []string {
	return slices.Clone(l.lines)
}

// String joins the lines with LF.
func (l *Lines) String() string {
	return strings.Join(l.lines, "\n")
}

// Edits reports how many mutating calls changed the buffer.
func (l *Lines) Edits() int {
	return l.edits
}

// Set replaces line i.
func (l *Lines) Set(i int, line string) {
	if l.lines[i] == line {
		return
	}

	l.lines[i] = line
	l.edits++
}

// Insert inserts lines before index i. An index equal to [Lines.Len]
// appends.
func (l *Lines) Insert(i int, lines ...string) {
	if len(lines) == 0 {
		return
	}

	l.lines = slices.Insert(l.lines, i, lines...)
	l.edits++
}

// Append adds lines at the end.
func (l *Lines) Append(lines ...string) {
	l.Insert(len(l.lines), lines...)
}

// Delete removes the half-open range [start, end).
func (l *Lines) Delete(start, end int) {
	if start >= end {
		return
	}

	l.lines = slices.Delete(l.lines, start, end)
	l.edits++
}
