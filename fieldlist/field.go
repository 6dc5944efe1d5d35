package fieldlist

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Sentinel errors returned by the package.
var (
	ErrInvalidTarget        = errors.New("invalid field target")
	ErrMultilineUnsupported = errors.New("multiline matching is not implemented")
	// ErrInvariant is wrapped by panics raised on span bookkeeping bugs.
	ErrInvariant = errors.New("field list invariant violated")
)

// Target identifies the opening line of a field.
// Implementations are [Tag], [Tags] and [Pattern].
type Target interface {
	// prefix returns the part of line that opened the field.
	prefix(line string) (string, bool)
	validate() error
}

// Tag matches lines starting with a literal prefix, e.g. ":param x:".
type Tag string

func (t Tag) prefix(line string) (string, bool) {
	if strings.HasPrefix(line, string(t)) {
		return string(t), true
	}

	return "", false
}

func (t Tag) validate() error {
	if t == "" {
		return fmt.Errorf("%w: empty tag", ErrInvalidTarget)
	}

	return nil
}

// Tags matches lines starting with any of several literal prefixes. For each
// line the alternatives are tried in order and the first one wins.
type Tags []string

func (t Tags) prefix(line string) (string, bool) {
	for _, tag := range t {
		if strings.HasPrefix(line, tag) {
			return tag, true
		}
	}

	return "", false
}

func (t Tags) validate() error {
	if len(t) == 0 {
		return fmt.Errorf("%w: no tags", ErrInvalidTarget)
	}

	for _, tag := range t {
		if tag == "" {
			return fmt.Errorf("%w: empty tag", ErrInvalidTarget)
		}
	}

	return nil
}

// Pattern matches lines whose beginning matches a regular expression. A match
// elsewhere in the line does not count.
//
// Create instances with [NewPattern] or [PatternOf].
type Pattern struct {
	re *regexp.Regexp
}

// NewPattern compiles expr into a [Pattern].
func NewPattern(expr string) (Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Pattern{}, fmt.Errorf("%w: %w", ErrInvalidTarget, err)
	}

	return Pattern{re: re}, nil
}

// PatternOf wraps an already compiled expression.
func PatternOf(re *regexp.Regexp) Pattern {
	return Pattern{re: re}
}

func (p Pattern) prefix(line string) (string, bool) {
	loc := p.re.FindStringIndex(line)
	if loc == nil || loc[0] != 0 {
		return "", false
	}

	return line[:loc[1]], true
}

func (p Pattern) validate() error {
	if p.re == nil {
		return fmt.Errorf("%w: nil pattern", ErrInvalidTarget)
	}

	return nil
}

// Span is the half-open range of lines [Start, End) belonging to a field.
//
// When Found is false, Start and End are both equal to the number of scanned
// lines and Tag, Text and Offsets are empty.
type Span struct {
	// Tag is the matched prefix of the opening line, e.g. ":param x:".
	Tag string
	// Text holds the field content: the opening line without its tag and
	// separator, followed by the continuation lines without their
	// tag-width indentation.
	Text []string
	// Offsets[i] is the number of bytes removed from line Start+i to produce
	// Text[i].
	Offsets []int
	Start   int
	End     int
	Found   bool
}

// TagWidth is the width of the tag plus its separator. Continuation lines of
// a well-formed field are indented by this many columns.
func (s Span) TagWidth() int {
	return len(s.Tag) + 1
}

// Column maps a byte column within Text[i] to a byte column within the
// corresponding line.
func (s Span) Column(i, col int) int {
	return s.Offsets[i] + col
}

func (s Span) check() {
	if s.Found == (s.Start == s.End) {
		panic(fmt.Errorf("%w: found=%t start=%d end=%d", ErrInvariant, s.Found, s.Start, s.End))
	}
}

// FindField returns the span of the first field in lines opened by target.
//
// The field continues until a terminator line: a non-empty line that does
// not start with whitespace, or an empty line when includeBlank is false.
// Whitespace-only lines always continue the field. A field that is not found
// is not an error; the returned [Span] has Found set to false.
func FindField(lines []string, target Target, includeBlank bool) (Span, error) {
	if target == nil {
		return Span{}, fmt.Errorf("%w: nil target", ErrInvalidTarget)
	}

	err := target.validate()
	if err != nil {
		return Span{}, err
	}

	span := Span{Start: len(lines), End: len(lines)}

	for i, line := range lines {
		if !span.Found {
			if tag, ok := target.prefix(line); ok {
				span.Found = true
				span.Start = i
				span.Tag = tag
			}

			continue
		}

		if terminates(line, includeBlank) {
			span.End = i

			break
		}
	}

	if span.Found {
		span.Text, span.Offsets = fieldText(lines[span.Start:span.End], span.Tag)
	}

	span.check()

	return span, nil
}

func terminates(line string, includeBlank bool) bool {
	if line == "" {
		return !includeBlank
	}

	r, _ := utf8.DecodeRuneInString(line)

	return !unicode.IsSpace(r)
}

// fieldText strips the tag from the first line and up to tag-width
// indentation from the continuation lines.
func fieldText(lines []string, tag string) ([]string, []int) {
	width := len(tag) + 1
	text := make([]string, len(lines))
	offsets := make([]int, len(lines))

	for i, line := range lines {
		cut := 0

		if i == 0 {
			cut = len(tag)
			if cut < len(line) && isIndent(line[cut]) {
				cut++
			}
		} else {
			for cut < width && cut < len(line) && isIndent(line[cut]) {
				cut++
			}
		}

		text[i] = line[cut:]
		offsets[i] = cut
	}

	return text, offsets
}

func isIndent(b byte) bool {
	switch b {
	case ' ', '\t', '\v', '\f', '\r':
		return true
	}

	return false
}
