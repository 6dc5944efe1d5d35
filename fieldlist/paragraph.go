package fieldlist

import "strings"

// Pos is a position within a block of lines. Line is an index into the block
// and Col is a byte offset into that line.
type Pos struct {
	Line int
	Col  int
}

// Hit is the result of [RFindInParagraph].
//
// Start is inclusive and End is exclusive; both are on the same line.
type Hit struct {
	Start Pos
	End   Pos
	Found bool
	// IsEnd reports that nothing but empty content follows the match: the
	// rest of its line and every later line are empty. A closing delimiter
	// only counts when IsEnd is set.
	IsEnd bool
}

// FindOptions configures [RFindInParagraph].
type FindOptions struct {
	// Strip trims whitespace from the searched substring and treats
	// whitespace-only content as empty when computing [Hit.IsEnd].
	Strip bool
	// Multiline requests matches spanning line breaks. Not implemented.
	Multiline bool
}

// RFindInParagraph finds the last occurrence of substr in lines, scanning
// from the last line backwards. Matches never span lines.
//
// Requesting [FindOptions.Multiline] returns [ErrMultilineUnsupported].
func RFindInParagraph(lines []string, substr string, opts FindOptions) (Hit, error) {
	if opts.Multiline {
		return Hit{}, ErrMultilineUnsupported
	}

	if opts.Strip {
		substr = strings.TrimSpace(substr)
	}

	trailingEmpty := true

	for i := len(lines) - 1; i >= 0; i-- {
		line := lines[i]

		idx := strings.LastIndex(line, substr)
		if idx >= 0 {
			end := idx + len(substr)

			return Hit{
				Found: true,
				IsEnd: trailingEmpty && isEmpty(line[end:], opts.Strip),
				Start: Pos{Line: i, Col: idx},
				End:   Pos{Line: i, Col: end},
			}, nil
		}

		if !isEmpty(line, opts.Strip) {
			trailingEmpty = false
		}
	}

	return Hit{}, nil
}

// Between returns the text of lines between two positions, joining lines
// with a single space.
func Between(lines []string, from, to Pos) string {
	if from.Line == to.Line {
		return lines[from.Line][from.Col:to.Col]
	}

	parts := make([]string, 0, to.Line-from.Line+1)
	parts = append(parts, lines[from.Line][from.Col:])
	parts = append(parts, lines[from.Line+1:to.Line]...)
	parts = append(parts, lines[to.Line][:to.Col])

	return strings.Join(parts, " ")
}

// Before returns a copy of lines truncated just before pos.
func Before(lines []string, pos Pos) []string {
	out := make([]string, pos.Line+1)
	copy(out, lines[:pos.Line])
	out[pos.Line] = lines[pos.Line][:pos.Col]

	return out
}

func isEmpty(s string, strip bool) bool {
	if strip {
		return strings.TrimSpace(s) == ""
	}

	return s == ""
}
