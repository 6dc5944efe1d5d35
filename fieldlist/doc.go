// Package fieldlist locates and edits reStructuredText field lists inside
// docstrings.
//
// A field is a line beginning with a marker such as `:param x:` followed by
// continuation lines that start with whitespace:
//
//	:param x: first line of the description
//	          continued here
//	:returns: something
//
// [FindField] finds the span of lines belonging to a field, [RFindInParagraph]
// finds the last occurrence of a substring within a field's text, and
// [RStripMin] trims trailing characters without eating into a field's tag
// prefix. [Lines] is the edit session that callers mutate in place.
//
// All functions operate on byte offsets. Columns reported in [Pos] and
// [Span.Offsets] are byte indices into the corresponding line.
package fieldlist
