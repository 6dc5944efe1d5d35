package defaultargs

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"go.jacobcolvin.com/defaultargs/fieldlist"
)

// Field names, without colons.
var (
	paramFields   = []string{"param", "parameter", "arg", "argument"}
	keywordFields = []string{"key", "keyword"}
	typeFields    = []string{"type", "kwtype"}
	otherFields   = []string{
		"raises", "raise", "except", "exception", "var", "ivar", "cvar",
		"vartype", "returns", "return", "rtype", "meta",
	}
)

// argFieldExpr matches the opening of any parameter or type field.
// The parameter name is appended when building a pattern.
var argFieldExpr = `:(?:` + strings.Join(slices.Concat(paramFields, keywordFields, typeFields), "|") + `) [\*\\]*`

func isKeywordField(field string) bool {
	return slices.Contains(keywordFields, field) || field == "kwtype"
}

// fieldTags returns ":field name:" for each field.
func fieldTags(fields []string, name string) fieldlist.Tags {
	tags := make(fieldlist.Tags, 0, len(fields))
	for _, f := range fields {
		tags = append(tags, fmt.Sprintf(":%s %s:", f, name))
	}

	return tags
}

// otherTags matches the non-parameter fields that follow parameters.
func otherTags() fieldlist.Tags {
	tags := make(fieldlist.Tags, 0, len(otherFields))
	for _, f := range otherFields {
		tags = append(tags, ":"+f)
	}

	return tags
}

// argPattern matches any parameter or type field documenting name. Leading
// variadic markers on both sides are ignored.
func argPattern(name string) fieldlist.Pattern {
	name = strings.TrimLeft(name, `\*`)

	return fieldlist.PatternOf(regexp.MustCompile(argFieldExpr + regexp.QuoteMeta(name) + `:`))
}

// fieldName returns "param" for the tag ":param x:".
func fieldName(tag string) string {
	name, _, _ := strings.Cut(strings.TrimPrefix(tag, ":"), " ")

	return name
}

// findNextArg returns the line where a new field for name belongs, and the
// field name of the field it would precede ("" when it precedes a
// non-parameter field or the end of the docstring).
func findNextArg(lines []string, args []string, name string) (int, string) {
	return findArg(lines, args, name, 1)
}

// findCurrArg returns the line of the first parameter or type field of name.
func findCurrArg(lines []string, args []string, name string) (int, string) {
	return findArg(lines, args, name, 0)
}

// findArg looks for the first documented parameter at or after
// args[index(name)+incr]. Failing that, it places the field after the last
// documented earlier parameter, before the next non-parameter field such as
// :returns:, or at the end.
func findArg(lines []string, args []string, name string, incr int) (int, string) {
	idx := slices.Index(args, name)
	if idx < 0 {
		panic(fmt.Errorf("%w: %q is not a parameter of %q", fieldlist.ErrInvariant, name, args))
	}

	split := idx + incr

	for _, next := range args[split:] {
		span := mustFindField(lines, argPattern(next))
		if span.Found {
			return span.Start, fieldName(span.Tag)
		}
	}

	from := 0

	for _, prev := range slices.Backward(args[:split]) {
		span := mustFindField(lines, argPattern(prev))
		if span.Found {
			from = span.End

			break
		}
	}

	span := mustFindField(lines[from:], otherTags())

	return from + span.Start, ""
}

// mustFindField runs [fieldlist.FindField] on targets built by this package,
// which are always valid.
func mustFindField(lines []string, target fieldlist.Target) fieldlist.Span {
	span, err := fieldlist.FindField(lines, target, false)
	if err != nil {
		panic(err)
	}

	return span
}
