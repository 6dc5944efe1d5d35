package defaultargs

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"unicode"

	"go.jacobcolvin.com/defaultargs/fieldlist"
)

// Sentinel errors returned by the annotator.
var (
	ErrInvalidOption    = errors.New("invalid option")
	ErrInvalidSignature = errors.New("invalid signature")
)

// DefaultSubstitution is the marker placed before a rendered default value.
const DefaultSubstitution = "|default|"

// Flag is a pair of delimiters that surround an author-written default value
// at the end of a parameter description, e.g. "(Default: " and ")".
type Flag struct {
	Head string
	Tail string
}

// DefaultFlags returns the delimiters recognized when none are configured.
func DefaultFlags() []Flag {
	return []Flag{{Head: "(Default: ", Tail: ")"}}
}

// Annotator rewrites docstring field lists so that every parameter with a
// default value documents it.
//
// An Annotator is immutable and safe for concurrent use, as long as each call
// works on its own [fieldlist.Lines].
//
// Create instances with [New].
type Annotator struct {
	logger          *slog.Logger
	substitution    string
	flags           []Flag
	alwaysDocument  bool
	multiline       bool
	strip           bool
	afterDirectives bool
}

// Option configures an [Annotator].
type Option func(*Annotator)

// WithAlwaysDocument synthesizes missing parameter and type fields for every
// parameter with a default.
func WithAlwaysDocument(always bool) Option {
	return func(a *Annotator) {
		a.alwaysDocument = always
	}
}

// WithFlags sets the delimiter pairs recognized as author-written defaults.
// Only the first pair that matches a field is applied.
func WithFlags(flags ...Flag) Option {
	return func(a *Annotator) {
		a.flags = slices.Clone(flags)
	}
}

// WithMultilineMatching requests delimiter matches across line breaks. This
// is not implemented and makes [New] fail.
func WithMultilineMatching(multiline bool) Option {
	return func(a *Annotator) {
		a.multiline = multiline
	}
}

// WithStrip controls whether trailing whitespace is trimmed from field text
// when extracting defaults and rewriting lines. Defaults to true.
func WithStrip(strip bool) Option {
	return func(a *Annotator) {
		a.strip = strip
	}
}

// WithAfterDirectives lets a parameter field continue across blank lines,
// so that directive blocks following a description belong to it.
func WithAfterDirectives(after bool) Option {
	return func(a *Annotator) {
		a.afterDirectives = after
	}
}

// WithSubstitution sets the marker placed before rendered defaults. The
// marker also identifies fields that were already annotated.
func WithSubstitution(s string) Option {
	return func(a *Annotator) {
		a.substitution = s
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Annotator) {
		a.logger = logger
	}
}

// New creates an [Annotator] with the given options.
func New(opts ...Option) (*Annotator, error) {
	a := &Annotator{
		logger:       slog.Default(),
		substitution: DefaultSubstitution,
		flags:        DefaultFlags(),
		strip:        true,
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.multiline {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOption, fieldlist.ErrMultilineUnsupported)
	}

	if strings.TrimSpace(a.substitution) == "" {
		return nil, fmt.Errorf("%w: empty substitution", ErrInvalidOption)
	}

	for _, f := range a.flags {
		if strings.TrimSpace(f.Head) == "" || strings.TrimSpace(f.Tail) == "" {
			return nil, fmt.Errorf("%w: flag %q...%q has an empty delimiter", ErrInvalidOption, f.Head, f.Tail)
		}
	}

	if a.logger == nil {
		a.logger = slog.Default()
	}

	return a, nil
}

// Process annotates a copy of lines using the signature of c.
func (a *Annotator) Process(c Callable, lines []string) ([]string, error) {
	buf := fieldlist.NewLines(lines)

	err := a.AnnotateCallable(c, buf)
	if err != nil {
		return nil, err
	}

	return buf.Strings(), nil
}

// AnnotateCallable rewrites lines in place using the signature of c. Use
// [fieldlist.Lines.Edits] to tell whether anything changed.
func (a *Annotator) AnnotateCallable(c Callable, lines *fieldlist.Lines) error {
	sig, err := c.Signature()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}

	return a.Annotate(sig, lines)
}

// Annotate rewrites lines in place for every parameter of sig that declares
// a default, in signature order.
//
// Running Annotate again on its own output changes nothing.
func (a *Annotator) Annotate(sig Signature, lines *fieldlist.Lines) error {
	err := sig.Validate()
	if err != nil {
		return err
	}

	args := sig.Args()

	for _, arg := range sig.DefaultArgs() {
		err := a.annotateArg(lines, args, arg)
		if err != nil {
			return fmt.Errorf("parameter %s: %w", arg.Name, err)
		}
	}

	return nil
}

func (a *Annotator) annotateArg(lines *fieldlist.Lines, args []string, arg DefaultArg) error {
	logger := a.logger.With(slog.String("param", arg.Name))
	display := CodeLiteral(arg.Default)

	fields := paramFields
	if arg.KeywordOnly {
		fields = slices.Concat(paramFields, keywordFields)
	}

	span, err := fieldlist.FindField(lines.Slice(), fieldTags(fields, arg.Name), a.afterDirectives)
	if err != nil {
		return err
	}

	switch {
	case span.Found:
		if strings.Contains(strings.Join(span.Text, " "), a.substitution) {
			logger.Debug("default already documented")

			break
		}

		err := a.appendDefault(lines, span, display, logger)
		if err != nil {
			return err
		}

	case a.alwaysDocument:
		at, next := findNextArg(lines.Slice(), args, arg.Name)

		field := "param"
		if arg.KeywordOnly && (next == "" || isKeywordField(next)) {
			field = "keyword"
		}

		lines.Insert(at, fmt.Sprintf(":%s %s: %s %s", field, arg.Name, a.substitution, display))
		logger.Debug("synthesized parameter field", slog.String("field", field), slog.Int("line", at))
	}

	return a.markOptional(lines, args, arg, logger)
}

// appendDefault adds the default marker to an existing parameter field. An
// author-written default found between configured delimiters replaces the
// introspected one.
func (a *Annotator) appendDefault(lines *fieldlist.Lines, span fieldlist.Span, display string, logger *slog.Logger) error {
	span, written, err := a.extractDefault(lines, span)
	if err != nil {
		return err
	}

	if written != nil {
		logger.Debug("using documented default", slog.String("default", *written))
		display = *written
	}

	last, paragraphs := lastContentLine(lines, span)
	if written != nil {
		// The delimited default ended the field, so its line takes the marker
		// even when nothing but indentation is left on it.
		last = span.End - 1
		if strings.TrimSpace(lines.At(last)) == "" {
			paragraphs = 1
		}
	}

	marker := a.substitution + " " + display

	if a.strip {
		lines.Set(last, fieldlist.RStripMin(lines.At(last), span.TagWidth(), ""))
	}

	if paragraphs > 1 {
		// Keep the marker out of any directive block that ends the field.
		lines.Insert(last+1, "", bodyIndent(lines, span)+marker)
		logger.Debug("appended default on new line", slog.Int("line", last+2))

		return nil
	}

	line := lines.At(last)
	if line != "" && !strings.HasSuffix(line, " ") {
		line += " "
	}

	lines.Set(last, line+marker)
	logger.Debug("appended default", slog.Int("line", last))

	return nil
}

// extractDefault removes a delimited default from the end of the field and
// returns it along with the shrunken span. The returned text is nil when no
// configured flag matched.
func (a *Annotator) extractDefault(lines *fieldlist.Lines, span fieldlist.Span) (fieldlist.Span, *string, error) {
	opts := fieldlist.FindOptions{Strip: a.strip, Multiline: a.multiline}

	for _, flag := range a.flags {
		tail, err := fieldlist.RFindInParagraph(span.Text, flag.Tail, opts)
		if err != nil {
			return span, nil, err
		}

		if !tail.Found || !tail.IsEnd {
			continue
		}

		head, err := fieldlist.RFindInParagraph(fieldlist.Before(span.Text, tail.Start), flag.Head, opts)
		if err != nil {
			return span, nil, err
		}

		if !head.Found {
			continue
		}

		text := fieldlist.Between(span.Text, head.End, tail.Start)
		if a.strip {
			text = strings.TrimSpace(text)
		}

		at := span.Start + head.Start.Line
		lines.Set(at, lines.At(at)[:span.Column(head.Start.Line, head.Start.Col)])
		lines.Delete(at+1, span.End)

		span.End = at + 1
		span.Text = fieldlist.Before(span.Text, head.Start)
		span.Offsets = span.Offsets[:head.Start.Line+1]

		return span, &text, nil
	}

	return span, nil, nil
}

// markOptional appends "optional" to the parameter's type field, or
// synthesizes a type field when documenting every default.
func (a *Annotator) markOptional(lines *fieldlist.Lines, args []string, arg DefaultArg, logger *slog.Logger) error {
	span, err := fieldlist.FindField(lines.Slice(), fieldTags(typeFields, arg.Name), false)
	if err != nil {
		return err
	}

	if span.Found {
		a.appendOptional(lines, span, logger)

		return nil
	}

	if !a.alwaysDocument {
		return nil
	}

	at, field := findCurrArg(lines.Slice(), args, arg.Name)
	if !slices.Contains(paramFields, field) && !isKeywordField(field) {
		panic(fmt.Errorf("%w: type field for %s would be placed before %q", fieldlist.ErrInvariant, arg.Name, field))
	}

	prefix := ""
	if isKeywordField(field) {
		prefix = "kw"
	}

	lines.Insert(at, fmt.Sprintf(":%stype %s: optional", prefix, arg.Name))
	logger.Debug("synthesized type field", slog.Int("line", at))

	return nil
}

func (a *Annotator) appendOptional(lines *fieldlist.Lines, span fieldlist.Span, logger *slog.Logger) {
	text := strings.Join(span.Text, " ")
	last := span.End - 1

	if a.strip {
		text = strings.TrimRightFunc(text, unicode.IsSpace)
		lines.Set(last, fieldlist.RStripMin(lines.At(last), span.TagWidth(), ""))
	}

	if strings.HasSuffix(strings.TrimRight(text, "*"), "optional") {
		return
	}

	switch {
	case strings.TrimSpace(text) == "":
		lines.Set(span.Start, span.Tag+" optional")
	case strings.Contains(text, "`"):
		// Plain text after inline markup would be swallowed by it.
		lines.Set(last, lines.At(last)+", *optional*")
	default:
		lines.Set(last, lines.At(last)+", optional")
	}

	logger.Debug("marked type optional", slog.Int("line", span.Start))
}

// lastContentLine returns the index of the last non-blank line of the span
// and the number of paragraphs the span contains.
func lastContentLine(lines *fieldlist.Lines, span fieldlist.Span) (int, int) {
	last := span.Start
	paragraphs := 1
	blank := false

	for i := span.Start + 1; i < span.End; i++ {
		if strings.TrimSpace(lines.At(i)) == "" {
			blank = true

			continue
		}

		if blank {
			paragraphs++
			blank = false
		}

		last = i
	}

	return last, paragraphs
}

// bodyIndent returns the indentation of the first non-blank continuation
// line, which sets the body indentation of the field.
func bodyIndent(lines *fieldlist.Lines, span fieldlist.Span) string {
	for i := span.Start + 1; i < span.End; i++ {
		line := lines.At(i)

		content := strings.TrimLeftFunc(line, unicode.IsSpace)
		if content != "" {
			return line[:len(line)-len(content)]
		}
	}

	return strings.Repeat(" ", span.TagWidth())
}
