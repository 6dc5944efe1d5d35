package defaultargs

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// flagPlaceholder marks where the default text sits in a delimiter flag
// given on the command line, e.g. "(Default: {})".
const flagPlaceholder = "{}"

// Flags holds CLI flag names for annotator configuration, allowing callers
// to customize flag names while keeping sensible defaults via [NewConfig].
type Flags struct {
	ConfigFile        string
	AlwaysDocument    string
	DefaultFlag       string
	MultilineMatching string
	StripMatching     string
	AfterDirectives   string
	Substitution      string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags:         f,
		Substitution:  DefaultSubstitution,
		DefaultFlags:  formatFlags(DefaultFlags()),
		StripMatching: true,
	}
}

// Config holds CLI flag and config file values for the annotator.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Call [Config.Load] to merge a config file, then
// [Config.NewAnnotator] to create an [Annotator].
type Config struct {
	Flags Flags

	// ConfigFile is an optional YAML, JSON or TOML file, see [LoadFile].
	ConfigFile   string
	Substitution string
	// DefaultFlags holds delimiter pairs in "HEAD{}TAIL" form.
	DefaultFlags []string

	// fileFlags holds delimiter pairs read by [Config.Load]. When non-nil
	// they are used as-is instead of parsing DefaultFlags, so heads
	// containing "{}" survive.
	fileFlags []Flag

	AlwaysDocument    bool
	MultilineMatching bool
	StripMatching     bool
	AfterDirectives   bool
}

// NewConfig returns a new [Config] with default flag names and default
// values.
func NewConfig() *Config {
	f := Flags{
		ConfigFile:        "config",
		AlwaysDocument:    "always-document",
		DefaultFlag:       "default-flag",
		MultilineMatching: "multiline-matching",
		StripMatching:     "strip-matching",
		AfterDirectives:   "after-directives",
		Substitution:      "substitution",
	}

	return f.NewConfig()
}

// RegisterFlags adds annotator flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.ConfigFile, c.Flags.ConfigFile, "c", "",
		"config file (.yaml, .yml, .json or .toml)")
	flags.BoolVar(&c.AlwaysDocument, c.Flags.AlwaysDocument, false,
		"add missing parameter and type fields for every parameter with a default")
	flags.StringArrayVar(&c.DefaultFlags, c.Flags.DefaultFlag, formatFlags(DefaultFlags()),
		"delimiters around a documented default, as HEAD{}TAIL (repeatable)")
	flags.BoolVar(&c.MultilineMatching, c.Flags.MultilineMatching, false,
		"match default delimiters across lines (not implemented)")
	flags.BoolVar(&c.StripMatching, c.Flags.StripMatching, true,
		"trim whitespace around matched delimiters and rewritten lines")
	flags.BoolVar(&c.AfterDirectives, c.Flags.AfterDirectives, false,
		"let parameter fields continue across blank lines")
	flags.StringVar(&c.Substitution, c.Flags.Substitution, DefaultSubstitution,
		"marker inserted before rendered default values")
}

// RegisterCompletions registers shell completions for annotator flags on
// cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.MarkFlagFilename(c.Flags.ConfigFile, "yaml", "yml", "json", "toml")
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.ConfigFile, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.DefaultFlag,
		cobra.FixedCompletions(formatFlags(DefaultFlags()), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.DefaultFlag, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.Substitution,
		cobra.FixedCompletions([]string{DefaultSubstitution}, cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Substitution, err)
	}

	return nil
}

// Load merges [Config.ConfigFile] into c. Values of flags that were set
// explicitly on flags take precedence over the file. A nil flags applies
// every value from the file.
func (c *Config) Load(flags *pflag.FlagSet) error {
	if c.ConfigFile == "" {
		return nil
	}

	fc, err := LoadFile(c.ConfigFile)
	if err != nil {
		return err
	}

	use := func(name string) bool {
		return flags == nil || !flags.Changed(name)
	}

	if fc.AlwaysDocument != nil && use(c.Flags.AlwaysDocument) {
		c.AlwaysDocument = *fc.AlwaysDocument
	}

	if fc.Flags != nil && use(c.Flags.DefaultFlag) {
		pairs, err := fc.DelimiterFlags()
		if err != nil {
			return err
		}

		c.fileFlags = pairs
		c.DefaultFlags = formatFlags(pairs)
	}

	if fc.MultilineMatching != nil && use(c.Flags.MultilineMatching) {
		c.MultilineMatching = *fc.MultilineMatching
	}

	if fc.StripMatching != nil && use(c.Flags.StripMatching) {
		c.StripMatching = *fc.StripMatching
	}

	if fc.AfterDirectives != nil && use(c.Flags.AfterDirectives) {
		c.AfterDirectives = *fc.AfterDirectives
	}

	if fc.Substitution != nil && use(c.Flags.Substitution) {
		c.Substitution = *fc.Substitution
	}

	return nil
}

// NewAnnotator creates an [Annotator] using this [Config]. Extra options are
// applied after the configured ones.
func (c *Config) NewAnnotator(opts ...Option) (*Annotator, error) {
	flags := c.fileFlags
	if flags == nil {
		flags = make([]Flag, 0, len(c.DefaultFlags))

		for _, s := range c.DefaultFlags {
			f, err := ParseFlag(s)
			if err != nil {
				return nil, err
			}

			flags = append(flags, f)
		}
	}

	base := []Option{
		WithAlwaysDocument(c.AlwaysDocument),
		WithFlags(flags...),
		WithMultilineMatching(c.MultilineMatching),
		WithStrip(c.StripMatching),
		WithAfterDirectives(c.AfterDirectives),
		WithSubstitution(c.Substitution),
	}

	return New(append(base, opts...)...)
}

// ParseFlag parses a delimiter pair written as "HEAD{}TAIL".
func ParseFlag(s string) (Flag, error) {
	head, tail, ok := strings.Cut(s, flagPlaceholder)
	if !ok {
		return Flag{}, fmt.Errorf("%w: flag %q has no %s placeholder", ErrInvalidOption, s, flagPlaceholder)
	}

	return Flag{Head: head, Tail: tail}, nil
}

// String formats f as "HEAD{}TAIL".
func (f Flag) String() string {
	return f.Head + flagPlaceholder + f.Tail
}

func formatFlags(flags []Flag) []string {
	out := make([]string, 0, len(flags))
	for _, f := range flags {
		out = append(out, f.String())
	}

	return out
}
