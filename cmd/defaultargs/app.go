package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"go.jacobcolvin.com/defaultargs/defaultargs"
	"go.jacobcolvin.com/defaultargs/log"
	"go.jacobcolvin.com/defaultargs/manifest"
	"go.jacobcolvin.com/defaultargs/profile"
	"go.jacobcolvin.com/defaultargs/version"
)

// stdinArg names standard input on the command line.
const stdinArg = "-"

// Color modes for --color.
const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

var (
	// ErrUsage indicates an invalid combination of arguments or flags.
	ErrUsage = errors.New("usage")
	// ErrReadInput indicates a manifest could not be read.
	ErrReadInput = errors.New("read input")
	// ErrWriteOutput indicates a result could not be written.
	ErrWriteOutput = errors.New("write output")
)

type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger

	logCfg     *log.Config
	profileCfg *profile.Config
	annCfg     *defaultargs.Config
	profiler   *profile.Profiler

	color string
	jobs  int
	write bool
	list  bool
	diff  bool
	watch bool
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	profileCfg := profile.NewConfig()

	return &app{
		stdin:      stdin,
		stdout:     stdout,
		stderr:     stderr,
		logger:     slog.New(slog.DiscardHandler),
		logCfg:     log.NewConfig(),
		profileCfg: profileCfg,
		annCfg:     defaultargs.NewConfig(),
		profiler:   profileCfg.NewProfiler(),
	}
}

func (a *app) command() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "defaultargs [flags] <manifest|-> ...",
		Short: "Document default parameter values in docstrings",
		Long: `defaultargs rewrites the reStructuredText docstrings in manifests of
introspected callables so that every parameter with a default value documents
it, and marks the parameter's type as optional.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args)
		},
	}

	rootCmd.SetIn(a.stdin)
	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)

	flags := rootCmd.Flags()
	flags.BoolVarP(&a.write, "write", "w", false, "rewrite manifests in place")
	flags.BoolVarP(&a.list, "list", "l", false, "list manifests that would change")
	flags.BoolVarP(&a.diff, "diff", "d", false, "show a unified diff instead of the result")
	flags.IntVarP(&a.jobs, "jobs", "j", 0, "number of manifests processed concurrently (0 = GOMAXPROCS)")
	flags.BoolVar(&a.watch, "watch", false, "re-annotate manifests when they change")
	flags.StringVar(&a.color, "color", colorAuto, "colorize diffs: auto, always or never")

	a.annCfg.RegisterFlags(flags)
	a.logCfg.RegisterFlags(rootCmd.PersistentFlags())
	a.profileCfg.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(a.schemaCommand(), a.versionCommand())

	for _, register := range []func(*cobra.Command) error{
		a.annCfg.RegisterCompletions,
		a.logCfg.RegisterCompletions,
		a.profileCfg.RegisterCompletions,
		func(cmd *cobra.Command) error {
			return cmd.RegisterFlagCompletionFunc("color", cobra.FixedCompletions(
				[]string{colorAuto, colorAlways, colorNever}, cobra.ShellCompDirectiveNoFileComp))
		},
	} {
		err := register(rootCmd)
		if err != nil {
			fmt.Fprintf(a.stderr, "register completions: %v\n", err)
		}
	}

	return rootCmd
}

// setup builds the logger and starts profiling once flags are parsed.
func (a *app) setup() error {
	handler, err := a.logCfg.NewHandler(a.stderr)
	if err != nil {
		return err
	}

	a.logger = slog.New(handler)

	a.profiler = a.profileCfg.NewProfiler()

	return a.profiler.Start()
}

func (a *app) schemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the manifest format",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := manifest.Schema()
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(s, "", "  ")
			if err != nil {
				return fmt.Errorf("%w: %w", ErrWriteOutput, err)
			}

			_, err = a.stdout.Write(append(out, '\n'))
			if err != nil {
				return fmt.Errorf("%w: %w", ErrWriteOutput, err)
			}

			return nil
		},
	}
}

func (a *app) versionCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			info := version.Get()

			if !asJSON {
				_, err := fmt.Fprintln(a.stdout, info.String())
				if err != nil {
					return fmt.Errorf("%w: %w", ErrWriteOutput, err)
				}

				return nil
			}

			out, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return fmt.Errorf("%w: %w", ErrWriteOutput, err)
			}

			_, err = a.stdout.Write(append(out, '\n'))
			if err != nil {
				return fmt.Errorf("%w: %w", ErrWriteOutput, err)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")

	return cmd
}

// validate rejects flag combinations that cannot work.
func (a *app) validate(args []string) error {
	if !slices.Contains([]string{colorAuto, colorAlways, colorNever}, a.color) {
		return fmt.Errorf("%w: --color must be one of auto, always or never, got %q", ErrUsage, a.color)
	}

	if a.jobs < 0 {
		return fmt.Errorf("%w: --jobs must not be negative", ErrUsage)
	}

	if !slices.Contains(args, stdinArg) {
		return nil
	}

	switch {
	case a.write:
		return fmt.Errorf("%w: cannot use --write with standard input", ErrUsage)
	case a.watch:
		return fmt.Errorf("%w: cannot use --watch with standard input", ErrUsage)
	case len(args) > 1:
		return fmt.Errorf("%w: standard input must be the only manifest", ErrUsage)
	}

	return nil
}

// useColor reports whether diffs should be colorized.
func (a *app) useColor() bool {
	switch a.color {
	case colorAlways:
		return true
	case colorNever:
		return false
	}

	f, ok := a.stdout.(*os.File)

	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // File descriptors fit in int.
}
