// Command defaultargs documents default parameter values in docstrings.
//
// It reads manifests of introspected callables (see package manifest) and
// rewrites each docstring so that every parameter with a default mentions
// it, e.g.
//
//	:param x: foo   ->   :param x: foo |default| :code:`None`
//
// # Usage
//
//	defaultargs [flags] <manifest|-> ...
//	defaultargs schema
//	defaultargs version
//
// By default the annotated manifests are printed to stdout. Manifests are
// processed in parallel; output follows argument order.
//
// # Flags
//
//	-w, --write    rewrite manifests in place
//	-l, --list     list manifests that would change
//	-d, --diff     show a unified diff instead of the result
//	-j, --jobs     number of manifests processed concurrently
//	    --watch    keep running and re-annotate manifests when they change
//	    --color    colorize diffs: auto, always or never
//	-c, --config   read annotator options from a YAML, JSON or TOML file
//
// Annotator options (--always-document, --default-flag, --strip-matching,
// --after-directives, --substitution, --multiline-matching) mirror the
// config file keys. Logging and profiling flags are available on every
// command.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	a := newApp(os.Stdin, os.Stdout, os.Stderr)
	err := a.command().ExecuteContext(ctx)

	stopErr := a.profiler.Stop()

	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	if stopErr != nil {
		fmt.Fprintf(os.Stderr, "%v\n", stopErr)
		os.Exit(1)
	}
}
