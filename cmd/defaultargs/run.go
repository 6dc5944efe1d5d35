package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"go.jacobcolvin.com/defaultargs/defaultargs"
	"go.jacobcolvin.com/defaultargs/manifest"
)

// result is the outcome of annotating one manifest.
type result struct {
	err  error
	path string
	// before and after are both re-encoded, so they differ only in the
	// annotated docstrings.
	before []byte
	after  []byte
	// changed counts callables whose docstring was rewritten.
	changed int
}

func (a *app) run(cmd *cobra.Command, args []string) error {
	err := a.validate(args)
	if err != nil {
		return err
	}

	err = a.annCfg.Load(cmd.Flags())
	if err != nil {
		return err
	}

	ann, err := a.annCfg.NewAnnotator(defaultargs.WithLogger(a.logger))
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	err = a.runFiles(ctx, ann, args)
	if !a.watch {
		return err
	}

	if err != nil {
		a.logger.Error("initial run", slog.Any("error", err))
	}

	return a.watchFiles(ctx, ann, args)
}

// runFiles annotates paths concurrently and reports results in argument
// order. Every manifest is attempted; errors are joined.
func (a *app) runFiles(ctx context.Context, ann *defaultargs.Annotator, paths []string) error {
	results := a.processAll(ctx, ann, paths)
	useColor := a.useColor()

	var errs []error

	for _, r := range results {
		if r.err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.path, r.err))

			continue
		}

		err := a.report(r, useColor)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.path, err))
		}
	}

	return errors.Join(errs...)
}

func (a *app) processAll(ctx context.Context, ann *defaultargs.Annotator, paths []string) []result {
	jobs := a.jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Each goroutine owns one index.
	results := make([]result, len(paths))

	g := new(errgroup.Group)
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		g.Go(func() error {
			a.profiler.Do(ctx, path, func(ctx context.Context) {
				results[i] = a.processFile(ctx, ann, path)
			})

			return nil
		})
	}

	//nolint:errcheck // Goroutines report through results.
	g.Wait()

	return results
}

func (a *app) processFile(ctx context.Context, ann *defaultargs.Annotator, path string) result {
	r := result{path: path}

	data, err := a.readInput(path)
	if err != nil {
		r.err = err

		return r
	}

	m, err := manifest.Decode(data)
	if err != nil {
		r.err = err

		return r
	}

	format := manifest.FormatForPath(path)

	var before bytes.Buffer

	err = manifest.Encode(&before, m, format)
	if err != nil {
		r.err = err

		return r
	}

	r.changed, err = m.Annotate(ctx, ann)
	if err != nil {
		r.err = err

		return r
	}

	r.before = before.Bytes()

	if r.changed == 0 {
		r.after = r.before
	} else {
		var after bytes.Buffer

		err = manifest.Encode(&after, m, format)
		if err != nil {
			r.err = err

			return r
		}

		r.after = after.Bytes()
	}

	a.logger.DebugContext(ctx, "processed manifest",
		slog.String("path", path),
		slog.Int("callables", len(m.Callables)),
		slog.Int("changed", r.changed),
	)

	if a.write && r.changed > 0 {
		err = writeFile(path, r.after)
		if err != nil {
			r.err = err

			return r
		}

		a.logger.InfoContext(ctx, "wrote manifest", slog.String("path", path), slog.Int("changed", r.changed))
	}

	return r
}

// report prints a result according to the output mode.
func (a *app) report(r result, useColor bool) error {
	var err error

	switch {
	case a.list:
		if r.changed > 0 {
			_, err = fmt.Fprintln(a.stdout, r.path)
		}

	case a.diff:
		if r.changed > 0 {
			err = writeDiff(a.stdout, r.path, r.before, r.after, useColor)
		}

	case a.write:
		return nil

	default:
		_, err = a.stdout.Write(r.after)
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	return nil
}

func (a *app) readInput(path string) ([]byte, error) {
	if path == stdinArg {
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return nil, fmt.Errorf("%w: stdin: %w", ErrReadInput, err)
		}

		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	return data, nil
}

// writeFile replaces path with data, keeping its permissions.
func writeFile(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	err = os.WriteFile(path, data, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	return nil
}
