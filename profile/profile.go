package profile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
)

// LabelManifest is the pprof label key set by [Profiler.Do].
const LabelManifest = "manifest"

// ErrProfile indicates a profile could not be started or written.
var ErrProfile = errors.New("profile")

// Profiler controls the lifecycle of a profiling session.
//
// Call [Profiler.Start] to begin profiling and [Profiler.Stop] to write all
// enabled profiles.
//
// Create instances with [Config.NewProfiler].
type Profiler struct {
	cpuFile *os.File
	Config
}

// Start configures runtime profiling rates and starts CPU profiling if enabled.
func (p *Profiler) Start() error {
	if !p.Enabled() {
		return nil
	}

	runtime.MemProfileRate = p.MemProfileRate
	runtime.SetBlockProfileRate(p.BlockProfileRate)
	runtime.SetMutexProfileFraction(p.MutexProfileFraction)

	if p.CPUProfile == "" {
		return nil
	}

	f, err := os.Create(p.CPUProfile) //nolint:gosec // Profile path from CLI flag is expected.
	if err != nil {
		return fmt.Errorf("%w: create cpu: %w", ErrProfile, err)
	}

	err = pprof.StartCPUProfile(f)
	if err != nil {
		return errors.Join(fmt.Errorf("%w: start cpu: %w", ErrProfile, err), f.Close())
	}

	p.cpuFile = f

	return nil
}

// Do calls fn with a context carrying the manifest label.
func (p *Profiler) Do(ctx context.Context, manifest string, fn func(context.Context)) {
	if p.cpuFile == nil {
		fn(ctx)

		return
	}

	pprof.Do(ctx, pprof.Labels(LabelManifest, manifest), fn)
}

// Stop stops CPU profiling and writes all enabled snapshot profiles. All
// profiles are attempted; errors are joined.
func (p *Profiler) Stop() error {
	var errs []error

	if p.cpuFile != nil {
		pprof.StopCPUProfile()

		err := p.cpuFile.Close()
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: close cpu: %w", ErrProfile, err))
		}

		p.cpuFile = nil
	}

	snapshots := []struct {
		name string
		path string
	}{
		{"heap", p.HeapProfile},
		{"allocs", p.AllocsProfile},
		{"block", p.BlockProfile},
		{"mutex", p.MutexProfile},
	}

	for _, s := range snapshots {
		if s.path == "" {
			continue
		}

		err := writeProfile(s.name, s.path)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: write %s: %w", ErrProfile, s.name, err))
		}
	}

	return errors.Join(errs...)
}

func writeProfile(name, path string) error {
	prof := pprof.Lookup(name)
	if prof == nil {
		return fmt.Errorf("unknown profile %q", name)
	}

	f, err := os.Create(path) //nolint:gosec // Profile path from CLI flag is expected.
	if err != nil {
		return err
	}

	err = prof.WriteTo(f, 0)

	return errors.Join(err, f.Close())
}
