// Package profile adds runtime profiling to the defaultargs CLI.
//
// CPU, heap, allocs, block and mutex profiles are written to the paths given
// by command-line flags. Work done for one manifest can be wrapped in
// [Profiler.Do], which attaches a "manifest" pprof label so CPU samples can
// be filtered per input file:
//
//	go tool pprof -tagfocus=manifest=api.yaml cpu.prof
//
// Typical usage:
//
//	cfg := profile.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//	p := cfg.NewProfiler()
//
//	err := p.Start()
//	// ...
//	p.Do(ctx, path, func(ctx context.Context) { ... })
//	// ...
//	err = p.Stop()
package profile
