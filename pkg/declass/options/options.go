// Package options defines the decompilation options shared by the
// classifier, the pipeline, and output sinks. Options are read-only
// once a pipeline run starts.
package options

import (
	"fmt"

	"github.com/declass/declass/pkg/declass/config"
	"github.com/gobwas/glob"
)

// DecompilerOptions configures a decompilation run.
type DecompilerOptions struct {
	// SkipResources disables forwarding of non-class, non-archive
	// entries to the output sink.
	SkipResources bool

	// DecompileInnerArchives enables recursive processing of nested
	// jar/war/ear/zip entries.
	DecompileInnerArchives bool

	// ParallelProcessingAllowed enables the parallel dispatch mode.
	// When set, the output sink must tolerate concurrent invocation.
	ParallelProcessingAllowed bool

	// Workers is the dispatch worker count in parallel mode.
	// Values < 1 are replaced with config.DefaultWorkers.
	Workers int

	// MaxDepth limits nested-archive recursion. 0 means unlimited.
	MaxDepth int

	// Include contains glob patterns. If non-empty, entries must match
	// at least one to be processed.
	Include []string

	// Exclude contains glob patterns. Matching entries are skipped.
	Exclude []string
}

// Default returns options matching the config package defaults.
func Default() *DecompilerOptions {
	return &DecompilerOptions{
		SkipResources:             false,
		DecompileInnerArchives:    config.DefaultInnerArchives,
		ParallelProcessingAllowed: false,
		Workers:                   config.DefaultWorkers,
		MaxDepth:                  config.DefaultMaxDepth,
	}
}

// Validate checks patterns compile and normalizes worker counts.
func (o *DecompilerOptions) Validate() error {
	if o.Workers < 1 {
		o.Workers = config.DefaultWorkers
	}
	if o.MaxDepth < 0 {
		o.MaxDepth = 0
	}
	for _, p := range o.Include {
		if _, err := glob.Compile(p, '/'); err != nil {
			return fmt.Errorf("invalid include pattern %q: %w", p, err)
		}
	}
	for _, p := range o.Exclude {
		if _, err := glob.Compile(p, '/'); err != nil {
			return fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
	}
	return nil
}
