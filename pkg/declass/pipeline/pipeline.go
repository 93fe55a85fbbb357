// Package pipeline drives the two-phase decompilation of an archive:
// a single sequential scan that caches class bytecode, spills nested
// archives to temporary files, and forwards resources; followed by a
// dispatch phase that decompiles every cached top-level class and
// commits the results to the output sink.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/declass/declass/pkg/declass/classify"
	"github.com/declass/declass/pkg/declass/decomp"
	"github.com/declass/declass/pkg/declass/loader"
	"github.com/declass/declass/pkg/declass/logging"
	"github.com/declass/declass/pkg/declass/options"
	"github.com/declass/declass/pkg/declass/sink"
)

// logger is the package-level logger for pipeline operations.
var logger = logging.Get("pipeline")

// runState tracks the lifecycle of one pipeline run.
// Transitions only move forward; stateCommitted is terminal.
type runState int

const (
	stateIdle runState = iota
	stateInitialized
	stateScanning
	stateDispatching
	stateCommitted
)

// Pipeline processes one archive end to end. A Pipeline is single-use:
// construct a new one per archive (nested archives get their own).
type Pipeline struct {
	opts       *options.DecompilerOptions
	dec        decomp.Decompiler
	out        sink.Sink
	classifier *classify.Classifier

	// depth is the nesting level; 0 for the top-level archive.
	depth int

	state  runState
	report Report
}

// New creates a pipeline decompiling into the given sink with the
// decompiler's options.
func New(dec decomp.Decompiler, out sink.Sink) (*Pipeline, error) {
	opts := dec.Options()
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("validating options: %w", err)
	}
	classifier, err := classify.New(opts)
	if err != nil {
		return nil, fmt.Errorf("building entry classifier: %w", err)
	}
	return &Pipeline{
		opts:       opts,
		dec:        dec,
		out:        out,
		classifier: classifier,
	}, nil
}

// Run processes the archive at archivePath: init the sink, scan and
// cache, dispatch, commit. The returned error is non-nil only when the
// run could not produce meaningful output at all — the sink failed to
// initialize or commit, the archive could not be opened
// (*ArchiveOpenError), or the context was cancelled. Failures of
// individual entries, classes, and nested archives are logged, counted
// in the Report, and never propagate.
func (p *Pipeline) Run(ctx context.Context, archivePath string) (*Report, error) {
	if p.state != stateIdle {
		return nil, ErrAlreadyRun
	}
	start := time.Now()
	p.report.ArchivePath = archivePath

	logger.Debug("initializing decompilation", "archive", archivePath, "depth", p.depth)

	p.state = stateInitialized
	if err := p.out.Init(p.opts, archivePath); err != nil {
		return nil, fmt.Errorf("initializing output sink: %w", err)
	}

	p.state = stateScanning
	ldr := loader.New()
	if err := p.scan(ctx, archivePath, ldr); err != nil {
		return nil, err
	}

	p.state = stateDispatching
	if err := p.dispatch(ctx, ldr); err != nil {
		return nil, err
	}

	if err := p.out.Commit(); err != nil {
		return nil, fmt.Errorf("committing output sink: %w", err)
	}
	p.state = stateCommitted

	p.report.Elapsed = time.Since(start)
	logger.Info("archive processed",
		"archive", archivePath,
		"classes", p.report.ClassesCached,
		"dispatched", p.report.Dispatched,
		"resources", p.report.Resources,
		"nested", p.report.NestedArchives,
		"elapsed", p.report.Elapsed)
	return &p.report, nil
}
