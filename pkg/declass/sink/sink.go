// Package sink defines where decompilation results go. A Sink receives
// decompiled sources and resource streams from the pipeline and commits
// them at the end of a run.
//
// Init and Commit are called exactly once per pipeline run. ProcessClass
// and ProcessResource may be called many times; implementations must be
// safe for concurrent invocation because parallel dispatch calls
// ProcessClass from multiple goroutines.
package sink

import (
	"io"

	"github.com/declass/declass/pkg/declass/logging"
	"github.com/declass/declass/pkg/declass/options"
)

// logger is the package-level logger for sink operations.
var logger = logging.Get("sink")

// Sink consumes pipeline output.
type Sink interface {
	// Init prepares the sink for a run over the given archive.
	Init(opts *options.DecompilerOptions, archivePath string) error

	// ProcessResource stores a non-class entry. The reader is only
	// valid for the duration of the call.
	ProcessResource(name string, r io.Reader) error

	// ProcessClass stores decompiled source for a binary class name.
	ProcessClass(name, source string) error

	// Commit finalizes the sink. No Process calls follow it.
	Commit() error

	// TargetDir returns the directory the sink writes into, or ""
	// when the sink has no directory scope. The pipeline uses it to
	// namespace nested-archive output.
	TargetDir() string
}

// SourceSuffix is appended to a binary class name to form the output
// file name of its decompiled source.
const SourceSuffix = ".java"
