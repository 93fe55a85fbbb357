package sink

import (
	"fmt"
	"io"
	"sync"

	"github.com/declass/declass/pkg/declass/options"
)

// PrintSink streams decompiled sources to a writer, typically stdout.
// Resources are skipped. Output from concurrent dispatch workers is
// serialized so sources never interleave.
type PrintSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewPrint creates a sink writing sources to w.
func NewPrint(w io.Writer) *PrintSink {
	return &PrintSink{w: w}
}

// Init is a no-op for the print sink.
func (s *PrintSink) Init(_ *options.DecompilerOptions, archivePath string) error {
	logger.Debug("print sink initialized", "archive", archivePath)
	return nil
}

// ProcessResource skips resources; the console only carries sources.
func (s *PrintSink) ProcessResource(name string, _ io.Reader) error {
	logger.Debug("print sink skipping resource", "name", name)
	return nil
}

// ProcessClass writes the source with a separating header.
func (s *PrintSink) ProcessClass(name, source string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := fmt.Fprintf(s.w, "// %s%s\n%s\n", name, SourceSuffix, source); err != nil {
		return fmt.Errorf("printing source %s: %w", name, err)
	}
	return nil
}

// Commit is a no-op for the print sink.
func (s *PrintSink) Commit() error {
	return nil
}

// TargetDir returns "" because the sink has no directory scope.
func (s *PrintSink) TargetDir() string {
	return ""
}
