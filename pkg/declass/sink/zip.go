package sink

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/klauspost/compress/zip"

	"github.com/declass/declass/pkg/declass/options"
)

// ZipSink collects decompiled sources and resources into a single
// output zip. The zip writer is not safe for concurrent use, so all
// writes serialize on an internal mutex.
type ZipSink struct {
	path string

	mu     sync.Mutex
	file   *os.File
	writer *zip.Writer

	classes   int64
	resources int64
}

// NewZip creates a sink writing to the zip file at path.
func NewZip(path string) *ZipSink {
	return &ZipSink{path: path}
}

// Init creates the output zip file.
func (s *ZipSink) Init(_ *options.DecompilerOptions, archivePath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.writer != nil {
		return fmt.Errorf("zip sink already initialized")
	}

	file, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("creating output zip %s: %w", s.path, err)
	}
	s.file = file
	s.writer = zip.NewWriter(file)
	logger.Debug("zip sink initialized", "zip", s.path, "archive", archivePath)
	return nil
}

// ProcessResource copies the resource into the zip under its entry name.
func (s *ZipSink) ProcessResource(name string, r io.Reader) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := s.create(name)
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, r); err != nil {
		return fmt.Errorf("writing resource %s: %w", name, err)
	}
	s.resources++
	return nil
}

// ProcessClass stores the decompiled source as <name>.java.
func (s *ZipSink) ProcessClass(name, source string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := s.create(name + SourceSuffix)
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, strings.NewReader(source)); err != nil {
		return fmt.Errorf("writing source %s: %w", name, err)
	}
	s.classes++
	return nil
}

// Commit flushes and closes the zip.
func (s *ZipSink) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.writer == nil {
		return fmt.Errorf("zip sink not initialized")
	}
	if err := s.writer.Close(); err != nil {
		s.file.Close()
		return fmt.Errorf("finalizing output zip: %w", err)
	}
	if err := s.file.Close(); err != nil {
		return fmt.Errorf("closing output zip: %w", err)
	}
	logger.Info("zip sink committed",
		"zip", s.path,
		"classes", s.classes,
		"resources", s.resources)
	s.writer = nil
	s.file = nil
	return nil
}

// TargetDir returns "" because the sink has no directory scope.
func (s *ZipSink) TargetDir() string {
	return ""
}

// create opens a new zip entry. Must be called with s.mu held.
func (s *ZipSink) create(name string) (io.Writer, error) {
	if s.writer == nil {
		return nil, fmt.Errorf("zip sink not initialized")
	}
	w, err := s.writer.Create(name)
	if err != nil {
		return nil, fmt.Errorf("creating zip entry %s: %w", name, err)
	}
	return w, nil
}
