package sink

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	natomic "github.com/natefinch/atomic"

	"github.com/declass/declass/pkg/declass/options"
)

// DirSink writes decompiled sources and resources into a directory
// tree mirroring the archive layout. Files are written atomically so a
// crashed run never leaves partial output behind.
type DirSink struct {
	root string

	classes   atomic.Int64
	resources atomic.Int64
}

// NewDir creates a sink rooted at dir. The directory is created on Init.
func NewDir(dir string) *DirSink {
	return &DirSink{root: dir}
}

// Init creates the output directory.
func (s *DirSink) Init(_ *options.DecompilerOptions, archivePath string) error {
	if s.root == "" {
		return fmt.Errorf("output directory not set")
	}
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", s.root, err)
	}
	logger.Debug("directory sink initialized", "dir", s.root, "archive", archivePath)
	return nil
}

// ProcessResource copies the resource verbatim under the sink root.
func (s *DirSink) ProcessResource(name string, r io.Reader) error {
	path, err := s.entryPath(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating resource directory: %w", err)
	}
	if err := natomic.WriteFile(path, r); err != nil {
		return fmt.Errorf("writing resource %s: %w", name, err)
	}
	s.resources.Add(1)
	return nil
}

// ProcessClass writes the decompiled source as <name>.java.
func (s *DirSink) ProcessClass(name, source string) error {
	path, err := s.entryPath(name + SourceSuffix)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating source directory: %w", err)
	}
	if err := natomic.WriteFile(path, strings.NewReader(source)); err != nil {
		return fmt.Errorf("writing source %s: %w", name, err)
	}
	s.classes.Add(1)
	return nil
}

// Commit logs a summary. All writes are already durable at this point.
func (s *DirSink) Commit() error {
	logger.Info("directory sink committed",
		"dir", s.root,
		"classes", s.classes.Load(),
		"resources", s.resources.Load())
	return nil
}

// TargetDir returns the sink's root directory.
func (s *DirSink) TargetDir() string {
	return s.root
}

// entryPath maps a slash-separated entry name to a path under root,
// rejecting names that would escape it.
func (s *DirSink) entryPath(name string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(name))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) || filepath.IsAbs(clean) {
		return "", fmt.Errorf("entry name escapes output directory: %s", name)
	}
	return filepath.Join(s.root, clean), nil
}
