package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/declass/declass/pkg/declass/config"
	"github.com/declass/declass/pkg/declass/sink"
)

// processNested spills a nested-archive entry to a temporary file and
// runs a child pipeline against it, writing into a directory scope
// derived from the entry name. Any failure is logged and confined to
// this entry; the outer scan continues. The temporary file is removed
// on every path.
func (p *Pipeline) processNested(ctx context.Context, entry *zip.File) {
	if p.opts.MaxDepth > 0 && p.depth+1 >= p.opts.MaxDepth {
		logger.Warn("nested archive exceeds recursion limit, skipping",
			"entry", entry.Name, "depth", p.depth+1)
		p.report.Skipped++
		return
	}

	scope, err := p.nestedScope(entry.Name)
	if err != nil {
		logger.Error("rejecting nested archive entry", "entry", entry.Name, "error", err)
		p.report.NestedFailures++
		return
	}

	tmpPath, err := p.stageNested(entry)
	if err != nil {
		logger.Error("staging nested archive failed", "entry", entry.Name, "error", err)
		p.report.NestedFailures++
		return
	}
	defer os.Remove(tmpPath)

	child, err := New(p.dec, sink.NewDir(scope))
	if err != nil {
		logger.Error("creating nested pipeline failed", "entry", entry.Name, "error", err)
		p.report.NestedFailures++
		return
	}
	child.depth = p.depth + 1

	report, err := child.Run(ctx, tmpPath)
	if err != nil {
		logger.Error("nested archive run failed", "entry", entry.Name, "error", err)
		p.report.NestedFailures++
		return
	}
	p.report.merge(report)
	p.report.NestedArchives++
}

// stageNested copies the entry stream in full to a fresh temporary
// file and returns its path. The caller owns the file.
func (p *Pipeline) stageNested(entry *zip.File) (string, error) {
	rc, err := entry.Open()
	if err != nil {
		return "", fmt.Errorf("opening nested archive entry: %w", err)
	}
	defer rc.Close()

	tmp, err := os.CreateTemp("", "declass-*.jar")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}

	if _, err := io.Copy(tmp, rc); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("spilling nested archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("closing temp file: %w", err)
	}
	return tmp.Name(), nil
}

// nestedScope derives the output directory for a nested archive from
// the parent sink's target directory and the entry name. Entry names
// that would place the scope outside the parent directory are
// rejected, the same containment rule the directory sink applies to
// classes and resources.
func (p *Pipeline) nestedScope(entryName string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(entryName))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) || filepath.IsAbs(clean) {
		return "", fmt.Errorf("entry name escapes output directory: %s", entryName)
	}
	scoped := clean + config.DefaultOutputSuffix
	if dir := p.out.TargetDir(); dir != "" {
		return filepath.Join(dir, scoped), nil
	}
	return scoped, nil
}
