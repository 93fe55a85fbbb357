package pipeline

import (
	"context"

	"github.com/klauspost/compress/zip"

	"github.com/declass/declass/pkg/declass/classify"
	"github.com/declass/declass/pkg/declass/loader"
)

// scan iterates the archive entries in container order, classifying
// each and routing it to the class cache, nested-archive handling, or
// resource forwarding. Entries are consumed one at a time; an entry's
// stream is never used past its own iteration step.
//
// A failure to open the archive is terminal for the run and returned
// as *ArchiveOpenError. Failures on individual entries are logged,
// counted, and skipped.
func (p *Pipeline) scan(ctx context.Context, archivePath string, ldr *loader.Loader) error {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return &ArchiveOpenError{Path: archivePath, Err: err}
	}
	defer zr.Close()

	for _, entry := range zr.File {
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.FileInfo().IsDir() {
			continue
		}

		name := entry.Name
		switch p.classifier.Classify(name) {
		case classify.KindClass:
			logger.Debug("caching class", "entry", name)
			p.cacheClass(entry, ldr)
		case classify.KindArchive:
			logger.Debug("processing nested archive", "entry", name)
			p.processNested(ctx, entry)
		case classify.KindResource:
			logger.Debug("forwarding resource", "entry", name)
			p.forwardResource(entry)
		case classify.KindSkipped:
			p.report.Skipped++
		}
	}
	return nil
}

// cacheClass streams the entry into the loader under its binary name.
func (p *Pipeline) cacheClass(entry *zip.File, ldr *loader.Loader) {
	rc, err := entry.Open()
	if err != nil {
		logger.Error("opening class entry failed", "entry", entry.Name, "error", err)
		p.report.EntryFailures++
		return
	}
	defer rc.Close()

	name := classify.TrimClassSuffix(entry.Name)
	if err := ldr.AddClass(name, rc); err != nil {
		logger.Error("caching class failed", "entry", entry.Name, "error", err)
		p.report.EntryFailures++
		return
	}
	p.report.ClassesCached++
	p.report.BytesCached += int64(entry.UncompressedSize64)
}

// forwardResource hands the entry stream to the sink. The stream is
// only valid for the duration of the call.
func (p *Pipeline) forwardResource(entry *zip.File) {
	rc, err := entry.Open()
	if err != nil {
		logger.Error("opening resource entry failed", "entry", entry.Name, "error", err)
		p.report.EntryFailures++
		return
	}
	defer rc.Close()

	if err := p.out.ProcessResource(entry.Name, rc); err != nil {
		logger.Error("forwarding resource failed", "entry", entry.Name, "error", err)
		p.report.EntryFailures++
		return
	}
	p.report.Resources++
}
