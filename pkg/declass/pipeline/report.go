package pipeline

import "time"

// Report aggregates the outcome of one pipeline run. Counters for
// nested archives include the totals of their child runs.
type Report struct {
	// ArchivePath is the archive the run processed.
	ArchivePath string `json:"archive_path"`

	// ClassesCached is the number of classes buffered during the scan.
	ClassesCached int `json:"classes_cached"`

	// BytesCached is the total bytecode bytes buffered during the scan.
	BytesCached int64 `json:"bytes_cached"`

	// Resources is the number of resource entries forwarded to the sink.
	Resources int `json:"resources"`

	// Skipped is the number of entries rejected by classification.
	Skipped int `json:"skipped"`

	// NestedArchives is the number of nested archives processed.
	NestedArchives int `json:"nested_archives"`

	// Dispatched is the number of top-level classes decompiled and
	// forwarded to the sink.
	Dispatched int `json:"dispatched"`

	// EntryFailures counts entries skipped due to read or cache errors.
	EntryFailures int `json:"entry_failures"`

	// DecompileFailures counts classes omitted from output because
	// decompilation or the sink write failed.
	DecompileFailures int `json:"decompile_failures"`

	// NestedFailures counts nested archives whose runs failed.
	NestedFailures int `json:"nested_failures"`

	// Elapsed is the total duration of the run.
	Elapsed time.Duration `json:"elapsed"`
}

// merge folds a nested run's counters into the parent report.
func (r *Report) merge(child *Report) {
	if child == nil {
		return
	}
	r.ClassesCached += child.ClassesCached
	r.BytesCached += child.BytesCached
	r.Resources += child.Resources
	r.Skipped += child.Skipped
	r.NestedArchives += child.NestedArchives
	r.Dispatched += child.Dispatched
	r.EntryFailures += child.EntryFailures
	r.DecompileFailures += child.DecompileFailures
	r.NestedFailures += child.NestedFailures
}
