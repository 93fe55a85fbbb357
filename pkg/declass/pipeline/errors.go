package pipeline

import (
	"errors"
	"fmt"
)

// ErrAlreadyRun is returned when Run is called on a pipeline that has
// already reached its terminal state. A Pipeline drives exactly one
// archive-processing call.
var ErrAlreadyRun = errors.New("pipeline already run")

// ArchiveOpenError reports that the archive could not be opened at all
// (missing file, corrupt container header). It is the only failure that
// surfaces to the caller: everything below archive-open is logged and
// isolated to its entry, class, or nested archive.
type ArchiveOpenError struct {
	Path string
	Err  error
}

func (e *ArchiveOpenError) Error() string {
	return fmt.Sprintf("opening archive %s: %v", e.Path, e.Err)
}

func (e *ArchiveOpenError) Unwrap() error {
	return e.Err
}
