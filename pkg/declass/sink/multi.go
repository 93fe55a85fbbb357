package sink

import (
	"bytes"
	"errors"
	"io"

	"github.com/declass/declass/pkg/declass/options"
)

// MultiSink fans pipeline output out to several sinks. Errors from the
// individual sinks are joined; a failing sink does not prevent the
// others from receiving the item.
//
// ProcessResource receives a forward-only stream valid only for the
// duration of the call, so the stream is buffered once and replayed to
// each sink.
type MultiSink struct {
	sinks []Sink
}

// NewMulti creates a sink fanning out to the given sinks.
func NewMulti(sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

// Init initializes every sink.
func (s *MultiSink) Init(opts *options.DecompilerOptions, archivePath string) error {
	var errs []error
	for _, sub := range s.sinks {
		if err := sub.Init(opts, archivePath); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ProcessResource buffers the stream and replays it to every sink.
func (s *MultiSink) ProcessResource(name string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	var errs []error
	for _, sub := range s.sinks {
		if err := sub.ProcessResource(name, bytes.NewReader(data)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ProcessClass forwards the source to every sink.
func (s *MultiSink) ProcessClass(name, source string) error {
	var errs []error
	for _, sub := range s.sinks {
		if err := sub.ProcessClass(name, source); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Commit commits every sink.
func (s *MultiSink) Commit() error {
	var errs []error
	for _, sub := range s.sinks {
		if err := sub.Commit(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// TargetDir returns the first non-empty target directory among the
// sinks, so nested-archive scoping follows the primary directory sink.
func (s *MultiSink) TargetDir() string {
	for _, sub := range s.sinks {
		if dir := sub.TargetDir(); dir != "" {
			return dir
		}
	}
	return ""
}
