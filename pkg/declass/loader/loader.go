// Package loader provides the in-memory class bytecode cache used by
// the decompilation pipeline. All classes of an archive are cached
// before any one of them is decompiled, so the decompiler can resolve
// references between classes of the same archive.
package loader

import (
	"errors"
	"fmt"
	"io"
	"sync"
)

// ErrClassNotFound is returned by Load for names absent from the cache.
var ErrClassNotFound = errors.New("class not found")

// Loader buffers class bytecode keyed by binary name (slash-separated,
// package-qualified, no file suffix).
//
// A Loader is owned by a single pipeline run: it is written during the
// scan phase and read-only during dispatch. Load is safe for concurrent
// use, which parallel dispatch relies on.
type Loader struct {
	mu      sync.RWMutex
	names   []string
	classes map[string][]byte
}

// New creates an empty Loader.
func New() *Loader {
	return &Loader{
		classes: make(map[string][]byte),
	}
}

// AddClass reads r to completion and caches the content under name.
// On a read failure nothing is cached and the error is returned; the
// class is simply absent from the cache.
func (l *Loader) AddClass(name string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading class %s: %w", name, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.classes[name]; !exists {
		l.names = append(l.names, name)
	}
	l.classes[name] = data
	return nil
}

// ClassNames returns the cached names in insertion order.
// The returned slice is a copy.
func (l *Loader) ClassNames() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	names := make([]string, len(l.names))
	copy(names, l.names)
	return names
}

// Load returns the cached bytecode for name, or ErrClassNotFound.
func (l *Loader) Load(name string) ([]byte, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	data, ok := l.classes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrClassNotFound, name)
	}
	return data, nil
}

// Has reports whether name is present in the cache.
func (l *Loader) Has(name string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	_, ok := l.classes[name]
	return ok
}

// Len returns the number of cached classes.
func (l *Loader) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.classes)
}

// Size returns the total number of cached bytecode bytes.
func (l *Loader) Size() int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var total int64
	for _, data := range l.classes {
		total += int64(len(data))
	}
	return total
}
